package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"arctic_mining/internal/http/middleware"
	"arctic_mining/internal/service"

	"github.com/gin-gonic/gin"
)

type BuyRequest struct {
	ItemID string `json:"itemId" binding:"required"`
}

// Buy purchases one unit of catalog equipment for the authenticated player.
func (h *Handler) Buy(c *gin.Context) {
	username, ok := middleware.Username(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req BuyRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad request"})
		return
	}

	product, err := h.Economy.Purchase(c.Request.Context(), username, req.ItemID)
	if err != nil {
		// Insufficient funds is a normal declined outcome, not an error.
		if errors.Is(err, service.ErrInsufficientFunds) {
			middleware.Purchases.WithLabelValues("declined").Inc()
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Solde insuffisant !"})
			return
		}
		middleware.Purchases.WithLabelValues("failed").Inc()
		fail(c, err)
		return
	}

	middleware.Purchases.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Achat réussi",
		"item":    product.ID,
	})
}

// Harvest converts accrued yield into withdrawable balance.
func (h *Handler) Harvest(c *gin.Context) {
	username, ok := middleware.Username(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	res, err := h.Economy.Harvest(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrCooldown) {
			middleware.Harvests.WithLabelValues("cooldown").Inc()
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Patience..."})
			return
		}
		middleware.Harvests.WithLabelValues("failed").Inc()
		fail(c, err)
		return
	}

	middleware.Harvests.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Récolté !",
		"gain":    res.Gain,
	})
}

type WithdrawRequest struct {
	Amount  float64 `json:"amount"`
	Address string  `json:"address"`
}

// Withdraw debits the requested amount and reports the net sent after the
// tier fee.
func (h *Handler) Withdraw(c *gin.Context) {
	username, ok := middleware.Username(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req WithdrawRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad request"})
		return
	}

	res, err := h.Economy.Withdraw(c.Request.Context(), username, req.Amount, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBelowMinimum):
			middleware.Withdrawals.WithLabelValues("declined").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Le retrait minimum est de 20 €."})
		case errors.Is(err, service.ErrInsufficientFunds):
			middleware.Withdrawals.WithLabelValues("declined").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Solde insuffisant pour ce retrait."})
		default:
			middleware.Withdrawals.WithLabelValues("failed").Inc()
			fail(c, err)
		}
		return
	}

	middleware.Withdrawals.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Retrait validé ! Vous recevrez %.2f € (Frais déduits).", res.NetSent),
		"net_sent": res.NetSent,
		"fee_rate": res.FeeRate,
	})
}

type DepositRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	TxID   string  `json:"txId" binding:"required"`
}

// Deposit records a pending claim for operator review. No balance change
// until approval.
func (h *Handler) Deposit(c *gin.Context) {
	username, ok := middleware.Username(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req DepositRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad request"})
		return
	}

	claim, err := h.Deposits.Submit(c.Request.Context(), username, req.Amount, req.TxID)
	if err != nil {
		fail(c, err)
		return
	}

	middleware.DepositsSubmitted.Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Demande envoyée ! Le Boss vérifie ça très vite.",
		"deposit": claim,
	})
}
