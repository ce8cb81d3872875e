package handlers

import (
	"net/http"

	"arctic_mining/internal/http/middleware"
	"arctic_mining/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminLoginRequest struct {
	Key string `json:"key" binding:"required"`
}

// AdminLogin validates the static operator key.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.BindJSON(&req); err != nil || req.Key != h.Cfg.AdminKey {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Clé incorrecte"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Accès autorisé"})
}

// AdminUsers lists every account with derived VIP info and deposit claims.
func (h *Handler) AdminUsers(c *gin.Context) {
	users, err := h.Admin.ListAccounts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

type AdminActionRequest struct {
	Action   string  `json:"action" binding:"required"`
	Username string  `json:"username" binding:"required"`
	Amount   float64 `json:"amount"`
}

// AdminAction credits an account or bans it.
func (h *Handler) AdminAction(c *gin.Context) {
	var req AdminActionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad request"})
		return
	}

	ctx := c.Request.Context()

	switch req.Action {
	case "ban":
		if err := h.Admin.Ban(ctx, req.Username); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Utilisateur supprimé"})
		return
	case string(service.CreditBalance), string(service.CreditWithdrawal), string(service.CreditGift):
		if err := h.Admin.Credit(ctx, req.Username, req.Amount, service.CreditTarget(req.Action)); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Action effectuée"})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "unknown action"})
	}
}

type ApproveDepositRequest struct {
	Username  string `json:"username" binding:"required"`
	DepositID string `json:"depositId" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=approve reject"`
}

// ApproveDeposit applies an operator decision to a pending deposit claim.
func (h *Handler) ApproveDeposit(c *gin.Context) {
	var req ApproveDepositRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad request"})
		return
	}

	err := h.Deposits.Review(c.Request.Context(), req.Username, req.DepositID, service.DepositAction(req.Action))
	if err != nil {
		fail(c, err)
		return
	}

	middleware.DepositReviews.WithLabelValues(req.Action).Inc()
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Action effectuée avec succès !"})
}
