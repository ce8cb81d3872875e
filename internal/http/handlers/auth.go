package handlers

import (
	"errors"
	"net/http"

	"arctic_mining/internal/service"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	ReferralCode string `json:"referralCode"`
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad request"})
		return
	}

	account, err := h.Accounts.Register(c.Request.Context(), req.Username, req.Password, req.ReferralCode)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Pseudo pris !"})
			return
		}
		if errors.Is(err, service.ErrBadCredentials) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad request"})
			return
		}
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "user": account})
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad request"})
		return
	}

	// Operator shortcut: the admin identity is not a stored account, it is
	// the static key pair from the environment.
	if req.Username == h.Cfg.AdminUsername && req.Password == h.Cfg.AdminKey {
		token, err := service.GenerateJWT(h.Cfg.AdminUsername)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"user":    gin.H{"username": h.Cfg.AdminUsername},
			"token":   token,
			"isAdmin": true,
		})
		return
	}

	account, err := h.Accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Erreur identifiants"})
			return
		}
		fail(c, err)
		return
	}

	token, err := service.GenerateJWT(account.Username)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": account, "token": token})
}
