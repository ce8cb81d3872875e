package handlers

import (
	"net/http"

	"arctic_mining/internal/domain"
	"arctic_mining/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// Products returns the static equipment catalog.
func (h *Handler) Products(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Products)
}

// Profile returns any account's full view: record, derived VIP status,
// projected daily yield and referral earnings. Reading other profiles is
// allowed; mutations always use the token identity.
func (h *Handler) Profile(c *gin.Context) {
	username := c.Param("username")

	profile, err := h.Accounts.GetProfile(c.Request.Context(), username)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"user":       profile.Account,
		"vipStatus":  profile.VIPStatus,
		"totalDaily": profile.TotalDaily,
		"referrals":  profile.Referrals,
	})
}

// Ranking lists every player with balance and derived VIP level.
func (h *Handler) Ranking(c *gin.Context) {
	entries, err := h.Accounts.Ranking(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ranking": entries})
}

type UpdateProfileRequest struct {
	AvatarURL string `json:"avatarUrl"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	username, ok := middleware.Username(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bad request"})
		return
	}

	if err := h.Accounts.UpdateAvatar(c.Request.Context(), username, req.AvatarURL); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profil mis à jour !"})
}
