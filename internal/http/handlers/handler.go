package handlers

import (
	"errors"
	"net/http"

	"arctic_mining/internal/config"
	"arctic_mining/internal/notify"
	"arctic_mining/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	Cfg      *config.Config
	Accounts *service.AccountService
	Economy  *service.EconomyService
	Deposits *service.DepositService
	Admin    *service.AdminService
}

func NewHandler(db *pgxpool.Pool, cfg *config.Config) *Handler {
	var notifier notify.Notifier = notify.Nop{}
	if cfg.WebhookURL != "" {
		notifier = notify.NewWebhook(cfg.WebhookURL)
	}

	return &Handler{
		DB:       db,
		Cfg:      cfg,
		Accounts: service.NewAccountService(db),
		Economy:  service.NewEconomyService(db),
		Deposits: service.NewDepositService(db, notifier),
		Admin:    service.NewAdminService(db),
	}
}

// fail maps service errors onto the response taxonomy: not-found and
// declined outcomes get specific statuses, everything else is a generic
// server failure that never leaks internals.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrDepositNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrAlreadyProcessed):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, service.ErrBelowMinimum),
		errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
	}
}
