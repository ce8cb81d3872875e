package http

import (
	"time"

	"arctic_mining/internal/config"
	"arctic_mining/internal/http/handlers"
	"arctic_mining/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db, cfg)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Public
	api.GET("/products", h.Products)
	api.POST("/register", middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow), h.Register)
	api.POST("/login", middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow), h.Login)

	// Player surface (token identity)
	api.GET("/ranking", middleware.JWT(), h.Ranking)
	api.GET("/user/:username", middleware.JWT(), h.Profile)
	api.POST("/buy", middleware.JWT(), h.Buy)
	api.POST("/harvest", middleware.JWT(), h.Harvest)
	api.POST("/deposit", middleware.JWT(), h.Deposit)
	api.POST("/withdraw", middleware.JWT(), h.Withdraw)
	api.POST("/update-profile", middleware.JWT(), h.UpdateProfile)

	// Operator surface (static shared key, separate from player tokens)
	api.POST("/admin/login", h.AdminLogin)
	admin := api.Group("/admin")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/users", h.AdminUsers)
		admin.POST("/action", h.AdminAction)
		admin.POST("/approve-deposit", h.ApproveDeposit)
	}
}
