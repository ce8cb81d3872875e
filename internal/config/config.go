package config

import (
	"os"
	"strconv"
	"strings"

	"arctic_mining/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Operator access: a static shared key, distinct from player tokens.
	AdminUsername string
	AdminKey      string

	// Deposit notifications (Discord-compatible webhook), optional.
	WebhookURL string

	// Operator Telegram bot, optional.
	AdminBotEnabled bool
	AdminBotToken   string
	AdminChatIDs    []int64 // comma-separated in env

	// Redis rate limiter, optional (limiter is fail-open when unset).
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit   int
	APIRateWindow  int // seconds
	AuthRateLimit  int
	AuthRateWindow int // seconds

	LogLevel string
	LogJSON  bool
}

func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	adminUsername := os.Getenv("ADMIN_USERNAME")
	if adminUsername == "" {
		adminUsername = "Admin"
	}

	adminKey := os.Getenv("ADMIN_KEY")
	if adminKey == "" {
		logger.Fatal("ADMIN_KEY is not set")
	}

	var adminChatIDs []int64
	if raw := os.Getenv("ADMIN_CHAT_IDS"); raw != "" {
		for _, idStr := range strings.Split(raw, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64); err == nil {
				adminChatIDs = append(adminChatIDs, id)
			}
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:         port,
		DatabaseURL:     dbURL,
		JWTSecret:       jwtSecret,
		AdminUsername:   adminUsername,
		AdminKey:        adminKey,
		WebhookURL:      os.Getenv("DISCORD_WEBHOOK"),
		AdminBotEnabled: os.Getenv("ADMIN_BOT_ENABLED") == "true",
		AdminBotToken:   os.Getenv("ADMIN_BOT_TOKEN"),
		AdminChatIDs:    adminChatIDs,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		APIRateLimit:    envInt("API_RATE_LIMIT", 60),
		APIRateWindow:   envInt("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:   envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:  envInt("AUTH_RATE_WINDOW_SECONDS", 60),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogJSON:         os.Getenv("LOG_JSON") == "true",
	}
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
