package config

import (
	"os"
	"strings"
	"time"
)

const (
	// TokenTTL is the lifetime of an issued session token.
	TokenTTL = 24 * time.Hour

	// ChatTimeout bounds a single call to the chat-completion provider.
	ChatTimeout = 60 * time.Second

	// PaymentTimeout bounds payment-provider status checks.
	PaymentTimeout = 15 * time.Second
)

type Config struct {
	Port                string
	DatabaseURL         string
	JWTSecret           string
	OpenRouterAPIKey    string
	StripeAPIKey        string
	StripeWebhookSecret string
	SendgridAPIKey      string
	CORSOrigins         []string
}

func Load() *Config {
	return &Config{
		Port:                getenv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           getenv("JWT_SECRET", "gameforge-dev-secret"),
		OpenRouterAPIKey:    os.Getenv("OPENROUTER_API_KEY"),
		StripeAPIKey:        os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SendgridAPIKey:      os.Getenv("SENDGRID_API_KEY"),
		CORSOrigins:         strings.Split(getenv("CORS_ORIGINS", "*"), ","),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
