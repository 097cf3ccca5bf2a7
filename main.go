package main

import (
	"log"
	"log/slog"
	"os"

	"gameforge/auth"
	"gameforge/config"
	"gameforge/db"
	"gameforge/handlers"
	"gameforge/middleware"
	"gameforge/services"
	"gameforge/store"

	"github.com/gin-gonic/gin"
)

func runMigrations() {
	sqlBytes, err := os.ReadFile("schema.sql")
	if err != nil {
		log.Fatal("Failed to read schema.sql:", err)
	}

	if _, err := db.GetDB().Exec(string(sqlBytes)); err != nil {
		log.Fatal("Failed to apply schema:", err)
	}
	log.Println("Database schema verified")
}

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := db.InitDB(cfg.DatabaseURL); err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	runMigrations()

	st := store.NewPostgres(db.GetDB())
	tokens := auth.NewManager([]byte(cfg.JWTSecret), config.TokenTTL)
	gate := services.NewGate(st, services.DefaultChatLimit, services.DefaultChatWindow)
	provider := services.NewOpenRouter(cfg.OpenRouterAPIKey)
	chat := services.NewChat(st, gate, provider, config.ChatTimeout, logger)
	mailer := services.NewReceiptMailer(cfg.SendgridAPIKey, os.Getenv("RECEIPT_FROM_EMAIL"), logger)

	stripeProvider, err := services.NewStripeProvider(cfg.StripeAPIKey, cfg.StripeWebhookSecret)
	var payments *services.Payments
	if err != nil {
		logger.Warn("stripe not configured, payments disabled", "error", err)
		payments = services.NewPayments(st, nil, mailer, config.PaymentTimeout, logger)
	} else {
		payments = services.NewPayments(st, stripeProvider, mailer, config.PaymentTimeout, logger)
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))

	h := handlers.New(st, tokens, chat, payments, logger)
	h.Register(r)

	logger.Info("server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed: ", err)
	}
}
