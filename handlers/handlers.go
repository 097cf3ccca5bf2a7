// Package handlers wires the HTTP surface: every route, its input
// validation, and the mapping from domain errors to status codes.
package handlers

import (
	"log/slog"

	"gameforge/auth"
	"gameforge/middleware"
	"gameforge/services"
	"gameforge/store"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

type Handlers struct {
	store    store.Store
	auth     *auth.Manager
	chat     *services.Chat
	payments *services.Payments
	log      *slog.Logger
}

func New(st store.Store, mgr *auth.Manager, chat *services.Chat, payments *services.Payments, log *slog.Logger) *Handlers {
	return &Handlers{store: st, auth: mgr, chat: chat, payments: payments, log: log}
}

// Register mounts all routes under /api.
func (h *Handlers) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/", h.Root)
	api.GET("/health", h.Health)
	api.GET("/subscription/plans", h.Plans)

	api.POST("/auth/register", h.RegisterUser)
	api.POST("/auth/login", h.Login)

	// webhook authenticates via provider signature, not bearer token
	api.POST("/webhook/stripe", h.StripeWebhook)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(h.store, h.auth, h.log))
	{
		authed.GET("/auth/me", h.Me)
		authed.PUT("/auth/theme", h.UpdateTheme)

		authed.POST("/projects", h.CreateProject)
		authed.GET("/projects", h.ListProjects)
		authed.GET("/projects/:id", h.GetProject)
		authed.DELETE("/projects/:id", h.DeleteProject)

		authed.GET("/messages/:projectId", h.ListMessages)
		authed.POST("/chat", h.Chat)

		authed.POST("/payments/checkout", h.Checkout)
		authed.GET("/payments/status/:sessionId", h.PaymentStatus)

		authed.GET("/plugin/status", h.PluginStatus)
	}
}
