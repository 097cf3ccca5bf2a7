package handlers

import (
	"errors"
	"net/http"

	"gameforge/middleware"
	"gameforge/services"

	"github.com/gin-gonic/gin"
)

type CheckoutInput struct {
	Plan      string `json:"plan" binding:"required"`
	OriginURL string `json:"origin_url" binding:"required,url"`
}

func (h *Handlers) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, services.SubscriptionPlans)
}

func (h *Handlers) Checkout(c *gin.Context) {
	var input CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := middleware.CurrentUser(c)

	session, err := h.payments.Checkout(c.Request.Context(), user, input.Plan, input.OriginURL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPlan) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid plan"})
			return
		}
		h.log.Error("checkout failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment service error"})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *Handlers) PaymentStatus(c *gin.Context) {
	sessionID := c.Param("sessionId")

	status, err := h.payments.Status(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error("payment status check failed", "session_id", sessionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment status check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         status.Status,
		"payment_status": status.PaymentStatus,
		"amount_total":   float64(status.AmountTotal) / 100,
		"currency":       status.Currency,
	})
}
