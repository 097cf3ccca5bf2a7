package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StripeWebhook accepts provider push notifications. It always
// acknowledges with 200; returning an error would only trigger provider
// retries. Failures are logged inside the payments service.
func (h *Handlers) StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.Error("webhook body read failed", "error", err)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	h.payments.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))

	c.JSON(http.StatusOK, gin.H{"received": true})
}
