package services

import (
	"fmt"
	"log/slog"

	"gameforge/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ReceiptMailer sends a best-effort receipt email when a subscription
// upgrade lands. The database is the source of truth; email failures are
// logged and dropped.
type ReceiptMailer struct {
	apiKey    string
	fromEmail string
	log       *slog.Logger
}

func NewReceiptMailer(apiKey, fromEmail string, log *slog.Logger) *ReceiptMailer {
	return &ReceiptMailer{apiKey: apiKey, fromEmail: fromEmail, log: log}
}

func (m *ReceiptMailer) SendUpgradeReceipt(user *models.User, planID string) {
	if m.apiKey == "" || m.fromEmail == "" {
		m.log.Debug("sendgrid not configured, skipping receipt email")
		return
	}

	plan, ok := SubscriptionPlans[planID]
	if !ok {
		return
	}

	subject := fmt.Sprintf("Welcome to %s", plan.Name)
	body := fmt.Sprintf(`Hi %s,

Your upgrade to %s ($%.2f) is active. Chat limits no longer apply to your account.

Thanks for supporting GameForge.`,
		user.Username, plan.Name, plan.Amount)

	from := mail.NewEmail("GameForge", m.fromEmail)
	to := mail.NewEmail(user.Username, user.Email)
	message := mail.NewSingleEmail(from, subject, to, body, body)
	client := sendgrid.NewSendClient(m.apiKey)

	response, err := client.Send(message)
	if err != nil {
		m.log.Error("receipt email failed", "user_id", user.ID, "error", err)
		return
	}
	m.log.Info("receipt email sent", "user_id", user.ID, "status", response.StatusCode)
}
