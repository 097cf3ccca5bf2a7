package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gameforge/models"
	"gameforge/store"

	"github.com/google/uuid"
)

var (
	ErrPayment     = errors.New("payment provider error")
	ErrInvalidPlan = errors.New("invalid plan")
)

// CheckoutParams is what the payment provider needs to open a session.
type CheckoutParams struct {
	UserID     string
	Email      string
	Plan       string
	PlanName   string
	Amount     float64
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the provider's handle for a started checkout.
type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

// SessionStatus is the provider's view of a checkout session. AmountTotal
// is in the provider's minor unit (cents).
type SessionStatus struct {
	Status        string
	PaymentStatus string
	AmountTotal   int64
	Currency      string
}

// WebhookEvent is a verified push notification from the provider.
type WebhookEvent struct {
	SessionID     string
	UserID        string
	PaymentStatus string
}

// PaymentProvider abstracts the remote payment service. ParseWebhook must
// reject payloads whose signature does not verify.
type PaymentProvider interface {
	CreateSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error)
	SessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error)
	ParseWebhook(payload []byte, sigHeader string) (*WebhookEvent, error)
}

// Payments reconciles local subscription state with the payment provider.
// The poll path and the webhook path converge on applyPaid, whose
// conditional transaction update makes the whole transition idempotent.
type Payments struct {
	store    store.Store
	provider PaymentProvider
	mailer   *ReceiptMailer
	timeout  time.Duration
	log      *slog.Logger
}

func NewPayments(st store.Store, provider PaymentProvider, mailer *ReceiptMailer, timeout time.Duration, log *slog.Logger) *Payments {
	return &Payments{store: st, provider: provider, mailer: mailer, timeout: timeout, log: log}
}

// Checkout opens a provider session for the plan and records a pending
// transaction keyed by the provider's session id.
func (p *Payments) Checkout(ctx context.Context, user *models.User, planID, originURL string) (*CheckoutSession, error) {
	plan, ok := SubscriptionPlans[planID]
	if !ok {
		return nil, ErrInvalidPlan
	}
	if p.provider == nil {
		return nil, fmt.Errorf("%w: provider not configured", ErrPayment)
	}

	session, err := p.provider.CreateSession(ctx, CheckoutParams{
		UserID:     user.ID,
		Email:      user.Email,
		Plan:       planID,
		PlanName:   plan.Name,
		Amount:     plan.Amount,
		SuccessURL: originURL + "/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  originURL + "/pricing",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayment, err)
	}

	txn := &models.PaymentTransaction{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		SessionID:     session.ID,
		Plan:          planID,
		Amount:        plan.Amount,
		Currency:      "usd",
		Status:        models.TxStatusPending,
		PaymentStatus: models.PaymentInitiated,
		CreatedAt:     time.Now().UTC(),
	}
	if err := p.store.CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	return session, nil
}

// Status polls the provider for a session and, when it reports paid,
// applies the upgrade transition. Re-polling an already-paid session is a
// no-op.
func (p *Payments) Status(ctx context.Context, sessionID string) (*SessionStatus, error) {
	if p.provider == nil {
		return nil, fmt.Errorf("%w: provider not configured", ErrPayment)
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status, err := p.provider.SessionStatus(cctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayment, err)
	}

	if status.PaymentStatus == models.PaymentPaid {
		if err := p.applyPaid(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	return status, nil
}

// HandleWebhook verifies and applies a provider push. It never returns an
// error: the provider only needs an acknowledgement, and surfacing
// failures would trigger retry storms. Everything is logged instead.
func (p *Payments) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) {
	if p.provider == nil {
		p.log.Error("webhook received but payment provider not configured")
		return
	}

	event, err := p.provider.ParseWebhook(payload, sigHeader)
	if err != nil {
		p.log.Error("webhook verification failed", "error", err)
		return
	}

	if event.PaymentStatus != models.PaymentPaid {
		return
	}

	if err := p.applyPaid(ctx, event.SessionID); err != nil {
		p.log.Error("webhook reconciliation failed",
			"session_id", event.SessionID, "user_id", event.UserID, "error", err)
	}
}

// applyPaid marks the transaction paid and upgrades its owner. Only the
// call that actually transitions the transaction performs the upgrade, so
// poll and webhook can race or repeat safely.
func (p *Payments) applyPaid(ctx context.Context, sessionID string) error {
	applied, err := p.store.MarkTransactionPaid(ctx, sessionID)
	if err != nil {
		return err
	}
	if !applied {
		return nil
	}

	txn, err := p.store.TransactionBySession(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := p.store.UpgradeTier(ctx, txn.UserID, models.TierPremium); err != nil {
		return err
	}
	p.log.Info("subscription upgraded", "user_id", txn.UserID, "plan", txn.Plan)

	if p.mailer != nil {
		if user, err := p.store.UserByID(ctx, txn.UserID); err == nil {
			go p.mailer.SendUpgradeReceipt(user, txn.Plan)
		}
	}
	return nil
}
