package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
	"github.com/stripe/stripe-go/v72/webhook"
)

// StripeProvider implements PaymentProvider on the Stripe checkout API.
type StripeProvider struct {
	client        *client.API
	webhookSecret string
}

func NewStripeProvider(apiKey, webhookSecret string) (*StripeProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("stripe API key is required")
	}

	api := &client.API{}
	api.Init(apiKey, nil)

	return &StripeProvider{client: api, webhookSecret: webhookSecret}, nil
}

func (s *StripeProvider) CreateSession(ctx context.Context, p CheckoutParams) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(p.SuccessURL),
		CancelURL:          stripe.String(p.CancelURL),
		CustomerEmail:      stripe.String(p.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("usd"),
				UnitAmount: stripe.Int64(int64(p.Amount * 100)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(p.PlanName),
				},
			},
		}},
	}
	params.Context = ctx
	params.AddMetadata("user_id", p.UserID)
	params.AddMetadata("plan", p.Plan)
	params.AddMetadata("email", p.Email)

	sess, err := s.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, err
	}
	return &CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}

func (s *StripeProvider) SessionStatus(ctx context.Context, sessionID string) (*SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := s.client.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, err
	}
	return &SessionStatus{
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
	}, nil
}

func (s *StripeProvider) ParseWebhook(payload []byte, sigHeader string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.webhookSecret)
	if err != nil {
		return nil, err
	}

	if event.Type != "checkout.session.completed" {
		// verified but irrelevant; report as non-paid so callers skip it
		return &WebhookEvent{}, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, err
	}

	return &WebhookEvent{
		SessionID:     sess.ID,
		UserID:        sess.Metadata["user_id"],
		PaymentStatus: string(sess.PaymentStatus),
	}, nil
}
