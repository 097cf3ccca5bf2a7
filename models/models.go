package models

import (
	"time"
)

const (
	TierFree    = "free"
	TierPremium = "premium"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ValidThemes is the set of display themes a user can select.
var ValidThemes = map[string]bool{
	"light":  true,
	"dark":   true,
	"gray":   true,
	"system": true,
}

type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	Theme            string    `json:"theme"`
	SubscriptionTier string    `json:"subscription_tier"`
	ChatCountToday   int       `json:"-"`
	LastChatReset    time.Time `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"-"`
}

func (u *User) IsPremium() bool {
	return u.SubscriptionTier == TierPremium
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProjectType string    `json:"project_type"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Message struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentTransaction records one checkout attempt. Status moves
// pending→completed and PaymentStatus initiated→paid, each at most once.
type PaymentTransaction struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	SessionID     string    `json:"session_id"`
	Plan          string    `json:"plan"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	TxStatusPending   = "pending"
	TxStatusCompleted = "completed"

	PaymentInitiated = "initiated"
	PaymentPaid      = "paid"
)
