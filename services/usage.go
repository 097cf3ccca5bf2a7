package services

import (
	"context"
	"errors"
	"time"

	"gameforge/models"
	"gameforge/store"
)

// DefaultChatLimit is the number of chat sends a free-tier user gets per
// rolling 24h window.
const DefaultChatLimit = 10

// DefaultChatWindow is the rolling quota window. It starts at the user's
// last reset, not at midnight.
const DefaultChatWindow = 24 * time.Hour

var ErrQuotaExceeded = errors.New("daily chat limit reached")

// Gate meters chat usage for free-tier users. Premium users always pass.
type Gate struct {
	users  store.UserStore
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewGate(users store.UserStore, limit int, window time.Duration) *Gate {
	return &Gate{users: users, limit: limit, window: window, now: time.Now}
}

// Admit decides whether the user may perform a gated chat action. When the
// window has lapsed the reset is persisted before evaluating, so a stale
// counter can never deny a user whose window already rolled over. Admit
// never increments; Commit does, and only after the action succeeded.
func (g *Gate) Admit(ctx context.Context, user *models.User) error {
	if user.IsPremium() {
		return nil
	}

	now := g.now().UTC()
	if now.Sub(user.LastChatReset) > g.window {
		if err := g.users.ResetChatWindow(ctx, user.ID, now); err != nil {
			return err
		}
		user.ChatCountToday = 0
		user.LastChatReset = now
	}

	if user.ChatCountToday >= g.limit {
		return ErrQuotaExceeded
	}
	return nil
}

// Commit charges one action against the user's quota. The increment is a
// single atomic update at the storage layer so concurrent requests for the
// same user cannot lose counts.
func (g *Gate) Commit(ctx context.Context, user *models.User) error {
	if user.IsPremium() {
		return nil
	}
	return g.users.IncrementChatCount(ctx, user.ID)
}
