// Package store defines the capability-scoped persistence interfaces the
// rest of the service depends on, plus the Postgres and in-memory
// implementations.
package store

import (
	"context"
	"errors"
	"time"

	"gameforge/models"
)

var ErrNotFound = errors.New("not found")

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateTheme(ctx context.Context, id, theme string) error

	// IncrementChatCount adds one to the user's daily counter as a single
	// atomic update; concurrent chat requests must not lose increments.
	IncrementChatCount(ctx context.Context, id string) error

	// ResetChatWindow zeroes the counter and stamps the start of a new
	// rolling 24h window.
	ResetChatWindow(ctx context.Context, id string, now time.Time) error

	// UpgradeTier sets the subscription tier. Safe to call repeatedly.
	UpgradeTier(ctx context.Context, id, tier string) error
}

type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) error
	ProjectsByUser(ctx context.Context, userID string) ([]models.Project, error)

	// Project resolves a project only when it is owned by userID;
	// anything else is ErrNotFound so existence never leaks cross-owner.
	Project(ctx context.Context, id, userID string) (*models.Project, error)

	// DeleteProject removes an owned project and all of its messages.
	DeleteProject(ctx context.Context, id, userID string) error
}

type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) error

	// MessagesByProject returns the full history in creation order.
	MessagesByProject(ctx context.Context, projectID string) ([]models.Message, error)

	// RecentMessages returns at most limit of the newest messages, still
	// in chronological order, for building provider context.
	RecentMessages(ctx context.Context, projectID string, limit int) ([]models.Message, error)
}

type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *models.PaymentTransaction) error
	TransactionBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error)

	// MarkTransactionPaid flips the transaction to completed/paid unless it
	// already is. Returns true only for the caller that actually performed
	// the transition; both reconciliation paths share this check.
	MarkTransactionPaid(ctx context.Context, sessionID string) (bool, error)
}

type Store interface {
	UserStore
	ProjectStore
	MessageStore
	TransactionStore
}
