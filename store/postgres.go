package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gameforge/models"
)

type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, username, password_hash, theme, subscription_tier, chat_count_today, last_chat_reset, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, u.ID, u.Email, u.Username, u.PasswordHash, u.Theme, u.SubscriptionTier,
		u.ChatCountToday, u.LastChatReset, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

const userColumns = `id, email, username, password_hash, theme, subscription_tier, chat_count_today, last_chat_reset, created_at, updated_at`

func (s *Postgres) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Theme,
		&u.SubscriptionTier, &u.ChatCountToday, &u.LastChatReset, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (s *Postgres) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Postgres) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *Postgres) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (s *Postgres) UpdateTheme(ctx context.Context, id, theme string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET theme = $1, updated_at = NOW() WHERE id = $2`, theme, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) IncrementChatCount(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET chat_count_today = chat_count_today + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) ResetChatWindow(ctx context.Context, id string, now time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET chat_count_today = 0, last_chat_reset = $1, updated_at = NOW() WHERE id = $2`, now, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) UpgradeTier(ctx context.Context, id, tier string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET subscription_tier = $1, updated_at = NOW() WHERE id = $2`, tier, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) CreateProject(ctx context.Context, p *models.Project) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, project_type, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Name, p.ProjectType, p.UserID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Postgres) ProjectsByUser(ctx context.Context, userID string) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, project_type, user_id, created_at, updated_at
		FROM projects WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.ProjectType, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Postgres) Project(ctx context.Context, id, userID string) (*models.Project, error) {
	p := &models.Project{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, project_type, user_id, created_at, updated_at
		FROM projects WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&p.ID, &p.Name, &p.ProjectType, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (s *Postgres) DeleteProject(ctx context.Context, id, userID string) error {
	// messages go with the project via ON DELETE CASCADE
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) CreateMessage(ctx context.Context, m *models.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, project_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.ProjectID, m.Role, m.Content, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Postgres) MessagesByProject(ctx context.Context, projectID string) ([]models.Message, error) {
	return s.queryMessages(ctx, `
		SELECT id, project_id, role, content, created_at
		FROM messages WHERE project_id = $1
		ORDER BY created_at ASC
	`, projectID)
}

func (s *Postgres) RecentMessages(ctx context.Context, projectID string, limit int) ([]models.Message, error) {
	// newest N, flipped back to chronological order
	msgs, err := s.queryMessages(ctx, `
		SELECT id, project_id, role, content, created_at FROM (
			SELECT id, project_id, role, content, created_at
			FROM messages WHERE project_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent ORDER BY created_at ASC
	`, projectID, limit)
	return msgs, err
}

func (s *Postgres) queryMessages(ctx context.Context, query string, args ...any) ([]models.Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	msgs := []models.Message{}
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (s *Postgres) CreateTransaction(ctx context.Context, t *models.PaymentTransaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payment_transactions (id, user_id, session_id, plan, amount, currency, status, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, t.ID, t.UserID, t.SessionID, t.Plan, t.Amount, t.Currency, t.Status, t.PaymentStatus, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Postgres) TransactionBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	t := &models.PaymentTransaction{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_id, plan, amount, currency, status, payment_status, created_at
		FROM payment_transactions WHERE session_id = $1
	`, sessionID).Scan(&t.ID, &t.UserID, &t.SessionID, &t.Plan, &t.Amount, &t.Currency,
		&t.Status, &t.PaymentStatus, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}

func (s *Postgres) MarkTransactionPaid(ctx context.Context, sessionID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET status = $1, payment_status = $2
		WHERE session_id = $3 AND payment_status <> $2
	`, models.TxStatusCompleted, models.PaymentPaid, sessionID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
