package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"gameforge/models"
)

// Memory is a mutex-guarded in-process Store used by tests.
type Memory struct {
	mu           sync.Mutex
	users        map[string]*models.User
	projects     map[string]*models.Project
	messages     map[string][]models.Message           // keyed by project id
	transactions map[string]*models.PaymentTransaction // keyed by session id
}

func NewMemory() *Memory {
	return &Memory{
		users:        make(map[string]*models.User),
		projects:     make(map[string]*models.Project),
		messages:     make(map[string][]models.Message),
		transactions: make(map[string]*models.PaymentTransaction),
	}
}

func (s *Memory) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Memory) UserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Memory) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) UserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *Memory) UpdateTheme(_ context.Context, id, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Theme = theme
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Memory) IncrementChatCount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.ChatCountToday++
	return nil
}

func (s *Memory) ResetChatWindow(_ context.Context, id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.ChatCountToday = 0
	u.LastChatReset = now
	return nil
}

func (s *Memory) UpgradeTier(_ context.Context, id, tier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	u.SubscriptionTier = tier
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Memory) CreateProject(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.projects[p.ID] = &cp
	return nil
}

func (s *Memory) ProjectsByUser(_ context.Context, userID string) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	projects := []models.Project{}
	for _, p := range s.projects {
		if p.UserID == userID {
			projects = append(projects, *p)
		}
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
	return projects, nil
}

func (s *Memory) Project(_ context.Context, id, userID string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.UserID != userID {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Memory) DeleteProject(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.UserID != userID {
		return ErrNotFound
	}
	delete(s.projects, id)
	delete(s.messages, id)
	return nil
}

func (s *Memory) CreateMessage(_ context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[m.ProjectID] = append(s.messages[m.ProjectID], *m)
	return nil
}

func (s *Memory) MessagesByProject(_ context.Context, projectID string) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := append([]models.Message{}, s.messages[projectID]...)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

func (s *Memory) RecentMessages(ctx context.Context, projectID string, limit int) ([]models.Message, error) {
	msgs, err := s.MessagesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (s *Memory) CreateTransaction(_ context.Context, t *models.PaymentTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.transactions[t.SessionID] = &cp
	return nil
}

func (s *Memory) TransactionBySession(_ context.Context, sessionID string) (*models.PaymentTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *Memory) MarkTransactionPaid(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[sessionID]
	if !ok {
		return false, ErrNotFound
	}
	if t.PaymentStatus == models.PaymentPaid {
		return false, nil
	}
	t.Status = models.TxStatusCompleted
	t.PaymentStatus = models.PaymentPaid
	return true, nil
}
