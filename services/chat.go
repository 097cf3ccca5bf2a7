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

// SystemPrompt is prepended to every provider call. It is configuration,
// never persisted as a message.
const SystemPrompt = `You are GameForge AI, a specialized assistant for Roblox game development.
You help developers create Lua/Luau scripts, game mechanics, UI systems, and more.
When providing code, always use proper Lua syntax highlighting.
Be concise and helpful. Format code in markdown code blocks with 'lua' language tag.`

// HistoryWindow bounds how much conversation history is sent to the
// provider.
const HistoryWindow = 50

var (
	ErrProvider        = errors.New("chat provider error")
	ErrProviderTimeout = errors.New("chat provider timeout")
)

// ProviderMessage is one entry in the ordered context sent to the model.
type ProviderMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the external chat-completion capability. Complete returns
// the assistant's reply text for the given ordered message list.
type Provider interface {
	Complete(ctx context.Context, model string, msgs []ProviderMessage) (string, error)
}

// Chat orchestrates a single send: ownership check, quota gate, durable
// user message, bounded history, provider call, assistant message, quota
// commit.
type Chat struct {
	store    store.Store
	gate     *Gate
	provider Provider
	timeout  time.Duration
	log      *slog.Logger
	now      func() time.Time
}

func NewChat(st store.Store, gate *Gate, provider Provider, timeout time.Duration, log *slog.Logger) *Chat {
	return &Chat{
		store:    st,
		gate:     gate,
		provider: provider,
		timeout:  timeout,
		log:      log,
		now:      time.Now,
	}
}

// Send runs one chat exchange. The user message is stored before the
// provider is invoked, so it survives provider failure; the assistant
// message and the usage charge land only on success.
func (s *Chat) Send(ctx context.Context, user *models.User, projectID, content, model string) (*models.Message, *models.Message, error) {
	if _, err := s.store.Project(ctx, projectID, user.ID); err != nil {
		return nil, nil, err
	}

	if err := s.gate.Admit(ctx, user); err != nil {
		return nil, nil, err
	}

	userMsg := &models.Message{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Role:      models.RoleUser,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateMessage(ctx, userMsg); err != nil {
		return nil, nil, err
	}

	history, err := s.store.RecentMessages(ctx, projectID, HistoryWindow)
	if err != nil {
		return nil, nil, err
	}

	msgs := make([]ProviderMessage, 0, len(history)+1)
	msgs = append(msgs, ProviderMessage{Role: models.RoleSystem, Content: SystemPrompt})
	for _, m := range history {
		msgs = append(msgs, ProviderMessage{Role: m.Role, Content: m.Content})
	}

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.provider.Complete(cctx, model, msgs)
	if err != nil {
		// no assistant message, no usage charge
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrProviderTimeout) {
			return nil, nil, fmt.Errorf("%w: %v", ErrProviderTimeout, err)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	aiMsg := &models.Message{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Role:      models.RoleAssistant,
		Content:   reply,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateMessage(ctx, aiMsg); err != nil {
		return nil, nil, err
	}

	if err := s.gate.Commit(ctx, user); err != nil {
		// the exchange already completed, so the reply is still returned
		s.log.Error("usage commit failed", "user_id", user.ID, "error", err)
	}

	return userMsg, aiMsg, nil
}
