package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouter calls the OpenRouter chat-completion endpoint. Cancellation
// and the request deadline come from the caller's context.
type OpenRouter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOpenRouter(apiKey string) *OpenRouter {
	return &OpenRouter{
		apiKey:  apiKey,
		baseURL: openRouterURL,
		client:  &http.Client{},
	}
}

type completionRequest struct {
	Model    string            `json:"model"`
	Messages []ProviderMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (o *OpenRouter) Complete(ctx context.Context, model string, msgs []ProviderMessage) (string, error) {
	body, err := json.Marshal(completionRequest{Model: model, Messages: msgs})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", "https://gameforge.dev")
	req.Header.Set("X-Title", "GameForge AI")

	resp, err := o.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", ErrProviderTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ErrProvider, resp.StatusCode, text)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrProvider)
	}
	return out.Choices[0].Message.Content, nil
}
