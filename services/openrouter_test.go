package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestOpenRouter_Complete_Success(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "hello there"}},
			},
		})
	}))
	defer srv.Close()

	o := NewOpenRouter("test-key")
	o.baseURL = srv.URL

	reply, err := o.Complete(context.Background(), "some-model", []ProviderMessage{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	require.Equal(t, "hello there", reply)
	require.Equal(t, "Bearer test-key", gotAuth)
	require.Equal(t, "some-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
}

func TestOpenRouter_Complete_UpstreamError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	o := NewOpenRouter("test-key")
	o.baseURL = srv.URL

	_, err := o.Complete(context.Background(), "m", nil)
	require.ErrorIs(t, err, ErrProvider)
}

func TestOpenRouter_Complete_Timeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	o := NewOpenRouter("test-key")
	o.baseURL = srv.URL

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := o.Complete(ctx, "m", nil)
	require.ErrorIs(t, err, ErrProviderTimeout)
}

func TestOpenRouter_Complete_EmptyChoices(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	o := NewOpenRouter("test-key")
	o.baseURL = srv.URL

	_, err := o.Complete(context.Background(), "m", nil)
	require.ErrorIs(t, err, ErrProvider)
}
