package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gameforge/auth"
	"gameforge/models"
	"gameforge/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *store.Memory, *auth.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemory()
	mgr := auth.NewManager([]byte("test-secret"), time.Hour)

	r := gin.New()
	r.GET("/whoami", AuthRequired(st, mgr, slog.New(slog.NewTextHandler(io.Discard, nil))), func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentUser(c))
	})
	return r, st, mgr
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_SeesLiveRecord(t *testing.T) {
	t.Parallel()

	r, st, mgr := newAuthRouter(t)
	ctx := context.Background()

	user := &models.User{ID: "u1", Email: "a@x.com", Username: "alice", SubscriptionTier: models.TierFree}
	require.NoError(t, st.CreateUser(ctx, user))

	token, err := mgr.Issue("u1", "a@x.com")
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"subscription_tier":"free"`)

	// a tier change between requests is visible on the very next call,
	// with the same token
	require.NoError(t, st.UpgradeTier(ctx, "u1", models.TierPremium))
	w = get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"subscription_tier":"premium"`)
}

func TestAuthRequired_Rejections(t *testing.T) {
	t.Parallel()

	r, _, mgr := newAuthRouter(t)

	// no header
	require.Equal(t, http.StatusUnauthorized, get(r, "").Code)

	// wrong scheme
	require.Equal(t, http.StatusUnauthorized, get(r, "Basic abc").Code)

	// unparseable token
	require.Equal(t, http.StatusUnauthorized, get(r, "Bearer junk").Code)

	// valid token, user gone
	token, err := mgr.Issue("ghost", "ghost@x.com")
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token).Code)
}
