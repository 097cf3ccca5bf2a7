package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gameforge/auth"
	"gameforge/models"
	"gameforge/store"

	"github.com/gin-gonic/gin"
)

const userKey = "user"

// AuthRequired verifies the bearer token, then resolves the embedded user
// id against the live user store. Downstream handlers see the current
// record, not a snapshot captured at login; tier and usage counters must
// be fresh on every gated request.
func AuthRequired(users store.UserStore, mgr *auth.Manager, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthenticated(c)
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := mgr.Verify(tokenString)
		if err != nil {
			// expired vs malformed stays internal; the response is uniform
			if errors.Is(err, auth.ErrTokenExpired) {
				log.Debug("rejected expired token", "path", c.FullPath())
			} else {
				log.Warn("rejected malformed token", "path", c.FullPath())
			}
			abortUnauthenticated(c)
			return
		}

		user, err := users.UserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Error("user lookup failed", "error", err)
			}
			abortUnauthenticated(c)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed by AuthRequired.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(userKey).(*models.User)
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
}
