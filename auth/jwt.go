// Package auth issues and verifies the stateless session tokens that
// carry a user's identity claims.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired means the token was well formed but past its exp.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed covers bad signatures, wrong algorithms, and
	// anything else that is not a clean expiry.
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the signed claim set embedded in every session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Manager signs and verifies HS256 session tokens with a fixed lifetime.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

func (m *Manager) Issue(userID, email string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
		UserID: userID,
		Email:  email,
	})
	return token.SignedString(m.secret)
}

// Verify parses and validates a token, distinguishing expiry from every
// other failure so the caller can log the difference while reporting a
// uniform "not authenticated" outward.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
