package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("super-secret"), time.Hour)

	tok, err := m.Issue("user-123", "a@x.com")
	require.NoError(t, err)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, "a@x.com", claims.Email)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("secret"), -1*time.Second)

	tok, err := m.Issue("u1", "u1@x.com")
	require.NoError(t, err)

	_, err = m.Verify(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewManager([]byte("right-secret"), time.Hour)
	verifier := NewManager([]byte("wrong-secret"), time.Hour)

	tok, err := issuer.Issue("u2", "u2@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("secret"), time.Hour)
	tok, err := m.Issue("u3", "u3@x.com")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = m.Verify(tampered)
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerify_Garbage(t *testing.T) {
	t.Parallel()

	m := NewManager([]byte("k"), time.Hour)
	_, err := m.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrTokenMalformed)
}
