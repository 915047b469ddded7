package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jawafdehi/jawaf/internal/domain"
)

func signToken(t *testing.T, secret, subject, role string) string {
	t.Helper()
	claims := ActorClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestResolveActor(t *testing.T) {
	auth := NewAuthService("test-secret")

	actor, err := auth.ResolveActor(signToken(t, "test-secret", "u-1", "MODERATOR"))
	require.NoError(t, err)
	assert.Equal(t, "u-1", actor.ID)
	assert.Equal(t, domain.RoleModerator, actor.Role)
}

func TestResolveActorRejectsBadTokens(t *testing.T) {
	auth := NewAuthService("test-secret")

	_, err := auth.ResolveActor(signToken(t, "wrong-secret", "u-1", "ADMIN"))
	assert.Error(t, err, "wrong signing key")

	_, err = auth.ResolveActor(signToken(t, "test-secret", "", "ADMIN"))
	assert.Error(t, err, "missing subject")

	_, err = auth.ResolveActor(signToken(t, "test-secret", "u-1", "SUPERUSER"))
	assert.Error(t, err, "unknown role")

	_, err = auth.ResolveActor("not-a-token")
	assert.Error(t, err)
}

func TestResolveActorRejectsExpired(t *testing.T) {
	auth := NewAuthService("test-secret")

	claims := ActorClaims{
		Role: "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.ResolveActor(token)
	assert.Error(t, err)
}
