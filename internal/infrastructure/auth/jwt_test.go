package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/shared/authorization"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	token, expiresAt, err := svc.GenerateAccessToken(42, authorization.RoleApprover)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, authorization.RoleApprover, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestJWTService_RefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	token, err := svc.GenerateRefreshToken(42)
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWTService_TokenTypeIsEnforced(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	refresh, err := svc.GenerateRefreshToken(42)
	require.NoError(t, err)
	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)

	access, _, err := svc.GenerateAccessToken(42, authorization.RoleAdmin)
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService("secret-a", 15, 7)
	verifier := NewJWTService("secret-b", 15, 7)

	token, _, err := issuer.GenerateAccessToken(42, authorization.RoleRequester)
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	hasher := NewBcryptPasswordHasher(4)

	hash, err := hasher.Hash("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, hasher.Compare(hash, "hunter22"))
	assert.Error(t, hasher.Compare(hash, "hunter23"))
	assert.Error(t, hasher.Compare("not-a-hash", "hunter22"))
}
