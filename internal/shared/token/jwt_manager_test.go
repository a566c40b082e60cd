package token_test

import (
	"testing"
	"time"

	"github.com/nagoyameshi/go-api-server/internal/shared/testutil"
	"github.com/nagoyameshi/go-api-server/internal/shared/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	cfg := testutil.NewTestConfig()
	manager := token.NewJWTManager(cfg, token.NamespaceMember)

	access, err := manager.GenerateAccessToken("42", "member@example.com")
	require.NoError(t, err)
	refresh, err := manager.GenerateRefreshToken("42", "member@example.com")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.PrincipalID)
	assert.Equal(t, "member@example.com", claims.Email)
	assert.Equal(t, token.NamespaceMember, claims.Namespace)
	assert.Equal(t, token.ACCESS, claims.TokenType)
	assert.NotEmpty(t, claims.ID)

	refreshClaims, err := manager.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, token.REFRESH, refreshClaims.TokenType)
	assert.NotEqual(t, claims.ID, refreshClaims.ID)
	assert.True(t, refreshClaims.ExpiresAt.After(claims.ExpiresAt.Time))
}

func TestJWTManager_NamespacesDoNotCross(t *testing.T) {
	cfg := testutil.NewTestConfig()
	member := token.NewJWTManager(cfg, token.NamespaceMember)
	admin := token.NewJWTManager(cfg, token.NamespaceAdmin)

	adminToken, err := admin.GenerateAccessToken("1", "admin@example.com")
	require.NoError(t, err)

	_, err = member.ValidateToken(adminToken)
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	_, err = admin.ValidateToken(adminToken)
	assert.NoError(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	cfg := testutil.NewTestConfig()
	cfg.JWT.Expiry = -time.Minute
	manager := token.NewJWTManager(cfg, token.NamespaceMember)

	expired, err := manager.GenerateAccessToken("1", "member@example.com")
	require.NoError(t, err)

	_, err = manager.ValidateToken(expired)
	assert.ErrorIs(t, err, token.ErrExpiredToken)
}

func TestJWTManager_Garbage(t *testing.T) {
	manager := token.NewJWTManager(testutil.NewTestConfig(), token.NamespaceMember)

	_, err := manager.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
