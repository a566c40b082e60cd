package testutil

import (
	"strconv"
	"testing"

	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/shared/token"
)

// MockTokenManager is a mock implementation of token.Manager for testing
type MockTokenManager struct {
	NamespaceValue           token.Namespace
	GenerateAccessTokenFunc  func(principalID, email string) (string, error)
	GenerateRefreshTokenFunc func(principalID, email string) (string, error)
	ValidateTokenFunc        func(tokenString string) (*token.Claims, error)
}

func (m *MockTokenManager) Namespace() token.Namespace {
	if m.NamespaceValue == "" {
		return token.NamespaceMember
	}
	return m.NamespaceValue
}

func (m *MockTokenManager) GenerateAccessToken(principalID, email string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(principalID, email)
	}
	return "mock-access-token", nil
}

func (m *MockTokenManager) GenerateRefreshToken(principalID, email string) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(principalID, email)
	}
	return "mock-refresh-token", nil
}

func (m *MockTokenManager) ValidateToken(tokenString string) (*token.Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return nil, token.ErrInvalidToken
}

// Ensure MockTokenManager implements token.Manager
var _ token.Manager = (*MockTokenManager)(nil)

// NewMockTokenManager creates a new mock token manager with default behavior
func NewMockTokenManager() *MockTokenManager {
	return &MockTokenManager{}
}

// MemberToken issues a real access token for a member id.
func MemberToken(t *testing.T, cfg *config.Config, memberID uint32, email string) string {
	t.Helper()
	return issue(t, token.NewJWTManager(cfg, token.NamespaceMember), memberID, email)
}

// AdminToken issues a real access token for an admin id.
func AdminToken(t *testing.T, cfg *config.Config, adminID uint32, email string) string {
	t.Helper()
	return issue(t, token.NewJWTManager(cfg, token.NamespaceAdmin), adminID, email)
}

func issue(t *testing.T, m token.Manager, id uint32, email string) string {
	t.Helper()
	tok, err := m.GenerateAccessToken(strconv.FormatUint(uint64(id), 10), email)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return tok
}
