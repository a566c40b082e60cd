package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/session"
	"github.com/nagoyameshi/go-api-server/internal/shared/token"
	"golang.org/x/crypto/bcrypt"
)

// Sessions issues, rotates and revokes the token pairs of one namespace.
type Sessions struct {
	tokenManager token.Manager
	revoker      session.Revoker
}

func NewSessions(tokenManager token.Manager, revoker session.Revoker) *Sessions {
	return &Sessions{
		tokenManager: tokenManager,
		revoker:      revoker,
	}
}

func (s *Sessions) Namespace() token.Namespace {
	return s.tokenManager.Namespace()
}

// Issue signs a new access/refresh pair for principalID.
func (s *Sessions) Issue(ctx context.Context, principalID uint32, email string) (*TokenResponse, error) {
	log := logger.FromContext(ctx)
	id := strconv.FormatUint(uint64(principalID), 10)

	accessToken, err := s.tokenManager.GenerateAccessToken(id, email)
	if err != nil {
		log.Error("access token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.tokenManager.GenerateRefreshToken(id, email)
	if err != nil {
		log.Error("refresh token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, nil
}

// Refresh trades a refresh token for a new pair. The old refresh token is
// revoked so it can be used only once.
func (s *Sessions) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	log := logger.FromContext(ctx)

	claims, err := s.validateRefresh(ctx, refreshToken)
	if err != nil {
		log.Warn("refresh 실패", "namespace", s.Namespace(), "error", err)
		return nil, err
	}

	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	id, err := strconv.ParseUint(claims.PrincipalID, 10, 32)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("principal id %q: %w", claims.PrincipalID, ErrInvalidRefreshToken)
	}
	return s.Issue(ctx, uint32(id), claims.Email)
}

// Logout revokes the access token of principal and, when given, the refresh
// token that belongs to the same principal.
func (s *Sessions) Logout(ctx context.Context, principal sharedContext.Principal, refreshToken string) error {
	log := logger.FromContext(ctx)

	if principal.TokenID != "" {
		if err := s.revoker.Revoke(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
			return fmt.Errorf("revoke access token: %w", err)
		}
	}

	if refreshToken != "" {
		claims, err := s.validateRefresh(ctx, refreshToken)
		switch {
		case err != nil:
			log.Warn("logout - refresh token 무시", "error", err)
		case claims.PrincipalID != strconv.FormatUint(uint64(principal.ID), 10):
			log.Warn("logout - refresh token principal mismatch", "principal_id", principal.ID)
		default:
			if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
				return fmt.Errorf("revoke refresh token: %w", err)
			}
		}
	}

	log.Info("로그아웃", "namespace", s.Namespace(), "principal_id", principal.ID)
	return nil
}

func (s *Sessions) validateRefresh(ctx context.Context, refreshToken string) (*token.Claims, error) {
	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRefreshToken, err)
	}
	if claims.TokenType != token.REFRESH || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("token type %q: %w", claims.TokenType, ErrInvalidRefreshToken)
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("refresh token reused: %w", ErrInvalidRefreshToken)
	}
	return claims, nil
}

// CheckPassword compares a bcrypt hash with a plain password.
func CheckPassword(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("error %w", ErrInCorrectEmailPassword)
		}
		return fmt.Errorf("compare password: %w", err)
	}
	return nil
}
