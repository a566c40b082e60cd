package middleware

import (
	"errors"
	"strconv"
	"strings"

	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"github.com/nagoyameshi/go-api-server/internal/shared/session"
	"github.com/nagoyameshi/go-api-server/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

var (
	errMissingToken = errors.New("missing token")
	errMalformed    = errors.New("malformed authorization header")
	errWrongType    = errors.New("not an access token")
	errRevoked      = errors.New("token revoked")
)

// Authenticate resolves the bearer token into a Principal and stores it on the
// context. It never rejects a request: a missing or bad token leaves the request
// as a guest and the access guards decide what that means for the route.
//
// managers are tried in order; the first namespace that verifies the token wins.
func Authenticate(revoker session.Revoker, managers ...token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := extractToken(c)
		if err != nil {
			if !errors.Is(err, errMissingToken) {
				logger.FromContext(c.Request.Context()).Warn("JWT 토큰 추출 실패",
					"step", "extract_token",
					"error", err.Error(),
					"path", c.Request.URL.Path,
				)
			}
			c.Next()
			return
		}

		principal, err := resolvePrincipal(c, raw, revoker, managers)
		if err != nil {
			logger.FromContext(c.Request.Context()).Warn("JWT 토큰 검증 실패",
				"step", "validate_token",
				"error", err.Error(),
				"path", c.Request.URL.Path,
			)
			c.Next()
			return
		}

		sharedContext.SetPrincipal(c, principal)
		c.Request = c.Request.WithContext(logger.With(c.Request.Context(),
			"principal", principal.Kind.String(),
			"principal_id", principal.ID,
		))
		c.Next()
	}
}

func resolvePrincipal(c *gin.Context, raw string, revoker session.Revoker, managers []token.Manager) (sharedContext.Principal, error) {
	var lastErr error = token.ErrInvalidToken

	for _, manager := range managers {
		claims, err := manager.ValidateToken(raw)
		if err != nil {
			// expiry is more informative than a signature mismatch from another namespace
			if errors.Is(err, token.ErrExpiredToken) || !errors.Is(lastErr, token.ErrExpiredToken) {
				lastErr = err
			}
			continue
		}

		if claims.TokenType != token.ACCESS {
			return sharedContext.Principal{}, errWrongType
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			return sharedContext.Principal{}, err
		}
		if revoked {
			return sharedContext.Principal{}, errRevoked
		}

		id, err := strconv.ParseUint(claims.PrincipalID, 10, 32)
		if err != nil || id == 0 {
			return sharedContext.Principal{}, token.ErrInvalidClaims
		}

		kind := sharedContext.KindMember
		if manager.Namespace() == token.NamespaceAdmin {
			kind = sharedContext.KindAdmin
		}

		principal := sharedContext.Principal{
			Kind:    kind,
			ID:      uint32(id),
			Email:   claims.Email,
			TokenID: claims.ID,
		}
		if claims.ExpiresAt != nil {
			principal.ExpiresAt = claims.ExpiresAt.Time
		}
		return principal, nil
	}

	return sharedContext.Principal{}, lastErr
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) || parts[1] == "" {
		return "", errMalformed
	}

	return parts[1], nil
}
