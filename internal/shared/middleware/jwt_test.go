package middleware_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/middleware"
	"github.com/nagoyameshi/go-api-server/internal/shared/session"
	"github.com/nagoyameshi/go-api-server/internal/shared/testutil"
	"github.com/nagoyameshi/go-api-server/internal/shared/token"
	"github.com/stretchr/testify/assert"
)

type revokedSet map[string]bool

func (r revokedSet) Revoke(_ context.Context, id string, _ time.Time) error {
	r[id] = true
	return nil
}

func (r revokedSet) IsRevoked(_ context.Context, id string) (bool, error) { return r[id], nil }

func (r revokedSet) Ping(context.Context) error { return nil }

func (r revokedSet) Close() error { return nil }

var _ session.Revoker = revokedSet{}

func claimsFor(id string, tokenType string) *token.Claims {
	claims := &token.Claims{PrincipalID: id, Email: "someone@example.com", TokenType: tokenType}
	claims.ID = "jti-" + id
	return claims
}

func setupAuthRouter(revoker session.Revoker, managers ...token.Manager) *gin.Engine {
	router := testutil.SetupTestRouter()
	router.Use(middleware.Authenticate(revoker, managers...))
	router.GET("/whoami", func(c *gin.Context) {
		p := sharedContext.GetPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"kind": p.Kind.String(), "id": p.ID})
	})
	return router
}

func whoami(t *testing.T, router *gin.Engine, headers map[string]string) map[string]any {
	t.Helper()
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method:  http.MethodGet,
		URL:     "/whoami",
		Headers: headers,
	})
	assert.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	testutil.ParseResponse(t, recorder, &body)
	return body
}

func bearer(raw string) map[string]string {
	return map[string]string{middleware.AuthorizationHeader: "Bearer " + raw}
}

func TestAuthenticate(t *testing.T) {
	memberManager := testutil.NewMockTokenManager()
	memberManager.ValidateTokenFunc = func(raw string) (*token.Claims, error) {
		switch raw {
		case "member-7":
			return claimsFor("7", token.ACCESS), nil
		case "member-refresh":
			return claimsFor("7", token.REFRESH), nil
		case "expired":
			return nil, token.ErrExpiredToken
		}
		return nil, token.ErrInvalidToken
	}

	adminManager := testutil.NewMockTokenManager()
	adminManager.NamespaceValue = token.NamespaceAdmin
	adminManager.ValidateTokenFunc = func(raw string) (*token.Claims, error) {
		if raw == "admin-3" {
			return claimsFor("3", token.ACCESS), nil
		}
		return nil, token.ErrInvalidToken
	}

	revoked := revokedSet{}
	router := setupAuthRouter(revoked, memberManager, adminManager)

	t.Run("no header stays guest", func(t *testing.T) {
		body := whoami(t, router, nil)
		assert.Equal(t, "none", body["kind"])
	})

	t.Run("member token", func(t *testing.T) {
		body := whoami(t, router, bearer("member-7"))
		assert.Equal(t, "member", body["kind"])
		assert.Equal(t, float64(7), body["id"])
	})

	t.Run("admin token resolved by the second manager", func(t *testing.T) {
		body := whoami(t, router, bearer("admin-3"))
		assert.Equal(t, "admin", body["kind"])
		assert.Equal(t, float64(3), body["id"])
	})

	t.Run("refresh token is not accepted as access", func(t *testing.T) {
		body := whoami(t, router, bearer("member-refresh"))
		assert.Equal(t, "none", body["kind"])
	})

	t.Run("malformed header", func(t *testing.T) {
		body := whoami(t, router, map[string]string{middleware.AuthorizationHeader: "Token member-7"})
		assert.Equal(t, "none", body["kind"])
	})

	t.Run("unknown and expired tokens stay guest", func(t *testing.T) {
		assert.Equal(t, "none", whoami(t, router, bearer("garbage"))["kind"])
		assert.Equal(t, "none", whoami(t, router, bearer("expired"))["kind"])
	})

	t.Run("revoked token", func(t *testing.T) {
		revoked["jti-7"] = true
		defer delete(revoked, "jti-7")

		body := whoami(t, router, bearer("member-7"))
		assert.Equal(t, "none", body["kind"])
	})
}

func TestAuthenticate_RejectsNonNumericPrincipal(t *testing.T) {
	manager := testutil.NewMockTokenManager()
	manager.ValidateTokenFunc = func(string) (*token.Claims, error) {
		return claimsFor("abc", token.ACCESS), nil
	}
	router := setupAuthRouter(session.NewNoopRevoker(), manager)

	body := whoami(t, router, bearer("anything"))
	assert.Equal(t, "none", body["kind"])
}
