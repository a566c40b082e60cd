package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nagoyameshi/go-api-server/internal/config"
)

var (
	ErrInvalidToken  = errors.New("token: invalid token")
	ErrExpiredToken  = errors.New("token: expired token")
	ErrInvalidClaims = errors.New("token: invalid claims")
)

const (
	ACCESS  = "access"
	REFRESH = "refresh"
)

// Namespace separates member sessions from admin sessions. Each namespace signs
// with its own secret so a token never crosses over.
type Namespace string

const (
	NamespaceMember Namespace = "member"
	NamespaceAdmin  Namespace = "admin"
)

type Claims struct {
	PrincipalID string    `json:"pid"`
	Email       string    `json:"email"`
	Namespace   Namespace `json:"ns"`
	TokenType   string    `json:"token_type"`
	jwt.RegisteredClaims
}

type Manager interface {
	Namespace() Namespace
	GenerateAccessToken(principalID string, email string) (string, error)
	GenerateRefreshToken(principalID string, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTManager struct {
	namespace     Namespace
	secret        []byte
	issuer        string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewJWTManager(cfg *config.Config, namespace Namespace) *JWTManager {
	secret := cfg.JWT.MemberSecret
	if namespace == NamespaceAdmin {
		secret = cfg.JWT.AdminSecret
	}
	return &JWTManager{
		namespace:     namespace,
		secret:        []byte(secret),
		issuer:        cfg.App.Name,
		accessExpiry:  cfg.JWT.Expiry,
		refreshExpiry: cfg.JWT.RefreshExpiry,
	}
}

func (m *JWTManager) Namespace() Namespace {
	return m.namespace
}

func (m *JWTManager) GenerateAccessToken(principalID, email string) (string, error) {
	return m.generate(principalID, email, ACCESS, m.accessExpiry)
}

func (m *JWTManager) GenerateRefreshToken(principalID, email string) (string, error) {
	return m.generate(principalID, email, REFRESH, m.refreshExpiry)
}

func (m *JWTManager) generate(principalID, email, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		PrincipalID: principalID,
		Email:       email,
		Namespace:   m.namespace,
		TokenType:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   principalID,
			Audience:  jwt.ClaimStrings{string(m.namespace)},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithAudience(string(m.namespace)),
		jwt.WithIssuer(m.issuer),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Namespace != m.namespace || claims.ID == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
