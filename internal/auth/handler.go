package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/nagoyameshi/go-api-server/internal/shared/context"
	"github.com/nagoyameshi/go-api-server/internal/shared/handler"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(authService *AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (a *AuthHandler) Login(c *gin.Context) {
	var request LoginRequest
	if !handler.Bind(c, &request) {
		return
	}

	response, err := a.authService.Login(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (a *AuthHandler) Signup(c *gin.Context) {
	var request SignupRequest
	if !handler.Bind(c, &request) {
		return
	}

	memberID, err := a.authService.Signup(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{ID: memberID})
}

// SessionHandler serves refresh and logout for one namespace.
type SessionHandler struct {
	sessions *Sessions
}

func NewSessionHandler(sessions *Sessions) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

func (h *SessionHandler) Refresh(c *gin.Context) {
	var request RefreshRequest
	if !handler.Bind(c, &request) {
		return
	}

	response, err := h.sessions.Refresh(c.Request.Context(), request.RefreshToken)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout expects the route to be guarded, so a principal is always present.
func (h *SessionHandler) Logout(c *gin.Context) {
	var request LogoutRequest
	if c.Request.ContentLength > 0 && !handler.Bind(c, &request) {
		return
	}

	if err := h.sessions.Logout(c.Request.Context(), sharedContext.GetPrincipal(c), request.RefreshToken); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
