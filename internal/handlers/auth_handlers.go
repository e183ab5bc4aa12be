package handlers

import (
	"errors"
	"net/http"

	"stocksphere/internal/auth"
	"stocksphere/internal/common"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	sessions auth.SessionManager
	log      *zap.Logger
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(sessions auth.SessionManager, log *zap.Logger) *AuthHandlers {
	return &AuthHandlers{sessions: sessions, log: log}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return common.SendValidationError(c, "username", err.Error())
	}
	if err := common.ValidateRequiredString(req.Password, "password"); err != nil {
		return common.SendValidationError(c, "password", err.Error())
	}

	session, err := h.sessions.Login(c.Request().Context(), req.Username, req.Password)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, session)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("INVALID_CREDENTIALS", "Invalid credentials!", nil))
	case errors.Is(err, auth.ErrAuthDisabled):
		return common.SendClientError(c, "Authentication is disabled")
	default:
		h.log.Error("login failed", zap.Error(err))
		return common.SendUnavailableError(c, "Session store unavailable")
	}
}

// Logout handles POST /auth/logout by clearing the session flag
func (h *AuthHandlers) Logout(c echo.Context) error {
	sessionID, _, ok := common.GetSessionFromContext(c.Request().Context())
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}

	if err := h.sessions.Logout(c.Request().Context(), sessionID); err != nil {
		h.log.Error("logout failed", zap.String("session_id", sessionID), zap.Error(err))
		return common.SendUnavailableError(c, "Session store unavailable")
	}
	return c.NoContent(http.StatusNoContent)
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	sessionID, username, ok := common.GetSessionFromContext(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"authEnabled":   h.sessions.Enabled(),
		"authenticated": ok,
		"username":      username,
		"sessionId":     sessionID,
	})
}
