package middleware

import (
	"net/http"

	"stocksphere/internal/auth"
	"stocksphere/internal/common"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// JWTConfig validates bearer tokens through the session manager, which pins
// the signing method and issuer. The parsed *auth.SessionClaims is stored
// under the "user" context key.
func JWTConfig(sessions auth.SessionManager) echojwt.Config {
	return echojwt.Config{
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return sessions.ParseToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Invalid token", nil))
		},
	}
}

// SessionMiddleware rejects tokens whose session flag has been cleared by a
// logout. It must run after the echo-jwt middleware.
func SessionMiddleware(sessions auth.SessionManager, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*auth.SessionClaims)
			if !ok || claims.ID == "" {
				return common.SendUnauthorizedError(c)
			}

			active, err := sessions.Active(c.Request().Context(), claims.ID)
			if err != nil {
				log.Error("session lookup failed", zap.String("session_id", claims.ID), zap.Error(err))
				return common.SendUnavailableError(c, "Session store unavailable")
			}
			if !active {
				return c.JSON(http.StatusUnauthorized, common.CreateErrorResponse("UNAUTHORIZED", "Session has ended", nil))
			}

			ctx := common.WithSession(c.Request().Context(), claims.ID, claims.Username)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// Protect returns the middleware chain guarding authenticated routes. With
// authentication disabled every request passes.
func Protect(sessions auth.SessionManager, log *zap.Logger) []echo.MiddlewareFunc {
	if !sessions.Enabled() {
		return nil
	}
	return []echo.MiddlewareFunc{
		echojwt.WithConfig(JWTConfig(sessions)),
		SessionMiddleware(sessions, log),
	}
}
