package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mithai/sweet-shop-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
	ContextKeyToken  = "token"
)

// Auth verifies the bearer token, rejects revoked tokens, and resolves the
// principal. Role comes from the user row, not the token, so a role change
// takes effect without waiting for old tokens to expire.
func Auth(tokens ports.TokenProvider, revoker ports.TokenRevoker, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}
			raw := parts[1]

			claims, err := tokens.Claims(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			revoked, err := revoker.IsRevoked(c.Request().Context(), claims.TokenID)
			if err != nil {
				return err
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has been revoked")
			}

			user, err := users.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeyRole, user.Role)
			c.Set(ContextKeyToken, raw)

			return next(c)
		}
	}
}
