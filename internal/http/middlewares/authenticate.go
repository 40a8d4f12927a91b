package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"staff-forge.com/staff-forge/internal/authz"
)

const (
	CurrentUserKey  = "current_user"
	SessionTokenKey = "session_token"

	sessionCookie = "session"
)

// UserResolver maps a session token to the current user. Resolution is
// total: unknown or empty tokens come back as Anonymous.
type UserResolver interface {
	Resolve(ctx context.Context, token string) authz.CurrentUser
}

// Authenticate resolves the caller from a bearer token or session
// cookie and stashes both the token and the user on the request
// context. It never rejects; access decisions belong to the services.
func Authenticate(resolver UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			c.Set(SessionTokenKey, token)
			c.Set(CurrentUserKey, resolver.Resolve(c.Request().Context(), token))
			return next(c)
		}
	}
}

func sessionToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}
