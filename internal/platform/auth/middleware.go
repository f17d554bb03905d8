package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

// UserKey holds the authenticated username on the request context.
const UserKey contextKey = "auth_user"

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

// RequireToken enforces a valid bearer token whose subject is a known
// identity. On success the username is placed on the request context.
func RequireToken(issuer *TokenIssuer, users UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c, "invalid authorization format")
			}

			username, err := issuer.Verify(parts[1])
			if err != nil {
				return unauthorized(c, "invalid or expired token")
			}
			if _, ok := users.Lookup(username); !ok {
				return unauthorized(c, "unknown identity")
			}

			ctx := context.WithValue(c.Request().Context(), UserKey, username)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func UsernameFromContext(ctx context.Context) string {
	u, _ := ctx.Value(UserKey).(string)
	return u
}
