package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

const identityKey = "identity"

// TokenParser resolves a bearer token into an identity.
type TokenParser interface {
	ParseToken(token string) (*domain.Identity, error)
}

// Auth resolves the request identity once. A request without an
// Authorization header continues anonymously; a malformed or invalid token
// is rejected with domain.ErrUnauthorized.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return domain.ErrUnauthorized
			}

			id, err := parser.ParseToken(strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity resolved by Auth, or nil.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}
