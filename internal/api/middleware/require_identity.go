package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// RequireIdentity rejects anonymous requests. It must run after Auth.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IdentityFrom(c) == nil {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
