package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// AdminChecker reports whether an identity is on the admin allow-list.
type AdminChecker interface {
	IsAdmin(actor *domain.Identity) bool
}

// RequireAdmin rejects anonymous callers with ErrUnauthorized and
// non-admins with ErrForbidden. It must run after Auth.
func RequireAdmin(checker AdminChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := IdentityFrom(c)
			if id == nil {
				return domain.ErrUnauthorized
			}
			if !checker.IsAdmin(id) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
