package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/coffee-catalog/internal/api/i18n"
	"github.com/sirpyerre/coffee-catalog/internal/api/middleware"
	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// actor returns the identity resolved by the Auth middleware, or nil for
// anonymous requests.
func actor(c echo.Context) *domain.Identity {
	return middleware.IdentityFrom(c)
}

// bindError reports a body that could not be decoded at all.
func bindError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
		return he
	}
	return echo.NewHTTPError(http.StatusBadRequest, i18n.InvalidPayload).SetInternal(err)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}
