package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/coffee-catalog/internal/api/i18n"
	"github.com/sirpyerre/coffee-catalog/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []domain.FieldViolation `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes and renders {"error": "<message>"} in the
// language negotiated from Accept-Language. Unexpected and upstream
// errors are logged and reported generically.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, key, fields := resolveError(err, log, c)
		resp := errorResponse{Error: i18n.ForRequest(c.Request(), key), Fields: fields}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, []domain.FieldViolation) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, httpErrorKey(he), nil
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, i18n.InvalidInput, ve.Violations
	}

	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		log.Error().
			Err(ue.Err).
			Str("op", ue.Op).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("upstream failure")
		return http.StatusBadGateway, i18n.Upstream, nil
	}

	// ErrForbidden is checked before the not-found errors: an update of
	// someone else's review wraps both.
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusUnprocessableEntity, i18n.InvalidInput, nil
	case errors.Is(err, domain.ErrInvalidFile):
		return http.StatusUnprocessableEntity, i18n.InvalidFile, nil
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, i18n.Unauthorized, nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, i18n.InvalidCredentials, nil
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, i18n.Forbidden, nil
	case errors.Is(err, domain.ErrLotNotFound):
		return http.StatusNotFound, i18n.LotNotFound, nil
	case errors.Is(err, domain.ErrReviewNotFound):
		return http.StatusNotFound, i18n.ReviewNotFound, nil
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, i18n.UserNotFound, nil
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, i18n.NotFound, nil
	case errors.Is(err, domain.ErrAlreadyReviewed):
		return http.StatusConflict, i18n.AlreadyReviewed, nil
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, i18n.UserExists, nil
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, i18n.Internal, nil
}

// httpErrorKey picks a catalog key for errors raised by Echo itself or by
// handlers that already chose one.
func httpErrorKey(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok && i18n.Known(msg) {
		return msg
	}
	switch he.Code {
	case http.StatusNotFound:
		return i18n.NotFound
	case http.StatusRequestEntityTooLarge:
		return i18n.PayloadTooLarge
	case http.StatusUnauthorized:
		return i18n.Unauthorized
	case http.StatusBadRequest:
		return i18n.InvalidPayload
	}
	return fmt.Sprintf("%v", he.Message)
}
