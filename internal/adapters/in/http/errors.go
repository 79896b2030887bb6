package http

import (
	"net/http"

	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an error kind onto its HTTP status.
func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	case errs.KindInvalidState:
		return http.StatusUnprocessableEntity
	case errs.KindLockTimeout:
		return http.StatusServiceUnavailable
	case errs.KindInvalidDuration, errs.KindUnknownFilterKey, errs.KindInvalidValue:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusOf(kind)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "Request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		message = http.StatusText(status)
	}
	if kind.Retryable() {
		c.Response().Header().Set("Retry-After", "1")
	}

	return c.JSON(status, Error{
		Code:    status,
		Kind:    kind.String(),
		Message: message,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    errs.KindInvalidValue.String(),
		Message: message,
	})
}
