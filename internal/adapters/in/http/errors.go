package http

import (
	"errors"
	"log/slog"
	"net/http"

	"magicmover/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusOf maps an error kind to its HTTP status. Persistence failures are
// checked first because they may wrap anything the driver returned.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrPersistence):
		return http.StatusInternalServerError
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrDuplicateItem),
		errors.Is(err, errs.ErrCapacityExceeded),
		errs.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse writes err with the status of its kind. Server errors are
// logged and hidden from the client.
func (s *Server) errorResponse(ctx echo.Context, err error) error {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err)
		return ctx.JSON(status, Error{Code: status, Message: http.StatusText(status)})
	}
	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: message})
}

// logLevelOf picks the access log level for a response status.
func logLevelOf(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
