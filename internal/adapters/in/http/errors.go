package http

import (
	"errors"
	"net/http"

	"activation/internal/api/servers"
	"activation/internal/core/domain/model/order"
	"activation/internal/core/ports"
	"activation/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps a use case error to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ports.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, ports.ErrProviderUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	status := statusFor(err)

	message := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		s.logger.WarnContext(ctx.Request().Context(), "provider unavailable",
			"path", ctx.Path(), "error", err)
		message = "Provider is unavailable, try again later"
	case http.StatusConflict:
		message = "Order was changed concurrently, try again"
	case http.StatusInternalServerError:
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"path", ctx.Path(), "error", err)
		message = http.StatusText(http.StatusInternalServerError)
	}

	return ctx.JSON(status, servers.Error{Code: status, Message: message})
}

// errorHandler renders errors returned past the handlers, such as unknown
// routes and bad path parameters, in the API error shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, servers.Error{Code: status, Message: message})
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}
