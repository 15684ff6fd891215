package http

import (
	"errors"
	"net/http"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

const (
	msgUnauthorized    = "unauthorized"
	msgNotFound        = "not found"
	msgServerError     = "server error"
	msgTooManyRequests = "too many requests, try again in a minute"
	msgInvalidBody     = "invalid request body"
)

// statusFor maps a use case error to an HTTP status and a client-safe message.
// Unknown errors become 500 with a generic message.
func statusFor(err error) (int, string) {
	var echoErr *echo.HTTPError
	switch {
	case errors.As(err, &echoErr):
		if msg, ok := echoErr.Message.(string); ok {
			return echoErr.Code, msg
		}
		return echoErr.Code, http.StatusText(echoErr.Code)
	case errors.Is(err, commands.ErrUnauthorized), errors.Is(err, queries.ErrUnauthorized):
		return http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, order.ErrOrderAlreadyAccepted):
		return http.StatusConflict, order.ErrOrderAlreadyAccepted.Error()
	case errors.Is(err, ports.ErrConcurrentModification):
		return http.StatusConflict, "order was changed by someone else, reload and try again"
	case errors.Is(err, commands.ErrCourierNotFound):
		return http.StatusBadRequest, commands.ErrCourierNotFound.Error()
	case errors.Is(err, order.ErrCourierIsRequired):
		return http.StatusBadRequest, order.ErrCourierIsRequired.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, msgNotFound
	case errs.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, msgServerError
	}
}

// newErrorHandler replaces echo's default so every error, including router
// 404s and middleware rejections, leaves in the same JSON shape.
func newErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := statusFor(err)
		if status >= http.StatusInternalServerError {
			logger.WithError(err).
				WithField("method", c.Request().Method).
				WithField("path", c.Path()).
				Error("request failed")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, ErrorResponse{Success: false, Error: msg})
		}
		if writeErr != nil {
			logger.WithError(writeErr).Warn("failed to write error response")
		}
	}
}
