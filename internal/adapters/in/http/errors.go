package http

import (
	"errors"
	"fmt"
	"net/http"

	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps the error taxonomy onto HTTP status codes. Anything unrecognised is a
// server fault.
func statusFor(err error) int {
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrResourceUnavailable),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, services.ErrEligibleBidNotFound):
		return http.StatusConflict
	case errors.Is(err, errs.ErrCapacityExceeded):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message = fmt.Sprint(httpErr.Message)
	}

	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}

	if errs.IsRetryable(err) {
		ctx.Response().Header().Set("X-Retryable", "true")
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func (s *Server) bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	return nil
}
