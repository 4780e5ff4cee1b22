package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"threadbox/internal/domain"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorHandler maps domain errors to HTTP status codes. The wrapped reason
// text is surfaced verbatim so callers can tell an ownership rejection from
// a window expiry. Anything outside the taxonomy is a 500 with a generic
// body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	errorCode := "INTERNAL_ERROR"
	message := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		code = fiber.StatusBadRequest
		errorCode = "INVALID_INPUT"
		message = err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		code = fiber.StatusUnauthorized
		errorCode = "UNAUTHORIZED"
		message = err.Error()
	case errors.Is(err, domain.ErrForbidden):
		code = fiber.StatusForbidden
		errorCode = "FORBIDDEN"
		message = err.Error()
	case errors.Is(err, domain.ErrNotFound):
		code = fiber.StatusNotFound
		errorCode = "NOT_FOUND"
		message = err.Error()
	default:
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
			errorCode = "REQUEST_ERROR"
			message = fiberErr.Message
		}
	}

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
	})
}
