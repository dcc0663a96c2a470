package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ApiError is a structured error the error-handler middleware turns
// into an HTTP response. Services return it for caller mistakes so
// they are distinguishable from internal failures.
type ApiError struct {
	StatusCode int         `json:"-"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(statusCode int, message string) *ApiError {
	return &ApiError{StatusCode: statusCode, Message: message}
}

func SuccessResponse(message string, data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

// ErrorHandlerMiddleware converts errors returned by controllers into
// uniform JSON envelopes. Unknown errors become 500s without leaking
// internals.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var apiErr *ApiError
		if errors.As(err, &apiErr) {
			return ctx.Status(apiErr.StatusCode).JSON(fiber.Map{
				"success": false,
				"message": apiErr.Message,
				"details": apiErr.Details,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Internal server error",
		})
	}
}
