package serverutils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a request DTO and maps
// failures to a 400 ApiError with per-field details.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewApiError(fiber.StatusBadRequest, "Invalid request")
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag()))
	}

	return &ApiError{
		StatusCode: fiber.StatusBadRequest,
		Message:    "Validation failed",
		Details:    details,
	}
}
