package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apierrors "stt-frontend/internal/api/errors"
)

// Validator interface for domain validation
type Validator interface {
	Validate() error
}

// ValidateForm binds multipart/form fields into req and validates both
// struct tags and domain rules.
func ValidateForm(c *gin.Context, req interface{}) error {
	if err := c.ShouldBind(req); err != nil {
		validationErrors := make(map[string]string)

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fieldError := range validationErrs {
				field := strings.ToLower(fieldError.Field())

				switch fieldError.Tag() {
				case "required":
					validationErrors[field] = "is required"
				case "oneof":
					validationErrors[field] = "must be one of the allowed values"
				default:
					validationErrors[field] = "is invalid"
				}
			}
			return apierrors.NewValidationError(firstMessage(validationErrors), validationErrors)
		}
		return apierrors.NewBadRequestError("invalid form data")
	}

	if v, ok := req.(Validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// firstMessage renders one field error as a sentence for the `error` field.
func firstMessage(fields map[string]string) string {
	for field, msg := range fields {
		return field + " " + msg
	}
	return "validation failed"
}
