// file: internals/helpers/validation.go
package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var defaultValidator = validator.New(validator.WithRequiredStructEnabled())

// Validator returns v, or the shared instance when v is nil.
func Validator(v *validator.Validate) *validator.Validate {
	if v == nil {
		return defaultValidator
	}
	return v
}

// ValidationFieldErrors flattens validator errors into field → messages.
func ValidationFieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := toSnake(fe.Field())
		msg := fe.Tag()
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		out[field] = append(out[field], msg)
	}
	return out
}

// ValidateStruct answers 422 and returns false when req is invalid.
func ValidateStruct(c *fiber.Ctx, v *validator.Validate, req any) (bool, error) {
	if err := Validator(v).Struct(req); err != nil {
		return false, JsonValidationError(c, ValidationFieldErrors(err))
	}
	return true, nil
}

// LabTypeMeetingCount → lab_type_meeting_count, LabTypeID → lab_type_id
func toSnake(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		isUpper := r >= 'A' && r <= 'Z'
		if isUpper {
			if prevLower {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		prevLower = !isUpper
		b.WriteRune(r)
	}
	return b.String()
}
