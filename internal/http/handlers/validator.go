package handlers

import (
	"errors"
	"fmt"
	"strings"

	"community_cards/internal/card"
	"community_cards/internal/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("handle", validateHandle); err != nil {
		return err
	}
	return v.RegisterValidation("platform", validatePlatform)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by JSON field name.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "handle":
			errs[field] = domain.ErrInvalidHandle.Error()
		case "platform":
			errs[field] = domain.ErrInvalidPlatform.Error()
		case "min":
			if e.Kind().String() == "string" {
				errs[field] = fmt.Sprintf("Must be at least %s characters", e.Param())
			} else {
				errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
			}
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateHandle(fl validator.FieldLevel) bool {
	return card.ValidHandle(strings.TrimSpace(fl.Field().String()))
}

func validatePlatform(fl validator.FieldLevel) bool {
	return domain.IsKnownPlatform(domain.Platform(strings.ToLower(fl.Field().String())))
}
