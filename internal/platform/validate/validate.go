package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// First validates a request struct and returns the first violation as a
// readable error, or nil when the struct is valid.
func First(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fieldError(verrs[0])
	}
	return err
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "email":
		return fmt.Errorf("%s must be a valid email address", fe.Field())
	case "uuid":
		return fmt.Errorf("%s must be a valid UUID", fe.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min":
		return fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Errorf("%s must be %s or greater", fe.Field(), fe.Param())
	default:
		return fmt.Errorf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
