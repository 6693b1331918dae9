package rejseplanen

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/NERVsystems/rejseplanenmcp/pkg/geo"
)

var validate = newValidator()

// newValidator reports fields by their JSON names, which are the argument
// names callers see.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

var fieldMessages = map[string]string{
	"query":      "search query cannot be empty",
	"latitude":   fmt.Sprintf("latitude must be between %g and %g", geo.MinLatitude, geo.MaxLatitude),
	"longitude":  fmt.Sprintf("longitude must be between %g and %g", geo.MinLongitude, geo.MaxLongitude),
	"max_radius": "max_radius must be at least 1 meter",
	"max_number": "max_number must be at least 1",
}

// checkArgs validates s and converts the first failing field into an
// *ArgumentError.
func checkArgs(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate arguments: %w", err)
	}

	fe := verrs[0]
	return &ArgumentError{Field: fe.Field(), Message: fieldMessage(fe)}
}

func fieldMessage(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", fe.Field(), fe.Tag())
	}
}
