package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"orderdesk/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// requestValidator checks the shape of request bodies against their
// `validate` tags before they reach the command constructors, which stay the
// final authority on content.
type requestValidator struct {
	validate *validator.Validate
}

var _ echo.Validator = (*requestValidator)(nil)

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

// Validate reports the first failed field only, in declaration order.
func (v *requestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return fieldError(fieldErrs[0])
}

func fieldError(fe validator.FieldError) error {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required", "required_if":
		return errs.NewValueIsRequiredError(field)
	case "min":
		if size(fe.Value()) == 0 {
			return errs.NewValueIsRequiredError(field)
		}
		return errs.NewValueIsOutOfRangeError(field+" size", size(fe.Value()), fe.Param(), "-")
	case "max":
		return errs.NewValueIsOutOfRangeError(field+" size", size(fe.Value()), 0, fe.Param())
	case "oneof":
		return errs.NewValueIsInvalidErrorWithCause(
			field,
			fmt.Errorf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", ")),
		)
	default:
		return errs.NewValueIsInvalidError(field)
	}
}

// size counts characters for strings and elements for slices, the same way
// the min and max tags do.
func size(value any) int {
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s)
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	default:
		return 0
	}
}
