package setup

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by the env var operators actually set
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if env := f.Tag.Get("env"); env != "" {
			return env
		}
		return f.Name
	})
	return v
}

// Validate checks the `validate` tags of a parsed CLI struct.
func Validate(cli interface{}) error {
	err := validate.Struct(cli)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			msgs = append(msgs, fe.Field()+" is required")
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s=%q is not a valid %s", fe.Field(), fmt.Sprint(fe.Value()), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
}
