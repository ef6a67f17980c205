package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	val "github.com/go-playground/validator/v10"
)

type describe func(fe val.FieldError) string

func bound(word string) describe {
	return func(fe val.FieldError) string {
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be %s %s characters", fe.Field(), word, fe.Param())
		case reflect.Slice, reflect.Map, reflect.Array:
			return fmt.Sprintf("%s must contain %s %s items", fe.Field(), word, fe.Param())
		default:
			return fmt.Sprintf("%s must be %s %s", fe.Field(), comparison[word], fe.Param())
		}
	}
}

var comparison = map[string]string{
	"at least": "greater than or equal to",
	"at most":  "less than or equal to",
}

func fixed(format string) describe {
	return func(fe val.FieldError) string {
		return strings.NewReplacer("{field}", fe.Field(), "{param}", fe.Param()).Replace(format)
	}
}

var messages = map[string]describe{
	"required":    fixed("{field} is required"),
	"min":         bound("at least"),
	"max":         bound("at most"),
	"gte":         fixed("{field} must be greater than or equal to {param}"),
	"lte":         fixed("{field} must be less than or equal to {param}"),
	"gt":          fixed("{field} must be greater than {param}"),
	"oneof":       fixed("{field} must be one of {param}"),
	"email":       fixed("{field} must be a valid email address"),
	"uuid":        fixed("{field} must be a valid UUID"),
	"enum":        fixed("{field} has an unsupported value"),
	"nefield":     fixed("{field} must differ from {param}"),
	"mimetypes":   fixed("{field} must be one of {param}"),
	"maxfilesize": fixed("{field} must not exceed {param} MB"),
}

// message renders the first validation failure as a client-facing sentence.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	for _, fe := range fieldErrors {
		if render, ok := messages[fe.Tag()]; ok {
			return render(fe)
		}
	}

	if len(fieldErrors) > 0 {
		return fmt.Sprintf("%s is invalid", fieldErrors[0].Field())
	}

	return err.Error()
}
