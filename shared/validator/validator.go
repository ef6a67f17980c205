package validator

import (
	"encoding/json"
	"fmt"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const megabyte = 1 << 20

var validate *val.Validate

// Enum is implemented by closed string types that know their members.
type Enum interface {
	IsValid() bool
}

func fileHeader(field val.FieldLevel) (*multipart.FileHeader, bool) {
	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		return &file, true
	case *multipart.FileHeader:
		return file, file != nil
	}

	return nil, false
}

func mimetypes(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), file.Header.Get(constant.RequestHeaderContentType))
}

// maxFileSize takes its limit in megabytes.
func maxFileSize(field val.FieldLevel) bool {
	file, ok := fileHeader(field)
	if !ok {
		return false
	}

	limit, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	return float64(file.Size) <= limit*megabyte
}

func enum(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(Enum)

	return ok && value.IsValid()
}

func jsonFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	custom := map[string]val.Func{
		"enum":        enum,
		"mimetypes":   mimetypes,
		"maxfilesize": maxFileSize,
	}

	for tag, fn := range custom {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Errorf("failed to register %s validation: %w", tag, err))
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
