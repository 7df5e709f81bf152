package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"hotel/shared/base64"
	"hotel/shared/constant"
	"hotel/shared/failure"

	val "github.com/go-playground/validator/v10"
)

var validate *val.Validate

// enum is implemented by string enums such as booking statuses and room types.
type enum interface {
	Valid() bool
}

func registerEnumValidation(field val.FieldLevel) bool {
	value, ok := field.Field().Interface().(enum)
	if !ok {
		return false
	}

	return value.Valid()
}

func registerMimetypeValidation(field val.FieldLevel) bool {
	var contentType string

	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		contentType = file.Header.Get(constant.RequestHeaderContentType)
	case string:
		contentType = base64.GetContentType(file)
	}

	if contentType == "" {
		return false
	}

	return slices.Contains(strings.Fields(field.Param()), contentType)
}

func registerFileSizeValidation(field val.FieldLevel) bool {
	fileSize := 0

	switch file := field.Field().Interface().(type) {
	case multipart.FileHeader:
		fileSize = int(file.Size)
	case string:
		fileSize = len(file)
	}

	maxSizeMB, err := strconv.ParseFloat(field.Param(), 64)
	if err != nil {
		return false
	}

	bytesConversion := 1024.0
	maxSizeBytes := int(maxSizeMB * bytesConversion * bytesConversion)

	return fileSize <= maxSizeBytes
}

func jsonTagName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" || name == "" {
		return field.Name
	}

	return name
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonTagName)

	validations := map[string]val.Func{
		"enum":        registerEnumValidation,
		"mimetypes":   registerMimetypeValidation,
		"maxfilesize": registerFileSizeValidation,
	}

	for tag, fn := range validations {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)

	if err := decoder.Decode(data); err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
