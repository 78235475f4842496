package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sm8ta/carsharing_microservice/internal/core/domain"
)

// NewValidator returns a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(JSONTagName)
	return v
}

func JSONTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		name = fld.Tag.Get("form")
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func ValidateCarInput(v *validator.Validate, in domain.CarInput) error {
	return ValidationErrorFrom(v.Struct(in))
}

func ValidateTripInput(v *validator.Validate, in domain.TripInput) error {
	return ValidationErrorFrom(v.Struct(in))
}

// ValidationErrorFrom converts validator and JSON decoding failures into a
// *domain.ValidationError. nil stays nil.
func ValidationErrorFrom(err error) error {
	if err == nil {
		return nil
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = describe(fe)
		}
		return &domain.ValidationError{Fields: fields}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return domain.NewValidationError(field, fmt.Sprintf("must be of type %s", typeErr.Type))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return domain.NewValidationError("body", "malformed JSON")
	}

	if errors.Is(err, io.EOF) {
		return domain.NewValidationError("body", "request body is required")
	}

	return domain.NewValidationError("body", err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Ptr {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "number", "numeric":
		return "must be an integer"
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
