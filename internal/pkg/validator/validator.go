package validator

import (
	"errors"
	"reflect"
	"strings"

	"designmarket/internal/pkg/apperr"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// gin owns the validator instance used by ShouldBindJSON; report json names from it.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// Validate struct fields using the same `binding` tags gin applies.
func Validate(v interface{}) map[string]string {
	err := binding.Validator.ValidateStruct(v)
	if err == nil {
		return nil
	}
	return FieldErrors(err)
}

// FieldErrors flattens validator errors into json field -> reason.
// Errors that are not validation errors yield a single "body" entry.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"body": "malformed request body"}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name == "" {
			name = strings.ToLower(fe.StructField())
		}
		out[name] = describe(fe)
	}
	return out
}

// BindingError turns a gin binding failure into a validation error with details.
func BindingError(err error) error {
	return apperr.New(apperr.ErrValidation, "VALIDATION_ERROR", "Invalid request body").WithFields(FieldErrors(err))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "datetime":
		return "must be a date in format YYYY-MM-DD"
	case "url":
		return "must be a valid URL"
	}
	return fe.Tag()
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
