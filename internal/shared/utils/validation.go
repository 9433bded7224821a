package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/smartcheckin/smartcheckin/internal/shared/errors"
)

var validatorInstance = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON name, which is what the guest form uses
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("kana", isKana); err != nil {
		panic(err)
	}
	return v
})

// isKana accepts the phonetic reading field of the guest registry:
// hiragana, katakana, the prolonged sound mark and spaces.
func isKana(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
		case r == 'ー' || r == ' ' || r == '　' || r == '・':
		default:
			return false
		}
	}
	return true
}

var fieldMessages = map[string]string{
	"required":    "%s is required",
	"required_if": "%s is required for foreign nationals",
	"max":         "%s must be at most %s characters long",
	"min":         "%s must be at least %s characters long",
	"kana":        "%s must be written in kana",
}

// ValidateStruct runs the validate tags on s and folds every failure into a
// single validation AppError.
func ValidateStruct(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("Validation failed", err.Error())
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, describe(fe))
	}
	return apperrors.NewValidationError("Validation failed", details...)
}

func describe(fe validator.FieldError) string {
	format, ok := fieldMessages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
	if strings.Count(format, "%s") == 2 {
		return fmt.Sprintf(format, fe.Field(), fe.Param())
	}
	return fmt.Sprintf(format, fe.Field())
}
