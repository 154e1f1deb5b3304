package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/employee-directory/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// в ошибках используем имена полей из json-тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate проверяет структуру запроса и возвращает первую ошибку
// как *domain.ValidationError
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return domain.NewValidationError("request", "", err.Error())
	}

	e := errs[0]
	return domain.NewValidationError(e.Field(), valueString(e.Value()), reason(e))
}

func reason(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_without":
		return "is required"
	case "oneof":
		return "must be one of: " + e.Param()
	case "datetime":
		return "expected date in format YYYY-MM-DD"
	case "numeric":
		return "must be a number"
	case "min":
		return "must be at least " + e.Param()
	case "max":
		return "must be at most " + e.Param()
	case "excluded_with":
		return "cannot be combined with " + e.Param()
	default:
		return "failed " + e.Tag() + " check"
	}
}

func valueString(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.IsZero() {
		return ""
	}
	return fmt.Sprint(rv.Interface())
}
