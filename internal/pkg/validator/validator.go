package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/region-service/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate - валидация структуры; ошибки полей превращаются в ErrInvalidParameter
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.ErrInvalidRequest
	}

	fields := make(map[string]interface{}, len(verrs))
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
		messages = append(messages, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}

	return errors.ErrInvalidParameter.
		WithMessage(strings.Join(messages, "; ")).
		WithDetails(fields)
}
