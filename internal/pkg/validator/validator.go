package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/city-boundary-service/internal/pkg/errors"
)

var validate *validator.Validate

// city_id - строчный slug: "milan", "new-york", "sankt_peterburg"
var cityIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("city_id", func(fl validator.FieldLevel) bool {
		return cityIDPattern.MatchString(fl.Field().String())
	})
}

// Validate - валидация структуры. Нарушения заворачиваются в
// ErrInvalidRequest, чтобы хендлеры отвечали 400, а не 500
func Validate(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"validation": err.Error(),
		})
	}
	return nil
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
