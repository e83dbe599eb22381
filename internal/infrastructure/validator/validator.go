package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"boardpulse/internal/domain/entity"
)

// RegisterCustomValidators registers custom validation functions with the Gin
// validator. Must run once before routes are served.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("contenttype", contentTypeFL)
	}
}

// contentTypeFL accepts "notice" or "community".
func contentTypeFL(fl validator.FieldLevel) bool {
	_, err := entity.ParseContentType(fl.Field().String())
	return err == nil
}
