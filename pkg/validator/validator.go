package validator

import (
	stdErrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/johnquangdev/meeting-digest/pkg/upload"
)

// CustomValidator implements echo.Validator using go-playground/validator
type CustomValidator struct {
	v *validator.Validate
}

// New creates a new CustomValidator instance.
// Besides the built-in tags it understands media_file, which accepts
// names ending in one of upload.AllowedExtensions.
func New() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("media_file", func(fl validator.FieldLevel) bool {
		return upload.Allowed(fl.Field().String())
	})
	return &CustomValidator{v: v}
}

// Validate performs struct validation
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// FailedTag returns the tag of the first failed constraint in err, or "" if err is not a validation error
func FailedTag(err error) string {
	var verrs validator.ValidationErrors
	if stdErrors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Tag()
	}
	return ""
}
