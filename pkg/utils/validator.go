package utils

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	v.RegisterValidation("supported_image", validateImageType)

	return &Validator{
		validate: v,
	}
}

func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

var supportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
}

// IsSupportedImageType reports whether the MIME type is one we accept for
// uploads and stylization.
func IsSupportedImageType(mimeType string) bool {
	return supportedImageTypes[mimeType]
}

func validateImageType(fl validator.FieldLevel) bool {
	return IsSupportedImageType(fl.Field().String())
}
