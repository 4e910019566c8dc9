package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sefazor/starclub-backend/internal/directory"
	"github.com/sefazor/starclub-backend/internal/models"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()

	v.RegisterValidation("supported_image", validateImageType)
	v.RegisterValidation("status_filter", stringRule(directory.IsStatusFilter))
	v.RegisterValidation("tier_filter", stringRule(directory.IsTierFilter))
	v.RegisterValidation("sort_field", stringRule(directory.IsSortField))
	v.RegisterValidation("sort_dir", stringRule(directory.IsDirection))

	return &Validator{
		validate: v,
	}
}

// Struct validates s and reports failures as models.ErrInvalidInput.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, strings.Join(msgs, "; "))
}

// Var validates a single value against a tag list.
func (v *Validator) Var(field interface{}, tag string) error {
	if err := v.validate.Var(field, tag); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}
	return nil
}

func stringRule(ok func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	}
}

func validateImageType(fl validator.FieldLevel) bool {
	mimeType := fl.Field().String()
	supportedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	return supportedTypes[mimeType]
}
