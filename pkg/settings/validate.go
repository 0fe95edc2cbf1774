package settings

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	pgerrors "github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/units"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("cssunit", func(fl validator.FieldLevel) bool {
			return units.IsValidUnit(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// Validate checks that s may be committed to storage. The error names the
// first failing field by its JSON key.
func Validate(s GridSettings) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		if fe.Tag() == "cssunit" {
			return pgerrors.Wrap(pgerrors.ErrCodeInvalidSettings, err,
				"%s: %q is not a valid length (e.g. 8px, 1.5em, 100%%)", fe.Field(), fe.Value())
		}
		return pgerrors.Wrap(pgerrors.ErrCodeInvalidSettings, err,
			"%s failed validation for tag '%s'", fe.Field(), fe.Tag())
	}
	return pgerrors.Wrap(pgerrors.ErrCodeInvalidSettings, err, "validate settings")
}

// ValidateLength checks a single length field the way the panel gates input.
func ValidateLength(field, value string) error {
	if !units.IsValidUnit(value) {
		return pgerrors.New(pgerrors.ErrCodeInvalidUnit,
			"%s: %q is not a valid length (e.g. 8px, 1.5em, 100%%)", field, value)
	}
	return nil
}
