package validation

import (
	"fmt"
	"reflect"
	"strings"

	apperrors "go-image-analyzer/internal/errors"
	"go-image-analyzer/pkg/models"

	"github.com/go-playground/validator/v10"
)

// InfoValidator checks that a driver produced a well-formed ImageInfo
type InfoValidator struct {
	validate *validator.Validate
}

// NewInfoValidator creates a validator that knows the normalized vocabulary
func NewInfoValidator() *InfoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("pixeltype", oneOf(models.Types))
	_ = v.RegisterValidation("colorspace", oneOf(models.Colorspaces))
	v.RegisterStructValidation(resolutionPair, models.ImageInfo{})

	return &InfoValidator{validate: v}
}

// Validate returns an internal error listing every violated constraint
func (v *InfoValidator) Validate(info *models.ImageInfo) error {
	if info == nil {
		return apperrors.NewInternalError("driver returned no image info", nil)
	}

	err := v.validate.Struct(info)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewInternalError("image info validation failed", err)
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		problems = append(problems, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return apperrors.NewInternalError("driver returned an invalid image info", err).
		WithDetails(strings.Join(problems, "; "))
}

func oneOf(values []string) validator.Func {
	allowed := make(map[string]bool, len(values))
	for _, value := range values {
		allowed[value] = true
	}
	return func(fl validator.FieldLevel) bool {
		return allowed[fl.Field().String()]
	}
}

// resolutionPair requires both resolution axes to be reported together
func resolutionPair(sl validator.StructLevel) {
	info := sl.Current().Interface().(models.ImageInfo)
	if (info.ResolutionX == nil) != (info.ResolutionY == nil) {
		sl.ReportError(info.ResolutionY, "resolutionY", "ResolutionY", "resolutionpair", "")
	}
}
