// Package validation checks request shapes with go-playground/validator and
// reports failures as field-level VALIDATION_FAILED errors.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/errors"
)

// Field shape rules shared by tags and messages.
const (
	NameMinLen     = 20
	NameMaxLen     = 60
	PasswordMinLen = 8
	PasswordMaxLen = 16
	AddressMaxLen  = 400
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

var defaultValidator = New()

// New returns a validator that names fields by their json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}

		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseRole(fl.Field().String())

		return ok
	})

	return &Validator{validate: v}
}

// Validate checks i and converts rule failures into a validation error.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := errors.AsType[validator.ValidationErrors](err)
	if !ok {
		return errors.Wrap(err, "validate")
	}

	fields := make([]domainerrors.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return domainerrors.NewValidationError(fields...)
}

// Struct validates i with the package default validator.
func Struct(i any) error {
	return defaultValidator.Validate(i)
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		return fmt.Sprintf("Name must be between %d and %d characters", NameMinLen, NameMaxLen)
	case "email":
		return "Please enter a valid email address"
	case "password", "newPassword":
		return fmt.Sprintf("Password must be %d-%d characters", PasswordMinLen, PasswordMaxLen)
	case "address":
		return fmt.Sprintf("Address is required and must not exceed %d characters", AddressMaxLen)
	case "role":
		return "Role must be one of ADMIN, USER, OWNER"
	}

	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid id"
	default:
		return fmt.Sprintf("failed %s rule", fe.Tag())
	}
}
