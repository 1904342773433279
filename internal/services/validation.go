package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yukikurage/student-task-tracker/internal/constants"
	apierrors "github.com/yukikurage/student-task-tracker/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Use label tags in messages instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		return strings.ToLower(fld.Name)
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterAlias("username", fmt.Sprintf("notblank,min=%d", constants.MinUsernameLength))
	v.RegisterAlias("password", fmt.Sprintf("required,min=%d", constants.MinPasswordLength))

	return v
}

// validateInput runs struct tag validation and turns the first failure
// into a caller-facing validation error.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate input: %w", err)
	}
	fe := fieldErrs[0]
	code := apierrors.ErrCodeInvalidInput
	switch fe.ActualTag() {
	case "required", "notblank":
		code = apierrors.ErrCodeMissingField
	}
	return apierrors.NewAPIErrorWithDetails(code, validationMessage(fe), map[string]string{"field": fe.Field()})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required", "notblank":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
