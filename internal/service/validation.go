package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/qr-attendance-api/internal/dto"
)

const (
	msgUserFieldsRequired = "Student ID, name, and email are required"
	msgLogFieldsRequired  = "All required fields (studentId, date, status, time, timestamp, name, role) must be provided"
)

// NewValidator returns a validator that reports JSON field names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRegistration checks the registration payload before any store access.
func ValidateRegistration(v *validator.Validate, req dto.RegisterUserRequest) error {
	return validatePayload(v, req, msgUserFieldsRequired)
}

// ValidateAttendanceLog checks the attendance payload before any store access.
func ValidateAttendanceLog(v *validator.Validate, req dto.CreateAttendanceLogRequest) error {
	return validatePayload(v, req, msgLogFieldsRequired)
}

func validatePayload(v *validator.Validate, payload interface{}, message string) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return &Error{Kind: ErrValidation, Field: fieldErrors[0].Field(), Message: message, Err: err}
	}
	return err
}
