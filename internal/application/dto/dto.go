package dto

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/staybook/backend/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
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

// CreatePropertyDTO carries the input for registering a property. Capacity and
// price bounds are enforced by the Property entity. Description is required here
// because stored properties without one cannot be loaded back.
type CreatePropertyDTO struct {
	Name              string  `json:"name" validate:"required"`
	Description       string  `json:"description" validate:"required"`
	MaxGuests         int     `json:"maxGuests"`
	BasePricePerNight float64 `json:"basePricePerNight"`
}

// CreateUserDTO carries the input for registering a user
type CreateUserDTO struct {
	Name string `json:"name" validate:"required"`
}

// CreateBookingDTO carries the input for booking a stay
type CreateBookingDTO struct {
	PropertyID string    `json:"propertyId" validate:"required"`
	GuestID    string    `json:"guestId" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	GuestCount int       `json:"guestCount" validate:"gt=0"`
}

// Validate checks the struct tags of a DTO and reports the offending fields
// as a single validation error.
func Validate(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalError("failed to validate input", err)
	}

	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
	}
	return apperrors.NewValidationError("Campos inválidos: " + strings.Join(fields, ", "))
}
