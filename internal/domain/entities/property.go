package entities

import (
	"fmt"
	"strings"

	apperrors "github.com/staybook/backend/pkg/errors"
)

// Property represents a rentable place. It is immutable once created.
type Property struct {
	id                string
	name              string
	description       string
	maxGuests         int
	basePricePerNight float64
}

// NewProperty creates a validated property
func NewProperty(id, name, description string, maxGuests int, basePricePerNight float64) (*Property, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("O nome é obrigatório")
	}
	if maxGuests <= 0 {
		return nil, apperrors.NewValidationError("O número máximo de hóspedes deve ser maior que zero")
	}
	if basePricePerNight <= 0 {
		return nil, apperrors.NewValidationError("O preço base por noite deve ser maior que zero")
	}

	return &Property{
		id:                id,
		name:              name,
		description:       description,
		maxGuests:         maxGuests,
		basePricePerNight: basePricePerNight,
	}, nil
}

func (p *Property) ID() string { return p.id }
func (p *Property) Name() string { return p.name }
func (p *Property) Description() string { return p.description }
func (p *Property) MaxGuests() int { return p.maxGuests }
func (p *Property) BasePricePerNight() float64 { return p.basePricePerNight }

// ValidateGuestCount checks that guestCount fits the property's capacity
func (p *Property) ValidateGuestCount(guestCount int) error {
	if guestCount > p.maxGuests {
		return apperrors.NewValidationError(fmt.Sprintf("Número máximo de hóspedes excedido. Máximo permitido: %d", p.maxGuests))
	}
	return nil
}

// CalculatePriceForPeriod returns the base price for every night of the range
func (p *Property) CalculatePriceForPeriod(dateRange DateRange) float64 {
	return p.basePricePerNight * float64(dateRange.TotalNights())
}
