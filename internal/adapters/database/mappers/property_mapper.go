package mappers

import (
	"github.com/staybook/backend/internal/adapters/database/records"
	"github.com/staybook/backend/internal/domain/entities"
	apperrors "github.com/staybook/backend/pkg/errors"
)

const propertyRequiredFieldsMessage = "Campo id, name, description, maxGuest e basePricePerNight são obrigatórios"

// PropertyToDomain converts a stored property into a validated domain property
func PropertyToDomain(record *records.PropertyRecord) (*entities.Property, error) {
	if record == nil ||
		record.ID == "" ||
		record.Name == "" ||
		record.Description == "" ||
		record.MaxGuests == 0 ||
		record.BasePricePerNight == 0 {
		return nil, apperrors.NewValidationError(propertyRequiredFieldsMessage)
	}

	return entities.NewProperty(
		record.ID,
		record.Name,
		record.Description,
		record.MaxGuests,
		record.BasePricePerNight,
	)
}

// PropertyToPersistence converts a domain property into its stored shape
func PropertyToPersistence(property *entities.Property) *records.PropertyRecord {
	return &records.PropertyRecord{
		ID:                property.ID(),
		Name:              property.Name(),
		Description:       property.Description(),
		MaxGuests:         property.MaxGuests(),
		BasePricePerNight: property.BasePricePerNight(),
	}
}
