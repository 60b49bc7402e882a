package mappers

import (
	"github.com/staybook/backend/internal/adapters/database/records"
	"github.com/staybook/backend/internal/domain/entities"
	apperrors "github.com/staybook/backend/pkg/errors"
)

const userRequiredFieldsMessage = "Campo id e name são obrigatórios"

// UserToDomain converts a stored user into a validated domain user
func UserToDomain(record *records.UserRecord) (*entities.User, error) {
	if record == nil || record.ID == "" || record.Name == "" {
		return nil, apperrors.NewValidationError(userRequiredFieldsMessage)
	}
	return entities.NewUser(record.ID, record.Name)
}

// UserToPersistence converts a domain user into its stored shape
func UserToPersistence(user *entities.User) *records.UserRecord {
	return &records.UserRecord{
		ID:   user.ID(),
		Name: user.Name(),
	}
}
