package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/staybook/backend/internal/application/dto"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/repositories"
)

const defaultPageSize = 50

// PropertyService handles business logic for properties
type PropertyService struct {
	repo   repositories.PropertyRepository
	logger zerolog.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(repo repositories.PropertyRepository, logger zerolog.Logger) *PropertyService {
	return &PropertyService{
		repo:   repo,
		logger: logger.With().Str("service", "property").Logger(),
	}
}

// CreateProperty registers a new property under a generated ID
func (s *PropertyService) CreateProperty(ctx context.Context, input dto.CreatePropertyDTO) (*entities.Property, error) {
	if err := dto.Validate(input); err != nil {
		return nil, err
	}

	property, err := entities.NewProperty(
		uuid.New().String(),
		input.Name,
		input.Description,
		input.MaxGuests,
		input.BasePricePerNight,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, property); err != nil {
		return nil, err
	}

	s.logger.Info().Str("property_id", property.ID()).Msg("property created")
	return property, nil
}

// GetProperty retrieves a property by ID
func (s *PropertyService) GetProperty(ctx context.Context, id string) (*entities.Property, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProperties retrieves a page of properties
func (s *PropertyService) ListProperties(ctx context.Context, filter repositories.PropertyFilter) ([]*entities.Property, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	return s.repo.List(ctx, filter)
}
