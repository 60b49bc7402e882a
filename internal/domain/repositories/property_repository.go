package repositories

import (
	"context"

	"github.com/staybook/backend/internal/domain/entities"
)

// PropertyRepository defines the interface for property data operations
type PropertyRepository interface {
	// Create stores a new property
	Create(ctx context.Context, property *entities.Property) error

	// GetByID retrieves a property by ID
	GetByID(ctx context.Context, id string) (*entities.Property, error)

	// List retrieves properties page by page
	List(ctx context.Context, filter PropertyFilter) ([]*entities.Property, error)
}

// PropertyFilter defines filters for listing properties
type PropertyFilter struct {
	MinGuests int
	Limit     int
	Offset    int
}
