package repositories

import (
	"context"

	"github.com/staybook/backend/internal/domain/entities"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	// Create stores a new booking
	Create(ctx context.Context, booking *entities.Booking) error

	// GetByID retrieves a booking, with its property and guest, by ID
	GetByID(ctx context.Context, id string) (*entities.Booking, error)

	// Update persists the booking's status and total price
	Update(ctx context.Context, booking *entities.Booking) error

	// ListByGuest retrieves the bookings of a guest
	ListByGuest(ctx context.Context, guestID string, filter BookingFilter) ([]*entities.Booking, error)
}

// BookingFilter defines filters for listing bookings
type BookingFilter struct {
	Status entities.BookingStatus
	Limit  int
	Offset int
}
