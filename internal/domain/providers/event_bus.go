package providers

import (
	"context"

	"github.com/staybook/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to booking events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.BookingEvent) error

	// Subscribe subscribes to events on a channel until ctx is done
	Subscribe(ctx context.Context, channel string) (<-chan *entities.BookingEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelBookings carries every booking event
	EventChannelBookings = "bookings:events"

	// EventChannelPropertyPrefix is the prefix for per-property channels
	EventChannelPropertyPrefix = "property:"
)

// GetPropertyChannel returns the channel name for a specific property
func GetPropertyChannel(propertyID string) string {
	return EventChannelPropertyPrefix + propertyID + ":bookings"
}
