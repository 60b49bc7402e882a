package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingEventType represents the type of booking event
type BookingEventType string

const (
	BookingEventTypeCreated  BookingEventType = "booking.created"
	BookingEventTypeCanceled BookingEventType = "booking.canceled"
)

// BookingEvent is published whenever a booking changes state
type BookingEvent struct {
	ID         string           `json:"id"`
	EventType  BookingEventType `json:"event_type"`
	BookingID  string           `json:"booking_id"`
	PropertyID string           `json:"property_id"`
	GuestID    string           `json:"guest_id"`
	Status     BookingStatus    `json:"status"`
	TotalPrice float64          `json:"total_price"`
	RefundRule string           `json:"refund_rule,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}

// NewBookingEvent creates an event describing the booking's current state
func NewBookingEvent(eventType BookingEventType, booking *Booking, at time.Time) *BookingEvent {
	return &BookingEvent{
		ID:         uuid.New().String(),
		EventType:  eventType,
		BookingID:  booking.ID(),
		PropertyID: booking.Property().ID(),
		GuestID:    booking.Guest().ID(),
		Status:     booking.Status(),
		TotalPrice: booking.TotalPrice(),
		Timestamp:  at,
	}
}
