package records

import (
	"time"
)

// PropertyRecord is the stored shape of a property
type PropertyRecord struct {
	ID                string  `json:"id" db:"id"`
	Name              string  `json:"name" db:"name"`
	Description       string  `json:"description" db:"description"`
	MaxGuests         int     `json:"max_guests" db:"max_guests"`
	BasePricePerNight float64 `json:"base_price_per_night" db:"base_price_per_night"`
}

// UserRecord is the stored shape of a user
type UserRecord struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// BookingRecord is the stored shape of a booking. Property and Guest are
// loaded by the adapter from property_id and guest_id. TotalPrice is a pointer
// because a fully refunded cancellation legitimately stores zero.
type BookingRecord struct {
	ID         string          `json:"id" db:"id"`
	Property   *PropertyRecord `json:"property"`
	Guest      *UserRecord     `json:"guest"`
	StartDate  time.Time       `json:"start_date" db:"start_date"`
	EndDate    time.Time       `json:"end_date" db:"end_date"`
	GuestCount int             `json:"guest_count" db:"guest_count"`
	TotalPrice *float64        `json:"total_price" db:"total_price"`
	Status     string          `json:"status" db:"status"`
}
