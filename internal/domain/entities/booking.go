package entities

import (
	"time"

	"github.com/staybook/backend/internal/domain/cancellation"
	apperrors "github.com/staybook/backend/pkg/errors"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCanceled  BookingStatus = "CANCELED"
)

// Booking represents a guest's stay at a property.
// Property and guest are held by reference.
type Booking struct {
	id         string
	property   *Property
	guest      *User
	dateRange  DateRange
	guestCount int
	totalPrice float64
	status     BookingStatus
}

// NewBooking creates a confirmed booking and prices it from the property's nightly rate
func NewBooking(id string, property *Property, guest *User, dateRange DateRange, guestCount int) (*Booking, error) {
	if guestCount <= 0 {
		return nil, apperrors.NewValidationError("O número de hóspedes deve ser maior que zero")
	}
	if err := property.ValidateGuestCount(guestCount); err != nil {
		return nil, err
	}

	return &Booking{
		id:         id,
		property:   property,
		guest:      guest,
		dateRange:  dateRange,
		guestCount: guestCount,
		totalPrice: property.CalculatePriceForPeriod(dateRange),
		status:     BookingStatusConfirmed,
	}, nil
}

// RestoreBooking rebuilds a booking from stored state without repricing it
func RestoreBooking(
	id string,
	property *Property,
	guest *User,
	dateRange DateRange,
	guestCount int,
	totalPrice float64,
	status BookingStatus,
) *Booking {
	return &Booking{
		id:         id,
		property:   property,
		guest:      guest,
		dateRange:  dateRange,
		guestCount: guestCount,
		totalPrice: totalPrice,
		status:     status,
	}
}

func (b *Booking) ID() string {
	return b.id
}

func (b *Booking) Property() *Property {
	return b.property
}

func (b *Booking) Guest() *User {
	return b.guest
}

func (b *Booking) DateRange() DateRange {
	return b.dateRange
}

func (b *Booking) GuestCount() int {
	return b.guestCount
}

func (b *Booking) TotalPrice() float64 {
	return b.totalPrice
}

func (b *Booking) Status() BookingStatus {
	return b.status
}

func (b *Booking) IsCanceled() bool {
	return b.status == BookingStatusCanceled
}

// Cancel cancels the booking at the given moment. The total price becomes the amount
// retained by the applicable refund rule.
func (b *Booking) Cancel(now time.Time) (cancellation.RefundRule, error) {
	if b.IsCanceled() {
		return 0, apperrors.NewConflictError("A reserva já está cancelada")
	}

	days := cancellation.DaysUntilCheckIn(b.dateRange.StartDate(), now)
	rule := cancellation.GetRefundRule(days)

	b.totalPrice = rule.CalculateRefund(b.totalPrice)
	b.status = BookingStatusCanceled

	return rule, nil
}
