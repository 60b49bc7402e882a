package mappers

import (
	"github.com/staybook/backend/internal/adapters/database/records"
	"github.com/staybook/backend/internal/domain/entities"
	apperrors "github.com/staybook/backend/pkg/errors"
)

const bookingRequiredFieldsMessage = "Campo id, property, guest, startDate, endDate, guestCount, totalPrice e status são obrigatórios"

// BookingToDomain converts a stored booking into a domain booking. The stored
// total price and status are kept as they are.
func BookingToDomain(record *records.BookingRecord) (*entities.Booking, error) {
	if record == nil ||
		record.ID == "" ||
		record.Property == nil ||
		record.Guest == nil ||
		record.StartDate.IsZero() ||
		record.EndDate.IsZero() ||
		record.GuestCount == 0 ||
		record.TotalPrice == nil ||
		record.Status == "" {
		return nil, apperrors.NewValidationError(bookingRequiredFieldsMessage)
	}

	property, err := PropertyToDomain(record.Property)
	if err != nil {
		return nil, err
	}

	guest, err := UserToDomain(record.Guest)
	if err != nil {
		return nil, err
	}

	dateRange, err := entities.NewDateRange(record.StartDate, record.EndDate)
	if err != nil {
		return nil, err
	}

	return entities.RestoreBooking(
		record.ID,
		property,
		guest,
		dateRange,
		record.GuestCount,
		*record.TotalPrice,
		entities.BookingStatus(record.Status),
	), nil
}

// BookingToPersistence converts a domain booking into its stored shape
func BookingToPersistence(booking *entities.Booking) *records.BookingRecord {
	status := booking.Status()
	if status == "" {
		status = entities.BookingStatusConfirmed
	}

	dateRange := booking.DateRange()
	totalPrice := booking.TotalPrice()
	return &records.BookingRecord{
		ID:         booking.ID(),
		Property:   PropertyToPersistence(booking.Property()),
		Guest:      UserToPersistence(booking.Guest()),
		StartDate:  dateRange.StartDate(),
		EndDate:    dateRange.EndDate(),
		GuestCount: booking.GuestCount(),
		TotalPrice: &totalPrice,
		Status:     string(status),
	}
}
