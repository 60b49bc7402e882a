package mappers_test

import (
	"testing"
	"time"

	"github.com/staybook/backend/internal/adapters/database/mappers"
	"github.com/staybook/backend/internal/adapters/database/records"
	"github.com/staybook/backend/internal/domain/entities"
	apperrors "github.com/staybook/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	propertyMessage = "Campo id, name, description, maxGuest e basePricePerNight são obrigatórios"
	bookingMessage  = "Campo id, property, guest, startDate, endDate, guestCount, totalPrice e status são obrigatórios"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func propertyRecord() *records.PropertyRecord {
	return &records.PropertyRecord{
		ID:                "1",
		Name:              "Apartamento",
		Description:       "Descrição",
		MaxGuests:         2,
		BasePricePerNight: 200,
	}
}

func price(v float64) *float64 {
	return &v
}

func bookingRecord() *records.BookingRecord {
	return &records.BookingRecord{
		ID:         "1",
		Property:   propertyRecord(),
		Guest:      &records.UserRecord{ID: "1", Name: "João"},
		StartDate:  day("2025-08-01"),
		EndDate:    day("2025-08-06"),
		GuestCount: 2,
		TotalPrice: price(200),
		Status:     "CONFIRMED",
	}
}

func assertValidationMessage(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Equal(t, message, appErr.Message)
}

func TestPropertyToDomain(t *testing.T) {
	t.Run("converts a complete record", func(t *testing.T) {
		property, err := mappers.PropertyToDomain(propertyRecord())
		require.NoError(t, err)

		assert.Equal(t, "1", property.ID())
		assert.Equal(t, "Apartamento", property.Name())
		assert.Equal(t, "Descrição", property.Description())
		assert.Equal(t, 2, property.MaxGuests())
		assert.Equal(t, 200.0, property.BasePricePerNight())
	})

	t.Run("fails when required fields are missing", func(t *testing.T) {
		_, err := mappers.PropertyToDomain(&records.PropertyRecord{ID: "1", Name: "Apartamento"})
		assertValidationMessage(t, err, propertyMessage)
	})

	missing := map[string]func(r *records.PropertyRecord){
		"id":                func(r *records.PropertyRecord) { r.ID = "" },
		"name":              func(r *records.PropertyRecord) { r.Name = "" },
		"description":       func(r *records.PropertyRecord) { r.Description = "" },
		"maxGuests":         func(r *records.PropertyRecord) { r.MaxGuests = 0 },
		"basePricePerNight": func(r *records.PropertyRecord) { r.BasePricePerNight = 0 },
	}
	for field, unset := range missing {
		t.Run("fails without "+field, func(t *testing.T) {
			record := propertyRecord()
			unset(record)

			_, err := mappers.PropertyToDomain(record)
			assertValidationMessage(t, err, propertyMessage)
		})
	}

	t.Run("fails on nil record", func(t *testing.T) {
		_, err := mappers.PropertyToDomain(nil)
		assertValidationMessage(t, err, propertyMessage)
	})
}

func TestPropertyToPersistence_RoundTrip(t *testing.T) {
	property, err := entities.NewProperty("1", "Apartamento", "Descrição", 2, 200)
	require.NoError(t, err)

	record := mappers.PropertyToPersistence(property)
	assert.Equal(t, propertyRecord(), record)

	back, err := mappers.PropertyToDomain(record)
	require.NoError(t, err)
	assert.Equal(t, property, back)
}

func TestUserMapper(t *testing.T) {
	user, err := mappers.UserToDomain(&records.UserRecord{ID: "1", Name: "João"})
	require.NoError(t, err)
	assert.Equal(t, "João", user.Name())

	assert.Equal(t, &records.UserRecord{ID: "1", Name: "João"}, mappers.UserToPersistence(user))

	_, err = mappers.UserToDomain(&records.UserRecord{ID: "1"})
	assertValidationMessage(t, err, "Campo id e name são obrigatórios")
}

func TestBookingToDomain(t *testing.T) {
	t.Run("converts a complete record", func(t *testing.T) {
		booking, err := mappers.BookingToDomain(bookingRecord())
		require.NoError(t, err)

		assert.Equal(t, "1", booking.ID())
		assert.Equal(t, "1", booking.Property().ID())
		assert.Equal(t, "Apartamento", booking.Property().Name())
		assert.Equal(t, "Descrição", booking.Property().Description())
		assert.Equal(t, 2, booking.Property().MaxGuests())
		assert.Equal(t, 200.0, booking.Property().BasePricePerNight())
		assert.Equal(t, "1", booking.Guest().ID())
		assert.Equal(t, "João", booking.Guest().Name())
		assert.Equal(t, day("2025-08-01"), booking.DateRange().StartDate())
		assert.Equal(t, day("2025-08-06"), booking.DateRange().EndDate())
		assert.Equal(t, 2, booking.GuestCount())
		assert.Equal(t, 200.0, booking.TotalPrice())
		assert.Equal(t, entities.BookingStatusConfirmed, booking.Status())
	})

	t.Run("fails when required fields are missing", func(t *testing.T) {
		record := &records.BookingRecord{
			ID:       "1",
			Property: propertyRecord(),
			Guest:    &records.UserRecord{ID: "1", Name: "João"},
		}

		_, err := mappers.BookingToDomain(record)
		assertValidationMessage(t, err, bookingMessage)
	})

	missing := map[string]func(r *records.BookingRecord){
		"id":         func(r *records.BookingRecord) { r.ID = "" },
		"property":   func(r *records.BookingRecord) { r.Property = nil },
		"guest":      func(r *records.BookingRecord) { r.Guest = nil },
		"startDate":  func(r *records.BookingRecord) { r.StartDate = time.Time{} },
		"endDate":    func(r *records.BookingRecord) { r.EndDate = time.Time{} },
		"guestCount": func(r *records.BookingRecord) { r.GuestCount = 0 },
		"totalPrice": func(r *records.BookingRecord) { r.TotalPrice = nil },
		"status":     func(r *records.BookingRecord) { r.Status = "" },
	}
	for field, unset := range missing {
		t.Run("fails without "+field, func(t *testing.T) {
			record := bookingRecord()
			unset(record)

			_, err := mappers.BookingToDomain(record)
			assertValidationMessage(t, err, bookingMessage)
		})
	}

	t.Run("propagates nested property errors", func(t *testing.T) {
		record := bookingRecord()
		record.Property.Description = ""

		_, err := mappers.BookingToDomain(record)
		assertValidationMessage(t, err, propertyMessage)
	})
}

func TestBookingToPersistence(t *testing.T) {
	property, err := entities.NewProperty("1", "Apartamento", "Descrição", 2, 200)
	require.NoError(t, err)
	guest, err := entities.NewUser("1", "João")
	require.NoError(t, err)
	startDate, endDate := day("2025-08-01"), day("2025-08-06")
	dateRange, err := entities.NewDateRange(startDate, endDate)
	require.NoError(t, err)

	booking, err := entities.NewBooking("1", property, guest, dateRange, 2)
	require.NoError(t, err)

	record := mappers.BookingToPersistence(booking)

	assert.Equal(t, "1", record.ID)
	assert.Equal(t, propertyRecord(), record.Property)
	assert.Equal(t, &records.UserRecord{ID: "1", Name: "João"}, record.Guest)
	assert.Equal(t, startDate, record.StartDate)
	assert.Equal(t, endDate, record.EndDate)
	assert.Equal(t, 2, record.GuestCount)

	nights := endDate.Sub(startDate).Hours() / 24
	require.NotNil(t, record.TotalPrice)
	assert.Equal(t, 200*nights, *record.TotalPrice)
	assert.Equal(t, "CONFIRMED", record.Status)
}

func TestBookingToPersistence_KeepsCanceledStatus(t *testing.T) {
	booking, err := mappers.BookingToDomain(bookingRecord())
	require.NoError(t, err)

	_, err = booking.Cancel(day("2025-08-01"))
	require.NoError(t, err)

	record := mappers.BookingToPersistence(booking)
	assert.Equal(t, "CANCELED", record.Status)
	assert.Equal(t, 200.0, *record.TotalPrice)
}

func TestBookingToDomain_AcceptsFullyRefundedPrice(t *testing.T) {
	record := bookingRecord()
	record.TotalPrice = price(0)
	record.Status = "CANCELED"

	booking, err := mappers.BookingToDomain(record)
	require.NoError(t, err)
	assert.Equal(t, 0.0, booking.TotalPrice())
	assert.True(t, booking.IsCanceled())
}
