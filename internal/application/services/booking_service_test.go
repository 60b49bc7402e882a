package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/staybook/backend/internal/application/dto"
	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/cancellation"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/repositories"
	apperrors "github.com/staybook/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

type bookingFixture struct {
	bookings   *MockBookingRepository
	properties *MockPropertyRepository
	users      *MockUserRepository
	eventBus   *MockEventBus
	service    *services.BookingService
	property   *entities.Property
	guest      *entities.User
}

func newBookingFixture(t *testing.T, now time.Time) *bookingFixture {
	t.Helper()
	property, err := entities.NewProperty("p-1", "Apartamento", "Centro", 4, 200)
	require.NoError(t, err)
	guest, err := entities.NewUser("u-1", "Maria")
	require.NoError(t, err)

	f := &bookingFixture{
		bookings:   new(MockBookingRepository),
		properties: new(MockPropertyRepository),
		users:      new(MockUserRepository),
		eventBus:   new(MockEventBus),
		property:   property,
		guest:      guest,
	}
	f.service = services.NewBookingService(f.bookings, f.properties, f.users, f.eventBus, nil, zerolog.Nop()).
		WithClock(func() time.Time { return now })
	return f
}

// confirmedBooking is a five-night stay starting 2025-08-01 costing 1000
func (f *bookingFixture) confirmedBooking(t *testing.T) *entities.Booking {
	t.Helper()
	dateRange, err := entities.NewDateRange(date(2025, 8, 1), date(2025, 8, 6))
	require.NoError(t, err)
	booking, err := entities.NewBooking("b-1", f.property, f.guest, dateRange, 2)
	require.NoError(t, err)
	return booking
}

func validBookingInput() dto.CreateBookingDTO {
	return dto.CreateBookingDTO{
		PropertyID: "p-1",
		GuestID:    "u-1",
		StartDate:  date(2025, 8, 1),
		EndDate:    date(2025, 8, 6),
		GuestCount: 2,
	}
}

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t, date(2025, 7, 1))

	f.properties.On("GetByID", ctx, "p-1").Return(f.property, nil)
	f.users.On("GetByID", ctx, "u-1").Return(f.guest, nil)
	f.bookings.On("Create", ctx, mock.AnythingOfType("*entities.Booking")).Return(nil)
	f.eventBus.On("Publish", ctx, "bookings:events", mock.MatchedBy(func(e *entities.BookingEvent) bool {
		return e.EventType == entities.BookingEventTypeCreated && e.TotalPrice == 1000
	})).Return(nil)
	f.eventBus.On("Publish", ctx, "property:p-1:bookings", mock.Anything).Return(nil)

	booking, err := f.service.CreateBooking(ctx, validBookingInput())

	require.NoError(t, err)
	assert.Equal(t, 1000.0, booking.TotalPrice())
	assert.Equal(t, entities.BookingStatusConfirmed, booking.Status())
	f.bookings.AssertExpectations(t)
	f.eventBus.AssertExpectations(t)
}

func TestBookingService_CreateBooking_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid input", func(t *testing.T) {
		f := newBookingFixture(t, date(2025, 7, 1))

		_, err := f.service.CreateBooking(ctx, dto.CreateBookingDTO{GuestCount: 1})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		f.properties.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newBookingFixture(t, date(2025, 7, 1))
		f.properties.On("GetByID", ctx, "p-1").Return(nil, apperrors.NewNotFoundError("property with id p-1 not found"))

		_, err := f.service.CreateBooking(ctx, validBookingInput())

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
		f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("end before start", func(t *testing.T) {
		f := newBookingFixture(t, date(2025, 7, 1))
		f.properties.On("GetByID", ctx, "p-1").Return(f.property, nil)
		f.users.On("GetByID", ctx, "u-1").Return(f.guest, nil)

		input := validBookingInput()
		input.EndDate = input.StartDate

		_, err := f.service.CreateBooking(ctx, input)

		assert.Equal(t, "A data de término deve ser posterior à data de início", apperrors.Message(err))
		f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("too many guests", func(t *testing.T) {
		f := newBookingFixture(t, date(2025, 7, 1))
		f.properties.On("GetByID", ctx, "p-1").Return(f.property, nil)
		f.users.On("GetByID", ctx, "u-1").Return(f.guest, nil)

		input := validBookingInput()
		input.GuestCount = 5

		_, err := f.service.CreateBooking(ctx, input)

		assert.Equal(t, "Número máximo de hóspedes excedido. Máximo permitido: 4", apperrors.Message(err))
	})
}

func TestBookingService_CreateBooking_PublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t, date(2025, 7, 1))

	f.properties.On("GetByID", ctx, "p-1").Return(f.property, nil)
	f.users.On("GetByID", ctx, "u-1").Return(f.guest, nil)
	f.bookings.On("Create", ctx, mock.Anything).Return(nil)
	f.eventBus.On("Publish", ctx, mock.Anything, mock.Anything).Return(errors.New("redis unavailable"))

	_, err := f.service.CreateBooking(ctx, validBookingInput())
	assert.NoError(t, err)
}

func TestBookingService_CancelBooking(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		now      time.Time
		rule     cancellation.RefundRule
		retained float64
		refunded float64
	}{
		{name: "more than a week ahead", now: date(2025, 7, 20), rule: cancellation.FullRefund, retained: 0, refunded: 1000},
		{name: "within a week", now: date(2025, 7, 28), rule: cancellation.PartialRefund, retained: 500, refunded: 500},
		{name: "on check-in day", now: date(2025, 8, 1), rule: cancellation.NoRefund, retained: 1000, refunded: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t, tt.now)
			booking := f.confirmedBooking(t)

			f.bookings.On("GetByID", ctx, "b-1").Return(booking, nil)
			f.bookings.On("Update", ctx, booking).Return(nil)
			f.eventBus.On("Publish", ctx, "bookings:events", mock.MatchedBy(func(e *entities.BookingEvent) bool {
				return e.EventType == entities.BookingEventTypeCanceled &&
					e.RefundRule == tt.rule.String() &&
					e.Timestamp.Equal(tt.now)
			})).Return(nil)
			f.eventBus.On("Publish", ctx, "property:p-1:bookings", mock.Anything).Return(nil)

			result, err := f.service.CancelBooking(ctx, "b-1")

			require.NoError(t, err)
			assert.Equal(t, tt.rule, result.RefundRule)
			assert.Equal(t, 1000.0, result.OriginalPrice)
			assert.Equal(t, tt.retained, result.Booking.TotalPrice())
			assert.Equal(t, tt.refunded, result.RefundAmount)
			assert.True(t, result.Booking.IsCanceled())
			f.bookings.AssertExpectations(t)
			f.eventBus.AssertExpectations(t)
		})
	}
}

func TestBookingService_CancelBooking_OddCentsRoundToStoredPrecision(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t, date(2025, 7, 28))

	property, err := entities.NewProperty("p-1", "Quarto", "Centro", 2, 333.33)
	require.NoError(t, err)
	dateRange, err := entities.NewDateRange(date(2025, 8, 1), date(2025, 8, 2))
	require.NoError(t, err)
	booking, err := entities.NewBooking("b-1", property, f.guest, dateRange, 1)
	require.NoError(t, err)

	f.bookings.On("GetByID", ctx, "b-1").Return(booking, nil)
	f.bookings.On("Update", ctx, booking).Return(nil)
	f.eventBus.On("Publish", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.CancelBooking(ctx, "b-1")

	require.NoError(t, err)
	assert.Equal(t, cancellation.PartialRefund, result.RefundRule)
	assert.Equal(t, 166.67, result.Booking.TotalPrice())
	assert.Equal(t, 166.66, result.RefundAmount)
}

func TestBookingService_CancelBooking_AlreadyCanceled(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t, date(2025, 7, 28))
	booking := f.confirmedBooking(t)
	_, err := booking.Cancel(date(2025, 7, 20))
	require.NoError(t, err)

	f.bookings.On("GetByID", ctx, "b-1").Return(booking, nil)

	_, err = f.service.CancelBooking(ctx, "b-1")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.Equal(t, "A reserva já está cancelada", apperrors.Message(err))
	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.eventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CancelBooking_UpdateFails(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t, date(2025, 7, 28))
	booking := f.confirmedBooking(t)

	f.bookings.On("GetByID", ctx, "b-1").Return(booking, nil)
	f.bookings.On("Update", ctx, booking).Return(apperrors.NewInternalError("failed to update booking", errors.New("timeout")))

	_, err := f.service.CancelBooking(ctx, "b-1")

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
	f.eventBus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_WithoutEventBus(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t, date(2025, 7, 28))
	service := services.NewBookingService(f.bookings, f.properties, f.users, nil, nil, zerolog.Nop()).
		WithClock(func() time.Time { return date(2025, 7, 28) })
	booking := f.confirmedBooking(t)

	f.bookings.On("GetByID", ctx, "b-1").Return(booking, nil)
	f.bookings.On("Update", ctx, booking).Return(nil)

	result, err := service.CancelBooking(ctx, "b-1")
	require.NoError(t, err)
	assert.Equal(t, cancellation.PartialRefund, result.RefundRule)
}

func TestBookingService_ListGuestBookings(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t, date(2025, 7, 1))
	booking := f.confirmedBooking(t)

	f.users.On("GetByID", ctx, "u-1").Return(f.guest, nil)
	f.bookings.On("ListByGuest", ctx, "u-1", repositories.BookingFilter{Limit: 50}).
		Return([]*entities.Booking{booking}, nil)

	bookings, err := f.service.ListGuestBookings(ctx, "u-1", repositories.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	f.users.On("GetByID", ctx, "u-404").Return(nil, apperrors.NewNotFoundError("user with id u-404 not found"))
	_, err = f.service.ListGuestBookings(ctx, "u-404", repositories.BookingFilter{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestBookingEventListener_Run(t *testing.T) {
	ctx := context.Background()
	eventBus := new(MockEventBus)
	events := make(chan *entities.BookingEvent, 1)
	var subscription <-chan *entities.BookingEvent = events
	eventBus.On("Subscribe", mock.Anything, "bookings:events").Return(subscription, nil)

	var buf bytes.Buffer
	listener := services.NewBookingEventListener(eventBus, zerolog.New(&buf))

	events <- &entities.BookingEvent{
		ID:         "evt-1",
		EventType:  entities.BookingEventTypeCanceled,
		BookingID:  "b-1",
		Status:     entities.BookingStatusCanceled,
		TotalPrice: 500,
		RefundRule: "PARTIAL_REFUND",
	}
	close(events)

	require.NoError(t, listener.Run(ctx))
	assert.Contains(t, buf.String(), `"booking_id":"b-1"`)
	assert.Contains(t, buf.String(), `"refund_rule":"PARTIAL_REFUND"`)
}

func TestBookingEventListener_SubscribeError(t *testing.T) {
	eventBus := new(MockEventBus)
	eventBus.On("Subscribe", mock.Anything, "bookings:events").Return(nil, errors.New("event bus is closed"))

	listener := services.NewBookingEventListener(eventBus, zerolog.Nop())
	assert.EqualError(t, listener.Run(context.Background()), "event bus is closed")
}
