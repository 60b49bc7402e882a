package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/staybook/backend/internal/application/dto"
	"github.com/staybook/backend/internal/domain/cancellation"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/providers"
	"github.com/staybook/backend/internal/domain/repositories"
	"github.com/staybook/backend/internal/infrastructure/observability"
)

// CancellationResult describes the outcome of canceling a booking
type CancellationResult struct {
	Booking       *entities.Booking
	RefundRule    cancellation.RefundRule
	OriginalPrice float64
	RefundAmount  float64
}

// BookingService handles business logic for bookings
type BookingService struct {
	bookings   repositories.BookingRepository
	properties repositories.PropertyRepository
	users      repositories.UserRepository
	eventBus   providers.EventBus
	metrics    *observability.Metrics
	logger     zerolog.Logger
	now        func() time.Time
}

// NewBookingService creates a new booking service. eventBus and metrics may be nil.
func NewBookingService(
	bookings repositories.BookingRepository,
	properties repositories.PropertyRepository,
	users repositories.UserRepository,
	eventBus providers.EventBus,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		properties: properties,
		users:      users,
		eventBus:   eventBus,
		metrics:    metrics,
		logger:     logger.With().Str("service", "booking").Logger(),
		now:        time.Now,
	}
}

// WithClock replaces the time source used for cancellations and event timestamps
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// CreateBooking books a property for a guest over a date range
func (s *BookingService) CreateBooking(ctx context.Context, input dto.CreateBookingDTO) (*entities.Booking, error) {
	if err := dto.Validate(input); err != nil {
		return nil, err
	}

	property, err := s.properties.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}

	guest, err := s.users.GetByID(ctx, input.GuestID)
	if err != nil {
		return nil, err
	}

	dateRange, err := entities.NewDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	booking, err := entities.NewBooking(uuid.New().String(), property, guest, dateRange, input.GuestCount)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("booking_id", booking.ID()).
		Str("property_id", property.ID()).
		Int("nights", dateRange.TotalNights()).
		Float64("total_price", booking.TotalPrice()).
		Msg("booking created")

	s.publish(ctx, entities.NewBookingEvent(entities.BookingEventTypeCreated, booking, s.now()))
	return booking, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id string) (*entities.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// ListGuestBookings retrieves the bookings made by a guest
func (s *BookingService) ListGuestBookings(ctx context.Context, guestID string, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	if _, err := s.users.GetByID(ctx, guestID); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	return s.bookings.ListByGuest(ctx, guestID, filter)
}

// CancelBooking cancels a booking and applies the refund rule for the days left before check-in
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*CancellationResult, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	originalPrice := booking.TotalPrice()

	rule, err := booking.Cancel(now)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}

	observability.RecordCancellation(ctx, s.metrics, rule.String())
	s.logger.Info().
		Str("booking_id", booking.ID()).
		Str("refund_rule", rule.String()).
		Float64("retained", booking.TotalPrice()).
		Msg("booking canceled")

	event := entities.NewBookingEvent(entities.BookingEventTypeCanceled, booking, now)
	event.RefundRule = rule.String()
	s.publish(ctx, event)

	return &CancellationResult{
		Booking:       booking,
		RefundRule:    rule,
		OriginalPrice: originalPrice,
		RefundAmount:  cancellation.RoundToCents(originalPrice - booking.TotalPrice()),
	}, nil
}

// publish sends the event to the global and per-property channels. Failures are
// logged and never fail the request.
func (s *BookingService) publish(ctx context.Context, event *entities.BookingEvent) {
	if s.eventBus == nil {
		return
	}

	for _, channel := range []string{providers.EventChannelBookings, providers.GetPropertyChannel(event.PropertyID)} {
		if err := s.eventBus.Publish(ctx, channel, event); err != nil {
			s.logger.Warn().Err(err).
				Str("channel", channel).
				Str("event_type", string(event.EventType)).
				Msg("failed to publish booking event")
		}
	}
}
