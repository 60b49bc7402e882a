package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/staybook/backend/internal/domain/providers"
)

// BookingEventListener writes every booking event seen on the bus to the log
type BookingEventListener struct {
	eventBus providers.EventBus
	logger   zerolog.Logger
}

// NewBookingEventListener creates a new booking event listener
func NewBookingEventListener(eventBus providers.EventBus, logger zerolog.Logger) *BookingEventListener {
	return &BookingEventListener{
		eventBus: eventBus,
		logger:   logger.With().Str("component", "booking_events").Logger(),
	}
}

// Run consumes events until ctx is done or the subscription closes
func (l *BookingEventListener) Run(ctx context.Context) error {
	events, err := l.eventBus.Subscribe(ctx, providers.EventChannelBookings)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			entry := l.logger.Info().
				Str("event_id", event.ID).
				Str("event_type", string(event.EventType)).
				Str("booking_id", event.BookingID).
				Str("status", string(event.Status)).
				Float64("total_price", event.TotalPrice)
			if event.RefundRule != "" {
				entry = entry.Str("refund_rule", event.RefundRule)
			}
			entry.Msg("booking event")
		}
	}
}
