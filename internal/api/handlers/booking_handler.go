package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/staybook/backend/internal/application/dto"
	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/entities"
	"github.com/staybook/backend/internal/domain/repositories"
	apperrors "github.com/staybook/backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// BookingService defines the booking operations used by the handler
type BookingService interface {
	CreateBooking(ctx context.Context, input dto.CreateBookingDTO) (*entities.Booking, error)
	GetBooking(ctx context.Context, id string) (*entities.Booking, error)
	CancelBooking(ctx context.Context, id string) (*services.CancellationResult, error)
	ListGuestBookings(ctx context.Context, guestID string, filter repositories.BookingFilter) ([]*entities.Booking, error)
}

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(service BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// createBookingRequest accepts dates either as YYYY-MM-DD or RFC 3339
type createBookingRequest struct {
	PropertyID string `json:"propertyId"`
	GuestID    string `json:"guestId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	GuestCount int    `json:"guestCount"`
}

type bookingResponse struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	GuestID    string    `json:"guestId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Nights     int       `json:"nights"`
	GuestCount int       `json:"guestCount"`
	TotalPrice float64   `json:"totalPrice"`
	Status     string    `json:"status"`
}

func toBookingResponse(booking *entities.Booking) bookingResponse {
	dateRange := booking.DateRange()
	return bookingResponse{
		ID:         booking.ID(),
		PropertyID: booking.Property().ID(),
		GuestID:    booking.Guest().ID(),
		StartDate:  dateRange.StartDate(),
		EndDate:    dateRange.EndDate(),
		Nights:     dateRange.TotalNights(),
		GuestCount: booking.GuestCount(),
		TotalPrice: booking.TotalPrice(),
		Status:     string(booking.Status()),
	}
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.NewValidationError("invalid " + field + ", expected YYYY-MM-DD")
}

// CreateBooking handles POST /bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var payload createBookingRequest
	if err := decodeJSON(r, &payload); err != nil {
		respondWithBadRequest(w, err)
		return
	}

	startDate, err := parseDate("startDate", payload.StartDate)
	if err != nil {
		respondWithBadRequest(w, err)
		return
	}
	endDate, err := parseDate("endDate", payload.EndDate)
	if err != nil {
		respondWithBadRequest(w, err)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), dto.CreateBookingDTO{
		PropertyID: payload.PropertyID,
		GuestID:    payload.GuestID,
		StartDate:  startDate,
		EndDate:    endDate,
		GuestCount: payload.GuestCount,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Booking created successfully",
		"booking": toBookingResponse(booking),
	})
}

// GetBooking handles GET /bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBooking(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, toBookingResponse(booking))
}

// CancelBooking handles POST /bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.CancelBooking(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Booking canceled successfully",
		"booking":      toBookingResponse(result.Booking),
		"refundRule":   result.RefundRule.String(),
		"refundAmount": result.RefundAmount,
	})
}

// ListGuestBookings handles GET /users/{id}/bookings?status=&limit=&offset=
func (h *BookingHandler) ListGuestBookings(w http.ResponseWriter, r *http.Request) {
	filter := repositories.BookingFilter{
		Status: entities.BookingStatus(r.URL.Query().Get("status")),
	}
	switch filter.Status {
	case "", entities.BookingStatusConfirmed, entities.BookingStatusCanceled:
	default:
		respondWithError(w, http.StatusBadRequest, "invalid status parameter")
		return
	}

	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		respondWithAppError(w, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		respondWithAppError(w, err)
		return
	}

	bookings, err := h.service.ListGuestBookings(r.Context(), r.PathValue("id"), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	response := make([]bookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		response = append(response, toBookingResponse(booking))
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": response,
		"count":    len(response),
	})
}
