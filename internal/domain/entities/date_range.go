package entities

import (
	"math"
	"time"

	apperrors "github.com/staybook/backend/pkg/errors"
)

// DateRange is the stay period of a booking; EndDate is always after StartDate
type DateRange struct {
	startDate time.Time
	endDate   time.Time
}

// NewDateRange creates a date range, rejecting ranges that do not move forward in time
func NewDateRange(startDate, endDate time.Time) (DateRange, error) {
	if !endDate.After(startDate) {
		return DateRange{}, apperrors.NewValidationError("A data de término deve ser posterior à data de início")
	}
	return DateRange{startDate: startDate, endDate: endDate}, nil
}

// StartDate returns the check-in date
func (r DateRange) StartDate() time.Time {
	return r.startDate
}

// EndDate returns the check-out date
func (r DateRange) EndDate() time.Time {
	return r.endDate
}

// TotalNights returns the number of nights covered, counting a partial day as a night
func (r DateRange) TotalNights() int {
	return int(math.Ceil(r.endDate.Sub(r.startDate).Hours() / 24))
}

// Overlaps reports whether both ranges share at least one night
func (r DateRange) Overlaps(other DateRange) bool {
	return r.startDate.Before(other.endDate) && other.startDate.Before(r.endDate)
}
