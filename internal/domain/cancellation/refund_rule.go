package cancellation

import (
	"math"
	"time"
)

// RefundRule represents the policy applied to a booking's charged amount on cancellation
type RefundRule int

const (
	// FullRefund retains nothing; the guest gets everything back
	FullRefund RefundRule = iota + 1

	// PartialRefund retains half of the charged amount
	PartialRefund

	// NoRefund retains the whole charged amount
	NoRefund
)

const (
	fullRefundThresholdDays    = 7
	partialRefundThresholdDays = 1
	partialRefundRate          = 0.5
)

// GetRefundRule classifies an already derived day count into a refund rule
func GetRefundRule(daysUntilCheckIn int) RefundRule {
	switch {
	case daysUntilCheckIn > fullRefundThresholdDays:
		return FullRefund
	case daysUntilCheckIn >= partialRefundThresholdDays:
		return PartialRefund
	default:
		return NoRefund
	}
}

// CalculateRefund returns the amount still charged to the guest after cancellation.
// A partial retention is rounded to cents, half away from zero, the way NUMERIC(12,2) stores it.
func (r RefundRule) CalculateRefund(amount float64) float64 {
	switch r {
	case FullRefund:
		return 0
	case PartialRefund:
		return math.Round(math.Round(amount*100)*partialRefundRate) / 100
	default:
		return amount
	}
}

// RoundToCents rounds amount to two decimal places, half away from zero
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// String returns the rule name
func (r RefundRule) String() string {
	switch r {
	case FullRefund:
		return "FULL_REFUND"
	case PartialRefund:
		return "PARTIAL_REFUND"
	case NoRefund:
		return "NO_REFUND"
	default:
		return "UNKNOWN"
	}
}

// DaysUntilCheckIn returns the number of whole days left before check-in, rounded up
func DaysUntilCheckIn(checkIn, now time.Time) int {
	diff := checkIn.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}
