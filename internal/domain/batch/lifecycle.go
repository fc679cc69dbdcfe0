package batch

import (
	"time"
)

// DefaultWarningDays is the expiry warning window when callers do not
// configure one.
const DefaultWarningDays = 30

// Age returns the whole days elapsed between inboundDate and now,
// clamped to a minimum of 0. An inbound date in the future (bad input)
// never yields a negative age.
func Age(inboundDate, now time.Time) int {
	days := int(now.Sub(inboundDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Expired reports whether expiry is strictly in the past.
// A batch without an expiry date never expires.
func Expired(expiry *time.Time, now time.Time) bool {
	if expiry == nil {
		return false
	}
	return expiry.Before(now)
}

// ExpiringSoon reports whether expiry falls within the warning window:
// the whole-day distance to expiry is in (0, warningDays]. Already-expired
// batches (distance <= 0) are excluded; Classify reports those as expired.
func ExpiringSoon(expiry *time.Time, warningDays int, now time.Time) bool {
	if expiry == nil {
		return false
	}
	days := int(expiry.Sub(now).Hours() / 24)
	return days > 0 && days <= warningDays
}

// FilterByStatus returns the classified batches carrying the given
// status, order preserved. An empty status matches everything.
func FilterByStatus(batches []Classified, status Status) []Classified {
	if status == "" {
		return batches
	}
	result := make([]Classified, 0, len(batches))
	for _, b := range batches {
		if b.Status == status {
			result = append(result, b)
		}
	}
	return result
}

// Classify derives the lifecycle status of a batch at the given moment,
// using the default warning window.
func Classify(b Batch, now time.Time) StatusInfo {
	return ClassifyWithWindow(b, DefaultWarningDays, now)
}

// ClassifyWithWindow derives the lifecycle status of a batch at the given
// moment against a caller-chosen warning window.
// Priority order matters: a batch that is both empty and past expiry is
// exhausted, not expired - exhaustion is terminal for fulfillment purposes.
func ClassifyWithWindow(b Batch, warningDays int, now time.Time) StatusInfo {
	switch {
	case b.Quantity <= 0:
		return StatusInfo{Status: StatusExhausted, Label: "Exhausted", Severity: "info"}
	case Expired(b.ExpiryDate, now):
		return StatusInfo{Status: StatusExpired, Label: "Expired", Severity: "danger"}
	case ExpiringSoon(b.ExpiryDate, warningDays, now):
		return StatusInfo{Status: StatusWarning, Label: "Expiring soon", Severity: "warning"}
	default:
		return StatusInfo{Status: StatusNormal, Label: "Normal", Severity: "success"}
	}
}
