package delivery

import (
	"strings"
	"time"

	"stockpick/internal/core/types"
)

// Criteria is a set of optional, AND-combined matchers over delivery
// notes. A zero-value field imposes no constraint. Text matchers use
// case-insensitive substring containment after trimming; the status
// matcher is exact; date ranges and the amount range use inclusive bounds.
type Criteria struct {
	// Keyword matches the note number or order number
	Keyword string

	// Supplier matches the supplier name
	Supplier string

	// Status matches exactly
	Status Status

	// Delivery date range (inclusive)
	DeliveryFrom *time.Time
	DeliveryTo   *time.Time

	// Received date range (inclusive). Notes without a received date are
	// excluded whenever either bound is supplied.
	ReceivedFrom *time.Time
	ReceivedTo   *time.Time

	// Total amount range (inclusive); a nil bound leaves that side open
	AmountMin *types.MinorUnits
	AmountMax *types.MinorUnits
}

// Filter returns the notes satisfying every populated criterion, in their
// original relative order. A pure function: the input slice is never
// modified.
func Filter(notes []Note, c Criteria) []Note {
	result := make([]Note, 0, len(notes))
	for _, n := range notes {
		if matches(n, c) {
			result = append(result, n)
		}
	}
	return result
}

func matches(n Note, c Criteria) bool {
	if c.Keyword != "" &&
		!containsFold(n.NoteNo, c.Keyword) && !containsFold(n.OrderNo, c.Keyword) {
		return false
	}

	if c.Supplier != "" && !containsFold(n.SupplierName, c.Supplier) {
		return false
	}

	if c.Status != "" && n.Status != c.Status {
		return false
	}

	if !inDateRange(&n.DeliveryDate, c.DeliveryFrom, c.DeliveryTo) {
		return false
	}

	if !inDateRange(n.ReceivedDate, c.ReceivedFrom, c.ReceivedTo) {
		return false
	}

	if c.AmountMin != nil && n.TotalAmount < *c.AmountMin {
		return false
	}
	if c.AmountMax != nil && n.TotalAmount > *c.AmountMax {
		return false
	}

	return true
}

// containsFold reports whether haystack contains needle, ignoring case and
// surrounding whitespace on the needle.
func containsFold(haystack, needle string) bool {
	needle = strings.TrimSpace(needle)
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// inDateRange checks inclusive containment. When a bound is supplied and
// the record lacks the date (d == nil), the record does not match.
func inDateRange(d, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	if d == nil {
		return false
	}
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}
