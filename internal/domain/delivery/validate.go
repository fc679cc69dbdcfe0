package delivery

import (
	"fmt"
	"strings"
	"time"

	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
)

// Validators in this package accumulate human-readable messages instead of
// failing fast, so a caller can surface every problem in one round trip.
// An empty message list is the success signal.

// ValidateAmountRange checks an amount filter pair. Returns a message
// naming the violated rule, or "" when the pair is usable.
func ValidateAmountRange(min, max *types.MinorUnits) string {
	if min != nil && min.IsNegative() {
		return "minimum amount must not be negative"
	}
	if max != nil && max.IsNegative() {
		return "maximum amount must not be negative"
	}
	if min != nil && max != nil && *min > *max {
		return "minimum amount must not exceed maximum amount"
	}
	return ""
}

// HeaderForm carries the receiving header fields entered by the user.
type HeaderForm struct {
	ReceivedDate *time.Time
	Receiver     string
	Department   string
}

// ValidateReceiptHeader checks the receiving header, accumulating every
// violated rule.
func ValidateReceiptHeader(f HeaderForm) []string {
	var errs []string

	if f.ReceivedDate == nil || f.ReceivedDate.IsZero() {
		errs = append(errs, "received date is required")
	}
	if isBlank(f.Receiver) {
		errs = append(errs, "receiver is required")
	}
	if isBlank(f.Department) {
		errs = append(errs, "department is required")
	}

	return errs
}

// Decision is the per-line input to ValidateReceiveItems: the quantity the
// user entered (absent when they left the field empty) and the chosen
// status.
type Decision struct {
	Quantity    types.Quantity
	HasQuantity bool
	Status      ItemStatus
}

// ReceiveSummary tallies line decisions across a whole note.
type ReceiveSummary struct {
	Received int `json:"received"`
	Rejected int `json:"rejected"`
}

// ReceiveResult is the outcome of validating all line decisions.
// Items holds updated copies of the lines that validated cleanly; lines
// with errors are left out so nothing half-checked reaches storage.
type ReceiveResult struct {
	Errors  []string       `json:"errors,omitempty"`
	Items   []Item         `json:"items"`
	Summary ReceiveSummary `json:"summary"`
}

// OK reports whether every line validated.
func (r ReceiveResult) OK() bool {
	return len(r.Errors) == 0
}

// ValidateReceiveItems checks the receiving decision for every line of the
// note. Rules per line: a status must be chosen; the quantity must be
// entered and non-negative; a received line takes a positive quantity no
// greater than its delivered (or ordered) quantity; a rejected line takes
// exactly zero. Every violation produces one message naming the item.
// Clean lines yield copies with ReceivedQuantity set (zero for rejected).
func ValidateReceiveItems(n Note, decisions map[id.ID]Decision) ReceiveResult {
	var result ReceiveResult
	result.Items = make([]Item, 0, len(n.Items))

	for _, item := range n.Items {
		d, ok := decisions[item.LineID]
		if !ok || d.Status == ItemStatusNone {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: select received or rejected", item.ItemName))
			continue
		}

		if !d.HasQuantity {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: quantity is required", item.ItemName))
			continue
		}
		if d.Quantity.IsNegative() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: quantity must not be negative", item.ItemName))
			continue
		}

		switch d.Status {
		case ItemStatusReceived:
			if !d.Quantity.IsPositive() {
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s: received quantity must be positive", item.ItemName))
				continue
			}
			if d.Quantity > item.ceiling() {
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s: quantity exceeds delivered quantity", item.ItemName))
				continue
			}

			updated := item
			updated.ReceivedQuantity = d.Quantity
			updated.Status = ItemStatusReceived
			result.Items = append(result.Items, updated)
			result.Summary.Received++

		case ItemStatusRejected:
			if !d.Quantity.IsZero() {
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s: rejected quantity must be zero", item.ItemName))
				continue
			}

			updated := item
			updated.ReceivedQuantity = 0
			updated.Status = ItemStatusRejected
			result.Items = append(result.Items, updated)
			result.Summary.Rejected++

		default:
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: unknown status %q", item.ItemName, d.Status))
		}
	}

	return result
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
