// Package allocation provides the FIFO batch allocation engine.
//
// The engine is a pure planner: it proposes which batches to draw from and
// by how much, but never mutates batch state. Applying a plan (decrementing
// real stock) is the caller's responsibility - see Service.Apply. Callers
// that assume Plan consumes stock will double-book.
package allocation

import (
	"fmt"
	"sort"
	"time"

	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
	"stockpick/internal/domain/batch"
)

// Request describes one allocation demand against a candidate pool.
// Now anchors lifecycle classification so planning is deterministic.
type Request struct {
	ItemCode    string
	WarehouseID string
	Quantity    types.Quantity
	Batches     []batch.Batch
	Now         time.Time
}

// Line is one row of a fulfillment plan: draw Quantity from the batch,
// leaving QuantityAfter in it.
type Line struct {
	BatchID       id.ID            `json:"batchId"`
	BatchNo       string           `json:"batchNo"`
	Quantity      types.Quantity   `json:"quantity"`
	QuantityAfter types.Quantity   `json:"quantityAfter"`
	UnitPrice     types.MinorUnits `json:"unitPrice"`
	Location      string           `json:"location,omitempty"`
	InboundDate   time.Time        `json:"inboundDate"`
	ExpiryDate    *time.Time       `json:"expiryDate,omitempty"`

	// Recommended marks system-proposed lines. Always true for engine
	// output; reserved for manual overrides.
	Recommended bool `json:"recommended"`
}

// Result is the aggregate outcome of one planning call. Shortage is the
// unmet remainder, so Allocated + Shortage always equals the requested
// quantity. There is no error path: empty pools and partial fills are
// ordinary results, not failures.
type Result struct {
	Success   bool           `json:"success"`
	Lines     []Line         `json:"lines"`
	Allocated types.Quantity `json:"allocated"`
	Shortage  types.Quantity `json:"shortage"`
	Message   string         `json:"message"`
}

// Plan selects batches first-in-first-out for the requested quantity.
//
// Eligible batches match the item and warehouse exactly, hold stock, and
// classify neither expired nor exhausted. Warning (near-expiry) batches
// stay eligible on purpose: consuming them first minimizes write-off.
// Eligible batches are consumed in ascending inbound-date order; ties fall
// back to production date (when both carry one) and then batch number, so
// the plan is a deterministic function of its inputs regardless of the
// candidate ordering.
func Plan(req Request) Result {
	// A non-positive demand is a no-op, satisfied by doing nothing.
	if req.Quantity <= 0 {
		return Result{
			Success: true,
			Lines:   []Line{},
			Message: "nothing to allocate",
		}
	}

	eligible := eligibleBatches(req)
	if len(eligible) == 0 {
		return Result{
			Success:  false,
			Lines:    []Line{},
			Shortage: req.Quantity,
			Message:  "no batches available",
		}
	}

	sortFIFO(eligible)

	remaining := req.Quantity
	var allocated types.Quantity
	lines := make([]Line, 0, len(eligible))

	for _, b := range eligible {
		if remaining <= 0 {
			break
		}

		take := remaining.Min(b.Quantity)
		lines = append(lines, Line{
			BatchID:       b.ID,
			BatchNo:       b.BatchNo,
			Quantity:      take,
			QuantityAfter: b.Quantity - take,
			UnitPrice:     b.UnitPrice,
			Location:      b.Location,
			InboundDate:   b.InboundDate,
			ExpiryDate:    b.ExpiryDate,
			Recommended:   true,
		})

		remaining -= take
		allocated += take
	}

	result := Result{
		Success:   remaining == 0,
		Lines:     lines,
		Allocated: allocated,
		Shortage:  remaining,
	}
	if result.Success {
		result.Message = fmt.Sprintf("allocated %s from %d batches", allocated, len(lines))
	} else {
		result.Message = fmt.Sprintf("partial allocation: short %s", remaining)
	}
	return result
}

func eligibleBatches(req Request) []batch.Batch {
	eligible := make([]batch.Batch, 0, len(req.Batches))
	for _, b := range req.Batches {
		if b.ItemCode != req.ItemCode || b.WarehouseID != req.WarehouseID {
			continue
		}
		if !b.Quantity.IsPositive() {
			continue
		}
		switch batch.Classify(b, req.Now).Status {
		case batch.StatusExpired, batch.StatusExhausted:
			continue
		}
		eligible = append(eligible, b)
	}
	return eligible
}

func sortFIFO(batches []batch.Batch) {
	sort.Slice(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		if !a.InboundDate.Equal(b.InboundDate) {
			return a.InboundDate.Before(b.InboundDate)
		}
		// Production date breaks ties only when both batches carry one.
		if a.ProductionDate != nil && b.ProductionDate != nil &&
			!a.ProductionDate.Equal(*b.ProductionDate) {
			return a.ProductionDate.Before(*b.ProductionDate)
		}
		return a.BatchNo < b.BatchNo
	})
}
