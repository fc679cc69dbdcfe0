package dto

import (
	"time"

	"stockpick/internal/core/types"
	"stockpick/internal/domain/allocation"
)

// PlanAllocationRequest asks the engine for a fulfillment plan.
type PlanAllocationRequest struct {
	ItemCode    string         `json:"itemCode" binding:"required"`
	WarehouseID string         `json:"warehouseId" binding:"required"`
	Quantity    types.Quantity `json:"quantity"`

	// AsOf anchors lifecycle classification; empty means current time.
	AsOf *time.Time `json:"asOf,omitempty"`

	// AllowPartial lets apply consume what stock there is when the demand
	// cannot be covered in full. Ignored by plan.
	AllowPartial bool `json:"allowPartial,omitempty"`
}

// AllocationLineResponse is one row of a returned plan.
type AllocationLineResponse struct {
	BatchID       string     `json:"batchId"`
	BatchNo       string     `json:"batchNo"`
	Quantity      float64    `json:"quantity"`
	QuantityAfter float64    `json:"quantityAfter"`
	UnitPrice     string     `json:"unitPrice"`
	Location      string     `json:"location,omitempty"`
	InboundDate   time.Time  `json:"inboundDate"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	Recommended   bool       `json:"recommended"`
}

// AllocationResponse mirrors the engine result.
type AllocationResponse struct {
	Success   bool                     `json:"success"`
	Lines     []AllocationLineResponse `json:"lines"`
	Allocated float64                  `json:"allocated"`
	Shortage  float64                  `json:"shortage"`
	Message   string                   `json:"message"`
}

// FromAllocationResult converts an engine result to a response DTO.
func FromAllocationResult(r allocation.Result) AllocationResponse {
	lines := make([]AllocationLineResponse, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = AllocationLineResponse{
			BatchID:       l.BatchID.String(),
			BatchNo:       l.BatchNo,
			Quantity:      l.Quantity.Float64(),
			QuantityAfter: l.QuantityAfter.Float64(),
			UnitPrice:     FormatAmount(l.UnitPrice),
			Location:      l.Location,
			InboundDate:   l.InboundDate,
			ExpiryDate:    l.ExpiryDate,
			Recommended:   l.Recommended,
		}
	}

	return AllocationResponse{
		Success:   r.Success,
		Lines:     lines,
		Allocated: r.Allocated.Float64(),
		Shortage:  r.Shortage.Float64(),
		Message:   r.Message,
	}
}
