package batch

import (
	"context"

	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
)

// ListFilter narrows batch listings.
type ListFilter struct {
	ItemCode    string
	WarehouseID string

	// ExcludeEmpty drops batches with zero remaining quantity
	ExcludeEmpty bool

	Limit  int
	Offset int
}

// Repository defines storage operations for batches.
type Repository interface {
	// GetByID retrieves a batch by identifier
	GetByID(ctx context.Context, batchID id.ID) (*Batch, error)

	// GetByNumber retrieves a batch by its business key
	GetByNumber(ctx context.Context, batchNo string) (*Batch, error)

	// List retrieves batches with filtering and pagination
	List(ctx context.Context, filter ListFilter) ([]Batch, error)

	// ListCandidates returns all batches for an item/warehouse pair with
	// remaining stock, ordered by inbound date. Lifecycle filtering is a
	// domain concern and happens in the allocation engine, not here.
	ListCandidates(ctx context.Context, itemCode, warehouseID string) ([]Batch, error)

	// Consume decrements remaining quantity of a batch. Fails when the
	// decrement would drive the quantity negative.
	Consume(ctx context.Context, batchID id.ID, qty types.Quantity) error
}
