package delivery

import (
	"context"

	"stockpick/internal/core/id"
)

// ListFilter narrows delivery note listings at the storage level.
// Fine-grained matching (keyword, date ranges, amounts) is the Filter
// function's job and runs in the domain layer, so the semantics live in
// one place.
type ListFilter struct {
	Status Status
	Limit  int
	Offset int
}

// Repository defines storage operations for delivery notes.
type Repository interface {
	// GetByID retrieves a note with its lines
	GetByID(ctx context.Context, noteID id.ID) (*Note, error)

	// List retrieves notes (with lines) matching the coarse filter
	List(ctx context.Context, filter ListFilter) ([]Note, error)

	// Update persists header changes (status, receiving fields)
	Update(ctx context.Context, note *Note) error

	// SaveItems replaces the note's lines
	SaveItems(ctx context.Context, noteID id.ID, items []Item) error
}
