// Package tx defines the transaction management contract used by services.
// The concrete implementation lives in the postgres infrastructure package.
package tx

import (
	"context"
)

// Manager runs functions within a database transaction.
// Nested calls reuse the transaction already carried by the context.
type Manager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
