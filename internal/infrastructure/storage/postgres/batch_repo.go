package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpick/internal/core/apperror"
	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
	"stockpick/internal/domain/batch"
)

const batchesTable = "batches"

var batchColumns = []string{
	"id", "batch_no", "item_code", "item_name",
	"warehouse_id", "location",
	"inbound_date", "production_date", "expiry_date",
	"quantity", "unit_price",
	"supplier_id", "remark",
	"created_at", "updated_at",
}

// BatchRepo implements batch.Repository.
type BatchRepo struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
}

// Compile-time check.
var _ batch.Repository = (*BatchRepo)(nil)

// NewBatchRepo creates a new batch repository.
func NewBatchRepo(txManager *TxManager) *BatchRepo {
	return &BatchRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a batch by identifier.
func (r *BatchRepo) GetByID(ctx context.Context, batchID id.ID) (*batch.Batch, error) {
	return r.getOne(ctx, squirrel.Eq{"id": batchID})
}

// GetByNumber retrieves a batch by its business key.
func (r *BatchRepo) GetByNumber(ctx context.Context, batchNo string) (*batch.Batch, error) {
	return r.getOne(ctx, squirrel.Eq{"batch_no": batchNo})
}

func (r *BatchRepo) getOne(ctx context.Context, where squirrel.Eq) (*batch.Batch, error) {
	q := r.builder.Select(batchColumns...).From(batchesTable).Where(where).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var b batch.Batch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("batch", where)
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}

	return &b, nil
}

// List retrieves batches with filtering and pagination.
func (r *BatchRepo) List(ctx context.Context, filter batch.ListFilter) ([]batch.Batch, error) {
	q := r.builder.Select(batchColumns...).From(batchesTable).
		OrderBy("inbound_date", "batch_no")

	if filter.ItemCode != "" {
		q = q.Where(squirrel.Eq{"item_code": filter.ItemCode})
	}
	if filter.WarehouseID != "" {
		q = q.Where(squirrel.Eq{"warehouse_id": filter.WarehouseID})
	}
	if filter.ExcludeEmpty {
		q = q.Where(squirrel.Gt{"quantity": 0})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var batches []batch.Batch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &batches, sql, args...); err != nil {
		return nil, fmt.Errorf("select batches: %w", err)
	}

	return batches, nil
}

// ListCandidates returns batches with stock for an item/warehouse pair,
// oldest inbound first. Lifecycle eligibility is decided by the allocation
// engine, not the database.
func (r *BatchRepo) ListCandidates(ctx context.Context, itemCode, warehouseID string) ([]batch.Batch, error) {
	q := r.builder.Select(batchColumns...).From(batchesTable).
		Where(squirrel.Eq{
			"item_code":    itemCode,
			"warehouse_id": warehouseID,
		}).
		Where(squirrel.Gt{"quantity": 0}).
		OrderBy("inbound_date", "batch_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var batches []batch.Batch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &batches, sql, args...); err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}

	return batches, nil
}

// Consume decrements remaining quantity of a batch. The quantity guard in
// the WHERE clause makes concurrent over-consumption impossible: a
// competing transaction that already drained the batch leaves nothing to
// match, and the zero row count surfaces as a conflict.
func (r *BatchRepo) Consume(ctx context.Context, batchID id.ID, qty types.Quantity) error {
	if !qty.IsPositive() {
		return apperror.NewValidation("consume quantity must be positive")
	}

	q := r.builder.Update(batchesTable).
		Set("quantity", squirrel.Expr("quantity - ?", qty)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": batchID}).
		Where(squirrel.GtOrEq{"quantity": qty})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("consume batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewConflict("batch stock changed concurrently").
			WithDetail("batch_id", batchID)
	}

	return nil
}
