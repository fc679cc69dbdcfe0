package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stockpick/internal/core/apperror"
	"stockpick/internal/core/id"
	"stockpick/internal/domain/delivery"
)

const (
	deliveryNotesTable = "delivery_notes"
	deliveryItemsTable = "delivery_note_items"
)

var deliveryNoteColumns = []string{
	"id", "note_no", "order_no",
	"supplier_id", "supplier_name",
	"status", "total_amount",
	"delivery_date", "received_date",
	"receiver", "department",
	"quality_passed", "remark",
	"created_at", "updated_at",
}

var deliveryItemColumns = []string{
	"line_id", "line_no",
	"item_code", "item_name", "unit",
	"ordered_quantity", "delivered_quantity", "received_quantity",
	"status",
}

// DeliveryRepo implements delivery.Repository.
type DeliveryRepo struct {
	txManager *TxManager
	builder   squirrel.StatementBuilderType
}

// Compile-time check.
var _ delivery.Repository = (*DeliveryRepo)(nil)

// NewDeliveryRepo creates a new delivery note repository.
func NewDeliveryRepo(txManager *TxManager) *DeliveryRepo {
	return &DeliveryRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a note with its lines.
func (r *DeliveryRepo) GetByID(ctx context.Context, noteID id.ID) (*delivery.Note, error) {
	q := r.builder.Select(deliveryNoteColumns...).From(deliveryNotesTable).
		Where(squirrel.Eq{"id": noteID}).Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var note delivery.Note
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &note, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("delivery note", noteID)
		}
		return nil, fmt.Errorf("get delivery note: %w", err)
	}

	items, err := r.getItems(ctx, noteID)
	if err != nil {
		return nil, err
	}
	note.Items = items

	return &note, nil
}

// List retrieves notes (with lines) matching the coarse filter.
func (r *DeliveryRepo) List(ctx context.Context, filter delivery.ListFilter) ([]delivery.Note, error) {
	q := r.builder.Select(deliveryNoteColumns...).From(deliveryNotesTable).
		OrderBy("delivery_date DESC", "note_no DESC")

	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
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

	var notes []delivery.Note
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &notes, sql, args...); err != nil {
		return nil, fmt.Errorf("select delivery notes: %w", err)
	}

	for i := range notes {
		items, err := r.getItems(ctx, notes[i].ID)
		if err != nil {
			return nil, err
		}
		notes[i].Items = items
	}

	return notes, nil
}

// Update persists header changes.
func (r *DeliveryRepo) Update(ctx context.Context, note *delivery.Note) error {
	q := r.builder.Update(deliveryNotesTable).
		Set("status", note.Status).
		Set("received_date", note.ReceivedDate).
		Set("receiver", note.Receiver).
		Set("department", note.Department).
		Set("quality_passed", note.QualityPassed).
		Set("remark", note.Remark).
		Set("updated_at", note.UpdatedAt).
		Where(squirrel.Eq{"id": note.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	tag, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update delivery note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("delivery note", note.ID)
	}

	return nil
}

// SaveItems replaces the note's lines.
func (r *DeliveryRepo) SaveItems(ctx context.Context, noteID id.ID, items []delivery.Item) error {
	del := r.builder.Delete(deliveryItemsTable).Where(squirrel.Eq{"note_id": noteID})
	sql, args, err := del.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}

	if len(items) == 0 {
		return nil
	}

	ins := r.builder.Insert(deliveryItemsTable).
		Columns(append([]string{"note_id"}, deliveryItemColumns...)...)
	for _, item := range items {
		ins = ins.Values(
			noteID,
			item.LineID, item.LineNo,
			item.ItemCode, item.ItemName, item.Unit,
			item.OrderedQuantity, item.DeliveredQuantity, item.ReceivedQuantity,
			item.Status,
		)
	}

	sql, args, err = ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert items: %w", err)
	}

	return nil
}

func (r *DeliveryRepo) getItems(ctx context.Context, noteID id.ID) ([]delivery.Item, error) {
	q := r.builder.Select(deliveryItemColumns...).From(deliveryItemsTable).
		Where(squirrel.Eq{"note_id": noteID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []delivery.Item
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}

	return items, nil
}
