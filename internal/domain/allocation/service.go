package allocation

import (
	"context"
	"fmt"
	"time"

	"stockpick/internal/core/apperror"
	"stockpick/internal/core/id"
	"stockpick/internal/core/tx"
	"stockpick/internal/core/types"
	"stockpick/internal/domain/batch"
	"stockpick/pkg/logger"
)

// Auditor records applied allocation plans. Implemented by the postgres
// audit trail; nil disables auditing.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes any) error
}

// Service runs the FIFO engine over stored batches and, for Apply,
// decrements batch stock inside a transaction.
type Service struct {
	batches   batch.Repository
	txManager tx.Manager
	audit     Auditor
}

// NewService creates a new allocation service.
func NewService(batches batch.Repository, txManager tx.Manager, audit Auditor) *Service {
	return &Service{
		batches:   batches,
		txManager: txManager,
		audit:     audit,
	}
}

// PlanRequest describes an allocation demand against stored stock.
type PlanRequest struct {
	ItemCode    string
	WarehouseID string
	Quantity    types.Quantity

	// Now anchors lifecycle classification; zero means current time.
	Now time.Time
}

func (r PlanRequest) at() time.Time {
	if r.Now.IsZero() {
		return time.Now().UTC()
	}
	return r.Now
}

// Plan loads candidate batches and produces a fulfillment plan.
// No stock is touched.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (Result, error) {
	if req.ItemCode == "" {
		return Result{}, apperror.NewValidation("itemCode is required")
	}
	if req.WarehouseID == "" {
		return Result{}, apperror.NewValidation("warehouseId is required")
	}

	candidates, err := s.batches.ListCandidates(ctx, req.ItemCode, req.WarehouseID)
	if err != nil {
		return Result{}, fmt.Errorf("list candidates: %w", err)
	}

	result := Plan(Request{
		ItemCode:    req.ItemCode,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
		Batches:     candidates,
		Now:         req.at(),
	})

	logger.Debug(ctx, "allocation planned",
		"item_code", req.ItemCode,
		"warehouse_id", req.WarehouseID,
		"requested", req.Quantity,
		"allocated", result.Allocated,
		"shortage", result.Shortage,
	)

	return result, nil
}

// Apply plans and consumes stock in one transaction. When the eligible
// stock cannot cover the demand, the plan is applied only if allowPartial
// is set; otherwise nothing is consumed and an insufficient-stock error is
// returned.
func (s *Service) Apply(ctx context.Context, req PlanRequest, allowPartial bool) (Result, error) {
	var result Result

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		planned, err := s.Plan(ctx, req)
		if err != nil {
			return err
		}

		if !planned.Success && !allowPartial {
			return apperror.NewInsufficientStock(
				req.ItemCode,
				req.Quantity.Float64(),
				planned.Allocated.Float64(),
			)
		}

		for _, line := range planned.Lines {
			if err := s.batches.Consume(ctx, line.BatchID, line.Quantity); err != nil {
				return fmt.Errorf("consume batch %s: %w", line.BatchNo, err)
			}
		}

		// One audit entry per applied plan, keyed by the first consumed batch.
		if s.audit != nil && len(planned.Lines) > 0 {
			if err := s.audit.LogChange(ctx, "Batch", planned.Lines[0].BatchID, "allocate", planned); err != nil {
				return fmt.Errorf("audit allocation: %w", err)
			}
		}

		result = planned
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Info(ctx, "allocation applied",
		"item_code", req.ItemCode,
		"warehouse_id", req.WarehouseID,
		"requested", req.Quantity,
		"allocated", result.Allocated,
		"shortage", result.Shortage,
		"batches", len(result.Lines),
	)

	return result, nil
}
