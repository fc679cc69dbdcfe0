package delivery

import (
	"context"
	"fmt"
	"time"

	"stockpick/internal/core/apperror"
	"stockpick/internal/core/id"
	"stockpick/internal/core/tx"
	"stockpick/pkg/logger"
)

// Auditor records workflow changes. Implemented by the postgres audit
// trail; nil disables auditing.
type Auditor interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action string, changes any) error
}

// Service drives the delivery note receiving workflow. All status changes
// go through the transition table in status.go; the service only adds
// persistence, logging, and the audit trail around them.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     Auditor
}

// NewService creates a new delivery note service.
func NewService(repo Repository, txManager tx.Manager, audit Auditor) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		audit:     audit,
	}
}

// List returns notes matching the criteria. Storage narrows by status and
// page; the rest of the criteria are applied by the pure Filter function.
func (s *Service) List(ctx context.Context, criteria Criteria, page ListFilter) ([]Note, error) {
	page.Status = criteria.Status
	notes, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list delivery notes: %w", err)
	}
	return Filter(notes, criteria), nil
}

// GetByID retrieves a note with its lines.
func (s *Service) GetByID(ctx context.Context, noteID id.ID) (*Note, error) {
	return s.repo.GetByID(ctx, noteID)
}

// Receive validates the header and line decisions, stamps the receiving
// fields, and advances the note to pending_inspection. All validation
// messages are returned at once inside a single error.
func (s *Service) Receive(ctx context.Context, noteID id.ID, form HeaderForm, decisions map[id.ID]Decision) (*Note, error) {
	note, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if !note.CanReceive() {
		return nil, apperror.NewIllegalTransition(string(note.Status), string(StatusPendingInspection))
	}

	errs := ValidateReceiptHeader(form)
	lineResult := ValidateReceiveItems(*note, decisions)
	errs = append(errs, lineResult.Errors...)
	if len(errs) > 0 {
		return nil, apperror.NewValidation("receiving form has errors").
			WithDetail("errors", errs)
	}

	note.ReceivedDate = form.ReceivedDate
	note.Receiver = form.Receiver
	note.Department = form.Department
	note.Status = StatusPendingInspection
	note.Items = lineResult.Items
	note.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, note, "receive"); err != nil {
		return nil, err
	}

	logger.Info(ctx, "delivery note received",
		"note_id", note.ID,
		"note_no", note.NoteNo,
		"received_lines", lineResult.Summary.Received,
		"rejected_lines", lineResult.Summary.Rejected,
	)

	return note, nil
}

// Inspect records the quality check outcome and advances the note to
// pending_archive.
func (s *Service) Inspect(ctx context.Context, noteID id.ID, passed bool) (*Note, error) {
	return s.transition(ctx, noteID, "inspect", func(n *Note) error {
		if !n.CanInspect() {
			return apperror.NewIllegalTransition(string(n.Status), string(StatusPendingArchive))
		}
		n.QualityPassed = passed
		n.Status = StatusPendingArchive
		return nil
	})
}

// Archive advances the note to pending_warehouse. Requires the quality
// check to have passed.
func (s *Service) Archive(ctx context.Context, noteID id.ID) (*Note, error) {
	return s.transition(ctx, noteID, "archive", func(n *Note) error {
		if !n.CanArchive() {
			return apperror.NewIllegalTransition(string(n.Status), string(StatusPendingWarehouse)).
				WithDetail("quality_passed", n.QualityPassed)
		}
		n.Status = StatusPendingWarehouse
		return nil
	})
}

// Warehouse completes the workflow: goods are put away.
func (s *Service) Warehouse(ctx context.Context, noteID id.ID) (*Note, error) {
	return s.transition(ctx, noteID, "warehouse", func(n *Note) error {
		if !n.CanWarehouse() {
			return apperror.NewIllegalTransition(string(n.Status), string(StatusCompleted))
		}
		n.Status = StatusCompleted
		return nil
	})
}

// Reject moves the note to the absorbing rejected state. Only legal from
// the early workflow stages.
func (s *Service) Reject(ctx context.Context, noteID id.ID, reason string) (*Note, error) {
	return s.transition(ctx, noteID, "reject", func(n *Note) error {
		if !n.CanReject() {
			return apperror.NewIllegalTransition(string(n.Status), string(StatusRejected))
		}
		n.Status = StatusRejected
		if reason != "" {
			n.Remark = reason
		}
		return nil
	})
}

func (s *Service) transition(ctx context.Context, noteID id.ID, action string, apply func(*Note) error) (*Note, error) {
	note, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}

	from := note.Status
	if err := apply(note); err != nil {
		return nil, err
	}
	note.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, note, action); err != nil {
		return nil, err
	}

	logger.Info(ctx, "delivery note status changed",
		"note_id", note.ID,
		"note_no", note.NoteNo,
		"action", action,
		"from", from,
		"to", note.Status,
	)

	return note, nil
}

func (s *Service) save(ctx context.Context, note *Note, action string) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, note); err != nil {
			return fmt.Errorf("update note: %w", err)
		}
		if len(note.Items) > 0 {
			if err := s.repo.SaveItems(ctx, note.ID, note.Items); err != nil {
				return fmt.Errorf("save items: %w", err)
			}
		}
		if s.audit != nil {
			if err := s.audit.LogChange(ctx, "DeliveryNote", note.ID, action, note); err != nil {
				return fmt.Errorf("audit: %w", err)
			}
		}
		return nil
	})
}
