package batch

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Service provides read operations over batches with lifecycle
// classification attached. Classification is always computed against an
// explicit moment so results are reproducible.
type Service struct {
	repo Repository
}

// NewService creates a new batch service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns batches matching the filter, each classified at now.
func (s *Service) List(ctx context.Context, filter ListFilter, now time.Time) ([]Classified, error) {
	batches, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	result := make([]Classified, len(batches))
	for i, b := range batches {
		result[i] = Classified{Batch: b, StatusInfo: Classify(b, now)}
	}
	return result, nil
}

// GetByNumber returns one batch classified at now.
func (s *Service) GetByNumber(ctx context.Context, batchNo string, now time.Time) (*Classified, error) {
	b, err := s.repo.GetByNumber(ctx, batchNo)
	if err != nil {
		return nil, err
	}
	return &Classified{Batch: *b, StatusInfo: Classify(*b, now)}, nil
}

// ListExpiring returns batches with stock that expire within warningDays,
// oldest expiry first.
func (s *Service) ListExpiring(ctx context.Context, filter ListFilter, warningDays int, now time.Time) ([]Classified, error) {
	if warningDays <= 0 {
		warningDays = DefaultWarningDays
	}

	filter.ExcludeEmpty = true
	batches, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	result := make([]Classified, 0)
	for _, b := range batches {
		if ExpiringSoon(b.ExpiryDate, warningDays, now) {
			result = append(result, Classified{Batch: b, StatusInfo: ClassifyWithWindow(b, warningDays, now)})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ExpiryDate.Before(*result[j].ExpiryDate)
	})
	return result, nil
}
