package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
	"github.com/custodia-labs/verity/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit is the number of reports listed when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService reads saved reports.
type HistoryService struct {
	store driven.ReportStore
}

// NewHistoryService creates a history service over store.
func NewHistoryService(store driven.ReportStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns up to limit reports, newest first.
func (h *HistoryService) List(ctx context.Context, limit int) ([]domain.Report, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	reports, err := h.store.ListReports(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Get retrieves a report by ID.
func (h *HistoryService) Get(ctx context.Context, id string) (*domain.Report, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: report id is required", domain.ErrInvalidInput)
	}
	report, err := h.store.GetReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}
	return report, nil
}
