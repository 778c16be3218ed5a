package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]domain.Report
}

// NewReportStore creates a new in-memory report store.
func NewReportStore() *ReportStore {
	return &ReportStore{
		reports: make(map[string]domain.Report),
	}
}

// SaveReport stores or replaces a report.
func (s *ReportStore) SaveReport(_ context.Context, report *domain.Report) error {
	if report == nil || report.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = *report
	return nil
}

// GetReport retrieves a report by ID.
func (s *ReportStore) GetReport(_ context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &report, nil
}

// ListReports returns the most recent reports first.
// A non-positive limit returns every report.
func (s *ReportStore) ListReports(_ context.Context, limit int) ([]domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reports := make([]domain.Report, 0, len(s.reports))
	for _, r := range s.reports {
		reports = append(reports, r)
	}
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].CreatedAt.Equal(reports[j].CreatedAt) {
			return reports[i].ID < reports[j].ID
		}
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}
