package driven

import (
	"context"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// ReportStore persists analysis reports.
// Backed by SQLite.
type ReportStore interface {
	// SaveReport stores or replaces a report.
	SaveReport(ctx context.Context, report *domain.Report) error

	// GetReport retrieves a report by ID.
	// Returns domain.ErrNotFound if no report has that ID.
	GetReport(ctx context.Context, id string) (*domain.Report, error)

	// ListReports returns the most recent reports first, at most limit.
	ListReports(ctx context.Context, limit int) ([]domain.Report, error)
}
