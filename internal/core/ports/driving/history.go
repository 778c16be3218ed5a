package driving

import (
	"context"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// HistoryService gives access to previously saved reports.
type HistoryService interface {
	// List returns the most recent reports first.
	List(ctx context.Context, limit int) ([]domain.Report, error)

	// Get retrieves a saved report by ID.
	Get(ctx context.Context, id string) (*domain.Report, error)
}
