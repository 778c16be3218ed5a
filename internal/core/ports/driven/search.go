package driven

import (
	"context"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// SearchProvider queries an external web search service.
type SearchProvider interface {
	// Search returns up to limit candidates for query.
	// Errors wrap domain.ErrSearchUnavailable, domain.ErrRateLimited or
	// domain.ErrProviderResponse.
	Search(ctx context.Context, query string, limit int) ([]domain.SearchCandidate, error)
}
