package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
)

// Ensure SearchProvider implements the interface.
var _ driven.SearchProvider = (*SearchProvider)(nil)

// SearchFunc answers a query for SearchProvider.
type SearchFunc func(query string, limit int) ([]domain.SearchCandidate, error)

// SearchProvider is a scripted search provider.
// Every query is recorded; results come from the configured function.
type SearchProvider struct {
	mu      sync.Mutex
	fn      SearchFunc
	queries []string
}

// NewSearchProvider creates a provider answering with fn.
// A nil fn answers every query with no candidates.
func NewSearchProvider(fn SearchFunc) *SearchProvider {
	if fn == nil {
		fn = func(string, int) ([]domain.SearchCandidate, error) { return nil, nil }
	}
	return &SearchProvider{fn: fn}
}

// Search records the query and returns the scripted answer, truncated to limit.
func (p *SearchProvider) Search(ctx context.Context, query string, limit int) ([]domain.SearchCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.queries = append(p.queries, query)
	p.mu.Unlock()

	candidates, err := p.fn(query, limit)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// Queries returns every query received, in order.
func (p *SearchProvider) Queries() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.queries))
	copy(out, p.queries)
	return out
}
