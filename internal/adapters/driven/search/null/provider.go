// Package null provides a search provider for when no search credentials are configured.
package null

import (
	"context"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
)

// Ensure Provider implements the SearchProvider interface.
var _ driven.SearchProvider = (*Provider)(nil)

// Provider fails every search with domain.ErrSearchUnavailable.
// Analyses still complete, with every chunk reported as not searched.
type Provider struct{}

// NewProvider creates a provider that never searches.
func NewProvider() *Provider {
	return &Provider{}
}

// Search returns domain.ErrSearchUnavailable.
func (p *Provider) Search(_ context.Context, _ string, _ int) ([]domain.SearchCandidate, error) {
	return nil, domain.ErrSearchUnavailable
}
