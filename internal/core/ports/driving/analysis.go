package driving

import (
	"context"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// AnalysisService scores the originality of a text.
type AnalysisService interface {
	// Analyze runs the full pipeline over the request text.
	// The only error returned is a context error; search failures degrade
	// the report instead.
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.Report, error)

	// Highlight returns text with the segments matched by source marked up.
	Highlight(text string, source domain.Source) string
}
