package driven

import (
	"context"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// ScoreRecorder persists an originality score against a document.
type ScoreRecorder interface {
	// RecordScore stores score for the referenced document.
	RecordScore(ctx context.Context, doc domain.DocumentRef, score int) error
}
