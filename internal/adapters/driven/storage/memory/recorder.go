package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
)

// Ensure ScoreRecorder implements the interface.
var _ driven.ScoreRecorder = (*ScoreRecorder)(nil)

// RecordedScore is a score write-back captured by ScoreRecorder.
type RecordedScore struct {
	Document domain.DocumentRef
	Score    int
}

// ScoreRecorder keeps score write-backs in memory.
// Err, when set, is returned from every call.
type ScoreRecorder struct {
	mu      sync.Mutex
	records []RecordedScore
	Err     error
}

// NewScoreRecorder creates an empty recorder.
func NewScoreRecorder() *ScoreRecorder {
	return &ScoreRecorder{}
}

// RecordScore stores the score.
func (r *ScoreRecorder) RecordScore(_ context.Context, doc domain.DocumentRef, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.records = append(r.records, RecordedScore{Document: doc, Score: score})
	return nil
}

// Records returns a copy of the recorded scores in call order.
func (r *ScoreRecorder) Records() []RecordedScore {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedScore, len(r.records))
	copy(out, r.records)
	return out
}
