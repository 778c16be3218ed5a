package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
)

// ScoreRecorder keeps the latest originality score per document in SQLite.
type ScoreRecorder struct {
	store *Store
}

var _ driven.ScoreRecorder = (*ScoreRecorder)(nil)

// RecordScore stores score as the latest for the document.
// The credential is ignored; the local database needs none.
func (r *ScoreRecorder) RecordScore(ctx context.Context, doc domain.DocumentRef, score int) error {
	if doc.ID == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	_, err := r.store.db.ExecContext(ctx, `
		INSERT INTO document_scores (document_id, originality_score, recorded_at)
		VALUES (?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			originality_score = excluded.originality_score,
			recorded_at = excluded.recorded_at
	`, doc.ID, score, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("recording score: %w", err)
	}
	return nil
}

// Score returns the latest recorded score for a document.
func (r *ScoreRecorder) Score(ctx context.Context, documentID string) (int, error) {
	var score int
	err := r.store.db.QueryRowContext(ctx,
		"SELECT originality_score FROM document_scores WHERE document_id = ?", documentID,
	).Scan(&score)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("reading score: %w", err)
	}
	return score, nil
}
