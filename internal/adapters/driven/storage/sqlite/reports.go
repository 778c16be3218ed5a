package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
)

// reportStore implements driven.ReportStore.
type reportStore struct {
	store *Store
}

var _ driven.ReportStore = (*reportStore)(nil)

// SaveReport stores or replaces a report and its sources.
func (r *reportStore) SaveReport(ctx context.Context, report *domain.Report) error {
	if report == nil || report.ID == "" {
		return fmt.Errorf("%w: report id is required", domain.ErrInvalidInput)
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, document_id, filename, originality_score, overlap_percent,
			sentences, chunks, failed_chunks, candidates, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document_id = excluded.document_id,
			filename = excluded.filename,
			originality_score = excluded.originality_score,
			overlap_percent = excluded.overlap_percent,
			sentences = excluded.sentences,
			chunks = excluded.chunks,
			failed_chunks = excluded.failed_chunks,
			candidates = excluded.candidates,
			created_at = excluded.created_at
	`, report.ID, nullString(report.DocumentID), nullString(report.Filename),
		report.OriginalityScore, report.OverlapPercent,
		report.Stats.Sentences, report.Stats.Chunks, report.Stats.FailedChunks, report.Stats.Candidates,
		report.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM report_sources WHERE report_id = ?", report.ID); err != nil {
		return fmt.Errorf("clearing report sources: %w", err)
	}

	for i, src := range report.Sources {
		segments, err := json.Marshal(src.Segments)
		if err != nil {
			return fmt.Errorf("marshalling segments: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO report_sources (report_id, position, title, url, display_name, match_percent, segments)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, report.ID, i, src.Title, src.URL, nullString(src.DisplayName), src.MatchPercent, string(segments))
		if err != nil {
			return fmt.Errorf("saving report source: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// GetReport retrieves a report and its sources by ID.
func (r *reportStore) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	row := r.store.db.QueryRowContext(ctx, `
		SELECT id, document_id, filename, originality_score, overlap_percent,
			sentences, chunks, failed_chunks, candidates, created_at
		FROM reports WHERE id = ?
	`, id)

	report, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	sources, err := r.sources(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Sources = sources

	return report, nil
}

// ListReports returns the newest reports first without their sources.
// A non-positive limit returns every report.
func (r *reportStore) ListReports(ctx context.Context, limit int) ([]domain.Report, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.store.db.QueryContext(ctx, `
		SELECT id, document_id, filename, originality_score, overlap_percent,
			sentences, chunks, failed_chunks, candidates, created_at
		FROM reports
		ORDER BY created_at DESC, id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	return reports, nil
}

func (r *reportStore) sources(ctx context.Context, reportID string) ([]domain.Source, error) {
	rows, err := r.store.db.QueryContext(ctx, `
		SELECT title, url, display_name, match_percent, segments
		FROM report_sources WHERE report_id = ?
		ORDER BY position
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("querying report sources: %w", err)
	}
	defer rows.Close()

	var sources []domain.Source
	for rows.Next() {
		var src domain.Source
		var displayName sql.NullString
		var segments string
		if err := rows.Scan(&src.Title, &src.URL, &displayName, &src.MatchPercent, &segments); err != nil {
			return nil, fmt.Errorf("scanning report source: %w", err)
		}
		if err := json.Unmarshal([]byte(segments), &src.Segments); err != nil {
			return nil, fmt.Errorf("unmarshalling segments: %w", err)
		}
		src.DisplayName = displayName.String
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report sources: %w", err)
	}

	return sources, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*domain.Report, error) {
	var report domain.Report
	var documentID, filename sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&report.ID, &documentID, &filename,
		&report.OriginalityScore, &report.OverlapPercent,
		&report.Stats.Sentences, &report.Stats.Chunks, &report.Stats.FailedChunks, &report.Stats.Candidates,
		&createdAt); err != nil {
		return nil, err
	}

	report.DocumentID = documentID.String
	report.Filename = filename.String
	if createdAt.Valid {
		report.CreatedAt = createdAt.Time.UTC()
	}
	return &report, nil
}

// nullString converts an empty string to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
