package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verity/internal/core/domain"
)

func TestReportStore_SaveGetList(t *testing.T) {
	store := NewReportStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, store.SaveReport(ctx, &domain.Report{
			ID:               id,
			OriginalityScore: 90 - i,
			CreatedAt:        base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := store.GetReport(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, 89, got.OriginalityScore)

	list, err := store.ListReports(ctx, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r3", list[0].ID)
	assert.Equal(t, "r2", list[1].ID)

	all, err := store.ListReports(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReportStore_NotFoundAndInvalid(t *testing.T) {
	store := NewReportStore()

	_, err := store.GetReport(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.SaveReport(context.Background(), &domain.Report{}), domain.ErrInvalidInput)
}

func TestScoreRecorder(t *testing.T) {
	rec := NewScoreRecorder()
	doc := domain.DocumentRef{ID: "doc-1", Credential: "tok"}

	require.NoError(t, rec.RecordScore(context.Background(), doc, 72))
	assert.Equal(t, []RecordedScore{{Document: doc, Score: 72}}, rec.Records())

	rec.Err = errors.New("down")
	assert.Error(t, rec.RecordScore(context.Background(), doc, 10))
	assert.Len(t, rec.Records(), 1)
}

func TestSearchProvider(t *testing.T) {
	p := NewSearchProvider(func(query string, _ int) ([]domain.SearchCandidate, error) {
		return []domain.SearchCandidate{{Title: "a"}, {Title: "b"}, {Title: "c"}}, nil
	})

	got, err := p.Search(context.Background(), "q1", 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"q1"}, p.Queries())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Search(ctx, "q2", 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchProvider_NilFunc(t *testing.T) {
	got, err := NewSearchProvider(nil).Search(context.Background(), "q", 5)

	require.NoError(t, err)
	assert.Empty(t, got)
}
