package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
	"github.com/custodia-labs/verity/internal/dispatch"
	"github.com/custodia-labs/verity/internal/logger"
)

// Dispatcher sends one search per chunk through a paced queue.
type Dispatcher struct {
	provider driven.SearchProvider
	queue    *dispatch.Queue
	limit    int
}

// NewDispatcher creates a dispatcher requesting limit candidates per chunk.
// A nil pacer runs searches back to back.
func NewDispatcher(provider driven.SearchProvider, pacer dispatch.Pacer, limit int) *Dispatcher {
	if limit <= 0 {
		limit = domain.DefaultMaxResults
	}
	return &Dispatcher{
		provider: provider,
		queue:    dispatch.NewQueue(pacer),
		limit:    limit,
	}
}

// NewPacer builds the pacer selected by the search settings.
func NewPacer(s domain.SearchSettings) dispatch.Pacer {
	if s.Pacing == domain.PacingRateLimited {
		return dispatch.NewRateLimiter(dispatch.RateLimitConfig{
			RequestsPerMinute: s.RequestsPerMinute,
			BurstSize:         1,
		})
	}
	return dispatch.NewFixedDelay(s.Delay)
}

// BatchSearch searches every chunk in order and returns one result per chunk.
//
// A failed search is recorded on its result and the batch continues. The
// returned error is non-nil only when ctx is cancelled; the results are still
// complete, with chunks that never ran marked domain.ErrCancelled. If the
// pacer fails for any other reason the remaining chunks are marked
// domain.ErrSearchUnavailable and no error is returned.
func (d *Dispatcher) BatchSearch(ctx context.Context, chunks []domain.Chunk) ([]domain.ChunkSearchResult, error) {
	results := make([]domain.ChunkSearchResult, len(chunks))
	tasks := make([]dispatch.Task, len(chunks))

	for i, chunk := range chunks {
		results[i] = domain.ChunkSearchResult{
			Chunk: chunk,
			Query: domain.NewSearchQuery(chunk),
		}
		tasks[i] = func(ctx context.Context) {
			d.search(ctx, &results[i])
		}
	}

	started, err := d.queue.Run(ctx, tasks)
	if err == nil {
		return results, nil
	}

	if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("Search cancelled after %d of %d chunks: %v", started, len(chunks), err)
		for i := started; i < len(results); i++ {
			results[i].Err = domain.ErrCancelled
		}
		return results, fmt.Errorf("%w: %w", domain.ErrCancelled, err)
	}

	logger.Warn("Search stopped after %d of %d chunks: %v", started, len(chunks), err)
	for i := started; i < len(results); i++ {
		results[i].Err = fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}
	return results, nil
}

func (d *Dispatcher) search(ctx context.Context, result *domain.ChunkSearchResult) {
	query := result.Query.Text
	if query == "" {
		return
	}

	logger.Debug("Chunk %d: searching %q", result.Chunk.Position, query)
	candidates, err := d.provider.Search(ctx, query, d.limit)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			if t, ok := d.queue.Pacer().(dispatch.Throttled); ok {
				t.RecordRateLimitError(0)
			}
		}
		logger.Warn("Chunk %d: search failed: %v", result.Chunk.Position, err)
		result.Err = err
		result.Candidates = nil
		return
	}

	logger.Debug("Chunk %d: %d candidates", result.Chunk.Position, len(candidates))
	result.Candidates = candidates
}
