package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
	"github.com/custodia-labs/verity/internal/core/ports/driving"
	"github.com/custodia-labs/verity/internal/highlight"
	"github.com/custodia-labs/verity/internal/logger"
	"github.com/custodia-labs/verity/internal/normalisers/sentence"
	"github.com/custodia-labs/verity/internal/postprocessors/chunker"
	"github.com/custodia-labs/verity/internal/scoring"
)

// Ensure AnalysisService implements the interface.
var _ driving.AnalysisService = (*AnalysisService)(nil)

// AnalysisService runs the originality pipeline over a document's text.
type AnalysisService struct {
	normaliser *sentence.Normaliser
	chunker    *chunker.Chunker
	dispatcher *Dispatcher
	policy     scoring.Policy

	recorder    driven.ScoreRecorder
	reportStore driven.ReportStore
	marker      highlight.Marker
	now         func() time.Time
}

// NewAnalysisService creates an analysis service searching with provider.
// Chunk sizes, pacing and the scoring policy come from settings.
func NewAnalysisService(provider driven.SearchProvider, settings domain.AppSettings) *AnalysisService {
	return &AnalysisService{
		normaliser: sentence.New(),
		chunker: chunker.New(
			chunker.WithMinSize(settings.Chunker.MinSize),
			chunker.WithMaxSize(settings.Chunker.MaxSize),
		),
		dispatcher: NewDispatcher(provider, NewPacer(settings.Search), settings.Search.MaxResults),
		policy:     scoring.PolicyFromSettings(settings.Scoring),
		marker:     highlight.HTMLMarker,
		now:        time.Now,
	}
}

// SetScoreRecorder sets where originality scores are written back.
func (s *AnalysisService) SetScoreRecorder(r driven.ScoreRecorder) {
	s.recorder = r
}

// SetReportStore sets the store used for requests with Save set.
func (s *AnalysisService) SetReportStore(store driven.ReportStore) {
	s.reportStore = store
}

// SetMarker sets the marker used by Highlight.
func (s *AnalysisService) SetMarker(m highlight.Marker) {
	if m != nil {
		s.marker = m
	}
}

// Analyze scores the originality of req.Text.
//
// Search failures degrade the report rather than failing it: a text whose
// every search failed scores 100. The only error returned is the context
// error when ctx is cancelled during the search stage.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.Report, error) {
	logger.Section("Normalise")
	normalised := s.normaliser.Normalise(req.Text, req.RemoveStopwords)
	logger.Debug("Sentences: %d", len(normalised.Sentences))

	logger.Section("Chunk")
	chunks := s.chunker.Chunk(normalised.Sentences)
	logger.Debug("Chunks: %d", len(chunks))

	logger.Section("Search")
	results, err := s.dispatcher.BatchSearch(ctx, chunks)
	if err != nil {
		return nil, err
	}

	logger.Section("Aggregate")
	report := scoring.Aggregate(results, req.Text, s.policy)
	report.ID = uuid.NewString()
	report.DocumentID = req.Document.ID
	report.Filename = req.Filename
	report.Stats.Sentences = len(normalised.Sentences)
	report.CreatedAt = s.now().UTC()

	logger.Info("Originality %d%% (overlap %d%%, %d sources, %d/%d chunks failed)",
		report.OriginalityScore, report.OverlapPercent, len(report.Sources),
		report.Stats.FailedChunks, report.Stats.Chunks)

	s.recordScore(ctx, req.Document, report.OriginalityScore)
	if req.Save {
		s.saveReport(ctx, &report)
	}

	return &report, nil
}

// Highlight marks the segments of source found in text.
func (s *AnalysisService) Highlight(text string, source domain.Source) string {
	return highlight.Highlight(text, source, s.marker)
}

// recordScore writes the score back. Failures are logged and swallowed.
func (s *AnalysisService) recordScore(ctx context.Context, doc domain.DocumentRef, score int) {
	if s.recorder == nil || doc.ID == "" {
		return
	}
	if err := s.recorder.RecordScore(ctx, doc, score); err != nil {
		logger.Warn("Failed to record score for document %s: %v", doc.ID, err)
		return
	}
	logger.Debug("Recorded score %d for document %s", score, doc.ID)
}

// saveReport stores the report in the history. Failures are logged and swallowed.
func (s *AnalysisService) saveReport(ctx context.Context, report *domain.Report) {
	if s.reportStore == nil {
		logger.Warn("No report store configured; report %s not saved", report.ID)
		return
	}
	if err := s.reportStore.SaveReport(ctx, report); err != nil {
		logger.Warn("Failed to save report %s: %v", report.ID, err)
		return
	}
	logger.Debug("Saved report %s", report.ID)
}
