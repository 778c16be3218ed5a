package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// Policy defaults. These reproduce the original scoring heuristic and are
// not meant to be tuned without a reason.
const (
	// DefaultThresholdPercent is the minimum similarity percent for a pair to count.
	DefaultThresholdPercent = 3.0

	// DefaultMinOriginality is the floor applied to the originality score.
	DefaultMinOriginality = 5

	// DefaultMinChunkSize is the minimum number of sentences per chunk.
	DefaultMinChunkSize = 3

	// DefaultMaxChunkSize is the maximum number of sentences per chunk.
	DefaultMaxChunkSize = 5

	// DefaultMaxResults is the number of candidates requested per chunk.
	DefaultMaxResults = 5

	// DefaultSearchDelay is the pause between successive provider calls.
	DefaultSearchDelay = 2000 * time.Millisecond

	// DefaultRequestsPerMinute is the token bucket rate for PacingRateLimited.
	DefaultRequestsPerMinute = 30.0
)

// PacingMode defines how the dispatcher spaces provider calls.
type PacingMode string

// Available pacing modes.
const (
	// PacingFixed waits a fixed delay after each call completes.
	PacingFixed PacingMode = "fixed"

	// PacingRateLimited uses a token bucket and backs off on 429 responses.
	PacingRateLimited PacingMode = "rate_limited"
)

// IsValid returns true if the pacing mode is recognised.
func (m PacingMode) IsValid() bool {
	switch m {
	case PacingFixed, PacingRateLimited:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m PacingMode) String() string {
	return string(m)
}

// Description returns a human-readable description of the mode.
func (m PacingMode) Description() string {
	switch m {
	case PacingFixed:
		return "Fixed delay between requests"
	case PacingRateLimited:
		return "Token bucket with 429 back-off"
	default:
		return unknownDescription
	}
}

// SearchSettings configures the external search provider.
type SearchSettings struct {
	// APIKey is the provider API key.
	APIKey string

	// EngineID is the programmable search engine identifier.
	EngineID string

	// Endpoint overrides the provider base URL (tests, proxies).
	Endpoint string

	// MaxResults is the number of candidates requested per chunk.
	MaxResults int

	// Pacing selects how calls are spaced.
	Pacing PacingMode

	// Delay is the fixed delay used by PacingFixed.
	Delay time.Duration

	// RequestsPerMinute is the sustained rate used by PacingRateLimited.
	RequestsPerMinute float64
}

// IsConfigured returns true if the provider credentials are set.
func (s SearchSettings) IsConfigured() bool {
	return s.APIKey != "" && s.EngineID != ""
}

// ChunkerSettings bounds chunk sizes in sentences.
type ChunkerSettings struct {
	MinSize int
	MaxSize int
}

// ScoringSettings holds the aggregation policy constants.
type ScoringSettings struct {
	// ThresholdPercent is the similarity percent a pair must exceed.
	ThresholdPercent float64

	// MinOriginality is the floor of the originality score.
	MinOriginality int
}

// NormaliserSettings configures text normalisation.
type NormaliserSettings struct {
	RemoveStopwords bool
}

// RecorderSettings configures the score write-back.
type RecorderSettings struct {
	// BaseURL is the document record API root. Empty disables HTTP write-back.
	BaseURL string

	// Token is the default credential when the caller supplies none.
	Token string
}

// IsConfigured returns true if HTTP write-back is enabled.
func (r RecorderSettings) IsConfigured() bool {
	return r.BaseURL != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	Search     SearchSettings
	Chunker    ChunkerSettings
	Scoring    ScoringSettings
	Normaliser NormaliserSettings
	Recorder   RecorderSettings
}

// DefaultAppSettings returns settings matching the original heuristic.
// Search credentials are left empty.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Search: SearchSettings{
			MaxResults:        DefaultMaxResults,
			Pacing:            PacingFixed,
			Delay:             DefaultSearchDelay,
			RequestsPerMinute: DefaultRequestsPerMinute,
		},
		Chunker: ChunkerSettings{
			MinSize: DefaultMinChunkSize,
			MaxSize: DefaultMaxChunkSize,
		},
		Scoring: ScoringSettings{
			ThresholdPercent: DefaultThresholdPercent,
			MinOriginality:   DefaultMinOriginality,
		},
		Normaliser: NormaliserSettings{
			RemoveStopwords: true,
		},
	}
}

// Validate checks settings for values the pipeline cannot run with.
func (s AppSettings) Validate() error {
	if s.Chunker.MinSize < 1 {
		return fmt.Errorf("%w: chunker min size must be at least 1", ErrInvalidInput)
	}
	if s.Chunker.MaxSize < s.Chunker.MinSize {
		return fmt.Errorf("%w: chunker max size %d below min size %d",
			ErrInvalidInput, s.Chunker.MaxSize, s.Chunker.MinSize)
	}
	if s.Search.MaxResults < 1 || s.Search.MaxResults > 10 {
		return fmt.Errorf("%w: max results must be between 1 and 10", ErrInvalidInput)
	}
	if !s.Search.Pacing.IsValid() {
		return fmt.Errorf("%w: unknown pacing mode %q", ErrInvalidInput, s.Search.Pacing)
	}
	if s.Search.Delay < 0 {
		return fmt.Errorf("%w: search delay must not be negative", ErrInvalidInput)
	}
	if s.Search.Pacing == PacingRateLimited && s.Search.RequestsPerMinute <= 0 {
		return fmt.Errorf("%w: requests per minute must be positive", ErrInvalidInput)
	}
	if s.Scoring.ThresholdPercent < 0 || s.Scoring.ThresholdPercent >= 100 {
		return fmt.Errorf("%w: threshold percent must be in [0,100)", ErrInvalidInput)
	}
	if s.Scoring.MinOriginality < 0 || s.Scoring.MinOriginality > 100 {
		return fmt.Errorf("%w: min originality must be in [0,100]", ErrInvalidInput)
	}
	return nil
}

// AllPacingModes returns all available pacing modes.
func AllPacingModes() []PacingMode {
	return []PacingMode{PacingFixed, PacingRateLimited}
}
