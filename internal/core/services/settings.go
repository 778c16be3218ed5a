package services

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
	"github.com/custodia-labs/verity/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeySearchAPIKey     = "search.api_key"
	KeySearchEngineID   = "search.engine_id"
	KeySearchEndpoint   = "search.endpoint"
	KeySearchMaxResults = "search.max_results"
	KeySearchPacing     = "search.pacing"
	KeySearchDelayMS    = "search.delay_ms"
	KeySearchRate       = "search.requests_per_minute"
	KeyChunkerMinSize   = "chunker.min_size"
	KeyChunkerMaxSize   = "chunker.max_size"
	KeyScoringThreshold = "scoring.threshold_percent"
	KeyScoringFloor     = "scoring.min_originality"
	KeyRemoveStopwords  = "normaliser.remove_stopwords"
	KeyRecorderBaseURL  = "recorder.base_url"
	KeyRecorderToken    = "recorder.token"
)

// settingSetter parses a raw value into the settings field for one key.
type settingSetter func(s *domain.AppSettings, raw string) error

var settingSetters = map[string]settingSetter{
	KeySearchAPIKey:   func(s *domain.AppSettings, v string) error { s.Search.APIKey = v; return nil },
	KeySearchEngineID: func(s *domain.AppSettings, v string) error { s.Search.EngineID = v; return nil },
	KeySearchEndpoint: func(s *domain.AppSettings, v string) error { s.Search.Endpoint = v; return nil },
	KeySearchMaxResults: func(s *domain.AppSettings, v string) error {
		return parseInt(v, &s.Search.MaxResults)
	},
	KeySearchPacing: func(s *domain.AppSettings, v string) error {
		mode := domain.PacingMode(v)
		if !mode.IsValid() {
			return fmt.Errorf("%w: unknown pacing mode %q", domain.ErrInvalidInput, v)
		}
		s.Search.Pacing = mode
		return nil
	},
	KeySearchDelayMS: func(s *domain.AppSettings, v string) error {
		var ms int
		if err := parseInt(v, &ms); err != nil {
			return err
		}
		s.Search.Delay = time.Duration(ms) * time.Millisecond
		return nil
	},
	KeySearchRate: func(s *domain.AppSettings, v string) error {
		return parseFloat(v, &s.Search.RequestsPerMinute)
	},
	KeyChunkerMinSize: func(s *domain.AppSettings, v string) error { return parseInt(v, &s.Chunker.MinSize) },
	KeyChunkerMaxSize: func(s *domain.AppSettings, v string) error { return parseInt(v, &s.Chunker.MaxSize) },
	KeyScoringThreshold: func(s *domain.AppSettings, v string) error {
		return parseFloat(v, &s.Scoring.ThresholdPercent)
	},
	KeyScoringFloor: func(s *domain.AppSettings, v string) error { return parseInt(v, &s.Scoring.MinOriginality) },
	KeyRemoveStopwords: func(s *domain.AppSettings, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %q is not a boolean", domain.ErrInvalidInput, v)
		}
		s.Normaliser.RemoveStopwords = b
		return nil
	},
	KeyRecorderBaseURL: func(s *domain.AppSettings, v string) error { s.Recorder.BaseURL = v; return nil },
	KeyRecorderToken:   func(s *domain.AppSettings, v string) error { s.Recorder.Token = v; return nil },
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or malformed keys fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			APIKey:            s.configStore.GetString(KeySearchAPIKey),
			EngineID:          s.configStore.GetString(KeySearchEngineID),
			Endpoint:          s.configStore.GetString(KeySearchEndpoint),
			MaxResults:        s.getInt(KeySearchMaxResults, defaults.Search.MaxResults),
			Pacing:            s.getPacing(defaults.Search.Pacing),
			Delay:             time.Duration(s.getInt(KeySearchDelayMS, int(defaults.Search.Delay/time.Millisecond))) * time.Millisecond,
			RequestsPerMinute: s.getFloat(KeySearchRate, defaults.Search.RequestsPerMinute),
		},
		Chunker: domain.ChunkerSettings{
			MinSize: s.getInt(KeyChunkerMinSize, defaults.Chunker.MinSize),
			MaxSize: s.getInt(KeyChunkerMaxSize, defaults.Chunker.MaxSize),
		},
		Scoring: domain.ScoringSettings{
			ThresholdPercent: s.getFloat(KeyScoringThreshold, defaults.Scoring.ThresholdPercent),
			MinOriginality:   s.getInt(KeyScoringFloor, defaults.Scoring.MinOriginality),
		},
		Normaliser: domain.NormaliserSettings{
			RemoveStopwords: s.getBool(KeyRemoveStopwords, defaults.Normaliser.RemoveStopwords),
		},
		Recorder: domain.RecorderSettings{
			BaseURL: s.configStore.GetString(KeyRecorderBaseURL),
			Token:   s.configStore.GetString(KeyRecorderToken),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
// Empty credentials are not written so they never clear a stored value.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeySearchEndpoint, settings.Search.Endpoint},
		{KeySearchEngineID, settings.Search.EngineID},
		{KeySearchMaxResults, settings.Search.MaxResults},
		{KeySearchPacing, settings.Search.Pacing.String()},
		{KeySearchDelayMS, int(settings.Search.Delay / time.Millisecond)},
		{KeySearchRate, settings.Search.RequestsPerMinute},
		{KeyChunkerMinSize, settings.Chunker.MinSize},
		{KeyChunkerMaxSize, settings.Chunker.MaxSize},
		{KeyScoringThreshold, settings.Scoring.ThresholdPercent},
		{KeyScoringFloor, settings.Scoring.MinOriginality},
		{KeyRemoveStopwords, settings.Normaliser.RemoveStopwords},
		{KeyRecorderBaseURL, settings.Recorder.BaseURL},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.Search.APIKey != "" {
		if err := s.configStore.Set(KeySearchAPIKey, settings.Search.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", KeySearchAPIKey, err)
		}
	}
	if settings.Recorder.Token != "" {
		if err := s.configStore.Set(KeyRecorderToken, settings.Recorder.Token); err != nil {
			return fmt.Errorf("save %s: %w", KeyRecorderToken, err)
		}
	}

	return nil
}

// Set updates a single setting by its config key and saves.
func (s *SettingsService) Set(key, value string) error {
	setter, ok := settingSetters[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	if err := setter(settings, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	return s.Save(settings)
}

// Location returns the backing config store's path.
func (s *SettingsService) Location() string {
	return s.configStore.Path()
}

// Keys lists the config keys accepted by Set, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.
// A key that is present wins even when its value is zero.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch val.(type) {
	case int, int64:
		return s.configStore.GetInt(key)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	switch val.(type) {
	case float64, int, int64:
		return s.configStore.GetFloat(key)
	default:
		return defaultVal
	}
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	if _, ok := val.(bool); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getPacing(defaultVal domain.PacingMode) domain.PacingMode {
	mode := domain.PacingMode(s.configStore.GetString(KeySearchPacing))
	if !mode.IsValid() {
		return defaultVal
	}
	return mode
}

func parseInt(raw string, dst *int) error {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", domain.ErrInvalidInput, raw)
	}
	*dst = n
	return nil
}

func parseFloat(raw string, dst *float64) error {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, raw)
	}
	*dst = f
	return nil
}
