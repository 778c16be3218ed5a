package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
	"github.com/custodia-labs/verity/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.SearchProvider = (*Provider)(nil)

const (
	// MaxResultsPerQuery is the largest page the API returns.
	MaxResultsPerQuery = 10

	// DefaultTimeout bounds a single search request.
	DefaultTimeout = 15 * time.Second
)

// Config holds the Custom Search credentials.
type Config struct {
	// APIKey is the Google Cloud API key.
	APIKey string

	// EngineID is the Programmable Search Engine ID (cx).
	EngineID string

	// Endpoint overrides the API base URL. Empty uses the public endpoint.
	Endpoint string

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// ConfigFromSettings maps search settings onto a provider config.
func ConfigFromSettings(s domain.SearchSettings) Config {
	return Config{
		APIKey:   s.APIKey,
		EngineID: s.EngineID,
		Endpoint: s.Endpoint,
	}
}

// Provider searches the web with the Custom Search JSON API.
type Provider struct {
	svc      *customsearch.Service
	engineID string
	timeout  time.Duration
}

// New creates a Custom Search provider.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.APIKey == "" || cfg.EngineID == "" {
		return nil, fmt.Errorf("%w: search api key and engine id are required", domain.ErrInvalidInput)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create custom search service: %w", err)
	}

	return &Provider{
		svc:      svc,
		engineID: cfg.EngineID,
		timeout:  cfg.Timeout,
	}, nil
}

// Search returns up to limit web results for query.
func (p *Provider) Search(ctx context.Context, query string, limit int) ([]domain.SearchCandidate, error) {
	if limit <= 0 || limit > MaxResultsPerQuery {
		limit = MaxResultsPerQuery
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.svc.Cse.List().
		Cx(p.engineID).
		Q(query).
		Num(int64(limit)).
		Context(reqCtx).
		Do()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, WrapError(err)
	}

	candidates := make([]domain.SearchCandidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Link == "" {
			continue
		}
		candidates = append(candidates, domain.SearchCandidate{
			Title:       item.Title,
			URL:         item.Link,
			Snippet:     strings.Join(strings.Fields(item.Snippet), " "),
			DisplayName: item.DisplayLink,
		})
	}

	logger.Debug("Custom search returned %d results for %q", len(candidates), query)
	return candidates, nil
}
