// Package recorder writes originality scores back to the document record API.
//
// The record API is the service that stores uploaded documents. A score is
// written with PATCH {BaseURL}/documents/{id}/ and a JSON body
// {"originality_score": n}, authorised with "Authorization: Token <credential>".
package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.ScoreRecorder = (*Recorder)(nil)

// Default configuration values.
const (
	DefaultTimeout    = 10 * time.Second
	DefaultAuthScheme = "Token"
)

// Config holds configuration for the record API client.
type Config struct {
	// BaseURL is the API root, e.g. https://records.example.org/api (required).
	BaseURL string

	// Token is used when the document reference carries no credential.
	Token string

	// AuthScheme prefixes the credential in the Authorization header (default: Token).
	AuthScheme string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration
}

// Recorder patches document records with their originality score.
type Recorder struct {
	client     *http.Client
	baseURL    string
	token      string
	authScheme string
}

type scoreRequest struct {
	OriginalityScore int `json:"originality_score"`
}

// NewRecorder creates a record API client.
func NewRecorder(cfg Config) (*Recorder, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: recorder base url is required", domain.ErrInvalidInput)
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: recorder base url: %w", domain.ErrInvalidInput, err)
	}
	if cfg.AuthScheme == "" {
		cfg.AuthScheme = DefaultAuthScheme
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Recorder{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		authScheme: cfg.AuthScheme,
	}, nil
}

// RecordScore patches the document record with score.
func (r *Recorder) RecordScore(ctx context.Context, doc domain.DocumentRef, score int) error {
	if doc.ID == "" {
		return fmt.Errorf("%w: document id is required", domain.ErrInvalidInput)
	}

	body, err := json.Marshal(scoreRequest{OriginalityScore: score})
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}

	endpoint := r.baseURL + "/documents/" + url.PathEscape(doc.ID) + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	credential := doc.Credential
	if credential == "" {
		credential = r.token
	}
	if credential != "" {
		req.Header.Set("Authorization", r.authScheme+" "+credential)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("record score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("record score: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return nil
}
