package google

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verity/internal/core/domain"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := New(context.Background(), Config{
		APIKey:   "test-key",
		EngineID: "test-cx",
		Endpoint: srv.URL + "/",
	})
	require.NoError(t, err)
	return p
}

func TestProvider_Search_Success(t *testing.T) {
	var gotQuery, gotCx, gotKey, gotNum string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCx = r.URL.Query().Get("cx")
		gotKey = r.URL.Query().Get("key")
		if gotKey == "" {
			gotKey = r.Header.Get("X-Goog-Api-Key")
		}
		gotNum = r.URL.Query().Get("num")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"items": [
				{"title": "First", "link": "https://a.example.org/1", "snippet": "the ethical\nimplications of ai", "displayLink": "a.example.org"},
				{"title": "No link", "snippet": "dropped"},
				{"title": "Second", "link": "https://b.example.org/2", "snippet": "responsible development"}
			]
		}`)
	})

	got, err := p.Search(context.Background(), "ethical implications", 5)

	require.NoError(t, err)
	assert.Equal(t, "ethical implications", gotQuery)
	assert.Equal(t, "test-cx", gotCx)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "5", gotNum)
	assert.Equal(t, []domain.SearchCandidate{
		{Title: "First", URL: "https://a.example.org/1", Snippet: "the ethical implications of ai", DisplayName: "a.example.org"},
		{Title: "Second", URL: "https://b.example.org/2", Snippet: "responsible development"},
	}, got)
}

func TestProvider_Search_NoItems(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"searchInformation": {"totalResults": "0"}}`)
	})

	got, err := p.Search(context.Background(), "nothing", 5)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProvider_Search_ClampsLimit(t *testing.T) {
	var gotNum string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotNum = r.URL.Query().Get("num")
		fmt.Fprint(w, `{}`)
	})

	_, err := p.Search(context.Background(), "q", 50)

	require.NoError(t, err)
	assert.Equal(t, "10", gotNum)
}

func TestProvider_Search_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"error": {"code": 500, "message": "backend error"}}`,
			wantErr: domain.ErrProviderResponse,
		},
		{
			name:    "too many requests",
			status:  http.StatusTooManyRequests,
			body:    `{"error": {"code": 429, "message": "slow down"}}`,
			wantErr: domain.ErrRateLimited,
		},
		{
			name:    "daily quota",
			status:  http.StatusForbidden,
			body:    `{"error": {"code": 403, "message": "quota", "errors": [{"reason": "dailyLimitExceeded"}]}}`,
			wantErr: domain.ErrRateLimited,
		},
		{
			name:    "bad key",
			status:  http.StatusBadRequest,
			body:    `{"error": {"code": 400, "message": "API key not valid", "errors": [{"reason": "keyInvalid"}]}}`,
			wantErr: domain.ErrProviderResponse,
		},
		{
			name:    "malformed payload",
			status:  http.StatusOK,
			body:    `{"items": [`,
			wantErr: domain.ErrProviderResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			got, err := p.Search(context.Background(), "q", 5)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestProvider_Search_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + "/"
	srv.Close()

	p, err := New(context.Background(), Config{APIKey: "k", EngineID: "cx", Endpoint: endpoint})
	require.NoError(t, err)

	_, err = p.Search(context.Background(), "q", 5)

	assert.ErrorIs(t, err, domain.ErrSearchUnavailable)
}

func TestProvider_Search_CallerCancellation(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Search(ctx, "q", 5)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(context.Background(), Config{APIKey: "k"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = New(context.Background(), Config{EngineID: "cx"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigFromSettings(t *testing.T) {
	cfg := ConfigFromSettings(domain.SearchSettings{APIKey: "k", EngineID: "cx", Endpoint: "http://x/"})

	assert.Equal(t, Config{APIKey: "k", EngineID: "cx", Endpoint: "http://x/"}, cfg)
}
