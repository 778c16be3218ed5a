// Command verity scores how original a document is.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/verity/internal/adapters/driven/config/file"
	"github.com/custodia-labs/verity/internal/adapters/driven/reader"
	"github.com/custodia-labs/verity/internal/adapters/driven/recorder"
	"github.com/custodia-labs/verity/internal/adapters/driven/search/google"
	"github.com/custodia-labs/verity/internal/adapters/driven/search/null"
	"github.com/custodia-labs/verity/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/verity/internal/adapters/driving/cli"
	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
	"github.com/custodia-labs/verity/internal/core/ports/driving"
	"github.com/custodia-labs/verity/internal/core/services"
	"github.com/custodia-labs/verity/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// EnvHome overrides the configuration directory.
const EnvHome = "VERITY_HOME"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	dir := os.Getenv(EnvHome)
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return fmt.Errorf("failed to locate home directory: %w", err)
		}
		dir = d
	}

	configStore, err := file.NewConfigStore(dir)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	store, err := sqlite.NewStore(filepath.Join(dir, "data"))
	if err != nil {
		return fmt.Errorf("failed to open report store: %w", err)
	}
	defer store.Close()

	cli.SetServices(cli.Services{
		Settings:    services.NewSettingsService(configStore),
		History:     services.NewHistoryService(store.ReportStore()),
		Documents:   services.NewDocumentService(reader.New()),
		NewAnalysis: analysisFactory(store),
	})

	return cli.Execute(version)
}

// analysisFactory wires the search provider and score recorder for each run.
func analysisFactory(store *sqlite.Store) cli.AnalysisFactory {
	return func(settings domain.AppSettings) (driving.AnalysisService, error) {
		var provider driven.SearchProvider
		if settings.Search.IsConfigured() {
			p, err := google.New(context.Background(), google.ConfigFromSettings(settings.Search))
			if err != nil {
				return nil, err
			}
			provider = p
		} else {
			logger.Warn("Search credentials not set; run 'verity settings wizard'")
			provider = null.NewProvider()
		}

		var rec driven.ScoreRecorder = store.ScoreRecorder()
		if settings.Recorder.IsConfigured() {
			r, err := recorder.NewRecorder(recorder.Config{
				BaseURL: settings.Recorder.BaseURL,
				Token:   settings.Recorder.Token,
			})
			if err != nil {
				return nil, err
			}
			rec = r
		}

		svc := services.NewAnalysisService(provider, settings)
		svc.SetScoreRecorder(rec)
		svc.SetReportStore(store.ReportStore())
		return svc, nil
	}
}
