// Package cli implements the verity command line interface.
package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driving"
	"github.com/custodia-labs/verity/internal/logger"
)

// Environment variables that override stored credentials.
const (
	EnvSearchAPIKey   = "VERITY_SEARCH_API_KEY"
	EnvSearchEngineID = "VERITY_SEARCH_ENGINE_ID"
	EnvRecorderToken  = "VERITY_RECORDER_TOKEN"
)

// AnalysisFactory builds an analysis service for the given settings.
type AnalysisFactory func(settings domain.AppSettings) (driving.AnalysisService, error)

// Services holds the driving ports used by the commands.
type Services struct {
	Settings    driving.SettingsService
	History     driving.HistoryService
	Documents   driving.DocumentService
	NewAnalysis AnalysisFactory
}

var version = "dev"

var (
	settingsService driving.SettingsService
	historyService  driving.HistoryService
	documentService driving.DocumentService
	newAnalysis     AnalysisFactory
)

var (
	verbose bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "verity",
	Short: "Score how original a document is",
	Long: `Verity splits a document into chunks, searches the web for each chunk
and estimates how much of the text can be found elsewhere.

The originality score is 100 minus the estimated overlap, with a floor of 5.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return loadEnvFile(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline stages to stderr")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading settings")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	settingsService = s.Settings
	historyService = s.History
	documentService = s.Documents
	newAnalysis = s.NewAnalysis
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute(v string) error {
	version = v

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// loadEnvFile loads a dotenv file without overriding variables already set.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// loadSettings returns stored settings with environment overrides applied.
func loadSettings() (domain.AppSettings, error) {
	if settingsService == nil {
		return domain.AppSettings{}, errors.New("settings service not configured")
	}
	stored, err := settingsService.Get()
	if err != nil {
		return domain.AppSettings{}, err
	}
	settings := *stored
	applyEnv(&settings, os.LookupEnv)
	return settings, nil
}

// applyEnv folds credential environment variables into settings.
func applyEnv(s *domain.AppSettings, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvSearchAPIKey); ok && v != "" {
		s.Search.APIKey = v
	}
	if v, ok := lookup(EnvSearchEngineID); ok && v != "" {
		s.Search.EngineID = v
	}
	if v, ok := lookup(EnvRecorderToken); ok && v != "" {
		s.Recorder.Token = v
	}
}

// envOverrides lists the environment variables currently overriding settings.
func envOverrides(lookup func(string) (string, bool)) []string {
	var set []string
	for _, name := range []string{EnvSearchAPIKey, EnvSearchEngineID, EnvRecorderToken} {
		if v, ok := lookup(name); ok && v != "" {
			set = append(set, name)
		}
	}
	return set
}

// buildAnalysis creates an analysis service for settings.
func buildAnalysis(settings domain.AppSettings) (driving.AnalysisService, error) {
	if newAnalysis == nil {
		return nil, errors.New("analysis service not configured")
	}
	return newAnalysis(settings)
}
