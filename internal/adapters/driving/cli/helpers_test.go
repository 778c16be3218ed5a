package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/verity/internal/adapters/driven/reader"
	"github.com/custodia-labs/verity/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driving"
	"github.com/custodia-labs/verity/internal/core/services"
)

// copiedText is a document whose single chunk is echoed back by the test provider.
const copiedText = "The quick brown fox jumps over the lazy dog near the river bank. " +
	"Nothing else happens today."

// testEnv exposes the in-memory adapters behind the CLI services.
type testEnv struct {
	Config   *memory.ConfigStore
	Reports  *memory.ReportStore
	Provider *memory.SearchProvider
	Recorder *memory.ScoreRecorder

	// Settings is the last settings value passed to the analysis factory.
	Settings domain.AppSettings
}

// echoSearch returns one candidate whose snippet is the query itself.
func echoSearch(query string, _ int) ([]domain.SearchCandidate, error) {
	return []domain.SearchCandidate{{
		Title:   "Copied Page",
		URL:     "https://example.com/copied",
		Snippet: query,
	}}, nil
}

// setupTestServices wires the commands to in-memory services and restores
// the previous services when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()
	return setupTestServicesWith(t, echoSearch)
}

func setupTestServicesWith(t *testing.T, fn memory.SearchFunc) *testEnv {
	t.Helper()

	env := &testEnv{
		Config:   memory.NewConfigStore(),
		Reports:  memory.NewReportStore(),
		Provider: memory.NewSearchProvider(fn),
		Recorder: memory.NewScoreRecorder(),
	}

	prevSettings, prevHistory, prevDocuments, prevAnalysis := settingsService, historyService, documentService, newAnalysis
	t.Cleanup(func() {
		settingsService, historyService, documentService, newAnalysis = prevSettings, prevHistory, prevDocuments, prevAnalysis
	})

	SetServices(Services{
		Settings:  services.NewSettingsService(env.Config),
		History:   services.NewHistoryService(env.Reports),
		Documents: services.NewDocumentService(reader.New()),
		NewAnalysis: func(settings domain.AppSettings) (driving.AnalysisService, error) {
			env.Settings = settings
			settings.Search.Pacing = domain.PacingFixed
			settings.Search.Delay = 0
			svc := services.NewAnalysisService(env.Provider, settings)
			svc.SetReportStore(env.Reports)
			svc.SetScoreRecorder(env.Recorder)
			return svc, nil
		},
	})

	return env
}

// executeCommand runs the root command with args and returns everything
// written to stdout and stderr. Flags are reset before and after the run.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(append([]string{"--env-file", ""}, args...))
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag under cmd to its default value.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// writeTempFile writes content to name in a fresh temp dir and returns its path.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
