package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/verity/internal/adapters/driving/tui"
	"github.com/custodia-labs/verity/internal/core/domain"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <file|->",
	Short: "Browse a report in the terminal UI",
	Long: `Analyses a document and opens an interactive report.

Select a source to read the document with that source's matches marked.

Controls:
  ↑/k, ↓/j - Navigate sources / scroll text
  Enter    - Show matches for the selected source
  n, p     - Next / previous source
  r        - Re-run the analysis
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("tui panic: %v", r)
		}
	}()

	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	text, name, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	analysis, err := buildAnalysis(settings)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(tui.NewPorts(analysis), domain.AnalysisRequest{
		Text:            text,
		Filename:        name,
		RemoveStopwords: settings.Normaliser.RemoveStopwords,
	})
	if err != nil {
		return err
	}

	return app.WithContext(cmd.Context()).Run()
}
