package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driving"
	"github.com/custodia-labs/verity/internal/logger"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-score a document whenever it is saved",
	Long: `Analyses the document once, then again each time it changes on disk.

Bursts of writes are collapsed: a new run starts once the file has been
quiet for the debounce interval. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "quiet period before re-analysing")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", args[0], err)
	}
	if documentService == nil {
		return fmt.Errorf("document service not configured")
	}
	if !documentService.Supports(path) {
		return fmt.Errorf("load %s: %w", path, domain.ErrUnsupportedType)
	}

	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	svc, err := buildAnalysis(settings)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch its directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	ctx := cmd.Context()
	run := func() {
		scoreOnce(ctx, cmd, svc, path, settings.Normaliser.RemoveStopwords)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", path)
	run()
	return watchLoop(ctx, watcher.Events, watcher.Errors, path, watchDebounce, run)
}

// watchLoop calls run after events on target have been quiet for debounce.
// It returns nil when ctx is cancelled or the event channel closes.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	target string,
	debounce time.Duration,
	run func(),
) error {
	// quiet is nil while no run is pending.
	var quiet <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}
			if !isContentChange(event, target) {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			quiet = time.After(debounce)

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-quiet:
			quiet = nil
			run()
		}
	}
}

// isContentChange reports whether event may have changed the target file.
func isContentChange(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(target) {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// scoreOnce analyses path and prints a one-line summary.
func scoreOnce(ctx context.Context, cmd *cobra.Command, svc driving.AnalysisService, path string, removeStopwords bool) {
	text, err := documentService.Load(ctx, path)
	if err != nil {
		cmd.PrintErrf("%s  %v\n", time.Now().Format("15:04:05"), err)
		return
	}

	report, err := svc.Analyze(ctx, domain.AnalysisRequest{
		Text:            text,
		Filename:        filepath.Base(path),
		RemoveStopwords: removeStopwords,
	})
	if err != nil {
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s  originality %d%%  sources %d  chunks %d (%d not searched)\n",
		time.Now().Format("15:04:05"), report.OriginalityScore, len(report.Sources),
		report.Stats.Chunks, report.Stats.FailedChunks)
}
