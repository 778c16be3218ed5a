package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/verity/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/highlight"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// maxSegmentPreview is the number of runes of a segment shown in text output.
const maxSegmentPreview = 80

func validFormat(format string) bool {
	switch format {
	case formatText, formatJSON, formatYAML:
		return true
	default:
		return false
	}
}

// writeReport renders report to w in the requested format.
func writeReport(w io.Writer, report *domain.Report, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		return enc.Close()
	default:
		writeReportText(w, report)
		return nil
	}
}

func writeReportText(w io.Writer, report *domain.Report) {
	if report.Filename != "" {
		fmt.Fprintf(w, "Document:    %s\n", report.Filename)
	}
	fmt.Fprintf(w, "Originality: %d%%\n", report.OriginalityScore)
	fmt.Fprintf(w, "Overlap:     %d%%\n", report.OverlapPercent)
	stats := report.Stats
	fmt.Fprintf(w, "Chunks:      %d (%d not searched), %d candidates\n",
		stats.Chunks, stats.FailedChunks, stats.Candidates)
	if report.ID != "" {
		fmt.Fprintf(w, "Report:      %s\n", report.ID)
	}
	fmt.Fprintln(w)

	if len(report.Sources) == 0 {
		fmt.Fprintln(w, "No matching sources found.")
		return
	}

	fmt.Fprintln(w, "Sources:")
	for i, src := range report.Sources {
		title := src.Title
		if title == "" {
			title = src.URL
		}
		fmt.Fprintf(w, "  [%d] %s (%d%%)\n", i+1, title, src.MatchPercent)
		fmt.Fprintf(w, "      %s\n", src.URL)
		for _, seg := range src.Segments {
			fmt.Fprintf(w, "      %q\n", preview(seg.Text, maxSegmentPreview))
		}
	}
}

func preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// markerFor picks a highlight marker suited to w.
// Terminals get colour, anything else gets brackets.
func markerFor(w io.Writer) highlight.Marker {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return styles.DefaultStyles().Marker()
	}
	return highlight.BracketMarker
}

// highlightText marks the segments of src in text for display on w.
func highlightText(w io.Writer, text string, src domain.Source) string {
	return highlight.Highlight(text, src, markerFor(w))
}

// sourceAt returns the 1-based source n of report.
func sourceAt(report *domain.Report, n int) (domain.Source, error) {
	if n < 1 || n > len(report.Sources) {
		return domain.Source{}, fmt.Errorf("%w: source %d out of range (report has %d)",
			domain.ErrInvalidInput, n, len(report.Sources))
	}
	return report.Sources[n-1], nil
}
