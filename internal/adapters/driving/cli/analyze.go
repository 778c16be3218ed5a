package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/verity/internal/core/domain"
)

// stdinArg reads the document from standard input.
const stdinArg = "-"

var (
	analyzeJSON          bool
	analyzeFormat        string
	analyzeSource        int
	analyzeHTML          bool
	analyzeKeepStopwords bool
	analyzeDocumentID    string
	analyzeToken         string
	analyzeName          string
	analyzeDelay         time.Duration
	analyzeMaxResults    int
	analyzeSave          bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|->",
	Short: "Score the originality of a document",
	Long: `Extracts the text of a document, searches the web for each chunk and
prints the originality score with the sources that matched.

Plain text and Markdown are read directly; PDF, DOCX, ODT, RTF and XML are
converted first. Use - to read text from standard input.

With --document-id the score is also written back to the document record.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.BoolVar(&analyzeJSON, "json", false, "output the report as JSON (same as --format json)")
	f.StringVarP(&analyzeFormat, "format", "f", formatText, "output format: text, json or yaml")
	f.IntVarP(&analyzeSource, "source", "s", 0, "print the text with matches of source N marked")
	f.BoolVar(&analyzeHTML, "html", false, "mark matches with HTML <mark> tags when using --source")
	f.BoolVar(&analyzeKeepStopwords, "keep-stopwords", false, "keep stopwords when tokenising sentences")
	f.StringVar(&analyzeDocumentID, "document-id", "", "document record to update with the score")
	f.StringVar(&analyzeToken, "token", "", "credential for the score write-back")
	f.StringVar(&analyzeName, "name", "", "file name recorded in the report")
	f.DurationVar(&analyzeDelay, "delay", 0, "pause between search requests (overrides settings)")
	f.IntVarP(&analyzeMaxResults, "max-results", "n", 0, "candidates requested per chunk, 1-10 (overrides settings)")
	f.BoolVar(&analyzeSave, "save", false, "store the report in the local history")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format := analyzeFormat
	if analyzeJSON {
		format = formatJSON
	}
	if !validFormat(format) {
		return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
	}

	settings, err := loadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	applyAnalyzeFlags(cmd, &settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	text, name, err := readDocument(cmd, args[0])
	if err != nil {
		return err
	}
	if analyzeName != "" {
		name = analyzeName
	}

	svc, err := buildAnalysis(settings)
	if err != nil {
		return err
	}

	report, err := svc.Analyze(cmd.Context(), domain.AnalysisRequest{
		Text:            text,
		Filename:        name,
		Document:        domain.DocumentRef{ID: analyzeDocumentID, Credential: analyzeToken},
		RemoveStopwords: settings.Normaliser.RemoveStopwords,
		Save:            analyzeSave,
	})
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	out := cmd.OutOrStdout()
	if analyzeSource > 0 {
		src, err := sourceAt(report, analyzeSource)
		if err != nil {
			return err
		}
		if analyzeHTML {
			fmt.Fprintln(out, svc.Highlight(text, src))
			return nil
		}
		fmt.Fprintln(out, highlightText(out, text, src))
		return nil
	}

	return writeReport(out, report, format)
}

// applyAnalyzeFlags overrides settings with flags given on the command line.
func applyAnalyzeFlags(cmd *cobra.Command, s *domain.AppSettings) {
	flags := cmd.Flags()
	if flags.Changed("delay") {
		s.Search.Pacing = domain.PacingFixed
		s.Search.Delay = analyzeDelay
	}
	if flags.Changed("max-results") {
		s.Search.MaxResults = analyzeMaxResults
	}
	if flags.Changed("keep-stopwords") {
		s.Normaliser.RemoveStopwords = !analyzeKeepStopwords
	}
}

// readDocument loads the document named by arg and returns its text and display name.
func readDocument(cmd *cobra.Command, arg string) (text, name string, err error) {
	if arg == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		if !utf8.Valid(data) {
			return "", "", fmt.Errorf("%w: stdin is not valid UTF-8", domain.ErrInvalidInput)
		}
		return string(data), "stdin", nil
	}

	if documentService == nil {
		return "", "", errors.New("document service not configured")
	}
	text, err = documentService.Load(cmd.Context(), arg)
	if err != nil {
		return "", "", err
	}
	return text, filepath.Base(arg), nil
}
