package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/verity/internal/core/domain"
)

var (
	historyLimit  int
	historyJSON   bool
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved reports",
	Long:  `Lists reports stored with 'verity analyze --save', newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of reports")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output reports as JSON")
	historyShowCmd.Flags().StringVarP(&historyFormat, "format", "f", formatText, "output format: text, json or yaml")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	reports, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	if historyJSON {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal reports: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(reports) == 0 {
		cmd.Println("No saved reports. Use 'verity analyze --save' to keep one.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSCORE\tSOURCES\tDOCUMENT")
	for i := range reports {
		r := &reports[i]
		fmt.Fprintf(tw, "%s\t%s\t%d%%\t%d\t%s\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.OriginalityScore, len(r.Sources), r.Filename)
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	if !validFormat(historyFormat) {
		return fmt.Errorf("unknown format %q (use text, json or yaml)", historyFormat)
	}

	report, err := historyService.Get(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no saved report with id %s", args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to get report: %w", err)
	}

	return writeReport(cmd.OutOrStdout(), report, historyFormat)
}
