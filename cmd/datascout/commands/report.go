package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garagon/datascout/internal/artifact"
)

var reportCmd = &cobra.Command{
	Use:   "report <results.json>",
	Short: "Regenerate the reports from a saved results file",
	Long: `Report reads a data_analysis_results.json written by an earlier run and writes
the Markdown (and, with --html, HTML) report again without re-reading any data file.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if flagLargeFileMB <= 0 {
		return fmt.Errorf("invalid --large-mb: must be positive, got %g", flagLargeFileMB)
	}
	summary, err := artifact.Load(args[0])
	if err != nil {
		return fmt.Errorf("loading results: %w", err)
	}
	return writeArtifacts(cmd.ErrOrStderr(), summary)
}
