package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagOutputDir   string
	flagHTML        bool
	flagNoColor     bool
	flagQuiet       bool
	flagVerbose     bool
	flagLargeFileMB float64
)

var rootCmd = &cobra.Command{
	Use:   "datascout [dir]",
	Short: "Profile the data files in a workspace",
	Long: `Datascout inspects the CSV, SQL, text and Excel files directly inside a directory,
guesses their encoding and structure, and writes data_analysis_results.json and
data_analysis_summary.md describing what it found.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runAnalyze,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output-dir", "o", ".", "Directory the result files are written to")
	rootCmd.PersistentFlags().BoolVar(&flagHTML, "html", false, "Also write data_analysis_summary.html")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only write the result files; print nothing")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every file decision to stderr")
	rootCmd.PersistentFlags().Float64Var(&flagLargeFileMB, "large-mb", 10, "Size in MB above which a file is reported as large")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
