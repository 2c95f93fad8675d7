package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/garagon/datascout/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a .datascout.yml configuration file",
	Long:  `Scaffolds a commented .datascout.yml in the given directory. An existing file is left untouched.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	out := cmd.OutOrStdout()
	for _, name := range config.FileNames {
		existing := filepath.Join(dir, name)
		if _, err := os.Stat(existing); err == nil {
			fmt.Fprintf(out, "  skip %s (already exists)\n", existing)
			return nil
		}
	}

	path := filepath.Join(dir, config.FileNames[0])
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(out, "  create %s\n", path)
	return nil
}

const configTemplate = `# datascout configuration

# File name patterns to skip (matched against base names, ** supported)
ignore:
  - "data_analysis_*"
  - "~$*.xlsx"

# Directory the result files are written to (default: current directory)
# output_dir: reports/

# Files larger than this many MB are listed under "Large Files"
large_file_mb: 10

# Also write data_analysis_summary.html
html: false

# Disable colored terminal output
no_color: false
`
