package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/garagon/datascout"
	"github.com/garagon/datascout/internal/artifact"
	"github.com/garagon/datascout/internal/config"
	"github.com/garagon/datascout/internal/output"
)

func runAnalyze(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	cfg := loadConfig(cmd, target)
	if flagLargeFileMB <= 0 {
		return fmt.Errorf("invalid --large-mb: must be positive, got %g", flagLargeFileMB)
	}

	logger, err := newLogger(flagVerbose, flagQuiet)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	stderr := cmd.ErrOrStderr()
	opts := []datascout.Option{
		datascout.WithLogger(logger),
		datascout.WithIgnorePatterns(cfg.Ignore),
	}
	if !flagQuiet {
		fmt.Fprintln(stderr, "Starting data analysis...")
		opts = append(opts, datascout.WithProgress(stderr))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	summary, err := datascout.Analyze(ctx, target, opts...)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logger.Debug("analysis finished",
		zap.String("run_id", summary.RunID),
		zap.Int("files", summary.Total),
		zap.Duration("duration", summary.Duration))

	if !flagQuiet {
		fmt.Fprintf(stderr, "Analysis complete. Found %d data files.\n", summary.Total)
		term := &output.TerminalFormatter{NoColor: flagNoColor, LargeFileMB: flagLargeFileMB}
		if err := term.Format(cmd.OutOrStdout(), summary); err != nil {
			return err
		}
	}

	return writeArtifacts(stderr, summary)
}

func writeArtifacts(w io.Writer, summary *datascout.Summary) error {
	output.ToolVersion = Version
	writer := &artifact.Writer{Dir: flagOutputDir, HTML: flagHTML, LargeFileMB: flagLargeFileMB}
	written, err := writer.Write(summary)
	if err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if !flagQuiet {
		for _, path := range written {
			fmt.Fprintf(w, "Results saved to %s\n", path)
		}
	}
	return nil
}

// loadConfig applies .datascout.yml values to every flag the user did not
// set explicitly. A broken config file is reported and otherwise ignored.
func loadConfig(cmd *cobra.Command, target string) config.Config {
	cfg, err := config.Load(target)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
		cfg = config.Config{}
	}
	settings := config.Settings{
		OutputDir:   flagOutputDir,
		HTML:        flagHTML,
		NoColor:     flagNoColor,
		LargeFileMB: flagLargeFileMB,
	}
	cfg.ApplyTo(&settings, cmd.Flags().Changed)
	flagOutputDir = settings.OutputDir
	flagHTML = settings.HTML
	flagNoColor = settings.NoColor || os.Getenv("NO_COLOR") != ""
	flagLargeFileMB = settings.LargeFileMB
	return cfg
}
