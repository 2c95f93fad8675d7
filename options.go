package datascout

import (
	"io"

	"go.uber.org/zap"
)

// analyzeConfig holds the resolved configuration for an analysis run.
type analyzeConfig struct {
	ignorePatterns []string
	logger         *zap.Logger
	progress       io.Writer
}

// Option configures an analysis run.
type Option func(*analyzeConfig)

// WithIgnorePatterns sets glob patterns; matching file names are skipped.
func WithIgnorePatterns(patterns []string) Option {
	return func(c *analyzeConfig) {
		c.ignorePatterns = patterns
	}
}

// WithLogger routes diagnostic logging to l (default: discarded).
func WithLogger(l *zap.Logger) Option {
	return func(c *analyzeConfig) {
		c.logger = l
	}
}

// WithProgress prints an "Analyzing: <name>" line to w for every file.
func WithProgress(w io.Writer) Option {
	return func(c *analyzeConfig) {
		c.progress = w
	}
}
