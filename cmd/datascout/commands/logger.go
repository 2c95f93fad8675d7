package commands

import (
	"fmt"

	"go.uber.org/zap"
)

// newLogger builds the stderr logger for a CLI run. Only warnings show
// unless verbose is set; quiet runs log errors only.
func newLogger(verbose, quiet bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	switch {
	case quiet:
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case verbose:
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.DisableStacktrace = true
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}
