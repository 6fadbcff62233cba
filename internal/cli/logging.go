package cli

import (
	"fmt"

	"go.uber.org/zap"
)

// newLogger builds a production zap logger writing JSON to stderr at level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	logger, err := cfg.Build()
	if err != nil {
		return nil, sysErr(fmt.Errorf("initialize logger: %w", err))
	}
	return logger, nil
}
