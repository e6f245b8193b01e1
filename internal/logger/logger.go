package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a zap logger. "development" gets the human readable console
// encoder, anything else the production JSON encoder.
func New(level, env string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl

	return cfg.Build()
}
