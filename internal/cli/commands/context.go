package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/leapstack-labs/fluentsql/internal/config"
)

// configKey is used to store config in context.
type configKey struct{}

// WithConfig returns a context carrying the loaded configuration.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFromContext returns the loaded configuration, or an empty config
// when the command runs without the root's PersistentPreRunE (tests).
func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	return cfg
}

// newLogger builds the command logger. Debug level when verbose.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
