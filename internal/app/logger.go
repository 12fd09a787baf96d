package app

import (
	"log/slog"
	"os"
)

// NewLogger returns the process logger. Production runs emit JSON at info
// level; everywhere else a debug-level text handler keeps local output
// readable. LOG_FORMAT=json forces JSON regardless of environment.
func NewLogger(cfg *Config) *slog.Logger {
	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{AddSource: true, Level: level}
	if cfg.IsProduction() || (cfg != nil && cfg.LogFormat == "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
