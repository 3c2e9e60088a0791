package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jask/savepass/internal/config"
)

// newLogger writes text logs to cfg.Path. stdout belongs to the TUI.
func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if s := strings.TrimSpace(cfg.Level); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}
