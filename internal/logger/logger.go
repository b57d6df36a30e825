package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/doshyw/celeste-progression/internal/config"
)

// Setup configures the global slog logger based on environment. When
// LOG_FILE is set, output goes to that file instead of stdout and the
// returned close func must be called on shutdown.
func Setup(cfg *config.Config) (*slog.Logger, func() error, error) {
	var (
		out   io.Writer = os.Stdout
		close           = func() error { return nil }
	)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, close = f, f.Close
	}

	logger := New(cfg, out)

	// Set as default logger
	slog.SetDefault(logger)

	return logger, close, nil
}

// New builds a logger writing to w without touching the global default.
func New(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		// JSON format for production
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// WithRequestID adds request ID to logger context
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With("request_id", requestID)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
