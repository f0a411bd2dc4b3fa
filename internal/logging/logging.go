// Package logging provides structured logging helpers built on zerolog.
// Loggers travel through context.Context so every layer of the engine can
// emit events tagged with the component and operation that produced them.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level to emit ("trace".."panic"). Defaults to "info".
	Level string

	// Format selects "console" (human readable) or "json" output.
	Format string

	// Output overrides the destination writer. Defaults to os.Stderr.
	Output io.Writer
}

// New constructs a zerolog.Logger from the given configuration.
// Unknown levels fall back to info rather than failing startup.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	if strings.EqualFold(cfg.Format, "console") || cfg.Format == "" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx, or a disabled logger when
// none has been attached. Callers never need to nil-check the result.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithLogger attaches logger to ctx so downstream calls can retrieve it
// via FromContext.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}
