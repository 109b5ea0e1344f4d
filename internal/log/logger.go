// Package log provides the structured logger shared by all commands.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", ...)
	Output io.Writer // optional writer (defaults to os.Stderr)
	JSON   bool      // emit JSON lines instead of console output
}

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Configure replaces the global logger. Commands call it once the tool
// configuration is known; until then a default stderr logger is used.
func Configure(cfg Config) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if !cfg.JSON {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen, NoColor: !isTerminal(writer)}
	}

	mu.Lock()
	base = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	mu.Unlock()
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
