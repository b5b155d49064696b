// Package logger provides the process-wide structured logger.
//
// All packages obtain component-scoped loggers from here so that log level
// and output format are configured in exactly one place.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	root = newRoot(os.Stderr)
)

func newRoot(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(out).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// SetVerbose switches the root logger between info and debug level.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	root = root.Level(level)
}

// SetOutput redirects log output. Intended for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root = newRoot(w)
}

// Component returns a sub-logger tagged with the given component name.
func Component(name string) zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With().Str("component", name).Logger()
}
