package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const defaultLogFile = "eventdesk.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	logFile      *os.File
	level        = zerolog.InfoLevel
	logger       = zerolog.Nop()
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	l := current()
	l.Error().Err(err).Send()
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are being written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	enabled := traceEnabled
	l := logger
	mu.Unlock()
	if !enabled {
		return
	}
	entry := l.Log().Str("event", event)
	if payload != nil {
		entry = entry.Interface("payload", payload)
	}
	entry.Send()
}

// Logger returns the shared logger. Callers should not cache it across
// Configure calls.
func Logger() zerolog.Logger {
	return current()
}

// Component returns the shared logger tagged with a component name.
func Component(name string) zerolog.Logger {
	l := current()
	return l.With().Str("component", name).Logger()
}

// SetLevel parses and applies the minimum level for non-trace entries.
// Unknown levels fall back to info and are reported to the caller.
func SetLevel(value string) error {
	parsed := zerolog.InfoLevel
	var err error
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		parsed, err = zerolog.ParseLevel(strings.ToLower(trimmed))
		if err != nil || parsed == zerolog.NoLevel {
			parsed = zerolog.InfoLevel
			err = fmt.Errorf("unknown log level %q", value)
		}
	}
	mu.Lock()
	level = parsed
	logger = logger.Level(parsed)
	mu.Unlock()
	return err
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	target := strings.TrimSpace(path)
	if target == "" {
		target = defaultLogFile
	}
	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
			target = defaultLogFile
		}
	}
	f, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open log file: %v\n", err)
		return
	}
	closeLocked()
	logFile = f
	logPath = target
	logger = newLogger(f)
}

// SetOutput routes log entries to w instead of a file. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if w == nil {
		logger = zerolog.Nop()
		return
	}
	logger = newLogger(w)
}

// Path returns the active log file path.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close releases the log file, if any. Later entries are discarded until
// Configure is called again.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	logger = zerolog.Nop()
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func current() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}
