// Package logging provides leveled logging for short-lived tool invocations.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level represents log level.
type Level int

const (
	// LevelDebug represents debug level.
	LevelDebug Level = iota
	// LevelInfo represents info level.
	LevelInfo
	// LevelWarn represents warning level.
	LevelWarn
	// LevelError represents error level.
	LevelError
)

// FileName is the log file written inside Config.Dir.
const FileName = "compdb-wrapper.log"

// String returns string representation of log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Config holds logging configuration.
type Config struct {
	Enabled       bool
	Level         string
	Dir           string
	MaxSizeMB     int
	EnableConsole bool
	EnableFile    bool
	// Console defaults to os.Stderr. Stdout is never used since it may carry
	// compiler output.
	Console io.Writer
}

// Logger writes leveled messages tagged with an invocation ID.
type Logger struct {
	mu      sync.Mutex
	enabled bool
	level   Level
	id      string
	file    *os.File
	writers []io.Writer
}

// New creates a new Logger instance. Each Logger gets a fresh invocation ID
// so lines from concurrent compiler runs sharing a log file can be told apart.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	l := &Logger{
		enabled: cfg.Enabled,
		level:   ParseLevel(cfg.Level),
		id:      uuid.New().String(),
	}

	if !cfg.Enabled {
		return l, nil
	}

	if cfg.EnableConsole {
		console := cfg.Console
		if console == nil {
			console = os.Stderr
		}
		l.writers = append(l.writers, console)
	}

	if cfg.EnableFile && cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		path := filepath.Join(cfg.Dir, FileName)
		if err := rotateIfLarge(path, int64(cfg.MaxSizeMB)*1024*1024); err != nil {
			return nil, fmt.Errorf("failed to rotate log file: %w", err)
		}

		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
		l.writers = append(l.writers, file)
	}

	return l, nil
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	l, _ := New(nil)
	return l
}

// ParseLevel parses log level string. Unknown values mean info.
func ParseLevel(s string) Level {
	switch s {
	case "DEBUG", "debug":
		return LevelDebug
	case "INFO", "info":
		return LevelInfo
	case "WARN", "warn", "WARNING", "warning":
		return LevelWarn
	case "ERROR", "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// rotateIfLarge moves path aside to path.1 once it reaches maxSize.
func rotateIfLarge(path string, maxSize int64) error {
	if maxSize <= 0 {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() < maxSize {
		return nil
	}
	// Another invocation may have rotated it already.
	if err := os.Rename(path, path+".1"); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *Logger) log(level Level, format string, v ...interface{}) {
	if l == nil || !l.enabled {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf("[%s] [%s] [%s] %s\n", timestamp, level.String(), l.id[:8], fmt.Sprintf(format, v...))
	for _, w := range l.writers {
		_, _ = io.WriteString(w, msg)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, format, v...)
}

// Info logs an info message.
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, format, v...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, format, v...)
}

// Error logs an error message.
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, format, v...)
}

// ID returns the invocation ID attached to every line.
func (l *Logger) ID() string {
	return l.id
}

// Close closes the log file, if any. Further messages go to the console only.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	writers := l.writers[:0]
	for _, w := range l.writers {
		if w != io.Writer(l.file) {
			writers = append(writers, w)
		}
	}
	l.writers = writers

	err := l.file.Close()
	l.file = nil
	return err
}

// IsEnabled returns whether logging is enabled.
func (l *Logger) IsEnabled() bool {
	return l.enabled
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel sets the log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}
