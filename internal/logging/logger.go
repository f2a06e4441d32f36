// Package logging provides config-driven categorized logging for corroded_rsvp.
// The terminal belongs to the reader UI, so log lines go to a file under the
// data directory. Logging is controlled by debug_mode - when false, nothing is
// written and every logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Startup, config resolution
	CategorySource   Category = "source"   // File, clipboard and stdin loading
	CategoryPlayback Category = "playback" // Reading state transitions
	CategoryProgress Category = "progress" // Resume store
	CategoryWatch    Category = "watch"    // Followed-file reloads
	CategoryUI       Category = "ui"       // Terminal UI events
)

// FileName is the log file created inside the logs directory.
const FileName = "corroded_rsvp.log"

// Settings mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Settings struct {
	DebugMode  bool
	Level      string          // debug, info, warn, error
	Format     string          // json, text
	Categories map[string]bool // per-category toggles; missing means enabled
}

// Logger is a category-scoped printf-style logger.
type Logger struct {
	sugar *zap.SugaredLogger
}

var (
	mu       sync.RWMutex
	root     = zap.NewNop()
	settings Settings
	loggers  = make(map[Category]*Logger)
)

// Initialize sets up file logging in dir. With DebugMode off it leaves every
// logger as a no-op and creates nothing on disk.
func Initialize(dir string, s Settings) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	settings = s
	loggers = make(map[Category]*Logger)
	if !s.DebugMode {
		return nil
	}
	if dir == "" {
		return fmt.Errorf("logs directory required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(s.Level))
	cfg.Sampling = nil
	if s.Format != "json" {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	path := filepath.Join(dir, FileName)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	root = l

	boot := getLocked(CategoryBoot)
	boot.Info("=== corroded_rsvp logging initialized ===")
	boot.Info("Logs directory: %s", dir)
	boot.Info("Log level: %s", cfg.Level.String())
	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabledLocked(category)
}

func categoryEnabledLocked(category Category) bool {
	if !settings.DebugMode {
		return false
	}
	if settings.Categories == nil {
		return true
	}
	enabled, exists := settings.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	return getLocked(category)
}

func getLocked(category Category) *Logger {
	if l, ok := loggers[category]; ok {
		return l
	}
	base := zap.NewNop()
	if categoryEnabledLocked(category) {
		base = root.Named(string(category))
	}
	l := &Logger{sugar: base.Sugar()}
	loggers[category] = l
	return l
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// With returns a logger carrying structured key-value context.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

// CloseAll flushes the log file and resets every logger to a no-op.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	settings = Settings{}
	loggers = make(map[Category]*Logger)
}

func closeLocked() {
	_ = root.Sync()
	root = zap.NewNop()
}

// Convenience functions for quick logging

// Boot logs to the boot category
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// Source logs to the source category
func Source(format string, args ...interface{}) { Get(CategorySource).Info(format, args...) }

// Playback logs to the playback category
func Playback(format string, args ...interface{}) { Get(CategoryPlayback).Debug(format, args...) }

// Progress logs to the progress category
func Progress(format string, args ...interface{}) { Get(CategoryProgress).Info(format, args...) }

// Watch logs to the watch category
func Watch(format string, args ...interface{}) { Get(CategoryWatch).Info(format, args...) }

// UI logs to the ui category
func UI(format string, args ...interface{}) { Get(CategoryUI).Debug(format, args...) }
