// Package logger provides the structured logger used across yj.
//
// A [Logger] wraps a [slog.Logger] built from a [Config]. The package keeps
// a default Logger behind the package-level functions ([Info], [Warn], ...)
// so that deeper packages can log without carrying a logger around.
// Diagnostics go to stderr unless configured otherwise, since stdout is
// reserved for converted documents.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Config describes how a [Logger] is built.
type Config struct {
	// Writer receives the log records. It must not be nil.
	Writer io.Writer

	// Format selects the handler: "text", "json", "pretty" or "discard".
	Format string

	// Level is the minimum level logged: "debug", "info", "warn" or "error".
	Level string
}

// Logger is a leveled structured logger.
type Logger struct {
	logger *slog.Logger
	config Config
}

var (
	defaultLogger = &Logger{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
		config: Config{Writer: os.Stderr, Format: "text", Level: "warn"},
	}
	defaultMu sync.RWMutex
	once      sync.Once
)

// New creates a Logger from config.
// Records at debug level carry their source position.
func New(config Config) (*Logger, error) {
	if config.Writer == nil {
		return nil, errors.New("logger: nil writer")
	}

	lvl := parseLogLevel(config.Level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	return &Logger{
		logger: slog.New(createHandler(config.Writer, config.Format, opts)),
		config: config,
	}, nil
}

// NewConfig resolves an output name into a [Config].
//
// The output may be "stdout", "stderr", "null" (or "discard"), or a file
// path opened for appending. An empty output means stderr. The returned
// closer is non-nil only when a file was opened, and the caller must close it.
func NewConfig(level, format, output string) (Config, io.Closer, error) {
	config := Config{Level: level, Format: format}

	switch strings.ToLower(output) {
	case "stderr", "":
		config.Writer = os.Stderr
	case "stdout":
		config.Writer = os.Stdout
	case "null", "discard":
		config.Writer = io.Discard
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return Config{}, nil, fmt.Errorf("failed to open log file %s: %w", output, err)
		}
		config.Writer = f
		return config, f, nil
	}

	return config, nil, nil
}

// InitDefault replaces the default logger with one built from config.
// Only the first call has an effect.
func InitDefault(config Config) error {
	var err error
	once.Do(func() {
		var l *Logger
		if l, err = New(config); err == nil {
			defaultMu.Lock()
			defaultLogger = l
			defaultMu.Unlock()
		}
	})
	return err
}

// SetDefault makes l the default logger.
func SetDefault(l *Logger) error {
	if l == nil {
		return errors.New("logger: nil logger")
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
	return nil
}

// GetDefault returns the default logger.
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// createHandler creates a slog.Handler based on the format string.
func createHandler(writer io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(format) {
	case "text", "":
		return slog.NewTextHandler(writer, opts)
	case "json":
		return slog.NewJSONHandler(writer, opts)
	case "null", "discard":
		return slog.DiscardHandler
	case "pretty", "color", "terminal", "human":
		return NewPrettyHandler(writer, opts)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown log format '%s'. Using text format.\n", format)
		return slog.NewTextHandler(writer, opts)
	}
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "info", "":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown log level '%s'. Using info level.\n", levelStr)
		return slog.LevelInfo
	}
}

// Logger returns the underlying slog.Logger.
func (l *Logger) Logger() *slog.Logger {
	return l.logger
}

// log emits a record whose source is the caller of the exported method
// or function that called log.
func (l *Logger) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // Callers, log, exported wrapper
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.logger.Handler().Handle(ctx, r)
}

// logAttrs is log for pre-built attributes.
func (l *Logger) logAttrs(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.AddAttrs(attrs...)
	_ = l.logger.Handler().Handle(ctx, r)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, args)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, args)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, args)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(context.Background(), slog.LevelError, msg, args)
}

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelDebug, msg, args)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelInfo, msg, args)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelWarn, msg, args)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.log(ctx, slog.LevelError, msg, args)
}

func (l *Logger) DebugAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logAttrs(ctx, slog.LevelDebug, msg, attrs)
}

func (l *Logger) InfoAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logAttrs(ctx, slog.LevelInfo, msg, attrs)
}

func (l *Logger) WarnAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logAttrs(ctx, slog.LevelWarn, msg, attrs)
}

func (l *Logger) ErrorAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logAttrs(ctx, slog.LevelError, msg, attrs)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	GetDefault().log(context.Background(), slog.LevelInfo, msg, args)
}

// InfoCtx logs an informational message with context.
func InfoCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().log(ctx, slog.LevelInfo, msg, args)
}

// InfoAttrs logs an informational message with attributes.
func InfoAttrs(ctx context.Context, message string, attrs ...slog.Attr) {
	GetDefault().logAttrs(ctx, slog.LevelInfo, message, attrs)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	GetDefault().log(context.Background(), slog.LevelWarn, msg, args)
}

// WarnCtx logs a warning message with context.
func WarnCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().log(ctx, slog.LevelWarn, msg, args)
}

// WarnAttrs logs a warning message with attributes.
func WarnAttrs(ctx context.Context, message string, attrs ...slog.Attr) {
	GetDefault().logAttrs(ctx, slog.LevelWarn, message, attrs)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	GetDefault().log(context.Background(), slog.LevelError, msg, args)
}

// ErrorCtx logs an error message with context.
func ErrorCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().log(ctx, slog.LevelError, msg, args)
}

// ErrorAttrs logs an error message with attributes.
func ErrorAttrs(ctx context.Context, message string, attrs ...slog.Attr) {
	GetDefault().logAttrs(ctx, slog.LevelError, message, attrs)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	GetDefault().log(context.Background(), slog.LevelDebug, msg, args)
}

// DebugCtx logs a debug message with context.
func DebugCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().log(ctx, slog.LevelDebug, msg, args)
}

// DebugAttrs logs a debug message with attributes.
func DebugAttrs(ctx context.Context, message string, attrs ...slog.Attr) {
	GetDefault().logAttrs(ctx, slog.LevelDebug, message, attrs)
}
