package logging

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path (empty = stderr)
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the size in megabytes at which the file rotates (0 = 100)
	MaxSize int
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

// ZeroLogger implements Logger on top of zerolog
type ZeroLogger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// NewFileLogger creates a logger writing to cfg.Path, or stderr when Path is empty
func NewFileLogger(cfg FileLoggerConfig) (*ZeroLogger, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer

	if cfg.Path != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
		}
		// lumberjack opens lazily; an empty write surfaces path errors now
		if _, err := lj.Write(nil); err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = lj
		closer = lj
	}

	l := newZeroLogger(out, cfg.Format, cfg.Level)
	l.closer = closer
	return l, nil
}

// NewWriterLogger creates a logger on an arbitrary writer
func NewWriterLogger(w io.Writer, format Format, level Level) *ZeroLogger {
	return newZeroLogger(w, format, level)
}

func newZeroLogger(w io.Writer, format Format, level Level) *ZeroLogger {
	if format == FormatText {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "2006-01-02T15:04:05.000Z07:00"}
	}
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &ZeroLogger{zl: zl}
}

// Debug logs a debug message
func (l *ZeroLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.zl.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Info logs an info message
func (l *ZeroLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.zl.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Warn logs a warning message
func (l *ZeroLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.zl.Warn().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Error logs an error message
func (l *ZeroLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.zl.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

// WithFields returns a logger with additional fields
func (l *ZeroLogger) WithFields(fields Fields) Logger {
	return &ZeroLogger{
		zl:     l.zl.With().Fields(map[string]interface{}(fields)).Logger(),
		closer: l.closer,
	}
}

// Close flushes and closes the logger
func (l *ZeroLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func toZerologLevel(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
