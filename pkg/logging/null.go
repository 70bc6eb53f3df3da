package logging

import "context"

// NullLogger drops every entry. Commands use it when no log file is
// configured, and packages fall back to it when handed a nil Logger.
type NullLogger struct{}

// NewNullLogger creates a logger that writes nothing
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// OrNull returns l, or a NullLogger when l is nil
func OrNull(l Logger) Logger {
	if l == nil {
		return NewNullLogger()
	}
	return l
}

func (l *NullLogger) Debug(ctx context.Context, msg string, fields Fields) {}

func (l *NullLogger) Info(ctx context.Context, msg string, fields Fields) {}

func (l *NullLogger) Warn(ctx context.Context, msg string, fields Fields) {}

func (l *NullLogger) Error(ctx context.Context, msg string, err error, fields Fields) {}

// WithFields returns l; there is nothing to attach fields to
func (l *NullLogger) WithFields(fields Fields) Logger {
	return l
}

func (l *NullLogger) Close() error {
	return nil
}
