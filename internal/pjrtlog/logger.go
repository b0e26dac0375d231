// Package pjrtlog provides the structured logging every pjrt package uses
// for paths that must not fail loudly — infallible Close() methods in
// particular log-and-continue rather than panic or return an error.
package pjrtlog

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a structured logger stamped with a context trace id. Use this
// on hot paths where allocation-per-call field maps aren't worth it.
type Logger struct {
	zap     *zap.Logger
	traceID string
}

// SugaredLogger wraps Logger for printf-style CLI/demo output.
type SugaredLogger struct {
	sugar   *zap.SugaredLogger
	traceID string
}

// New builds a logger tagged with traceID, writing JSON to os.Stderr.
func New(traceID string) *Logger {
	return newWithWriter(traceID, os.Stderr)
}

// WithOutput returns a copy of l writing to w instead.
func (l *Logger) WithOutput(w io.Writer) *Logger {
	return newWithWriter(l.traceID, w)
}

func newWithWriter(traceID string, w io.Writer) *Logger {
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), zapcore.AddSync(w), zapcore.DebugLevel)
	zapLogger := zap.New(core).With(zap.String("trace_id", traceID))
	return &Logger{zap: zapLogger, traceID: traceID}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}
}

// Debug logs a debug message with structured fields.
func (l *Logger) Debug(message string, fields map[string]any) {
	l.zap.Debug(message, zap.Any("fields", fields))
}

// Info logs an info message with structured fields.
func (l *Logger) Info(message string, fields map[string]any) {
	l.zap.Info(message, zap.Any("fields", fields))
}

// Warn logs a warning message with structured fields.
func (l *Logger) Warn(message string, fields map[string]any) {
	l.zap.Warn(message, zap.Any("fields", fields))
}

// Error logs an error message with structured fields. Used by infallible
// Close() methods: the failure is recorded here, never returned or panicked.
func (l *Logger) Error(message string, fields map[string]any) {
	l.zap.Error(message, zap.Any("fields", fields))
}

// Sugar returns a SugaredLogger for printf-style CLI output.
func (l *Logger) Sugar() *SugaredLogger {
	return &SugaredLogger{sugar: l.zap.Sugar(), traceID: l.traceID}
}

func (s *SugaredLogger) Debugf(template string, args ...any) { s.sugar.Debugf(template, args...) }
func (s *SugaredLogger) Infof(template string, args ...any)  { s.sugar.Infof(template, args...) }
func (s *SugaredLogger) Warnf(template string, args ...any)  { s.sugar.Warnf(template, args...) }
func (s *SugaredLogger) Errorf(template string, args ...any) { s.sugar.Errorf(template, args...) }

// With returns a SugaredLogger with additional context fields.
func (s *SugaredLogger) With(args ...any) *SugaredLogger {
	return &SugaredLogger{sugar: s.sugar.With(args...), traceID: s.traceID}
}
