package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	Component     string
}

// Logger wraps zerolog to provide a simplified key/value API for the application.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return &Logger{base: ctx.Logger()}, nil
}

// Nop returns a logger that discards every entry.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// With returns a derived logger that always writes the supplied key/value pairs.
func (l *Logger) With(fields ...any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Fields(pairs(fields)).Logger()}
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string, fields ...any) {
	if l == nil {
		return
	}
	l.base.Debug().Fields(pairs(fields)).Msg(msg)
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string, fields ...any) {
	if l == nil {
		return
	}
	l.base.Info().Fields(pairs(fields)).Msg(msg)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string, fields ...any) {
	if l == nil {
		return
	}
	l.base.Warn().Fields(pairs(fields)).Msg(msg)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string, fields ...any) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Fields(pairs(fields)).Msg(msg)
}

// pairs turns a flat key/value list into a map; non-string keys and a
// trailing key without value are dropped.
func pairs(fields []any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]any, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok || key == "" {
			continue
		}
		out[key] = fields[i+1]
	}
	return out
}
