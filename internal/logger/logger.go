package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexisbeaulieu97/elemgen/internal/model"
)

// Format selects how log lines are rendered.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// ParseFormat accepts the --log-format values.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatConsole:
		return FormatConsole, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid log format %q: expected %s or %s", value, FormatConsole, FormatJSON)
	}
}

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level   string
	Format  Format
	NoColor bool
	Writer  io.Writer
}

// Fields are structured key/value pairs attached to every entry of a derived logger.
type Fields map[string]any

// Logger carries generator diagnostics. It is separate from the command
// report, which is written to stdout.
type Logger struct {
	base zerolog.Logger
}

// New creates a Logger writing to opts.Writer (stderr by default).
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	output := writer
	if opts.Format != FormatJSON {
		output = zerolog.ConsoleWriter{
			Out:        writer,
			TimeFormat: time.Kitchen,
			NoColor:    opts.NoColor,
		}
	}

	return &Logger{base: zerolog.New(output).Level(level).With().Timestamp().Logger()}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop()}
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields Fields) *Logger {
	if l == nil {
		return nil
	}
	ctx := l.base.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}
	return &Logger{base: ctx.Logger()}
}

// With returns a derived logger carrying a single extra field.
func (l *Logger) With(key string, value any) *Logger {
	return l.WithFields(Fields{key: value})
}

// Phase tags entries with the pipeline phase that produced them
// (scan, validate, emit, clean, write, check, verify).
func (l *Logger) Phase(name string) *Logger {
	return l.With("phase", name)
}

// Timed logs msg with the elapsed time since start at debug level.
func (l *Logger) Timed(start time.Time, msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Dur("elapsed", time.Since(start)).Msg(msg)
}

// Warnings writes each collected warning at debug level. The command report
// prints them to the operator, so the log copy is only for -v runs.
func (l *Logger) Warnings(warnings []model.Warning) {
	if l == nil {
		return
	}
	for _, w := range warnings {
		event := l.base.Debug().Str("kind", string(w.Kind))
		if w.Tag != "" {
			event = event.Str("tag", w.Tag)
		}
		if w.Path != "" {
			event = event.Str("path", w.Path)
		}
		event.Msg(w.Message)
	}
}

func (l *Logger) Debug(msg string) { l.write(zerolog.DebugLevel, nil, msg) }

func (l *Logger) Info(msg string) { l.write(zerolog.InfoLevel, nil, msg) }

func (l *Logger) Warn(msg string) { l.write(zerolog.WarnLevel, nil, msg) }

// Error writes an error entry; err may be nil.
func (l *Logger) Error(err error, msg string) { l.write(zerolog.ErrorLevel, err, msg) }

func (l *Logger) write(level zerolog.Level, err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.WithLevel(level)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
