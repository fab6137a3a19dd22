package loghelper

import (
	"cmp"
	"context"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/vovanec/cascade/internal"
)

// Attr parses log args and returns either a single log attribute or an unnamed group.
// Errors among args contribute their message and, for traced errors, origin and trace.
func Attr(args ...any) slog.Attr {

	var attrs []slog.Attr
	internal.ParseLogArgs(args, func(a slog.Attr) {
		attrs = append(attrs, a)
	})

	if len(attrs) < 1 {
		return slog.Attr{}
	} else if len(attrs) < 2 {
		return attrs[0]
	}

	slices.SortFunc(attrs, func(a, b slog.Attr) int {
		return cmp.Compare(a.Key, b.Key)
	})

	return slog.Attr{
		Key:   "",
		Value: slog.GroupValue(attrs...),
	}
}

// Context returns a copy of parent context with attached log args.
func Context(ctx context.Context, args ...any) context.Context {
	return internal.ContextWithLogArgs(ctx, args...)
}

type LogOption func(c *logConfig)

// WithLevel sets default logger log level.
func WithLevel(level slog.Level) LogOption {
	return func(c *logConfig) {
		c.level = level
	}
}

// WithOutput sets default logger log output.
func WithOutput(w io.Writer) LogOption {
	return func(c *logConfig) {
		c.output = w
	}
}

// WithSource makes the default logger record the location of the log call.
func WithSource(enabled bool) LogOption {
	return func(c *logConfig) {
		c.addSource = enabled
	}
}

// WithText switches the default logger from JSON to logfmt-style text output.
func WithText() LogOption {
	return func(c *logConfig) {
		c.text = true
	}
}

// InitLogging initializes default slog logger instance
// with info log level and stderr as a log output.
func InitLogging(opts ...LogOption) {
	slog.SetDefault(NewLogger(opts...))
}

// NewLogger returns a logger configured the way InitLogging configures the default one.
func NewLogger(opts ...LogOption) *slog.Logger {
	conf := logConfig{
		level:  slog.LevelInfo,
		output: os.Stderr,
	}

	for _, opt := range opts {
		opt(&conf)
	}

	hopts := &slog.HandlerOptions{
		Level:     conf.level,
		AddSource: conf.addSource,
	}
	if conf.text {
		return slog.New(slog.NewTextHandler(conf.output, hopts))
	}
	return slog.New(slog.NewJSONHandler(conf.output, hopts))
}

type logConfig struct {
	level     slog.Level
	output    io.Writer
	addSource bool
	text      bool
}
