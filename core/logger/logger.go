package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls logger construction via environment variables.
type Config struct {
	// Level is the minimum level to log: debug, info, warn, error
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	// Format selects the handler: json or text
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	// AddSource includes the caller position in every entry
	AddSource bool `env:"LOG_ADD_SOURCE" envDefault:"false"`
}

// Option customizes logger construction.
type Option func(*options)

type options struct {
	cfg    Config
	writer io.Writer
	attrs  []slog.Attr
}

// WithConfig applies an explicit configuration instead of the defaults.
func WithConfig(cfg Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithWriter directs output to w instead of stderr.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// WithAttrs attaches attributes to every entry the logger produces.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(o *options) { o.attrs = append(o.attrs, attrs...) }
}

// New builds a slog.Logger writing structured entries to stderr.
// The zero configuration logs info and above as JSON.
func New(opts ...Option) *slog.Logger {
	o := options{
		cfg:    Config{Level: "info", Format: "json"},
		writer: os.Stderr,
	}
	for _, opt := range opts {
		opt(&o)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     parseLevel(o.cfg.Level),
		AddSource: o.cfg.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(o.cfg.Format, "text") {
		handler = slog.NewTextHandler(o.writer, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(o.writer, handlerOpts)
	}
	if len(o.attrs) > 0 {
		handler = handler.WithAttrs(o.attrs)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
