// Package log provides structured logging (slog) routed through the host's
// log_utf8 import.
package log

import (
	"bytes"
	"log/slog"

	"github.com/calimero-network/calimero-sdk-js/domain/ports"
)

// HandlerOption configures the handler returned by NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level     slog.Level
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level are dropped before reaching the host.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// NewHandler returns a text handler that hands each record to sink as one
// UTF-8 line:
//
//	level=INFO msg="item added" id=7 tags.kind=book
//
// The host stamps its own time, so records carry none.
func NewHandler(sink ports.Logger, opts ...HandlerOption) *slog.TextHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return slog.NewTextHandler(sinkWriter{sink: sink}, &slog.HandlerOptions{
		Level:       cfg.level,
		AddSource:   cfg.addSource,
		ReplaceAttr: dropTime,
	})
}

func dropTime(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return attr
}

// sinkWriter adapts a ports.Logger to io.Writer. slog.TextHandler writes each
// record in a single call terminated by a newline.
type sinkWriter struct {
	sink ports.Logger
}

func (w sinkWriter) Write(p []byte) (int, error) {
	w.sink.LogUTF8(string(bytes.TrimSuffix(p, []byte("\n"))))
	return len(p), nil
}
