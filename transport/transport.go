// Package transport bridges external asynchronous sources (byte streams,
// server-sent events, message sockets) onto the session's synchronous
// Push/End/Abort surface. Adapters own the only blocking points in the
// system: each one delivers into the session sequentially from a single
// pump loop, so the session itself never needs locking.
package transport

import (
	"io"

	"github.com/charmbracelet/log"
)

// Pusher is the narrow session surface adapters drive. *livellm.Session
// satisfies it.
type Pusher interface {
	Push(token string)
	End()
	Abort()
}

// Extract converts one raw message into a token. done reports an
// end-of-stream marker; a non-nil error is a transport failure that
// aborts the session.
type Extract func(data []byte) (token string, done bool, err error)

// Option configures an adapter pump.
type Option func(*config)

type config struct {
	extract  Extract
	logger   *log.Logger
	event    string
	sentinel string
}

func newConfig(opts []Option) config {
	cfg := config{
		extract:  WireExtract,
		logger:   log.New(io.Discard),
		sentinel: "[DONE]",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithExtract overrides the default wire-format token extraction.
func WithExtract(fn Extract) Option {
	return func(c *config) { c.extract = fn }
}

// WithLogger attaches a logger for adapter diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithEvent restricts the SSE adapter to a named event channel. Messages
// with a different event name are ignored.
func WithEvent(name string) Option {
	return func(c *config) { c.event = name }
}

// WithSentinel overrides the SSE end-of-stream data value (default "[DONE]").
func WithSentinel(s string) Option {
	return func(c *config) { c.sentinel = s }
}
