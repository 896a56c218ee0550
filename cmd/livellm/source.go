package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/fwojciec/livellm/transport"
	"github.com/fwojciec/livellm/tui"
)

var errConflictingSources = errors.New("--sse and --ws are mutually exclusive")

// buildSource resolves the stream source from flags. The returned cleanup
// releases anything opened eagerly (an input file) and is always safe to
// call.
func buildSource(opts *options, path string, logger *log.Logger) (tui.SourceFunc, func(), error) {
	nop := func() {}

	switch {
	case opts.sseURL != "" && opts.wsURL != "":
		return nil, nop, errConflictingSources

	case opts.sseURL != "":
		return sseSource(opts.sseURL, opts.event, logger), nop, nil

	case opts.wsURL != "":
		return wsSource(opts.wsURL, logger), nop, nil

	case path != "":
		f, err := os.Open(path)
		if err != nil {
			return nil, nop, fmt.Errorf("open stream file: %w", err)
		}
		return readerSource(f, logger), func() { f.Close() }, nil

	default:
		return readerSource(os.Stdin, logger), nop, nil
	}
}

func readerSource(f *os.File, logger *log.Logger) tui.SourceFunc {
	return func(ctx context.Context, sess transport.Pusher) error {
		return transport.Pump(ctx, f, sess, transport.WithLogger(logger))
	}
}

func sseSource(url, event string, logger *log.Logger) tui.SourceFunc {
	return func(ctx context.Context, sess transport.Pusher) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			sess.Abort()
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "text/event-stream")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			sess.Abort()
			return fmt.Errorf("connect: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			sess.Abort()
			return fmt.Errorf("connect: unexpected status %s", resp.Status)
		}

		pumpOpts := []transport.Option{transport.WithLogger(logger)}
		if event != "" {
			pumpOpts = append(pumpOpts, transport.WithEvent(event))
		}
		return transport.PumpSSE(ctx, resp.Body, sess, pumpOpts...)
	}
}

func wsSource(url string, logger *log.Logger) tui.SourceFunc {
	return func(ctx context.Context, sess transport.Pusher) error {
		conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
		if err != nil {
			sess.Abort()
			return fmt.Errorf("dial: %w", err)
		}
		defer conn.Close()
		return transport.PumpSocket(ctx, conn, sess, transport.WithLogger(logger))
	}
}
