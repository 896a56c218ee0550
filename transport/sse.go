package transport

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/livellm"
)

// PumpSSE reads a server-sent-events stream from r and drives sess with
// tokens extracted from each event's data payload. A data value equal to
// the configured sentinel ends the session normally, as does EOF. When an
// event-name filter is set (WithEvent), named events that don't match are
// skipped; unnamed events always pass.
func PumpSSE(ctx context.Context, r io.Reader, sess Pusher, opts ...Option) error {
	cfg := newConfig(opts)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var eventType string
	var dataBuf strings.Builder
	dispatch := func() (bool, error) {
		name, data := eventType, dataBuf.String()
		eventType = ""
		dataBuf.Reset()
		if cfg.event != "" && name != "" && name != cfg.event {
			return false, nil
		}
		if data == cfg.sentinel {
			sess.End()
			return true, nil
		}
		token, done, err := cfg.extract([]byte(data))
		if err != nil {
			cfg.logger.Error("stream failed", "err", err, "event", name)
			sess.Abort()
			return true, err
		}
		if done {
			sess.End()
			return true, nil
		}
		if token != "" {
			sess.Push(token)
		}
		return false, nil
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			sess.Abort()
			return err
		}
		line := scanner.Text()
		if line == "" {
			// Empty line signals end of event.
			if dataBuf.Len() == 0 {
				continue
			}
			if stop, err := dispatch(); stop {
				return err
			}
			continue
		}
		switch {
		case strings.HasPrefix(line, "event: "):
			eventType = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			if dataBuf.Len() > 0 {
				dataBuf.WriteByte('\n')
			}
			dataBuf.WriteString(strings.TrimPrefix(line, "data: "))
		}
		// Ignore comments (lines starting with ':') and unknown fields.
	}
	if err := scanner.Err(); err != nil {
		cfg.logger.Error("stream read failed", "err", err)
		sess.Abort()
		return fmt.Errorf("read events: %v: %w", err, livellm.ErrTransport)
	}
	if dataBuf.Len() > 0 {
		if stop, err := dispatch(); stop {
			return err
		}
	}
	sess.End()
	return nil
}
