package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/fwojciec/livellm"
)

const maxLineBytes = 1 << 20

// Pump reads newline-delimited records from r and drives sess with the
// extracted tokens. EOF ends the session normally; a read or decode
// failure aborts it and the failure is returned. Cancelling ctx aborts
// the session before the next record is processed.
func Pump(ctx context.Context, r io.Reader, sess Pusher, opts ...Option) error {
	cfg := newConfig(opts)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			sess.Abort()
			return err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		token, done, err := cfg.extract(line)
		if err != nil {
			cfg.logger.Error("stream failed", "err", err)
			sess.Abort()
			return err
		}
		if done {
			sess.End()
			return nil
		}
		if token != "" {
			sess.Push(token)
		}
	}
	if err := scanner.Err(); err != nil {
		cfg.logger.Error("stream read failed", "err", err)
		sess.Abort()
		return fmt.Errorf("read stream: %v: %w", err, livellm.ErrTransport)
	}
	sess.End()
	return nil
}
