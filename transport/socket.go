package transport

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/fwojciec/livellm"
)

// PumpSocket reads messages from a websocket connection and drives sess
// with the extracted tokens. A normal or going-away close ends the
// session; any other read error aborts it. Cancelling ctx closes the
// connection, which unblocks the read loop and aborts the session.
func PumpSocket(ctx context.Context, conn *websocket.Conn, sess Pusher, opts ...Option) error {
	cfg := newConfig(opts)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-stop:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				sess.Abort()
				return ctxErr
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.End()
				return nil
			}
			cfg.logger.Error("socket read failed", "err", err)
			sess.Abort()
			return fmt.Errorf("read socket: %v: %w", err, livellm.ErrTransport)
		}
		token, done, err := cfg.extract(data)
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
}
