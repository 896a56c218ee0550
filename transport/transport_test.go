package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fwojciec/livellm"
	"github.com/fwojciec/livellm/transport"
)

// pusher records the calls an adapter makes on its session.
type pusher struct {
	tokens  []string
	ended   bool
	aborted bool
}

func (p *pusher) Push(token string) { p.tokens = append(p.tokens, token) }
func (p *pusher) End()              { p.ended = true }
func (p *pusher) Abort()            { p.aborted = true }

func TestDecodeRecord(t *testing.T) {
	t.Parallel()

	t.Run("token record", func(t *testing.T) {
		t.Parallel()
		rec, err := transport.DecodeRecord([]byte(`{"type":"token","token":"Hi"}`))
		require.NoError(t, err)
		assert.Equal(t, transport.RecordToken, rec.Type)
		assert.Equal(t, "Hi", rec.Token)
	})

	t.Run("done record with usage", func(t *testing.T) {
		t.Parallel()
		rec, err := transport.DecodeRecord([]byte(`{"type":"done","usage":{"input_tokens":3,"output_tokens":7}}`))
		require.NoError(t, err)
		require.NotNil(t, rec.Usage)
		assert.Equal(t, 3, rec.Usage.InputTokens)
		assert.Equal(t, 7, rec.Usage.OutputTokens)
	})

	t.Run("unknown type is a transport error", func(t *testing.T) {
		t.Parallel()
		_, err := transport.DecodeRecord([]byte(`{"type":"mystery"}`))
		assert.ErrorIs(t, err, livellm.ErrTransport)
	})

	t.Run("malformed JSON is a transport error", func(t *testing.T) {
		t.Parallel()
		_, err := transport.DecodeRecord([]byte(`{`))
		assert.ErrorIs(t, err, livellm.ErrTransport)
	})
}

func TestPump(t *testing.T) {
	t.Parallel()

	t.Run("pushes tokens and ends on done record", func(t *testing.T) {
		t.Parallel()
		input := strings.Join([]string{
			`{"type":"token","token":"Hello, "}`,
			`{"type":"metadata","metadata":{"model":"m-1"}}`,
			`{"type":"token","token":"world"}`,
			`{"type":"done"}`,
		}, "\n")

		p := &pusher{}
		err := transport.Pump(context.Background(), strings.NewReader(input), p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hello, ", "world"}, p.tokens)
		assert.True(t, p.ended)
		assert.False(t, p.aborted)
	})

	t.Run("ends on EOF without done record", func(t *testing.T) {
		t.Parallel()
		p := &pusher{}
		err := transport.Pump(context.Background(), strings.NewReader(`{"type":"token","token":"Hi"}`), p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hi"}, p.tokens)
		assert.True(t, p.ended)
	})

	t.Run("error record aborts", func(t *testing.T) {
		t.Parallel()
		input := `{"type":"token","token":"Hi"}` + "\n" + `{"type":"error","message":"overloaded"}`
		p := &pusher{}
		err := transport.Pump(context.Background(), strings.NewReader(input), p)
		require.ErrorIs(t, err, livellm.ErrTransport)
		assert.Contains(t, err.Error(), "overloaded")
		assert.True(t, p.aborted)
		assert.False(t, p.ended)
	})

	t.Run("junk line aborts", func(t *testing.T) {
		t.Parallel()
		p := &pusher{}
		err := transport.Pump(context.Background(), strings.NewReader("not json\n"), p)
		require.ErrorIs(t, err, livellm.ErrTransport)
		assert.True(t, p.aborted)
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		t.Parallel()
		input := "\n" + `{"type":"token","token":"Hi"}` + "\n\n"
		p := &pusher{}
		err := transport.Pump(context.Background(), strings.NewReader(input), p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hi"}, p.tokens)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := &pusher{}
		err := transport.Pump(ctx, strings.NewReader(`{"type":"token","token":"Hi"}`), p)
		require.ErrorIs(t, err, context.Canceled)
		assert.True(t, p.aborted)
	})

	t.Run("drives a real session", func(t *testing.T) {
		t.Parallel()
		input := strings.Join([]string{
			`{"type":"token","token":"Hello, "}`,
			`{"type":"token","token":"world"}`,
			`{"type":"done"}`,
		}, "\n")

		var container livellm.Container
		sess := livellm.NewSession(&container, nil)
		require.NoError(t, transport.Pump(context.Background(), strings.NewReader(input), sess))
		assert.Equal(t, "Hello, world", sess.FullText())
		assert.Equal(t, livellm.StateDone, sess.State())
	})

	t.Run("custom extractor", func(t *testing.T) {
		t.Parallel()
		extract := func(data []byte) (string, bool, error) {
			return string(data), false, nil
		}
		p := &pusher{}
		err := transport.Pump(context.Background(), strings.NewReader("raw line\n"), p, transport.WithExtract(extract))
		require.NoError(t, err)
		assert.Equal(t, []string{"raw line"}, p.tokens)
	})
}

func TestPumpSSE(t *testing.T) {
	t.Parallel()

	t.Run("pushes event data and ends on sentinel", func(t *testing.T) {
		t.Parallel()
		input := strings.Join([]string{
			`data: {"type":"token","token":"Hello, "}`,
			"",
			`data: {"type":"token","token":"world"}`,
			"",
			"data: [DONE]",
			"",
		}, "\n")

		p := &pusher{}
		err := transport.PumpSSE(context.Background(), strings.NewReader(input), p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hello, ", "world"}, p.tokens)
		assert.True(t, p.ended)
	})

	t.Run("event filter skips other channels", func(t *testing.T) {
		t.Parallel()
		input := strings.Join([]string{
			"event: ping",
			"data: {}",
			"",
			"event: delta",
			`data: {"type":"token","token":"Hi"}`,
			"",
		}, "\n")

		p := &pusher{}
		err := transport.PumpSSE(context.Background(), strings.NewReader(input), p, transport.WithEvent("delta"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Hi"}, p.tokens)
		assert.True(t, p.ended)
	})

	t.Run("multi-line data joins with newline", func(t *testing.T) {
		t.Parallel()
		var got string
		extract := func(data []byte) (string, bool, error) {
			got = string(data)
			return "", false, nil
		}
		input := "data: first\ndata: second\n\n"
		p := &pusher{}
		require.NoError(t, transport.PumpSSE(context.Background(), strings.NewReader(input), p, transport.WithExtract(extract)))
		assert.Equal(t, "first\nsecond", got)
	})

	t.Run("trailing event without blank line is dispatched", func(t *testing.T) {
		t.Parallel()
		input := `data: {"type":"token","token":"Hi"}`
		p := &pusher{}
		err := transport.PumpSSE(context.Background(), strings.NewReader(input), p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hi"}, p.tokens)
		assert.True(t, p.ended)
	})

	t.Run("bad event data aborts", func(t *testing.T) {
		t.Parallel()
		p := &pusher{}
		err := transport.PumpSSE(context.Background(), strings.NewReader("data: not json\n\n"), p)
		require.ErrorIs(t, err, livellm.ErrTransport)
		assert.True(t, p.aborted)
	})

	t.Run("custom sentinel", func(t *testing.T) {
		t.Parallel()
		p := &pusher{}
		err := transport.PumpSSE(context.Background(), strings.NewReader("data: EOS\n\n"), p, transport.WithSentinel("EOS"))
		require.NoError(t, err)
		assert.True(t, p.ended)
		assert.Empty(t, p.tokens)
	})
}

func TestPumpSocket(t *testing.T) {
	t.Parallel()

	upgrader := websocket.Upgrader{}

	dial := func(t *testing.T, handler http.HandlerFunc) *websocket.Conn {
		t.Helper()
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		url := "ws" + strings.TrimPrefix(srv.URL, "http")
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}

	t.Run("pushes messages and ends on normal close", func(t *testing.T) {
		t.Parallel()
		conn := dial(t, func(w http.ResponseWriter, r *http.Request) {
			c, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer c.Close()
			c.WriteMessage(websocket.TextMessage, []byte(`{"type":"token","token":"Hello, "}`))
			c.WriteMessage(websocket.TextMessage, []byte(`{"type":"token","token":"world"}`))
			c.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		})

		p := &pusher{}
		err := transport.PumpSocket(context.Background(), conn, p)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hello, ", "world"}, p.tokens)
		assert.True(t, p.ended)
	})

	t.Run("done record ends before close", func(t *testing.T) {
		t.Parallel()
		conn := dial(t, func(w http.ResponseWriter, r *http.Request) {
			c, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer c.Close()
			c.WriteMessage(websocket.TextMessage, []byte(`{"type":"done"}`))
		})

		p := &pusher{}
		require.NoError(t, transport.PumpSocket(context.Background(), conn, p))
		assert.True(t, p.ended)
	})

	t.Run("abrupt close aborts", func(t *testing.T) {
		t.Parallel()
		conn := dial(t, func(w http.ResponseWriter, r *http.Request) {
			c, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			c.Close()
		})

		p := &pusher{}
		err := transport.PumpSocket(context.Background(), conn, p)
		require.ErrorIs(t, err, livellm.ErrTransport)
		assert.True(t, p.aborted)
	})

	t.Run("error record aborts", func(t *testing.T) {
		t.Parallel()
		conn := dial(t, func(w http.ResponseWriter, r *http.Request) {
			c, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer c.Close()
			c.WriteMessage(websocket.TextMessage, []byte(`{"type":"error","message":"boom"}`))
		})

		p := &pusher{}
		err := transport.PumpSocket(context.Background(), conn, p)
		require.ErrorIs(t, err, livellm.ErrTransport)
		assert.True(t, p.aborted)
	})
}
