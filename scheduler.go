package livellm

import "time"

// Ticker is the injectable "next visual tick" capability backing the render
// scheduler. Request arranges for fire to be called once on the next tick
// and returns a cancel function. Implementations must deliver fire on the
// same cooperative discipline the session's caller uses for Push/End/Abort;
// the session never locks.
type Ticker interface {
	Request(fire func()) (cancel func())
}

// ImmediateTicker fires synchronously inside Request. It is the default:
// every mutation paints before Push returns, which is correct (if not
// batched) for any caller.
type ImmediateTicker struct{}

// Request implements Ticker.
func (ImmediateTicker) Request(fire func()) (cancel func()) {
	fire()
	return func() {}
}

// ManualTicker holds at most one pending fire until Fire is called.
// Intended for tests and for hosts that drive painting from their own
// loop (the TUI pumps it from frame messages).
type ManualTicker struct {
	pending func()
}

// Request implements Ticker.
func (t *ManualTicker) Request(fire func()) (cancel func()) {
	t.pending = fire
	return func() { t.pending = nil }
}

// Pending reports whether a fire is waiting.
func (t *ManualTicker) Pending() bool {
	return t.pending != nil
}

// Fire delivers the pending tick, if any.
func (t *ManualTicker) Fire() {
	if t.pending == nil {
		return
	}
	fire := t.pending
	t.pending = nil
	fire()
}

// TimerTicker fires after a fixed frame interval, batching all mutations
// that arrive in between into one paint. The fire callback runs on the
// timer goroutine: use it only when the owning loop serializes timer
// delivery with Push/End/Abort (e.g. a bubbletea program).
type TimerTicker struct {
	Interval time.Duration
}

// DefaultFrameInterval approximates a 30fps repaint rate, plenty for
// streamed text.
const DefaultFrameInterval = 33 * time.Millisecond

// Request implements Ticker.
func (t TimerTicker) Request(fire func()) (cancel func()) {
	iv := t.Interval
	if iv <= 0 {
		iv = DefaultFrameInterval
	}
	timer := time.AfterFunc(iv, fire)
	return func() { timer.Stop() }
}
