package livellm

// Event is a sealed interface representing a session lifecycle event.
// Events are purely observational: a host application can log or react to
// them, but rendering is correct with no subscriber at all.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventStreamStart is emitted when the first token is pushed.
type EventStreamStart struct{}

func (EventStreamStart) event() {}

// EventComponentRendered is emitted when a component block finalizes into
// a live widget.
type EventComponentRendered struct {
	Type string
}

func (EventComponentRendered) event() {}

// EventComponentError is emitted when a component block degrades to a
// fallback. Err wraps one of ErrParse, ErrUnknownComponent, ErrValidation.
// The stream continues after this event.
type EventComponentError struct {
	Type string
	Err  error
}

func (EventComponentError) event() {}

// EventStreamDone is emitted when End() completes.
type EventStreamDone struct {
	Chars      int // total characters received
	Components int // component blocks rendered live (fallbacks excluded)
}

func (EventStreamDone) event() {}

// Interface compliance checks.
var (
	_ Event = EventStreamStart{}
	_ Event = EventComponentRendered{}
	_ Event = EventComponentError{}
	_ Event = EventStreamDone{}
)

// Notifier receives lifecycle events. Notify is called synchronously from
// Push/End and must not call back into the session.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e Event) { f(e) }
