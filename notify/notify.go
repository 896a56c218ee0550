// Package notify fans session lifecycle events out to typed subscribers
// over an event bus, so observers can watch for component renders or
// stream completion without wrapping the session's notifier themselves.
package notify

import (
	eventbus "github.com/jilio/ebu"

	"github.com/fwojciec/livellm"
)

// Bus publishes session events to subscribers registered with On. It
// satisfies livellm.Notifier, so it plugs straight into
// livellm.WithNotifier.
type Bus struct {
	bus *eventbus.EventBus
}

var _ livellm.Notifier = (*Bus)(nil)

// New returns an empty bus.
func New() *Bus {
	return &Bus{bus: eventbus.New()}
}

// Notify publishes ev under its concrete type. Handlers run synchronously
// on the caller's goroutine, in subscription order.
func (b *Bus) Notify(ev livellm.Event) {
	switch ev := ev.(type) {
	case livellm.EventStreamStart:
		eventbus.Publish(b.bus, ev)
	case livellm.EventComponentRendered:
		eventbus.Publish(b.bus, ev)
	case livellm.EventComponentError:
		eventbus.Publish(b.bus, ev)
	case livellm.EventStreamDone:
		eventbus.Publish(b.bus, ev)
	}
}

// On registers fn for events of type T.
func On[T livellm.Event](b *Bus, fn func(T)) error {
	return eventbus.Subscribe(b.bus, fn)
}

// Once registers fn for the first event of type T only.
func Once[T livellm.Event](b *Bus, fn func(T)) error {
	return eventbus.Subscribe(b.bus, fn, eventbus.Once())
}

// Off removes a handler previously registered with On. The same function
// reference must be passed.
func Off[T livellm.Event](b *Bus, fn func(T)) error {
	return eventbus.Unsubscribe[T](b.bus, fn)
}
