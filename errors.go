package livellm

import "errors"

// Sentinel errors for common failure modes.
//
// ErrParse, ErrUnknownComponent and ErrValidation are block-local: a
// component block that fails with one of them is rendered as a fallback
// and the stream continues. They surface through EventComponentError,
// never as a return value from Push.
var (
	// ErrParse indicates a component body that is not valid JSON or
	// exceeds the configured size bound.
	ErrParse = errors.New("component parse error")

	// ErrUnknownComponent indicates a component type with no registry entry.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrValidation indicates component props that fail schema validation.
	ErrValidation = errors.New("component validation error")

	// ErrTransport indicates an adapter-level failure reading the external
	// source. Not locally recoverable: the adapter aborts the session and
	// returns the wrapped error to the caller.
	ErrTransport = errors.New("transport error")
)
