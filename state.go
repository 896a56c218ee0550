package livellm

// StreamState indicates the current state of a Session.
type StreamState int

const (
	StateText       StreamState = iota // Consuming plain prose.
	StateFenceMaybe                    // Saw three backticks; classifying the info string.
	StateComponent                     // Inside a component fence, capturing the JSON body.
	StateDone                          // End() was called. Terminal.
	StateAborted                       // Abort() was called. Terminal.
)

// String returns the state name for logging and test output.
func (s StreamState) String() string {
	switch s {
	case StateText:
		return "text"
	case StateFenceMaybe:
		return "fence-maybe"
	case StateComponent:
		return "component"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
