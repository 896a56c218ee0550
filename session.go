package livellm

import "strings"

const (
	// ComponentPrefix is the reserved info-string prefix that marks a
	// fenced block as a component rather than an ordinary code block.
	ComponentPrefix = "livellm:"

	// DefaultMaxComponentBytes bounds a component's JSON body. Larger
	// bodies degrade to a fallback block.
	DefaultMaxComponentBytes = 64 * 1024

	// DefaultWidth is the render width used before the host reports one.
	DefaultWidth = 80

	fenceRune   = '`'
	fenceLen    = 3
	cursorGlyph = "▌"
)

// Option configures a Session.
type Option func(*Session)

// WithRegistry sets the component registry. Without one every component
// block degrades to a fallback.
func WithRegistry(r Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithMarkdown sets the prose renderer. The default passes text through
// unstyled.
func WithMarkdown(md Markdown) Option {
	return func(s *Session) { s.md = md }
}

// WithNotifier sets the lifecycle event sink. Events are dropped without one.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithTicker sets the scheduler's tick source. Default is ImmediateTicker.
func WithTicker(t Ticker) Option {
	return func(s *Session) { s.ticker = t }
}

// WithTheme sets the color theme for skeleton and fallback rendering.
func WithTheme(theme Theme) Option {
	return func(s *Session) { s.theme = theme }
}

// WithWidth sets the initial render width.
func WithWidth(w int) Option {
	return func(s *Session) {
		if w > 0 {
			s.width = w
		}
	}
}

// WithMaxComponentBytes overrides the component body size bound.
func WithMaxComponentBytes(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxComponentBytes = n
		}
	}
}

// WithRepair enables a JSON repair pass for component bodies cut off by
// End() before their closing fence arrived.
func WithRepair() Option {
	return func(s *Session) { s.repair = true }
}

// Session is the incremental stream-to-UI state machine. It consumes
// tokens one character at a time, routes prose into markdown text nodes,
// detects embedded component blocks, manages their skeleton/finalize
// lifecycle and batches paints through the scheduler.
//
// A session is single-owner and fully synchronous: Push, End and Abort
// must be invoked sequentially and never from inside a render or event
// callback. One session owns one container; neither is restartable after
// End or Abort.
type Session struct {
	container *Container
	sink      func(frame string)
	registry  Registry
	md        Markdown
	notifier  Notifier
	ticker    Ticker
	theme     Theme

	width             int
	maxComponentBytes int
	repair            bool

	state   StreamState
	aborted bool
	started bool

	// full is the canonical append-only record of every character
	// received, independent of how it rendered.
	full strings.Builder

	// Plain-text accumulation: the live text node holds the current
	// unflushed prose run. nil between runs.
	text *TextNode

	// tickRun counts consecutive backticks seen in StateText while
	// deciding whether a fence is opening.
	tickRun int

	// fenceAccum captures the candidate fence's info string.
	fenceAccum strings.Builder

	// Component capture. Populated only in StateComponent.
	componentType string
	componentJSON strings.Builder
	fenceInfo     string
	compLineStart bool
	compTicks     int
	pending       *SkeletonNode

	// Scheduler bookkeeping.
	dirty      bool
	cancelTick func()

	rendered int // live widgets produced, for EventStreamDone
	chars    int // characters consumed, for EventStreamDone
}

// NewSession creates a session writing frames for container into sink.
// sink may be nil when the host reads the container directly.
func NewSession(container *Container, sink func(frame string), opts ...Option) *Session {
	s := &Session{
		container:         container,
		sink:              sink,
		md:                MarkdownFunc(func(source string, _ int) string { return source }),
		ticker:            ImmediateTicker{},
		theme:             DefaultTheme(),
		width:             DefaultWidth,
		maxComponentBytes: DefaultMaxComponentBytes,
		state:             StateText,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current stream state.
func (s *Session) State() StreamState {
	return s.state
}

// FullText returns the raw accumulated input: the concatenation of every
// token ever pushed, regardless of chunk boundaries.
func (s *Session) FullText() string {
	return s.full.String()
}

// Container returns the rendering surface the session writes into.
func (s *Session) Container() *Container {
	return s.container
}

// SetWidth updates the render width (e.g. on terminal resize) and
// schedules a repaint.
func (s *Session) SetWidth(w int) {
	if w <= 0 || s.aborted || w == s.width {
		return
	}
	s.width = w
	if s.state != StateDone {
		s.markDirty()
		return
	}
	s.paintNow()
}

// Push ingests a chunk of arbitrary length. Chunk boundaries carry no
// meaning: the same input split any way yields the same output. No-op
// after End or Abort.
func (s *Session) Push(token string) {
	if s.state == StateDone || s.state == StateAborted {
		return
	}
	if !s.started {
		s.started = true
		s.notify(EventStreamStart{})
	}
	s.full.WriteString(token)
	for _, r := range token {
		s.chars++
		s.consume(r)
	}
}

// End finalizes the stream: an unterminated component block degrades to a
// fallback, buffered fence text is flushed as prose, the cursor is removed
// and the state becomes StateDone. Idempotent.
func (s *Session) End() {
	if s.state == StateDone || s.state == StateAborted {
		return
	}
	switch s.state {
	case StateComponent:
		s.finalizeComponent(false)
	case StateFenceMaybe:
		// The fence never completed a line; replay it as literal text.
		s.appendText("```" + s.fenceAccum.String())
		s.fenceAccum.Reset()
	case StateText:
		if s.tickRun > 0 {
			s.appendText(strings.Repeat("`", s.tickRun))
			s.tickRun = 0
		}
	}
	s.state = StateDone
	s.cancelPending()
	s.paintNow()
	s.notify(EventStreamDone{Chars: s.chars, Components: s.rendered})
}

// Abort transitions immediately to StateAborted, cancelling any pending
// frame request and discarding the in-flight skeleton without finalizing
// it. Idempotent; all subsequent Push/End calls are no-ops.
func (s *Session) Abort() {
	if s.state == StateDone || s.state == StateAborted {
		return
	}
	s.aborted = true
	s.cancelPending()
	if s.pending != nil {
		s.container.Remove(s.pending)
		s.pending = nil
	}
	s.componentType = ""
	s.componentJSON.Reset()
	s.fenceInfo = ""
	s.state = StateAborted
	s.paintNow()
}

// consume advances the state machine by one character.
func (s *Session) consume(r rune) {
	switch s.state {
	case StateText:
		s.consumeText(r)
	case StateFenceMaybe:
		s.consumeFenceMaybe(r)
	case StateComponent:
		s.consumeComponent(r)
	}
}

func (s *Session) consumeText(r rune) {
	if r == fenceRune {
		s.tickRun++
		if s.tickRun == fenceLen {
			s.tickRun = 0
			s.fenceAccum.Reset()
			s.state = StateFenceMaybe
		}
		return
	}
	if s.tickRun > 0 {
		s.appendText(strings.Repeat("`", s.tickRun))
		s.tickRun = 0
	}
	s.appendText(string(r))
}

func (s *Session) consumeFenceMaybe(r rune) {
	if r != '\n' {
		s.fenceAccum.WriteRune(r)
		return
	}
	info := s.fenceAccum.String()
	s.fenceAccum.Reset()
	if strings.HasPrefix(info, ComponentPrefix) {
		s.openComponent(info)
		return
	}
	// Ordinary fenced code block: the markers and info string are
	// literal text for the markdown renderer.
	s.state = StateText
	s.appendText("```" + info + "\n")
}

func (s *Session) consumeComponent(r rune) {
	if s.compLineStart && r == fenceRune {
		s.compTicks++
		if s.compTicks == fenceLen {
			// Closing fence complete: finalize immediately rather than
			// waiting for the rest of the line.
			s.compTicks = 0
			s.finalizeComponent(true)
			s.state = StateText
		}
		return
	}
	if s.compTicks > 0 {
		s.componentJSON.WriteString(strings.Repeat("`", s.compTicks))
		s.compTicks = 0
	}
	s.compLineStart = r == '\n'
	s.componentJSON.WriteRune(r)
}

// openComponent flushes the current text run, inserts the skeleton
// placeholder and enters StateComponent.
func (s *Session) openComponent(info string) {
	s.text = nil // finalize the current text block
	s.componentType = strings.TrimSpace(strings.TrimPrefix(info, ComponentPrefix))
	s.fenceInfo = info
	s.componentJSON.Reset()
	s.compLineStart = true
	s.compTicks = 0

	comp, _ := s.lookup(s.componentType)
	s.pending = NewSkeletonNode(s.componentType, comp, s.theme)
	s.container.Append(s.pending)
	s.state = StateComponent
	s.markDirty()
}

func (s *Session) lookup(typ string) (Component, bool) {
	if s.registry == nil {
		return nil, false
	}
	return s.registry.Lookup(typ)
}

// appendText routes prose into the live text node, creating one if the
// previous run was flushed.
func (s *Session) appendText(text string) {
	if s.text == nil {
		s.text = NewTextNode(s.md)
		s.container.Append(s.text)
	}
	s.text.Append(text)
	s.markDirty()
}

func (s *Session) notify(e Event) {
	if s.notifier != nil {
		s.notifier.Notify(e)
	}
}

// markDirty schedules a paint. At most one tick request is pending at a
// time; pushes arriving before it fires collapse into a single paint.
func (s *Session) markDirty() {
	if s.dirty {
		return
	}
	s.dirty = true
	s.cancelTick = s.ticker.Request(s.paint)
}

func (s *Session) cancelPending() {
	if s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
	s.dirty = false
}

// paint performs the single sink write for the tick: one frame reflecting
// every mutation since the last one, with the cursor repositioned to the
// trailing edge.
func (s *Session) paint() {
	if s.aborted {
		return
	}
	s.dirty = false
	s.cancelTick = nil
	s.paintNow()
}

func (s *Session) paintNow() {
	if s.sink == nil {
		return
	}
	frame := s.container.Frame(s.width)
	if s.state != StateDone && s.state != StateAborted {
		frame += cursorGlyph
	}
	s.sink(frame)
}
