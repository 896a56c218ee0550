package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwojciec/livellm"
)

var _ tea.Model = Model{}

// Model is the Bubble Tea model hosting a live stream session.
type Model struct {
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	source  SourceFunc
	session *livellm.Session
	frame   *frameBuf
	styles  Styles

	cancel    context.CancelFunc
	sigCh     chan streamSignal
	doneCh    chan error
	streaming bool
	err       error
	ready     bool
}

// frameBuf holds the latest painted frame. The session sink writes it and
// View reads it; both run on the program's update goroutine.
type frameBuf struct {
	s string
}

// New creates a TUI Model that renders the stream produced by source.
// Session options are passed through, except the ticker: frames are
// painted synchronously as token messages arrive, since Bubble Tea
// already batches redraws.
func New(source SourceFunc, theme livellm.Theme, opts ...livellm.Option) Model {
	fb := &frameBuf{}
	container := &livellm.Container{}
	opts = append(opts[:len(opts):len(opts)],
		livellm.WithTheme(theme),
		livellm.WithTicker(livellm.ImmediateTicker{}),
	)
	session := livellm.NewSession(container, func(f string) { fb.s = f }, opts...)

	return Model{
		source:    source,
		session:   session,
		frame:     fb,
		styles:    NewStyles(theme),
		sigCh:     make(chan streamSignal, 256),
		doneCh:    make(chan error, 1),
		streaming: true,
	}
}

// Streaming returns whether the source is still producing.
func (m Model) Streaming() bool { return m.streaming }

// Err returns the source failure, if any.
func (m Model) Err() error { return m.err }

// Session returns the underlying session.
func (m Model) Session() *livellm.Session { return m.session }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	return tea.Batch(
		startSource(ctx, m.source, m.sigCh, m.doneCh),
		listenStream(m.sigCh, m.doneCh),
		storeCancel(cancel),
	)
}

// cancelMsg carries the source's cancel function back into Update, since
// Init cannot mutate the model the program keeps.
type cancelMsg struct {
	cancel context.CancelFunc
}

func storeCancel(cancel context.CancelFunc) tea.Cmd {
	return func() tea.Msg { return cancelMsg{cancel: cancel} }
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case cancelMsg:
		m.cancel = msg.cancel
		return m, nil

	case TokenMsg:
		m.session.Push(msg.Token)
		m = m.refresh()
		return m, listenStream(m.sigCh, m.doneCh)

	case StreamEndMsg:
		m.session.End()
		m = m.refresh()
		return m, listenStream(m.sigCh, m.doneCh)

	case StreamAbortMsg:
		m.session.Abort()
		m = m.refresh()
		return m, listenStream(m.sigCh, m.doneCh)

	case StreamDoneMsg:
		m.streaming = false
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			m.err = msg.Err
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	statusHeight := 1
	vpHeight := msg.Height - statusHeight - 1
	if vpHeight < 1 {
		vpHeight = 1
	}

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}

	m.session.SetWidth(msg.Width)
	m.Viewport.SetContent(m.frame.s)
	m.Viewport.GotoBottom()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.streaming {
			m.session.Abort()
			if m.cancel != nil {
				m.cancel()
			}
			return m.refresh(), nil
		}
		return m, tea.Quit

	case tea.KeyRunes:
		if !m.streaming && string(msg.Runes) == "q" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m Model) refresh() Model {
	atBottom := m.Viewport.AtBottom()
	m.Viewport.SetContent(m.frame.s)
	if atBottom {
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) statusLine() string {
	if m.err != nil {
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	}
	if m.streaming {
		return m.styles.Muted.Render("Streaming... Ctrl+C to stop")
	}
	if m.session.State() == livellm.StateAborted {
		return m.styles.Muted.Render("Stopped. q to quit")
	}
	return m.styles.Muted.Render("Done. q to quit")
}

type streamOp int

const (
	opToken streamOp = iota
	opEnd
	opAbort
)

type streamSignal struct {
	op    streamOp
	token string
}

// chanPusher adapts the signal channel to transport.Pusher so adapters can
// drive the session without touching it off the update goroutine.
type chanPusher struct {
	ctx context.Context
	ch  chan<- streamSignal
}

func (p chanPusher) Push(token string) { p.send(streamSignal{op: opToken, token: token}) }
func (p chanPusher) End()              { p.send(streamSignal{op: opEnd}) }
func (p chanPusher) Abort()            { p.send(streamSignal{op: opAbort}) }

func (p chanPusher) send(s streamSignal) {
	select {
	case p.ch <- s:
	case <-p.ctx.Done():
	}
}

// startSource runs the source in a goroutine and signals completion.
func startSource(ctx context.Context, run SourceFunc, sigCh chan streamSignal, doneCh chan<- error) tea.Cmd {
	return func() tea.Msg {
		err := run(ctx, chanPusher{ctx: ctx, ch: sigCh})
		close(sigCh)
		doneCh <- err
		return nil
	}
}

// listenStream waits for the next stream signal. When the channel closes,
// it reads the source error and returns StreamDoneMsg.
func listenStream(ch <-chan streamSignal, doneCh <-chan error) tea.Cmd {
	return func() tea.Msg {
		sig, ok := <-ch
		if !ok {
			return StreamDoneMsg{Err: <-doneCh}
		}
		switch sig.op {
		case opEnd:
			return StreamEndMsg{}
		case opAbort:
			return StreamAbortMsg{}
		default:
			return TokenMsg{Token: sig.token}
		}
	}
}
