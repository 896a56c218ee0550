// Package tui provides a Bubble Tea front end for a live stream session.
// A source function produces the stream in a background goroutine; its
// tokens are marshalled through the Bubble Tea message loop so the session
// is only ever touched from the program's update goroutine.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwojciec/livellm/transport"
)

// SourceFunc produces the stream. It drives the given pusher with tokens
// and terminates it with End or Abort, blocking until the stream is
// exhausted or the context is cancelled. transport.Pump, PumpSSE and
// PumpSocket all fit once partially applied.
type SourceFunc func(ctx context.Context, sess transport.Pusher) error

// Run creates and runs the TUI program. It blocks until the program
// exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// TokenMsg delivers one stream token to the model.
type TokenMsg struct {
	Token string
}

// StreamEndMsg signals that the producer finished the stream normally.
type StreamEndMsg struct{}

// StreamAbortMsg signals that the producer abandoned the stream.
type StreamAbortMsg struct{}

// StreamDoneMsg signals that the source function has returned.
type StreamDoneMsg struct {
	Err error
}
