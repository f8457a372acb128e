// Package tui provides the Bubble Tea integration for termsnake.
// The engine owns timing; the model only turns engine frames into views and
// key presses into commands.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sm1k0/termsnake/internal/games/snake"
)

// FrameMsg carries a snapshot drawn by the engine's render loop.
type FrameMsg snake.Snapshot

// DoneMsg is sent once the engine has stopped.
type DoneMsg struct {
	Final snake.Snapshot
	Err   error
}

// frameRelay is the engine Renderer for Bubble Tea: it hands snapshots to
// the program through a one-slot channel, dropping stale frames so the
// render loop never blocks on a slow terminal.
type frameRelay struct {
	ch chan snake.Snapshot
}

func newFrameRelay() *frameRelay {
	return &frameRelay{ch: make(chan snake.Snapshot, 1)}
}

// Render implements engine.Renderer.
func (r *frameRelay) Render(snap snake.Snapshot) {
	for {
		select {
		case r.ch <- snap:
			return
		default:
		}
		// Slot taken by an unread frame: discard it and retry
		select {
		case <-r.ch:
		default:
		}
	}
}

// waitForFrame returns a command that delivers the next frame, or nothing
// once ctx is done.
func waitForFrame(ctx context.Context, ch <-chan snake.Snapshot) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-ch:
			return FrameMsg(snap)
		case <-ctx.Done():
			return nil
		}
	}
}
