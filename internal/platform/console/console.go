// Package console is the raw terminal backend built on tcell. It draws each
// engine frame straight into the terminal cell grid with the cursor hidden,
// and feeds key events to the engine from tcell's event stream.
package console

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/sm1k0/termsnake/internal/core"
	"github.com/sm1k0/termsnake/internal/engine"
	"github.com/sm1k0/termsnake/internal/games/snake"
)

// palette maps core colors to terminal palette entries.
var palette = map[core.Color]tcell.Color{
	core.ColorDefault:      tcell.ColorDefault,
	core.ColorRed:          tcell.PaletteColor(1),
	core.ColorGreen:        tcell.PaletteColor(2),
	core.ColorYellow:       tcell.PaletteColor(3),
	core.ColorBlue:         tcell.PaletteColor(4),
	core.ColorMagenta:      tcell.PaletteColor(5),
	core.ColorCyan:         tcell.PaletteColor(6),
	core.ColorWhite:        tcell.PaletteColor(7),
	core.ColorBrightRed:    tcell.PaletteColor(9),
	core.ColorBrightGreen:  tcell.PaletteColor(10),
	core.ColorBrightYellow: tcell.PaletteColor(11),
	core.ColorGray:         tcell.PaletteColor(245),
}

// Console renders snapshots to a tcell screen. It implements engine.Renderer.
type Console struct {
	screen tcell.Screen
	style  snake.Style

	mu  sync.Mutex // Guards buf and every write to screen
	buf *core.Screen
}

// Open initialises the controlling terminal.
func Open(style snake.Style) (*Console, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("console: cannot create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("console: cannot initialise screen: %w", err)
	}
	return New(screen, style), nil
}

// New wraps an initialised screen.
func New(screen tcell.Screen, style snake.Style) *Console {
	screen.HideCursor()
	screen.Clear()
	return &Console{
		screen: screen,
		style:  style,
		buf:    core.NewScreen(snake.ScreenW, snake.ScreenH+2), // Board plus banner lines
	}
}

// Close restores the terminal.
func (c *Console) Close() {
	c.screen.Fini()
}

// Render draws a full frame: border, snake and food.
func (c *Console) Render(snap snake.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf.Clear()
	snake.Draw(c.buf, snap, c.style)

	c.screen.Clear()
	c.blit()
	c.screen.Show()
}

// blit copies the board buffer to the terminal. Caller holds mu.
func (c *Console) blit() {
	for y := range c.buf.Height() {
		for x := range c.buf.Width() {
			cell := c.buf.GetCell(x, y)
			st := tcell.StyleDefault.Foreground(palette[cell.Color])
			c.screen.SetContent(x, y, cell.Rune, nil, st)
		}
	}
}

// showGameOver writes the banner under the last frame.
func (c *Console) showGameOver(final snake.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.buf.DrawTextCentered(snake.ScreenH, "Game Over!")
	c.buf.DrawTextCentered(snake.ScreenH+1, fmt.Sprintf("length %d. Press any key.", final.Len()))
	c.blit()
	c.screen.Show()
}

// MapKey translates a tcell key event to a command.
// Returns the command (may be CommandNone) and whether it's a quit request.
func MapKey(ev *tcell.EventKey) (cmd core.Command, isQuit bool) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return core.CommandNone, true
	case tcell.KeyUp:
		return core.CommandUp, false
	case tcell.KeyDown:
		return core.CommandDown, false
	case tcell.KeyLeft:
		return core.CommandLeft, false
	case tcell.KeyRight:
		return core.CommandRight, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return core.CommandNone, true
		case 'w', 'k':
			return core.CommandUp, false
		case 's', 'j':
			return core.CommandDown, false
		case 'a', 'h':
			return core.CommandLeft, false
		case 'd', 'l':
			return core.CommandRight, false
		}
	}
	return core.CommandNone, false
}

type runResult struct {
	final snake.Snapshot
	err   error
}

// Play runs eng with this console as its input, then shows "Game Over!" and
// waits for one key. The engine must have been created with c as renderer.
// Quitting early returns the current state and context.Canceled.
func (c *Console) Play(ctx context.Context, eng *engine.Engine) (snake.Snapshot, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go c.screen.ChannelEvents(events, quit)
	defer close(quit)

	done := make(chan runResult, 1)
	go func() {
		final, err := eng.Run(runCtx)
		done <- runResult{final: final, err: err}
	}()

	var res runResult
playing:
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				cancel()
				events = nil
				continue
			}
			c.handleEvent(ev, eng, cancel)
		case res = <-done:
			break playing
		}
	}

	if res.err != nil {
		return res.final, res.err
	}

	c.showGameOver(res.final)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return res.final, nil
			}
			if _, isKey := ev.(*tcell.EventKey); isKey {
				return res.final, nil
			}
			c.handleEvent(ev, nil, nil)
		case <-ctx.Done():
			return res.final, nil
		}
	}
}

// handleEvent steers, quits or resyncs the display. eng is nil once the
// game is over.
func (c *Console) handleEvent(ev tcell.Event, eng *engine.Engine, cancel context.CancelFunc) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if eng == nil {
			return
		}
		cmd, isQuit := MapKey(ev)
		if isQuit {
			cancel()
			return
		}
		eng.Submit(cmd)
	case *tcell.EventResize:
		c.mu.Lock()
		c.screen.Sync()
		c.mu.Unlock()
	}
}

// IsAborted reports whether err means the player quit.
func IsAborted(err error) bool {
	return errors.Is(err, context.Canceled)
}
