package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sm1k0/termsnake/internal/core"
	"github.com/sm1k0/termsnake/internal/engine"
	"github.com/sm1k0/termsnake/internal/games/snake"
)

// Options customise a session.
type Options struct {
	Style     snake.Style
	Input     engine.InputSource // Replaces keyboard steering, e.g. a replay script
	Observers []engine.Observer
	Logger    *log.Logger
	Title     string // Shown above the board
}

type phase int

const (
	phasePlaying phase = iota
	phaseOver          // Waiting for the acknowledgment key
	phaseQuit
)

// Model is the Bubble Tea model for one snake session.
// The engine runs in its own goroutines; the model displays the frames it
// produces and forwards steering keys to it.
type Model struct {
	engine *engine.Engine
	relay  *frameRelay
	ctx    context.Context
	cancel context.CancelFunc

	keys   *KeyMapper
	help   help.Model
	style  snake.Style
	title  string
	replay bool

	screen *core.Screen
	last   snake.Snapshot
	phase  phase
	err    error
}

// NewModel creates a model driving game. The session ends when the game is
// over and acknowledged, when the user quits, or when ctx is done.
func NewModel(ctx context.Context, game *snake.Game, cfg core.RuntimeConfig, opts Options) Model {
	relay := newFrameRelay()
	eng := engine.New(game, relay, cfg)
	if opts.Input != nil {
		eng.SetInput(opts.Input)
	}
	for _, o := range opts.Observers {
		eng.AddObserver(o)
	}
	eng.SetLogger(opts.Logger)

	style := opts.Style
	if style == (snake.Style{}) {
		style = snake.DefaultStyle()
	}

	ctx, cancel := context.WithCancel(ctx)
	return Model{
		engine: eng,
		relay:  relay,
		ctx:    ctx,
		cancel: cancel,
		keys:   NewKeyMapper(),
		help:   help.New(),
		style:  style,
		title:  opts.Title,
		replay: opts.Input != nil,
		screen: core.NewScreen(snake.ScreenW, snake.ScreenH),
		last:   game.Snapshot(),
	}
}

// Init starts the engine and begins listening for frames.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runEngine(), waitForFrame(m.ctx, m.relay.ch))
}

func (m Model) runEngine() tea.Cmd {
	eng, ctx := m.engine, m.ctx
	return func() tea.Msg {
		final, err := eng.Run(ctx)
		return DoneMsg{Final: final, Err: err}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case FrameMsg:
		if m.phase != phasePlaying {
			return m, nil
		}
		m.last = snake.Snapshot(msg)
		return m, waitForFrame(m.ctx, m.relay.ch)

	case DoneMsg:
		return m.handleDone(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, isQuit := m.keys.MapKey(msg)

	if m.phase == phaseOver || isQuit {
		m.phase = phaseQuit
		m.cancel()
		return m, tea.Quit
	}

	if !m.replay {
		m.engine.Submit(cmd)
	}
	return m, nil
}

// handleDone switches to the game-over screen, or exits on failure.
func (m Model) handleDone(msg DoneMsg) (tea.Model, tea.Cmd) {
	m.last = msg.Final
	if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
		m.err = msg.Err
		m.phase = phaseQuit
		m.cancel()
		return m, tea.Quit
	}
	if m.phase == phasePlaying {
		m.phase = phaseOver
	}
	return m, nil
}

// Final returns the last state shown by the model.
func (m Model) Final() snake.Snapshot {
	return m.last
}

// Err returns the engine error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.phase == phaseQuit {
		return ""
	}

	m.screen.Clear()
	snake.Draw(m.screen, m.last, m.style)

	var sb strings.Builder
	if m.title != "" {
		sb.WriteString(titleStyle.Render(m.title))
		sb.WriteRune('\n')
	}
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteRune('\n')

	if m.phase == phaseOver {
		sb.WriteString(gameOverStyle.Render("Game Over!"))
		sb.WriteRune('\n')
		sb.WriteString(hintStyle.Render(fmt.Sprintf("length %d, %d ticks, %s. Press any key.",
			m.last.Len(), m.last.Tick, strings.ReplaceAll(string(m.last.Reason), "_", " "))))
		return sb.String()
	}

	sb.WriteString(m.help.View(m.keys.Keys()))
	return sb.String()
}

// Run plays one session in the current terminal and returns its final state.
func Run(ctx context.Context, game *snake.Game, cfg core.RuntimeConfig, opts Options) (snake.Snapshot, error) {
	model := NewModel(ctx, game, cfg, opts)
	defer model.cancel()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	res, err := p.Run()
	final := game.Snapshot()
	if err != nil {
		return final, fmt.Errorf("tui: %w", err)
	}
	if m, ok := res.(Model); ok && m.err != nil {
		return final, m.err
	}
	return final, nil
}
