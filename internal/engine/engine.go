// Package engine runs a snake.Game in real time: a fixed-period tick loop
// advances the simulation while an independently scheduled render loop hands
// immutable snapshots to a Renderer. Input arrives asynchronously through a
// latest-wins mailbox and is consumed once per tick.
package engine

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/sm1k0/termsnake/internal/core"
	"github.com/sm1k0/termsnake/internal/games/snake"
)

// Renderer draws a snapshot. It is called from the render loop only.
type Renderer interface {
	Render(snap snake.Snapshot)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(snap snake.Snapshot)

// Render calls f(snap).
func (f RendererFunc) Render(snap snake.Snapshot) { f(snap) }

// InputSource yields the command to apply on the given tick.
// Poll must not block; CommandNone means no input.
type InputSource interface {
	Poll(tick uint64) core.Command
}

// Observer is notified after every tick, on the tick loop goroutine.
type Observer interface {
	OnStep(res snake.StepResult)
}

// Engine drives one game session.
type Engine struct {
	game        *snake.Game
	renderer    Renderer
	mailbox     *Mailbox
	input       InputSource
	observers   []Observer
	tickEvery   time.Duration
	renderEvery time.Duration
	logger      *log.Logger
}

// New creates an engine for game. Zero periods fall back to the defaults.
func New(game *snake.Game, renderer Renderer, cfg core.RuntimeConfig) *Engine {
	def := core.DefaultConfig()
	if cfg.TickEvery <= 0 {
		cfg.TickEvery = def.TickEvery
	}
	if cfg.RenderEvery <= 0 {
		cfg.RenderEvery = def.RenderEvery
	}

	mb := NewMailbox()
	return &Engine{
		game:        game,
		renderer:    renderer,
		mailbox:     mb,
		input:       mb,
		tickEvery:   cfg.TickEvery,
		renderEvery: cfg.RenderEvery,
		logger:      log.New(io.Discard),
	}
}

// SetInput replaces the default mailbox input, e.g. with a replay Script.
func (e *Engine) SetInput(src InputSource) {
	e.input = src
}

// AddObserver registers a per-tick observer.
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// SetLogger sets the logger used for session events.
func (e *Engine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// Game returns the game being driven.
func (e *Engine) Game() *snake.Game {
	return e.game
}

// Submit posts a command for the next tick. It never blocks; a later command
// submitted before that tick replaces this one.
func (e *Engine) Submit(cmd core.Command) {
	e.mailbox.Submit(cmd)
}

// Run blocks until the game is over or ctx is done. Both loops stop on their
// own once game over is observed; the render loop draws the terminal state
// once before returning. Run returns the final snapshot, and ctx.Err() if the
// session was cut short.
func (e *Engine) Run(ctx context.Context) (snake.Snapshot, error) {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return e.tickLoop(ctx)
	})
	eg.Go(func() error {
		return e.renderLoop(ctx)
	})

	err := eg.Wait()
	return e.game.Snapshot(), err
}

func (e *Engine) tickLoop(ctx context.Context) error {
	ticker := time.NewTicker(e.tickEvery)
	defer ticker.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		tick++
		res := e.game.Step(e.input.Poll(tick))
		for _, o := range e.observers {
			o.OnStep(res)
		}

		if res.Ate {
			e.logger.Debug("food eaten", "tick", res.Tick, "next", res.Food)
		}
		if res.Over {
			e.logger.Debug("game over", "tick", res.Tick, "reason", res.Reason)
			return nil
		}
	}
}

func (e *Engine) renderLoop(ctx context.Context) error {
	ticker := time.NewTicker(e.renderEvery)
	defer ticker.Stop()

	for {
		snap := e.game.Snapshot()
		e.renderer.Render(snap)
		if snap.Over {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
