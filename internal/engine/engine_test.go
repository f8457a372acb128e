package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sm1k0/termsnake/internal/core"
	"github.com/sm1k0/termsnake/internal/games/snake"
)

func fastConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		TickEvery:   time.Millisecond,
		RenderEvery: time.Millisecond,
	}
}

// frameLog collects every snapshot handed to the renderer.
type frameLog struct {
	mu     sync.Mutex
	frames []snake.Snapshot
}

func (f *frameLog) Render(snap snake.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, snap)
}

func (f *frameLog) last() snake.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames[len(f.frames)-1]
}

type stepLog struct {
	steps []snake.StepResult
}

func (s *stepLog) OnStep(res snake.StepResult) {
	s.steps = append(s.steps, res)
}

func TestRunUntilWall(t *testing.T) {
	frames := &frameLog{}
	steps := &stepLog{}
	eng := New(snake.New(1), frames, fastConfig())
	eng.AddObserver(steps)

	final, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// Heading right from (10,10), the head leaves the board on tick 22
	if !final.Over || final.Reason != snake.ReasonOutOfBounds {
		t.Errorf("final = %+v, expected out_of_bounds", final)
	}
	if final.Head() != (core.Coord{X: 32, Y: 10}) {
		t.Errorf("final head = %+v, expected (32,10)", final.Head())
	}
	if len(steps.steps) != 22 {
		t.Errorf("observed %d steps, expected 22", len(steps.steps))
	}

	// The render loop shows the terminal state before it stops
	if last := frames.last(); !last.Over {
		t.Errorf("last frame not terminal: %+v", last)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := core.RuntimeConfig{TickEvery: time.Hour, RenderEvery: time.Hour}
	eng := New(snake.New(1), &frameLog{}, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := eng.Run(ctx)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, expected context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestScriptedInput(t *testing.T) {
	steps := &stepLog{}
	eng := New(snake.New(2), RendererFunc(func(snake.Snapshot) {}), fastConfig())
	eng.SetInput(Script{
		1: core.CommandUp,
	})
	eng.AddObserver(steps)

	final, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	// Turning up on the first tick puts the head past the top wall on tick 11
	if steps.steps[0].Command != core.CommandUp {
		t.Errorf("first step consumed %v, expected up", steps.steps[0].Command)
	}
	if final.Head() != (core.Coord{X: 10, Y: -1}) {
		t.Errorf("final head = %+v, expected (10,-1)", final.Head())
	}
	if len(steps.steps) != 11 {
		t.Errorf("observed %d steps, expected 11", len(steps.steps))
	}
}

func TestSubmitBeforeFirstTick(t *testing.T) {
	steps := &stepLog{}
	cfg := core.RuntimeConfig{TickEvery: 5 * time.Millisecond, RenderEvery: time.Millisecond}
	eng := New(snake.New(3), &frameLog{}, cfg)
	eng.AddObserver(steps)

	// Several presses before the first tick: only the last one counts
	eng.Submit(core.CommandUp)
	eng.Submit(core.CommandLeft)
	eng.Submit(core.CommandDown)

	final, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if steps.steps[0].Command != core.CommandDown {
		t.Errorf("first step consumed %v, expected down", steps.steps[0].Command)
	}
	for _, s := range steps.steps[1:] {
		if s.Command != core.CommandNone {
			t.Errorf("tick %d consumed %v, expected no input", s.Tick, s.Command)
		}
	}
	if final.Head() != (core.Coord{X: 10, Y: 22}) {
		t.Errorf("final head = %+v, expected (10,22)", final.Head())
	}
}

func TestZeroPeriodsUseDefaults(t *testing.T) {
	eng := New(snake.New(1), &frameLog{}, core.RuntimeConfig{})
	def := core.DefaultConfig()
	if eng.tickEvery != def.TickEvery || eng.renderEvery != def.RenderEvery {
		t.Errorf("periods = %v/%v, expected %v/%v", eng.tickEvery, eng.renderEvery, def.TickEvery, def.RenderEvery)
	}
}
