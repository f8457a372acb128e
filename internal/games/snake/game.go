// Package snake implements the Snake game model: the snake body, the food
// item, and the tick cycle that advances them. The package contains pure logic
// with no terminal dependencies; platforms read Snapshots and feed Commands.
package snake

import (
	"math/rand"
	"sync"

	"github.com/sm1k0/termsnake/internal/core"
)

// Starting position and heading for every new session.
var (
	StartPosition  = core.Coord{X: 10, Y: 10}
	StartDirection = core.Right
)

// EndReason explains why a session is over.
type EndReason string

const (
	ReasonNone          EndReason = ""
	ReasonSelfCollision EndReason = "self_collision"
	ReasonOutOfBounds   EndReason = "out_of_bounds"
)

// StepResult describes what happened during one tick.
type StepResult struct {
	Tick    uint64       // Tick number after this step (1-based)
	Command core.Command // Command consumed this tick, CommandNone if none
	Ate     bool         // Food was eaten and a new one placed
	Food    core.Coord   // Food position after the step
	Over    bool
	Reason  EndReason
}

// Game owns one snake, one food item and the random source used for food
// placement. All exported methods are safe for concurrent use: the tick loop
// writes through Step while render loops read through Snapshot.
type Game struct {
	mu    sync.RWMutex
	rng   *rand.Rand
	snake *Snake
	food  Food
	tick  uint64
}

// New creates a game seeded for deterministic food placement.
func New(seed int64) *Game {
	return NewWithSource(rand.NewSource(seed))
}

// NewWithSource creates a game drawing food positions from src.
func NewWithSource(src rand.Source) *Game {
	g := &Game{
		rng:   rand.New(src),
		snake: NewSnake(StartPosition, StartDirection),
	}
	g.generateFood()
	return g
}

// GenerateFood replaces the food with one at a uniformly random cell.
// Cells under the snake are not excluded.
func (g *Game) GenerateFood() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.generateFood()
}

func (g *Game) generateFood() {
	x := g.rng.Intn(MaxX + 1)
	y := g.rng.Intn(MaxY + 1)
	g.food = NewFood(core.Coord{X: x, Y: y})
}

// HandleInput steers the snake. Commands without a direction are ignored.
func (g *Game) HandleInput(cmd core.Command) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.handleInput(cmd)
}

func (g *Game) handleInput(cmd core.Command) {
	if dir, ok := cmd.Vector(); ok {
		g.snake.SetDirection(dir)
	}
}

// Step advances the game by one tick: apply the pending command, eat (and
// respawn food), move, then evaluate game over on the new head position.
// Once the game is over Step changes nothing.
func (g *Game) Step(cmd core.Command) StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if reason := g.endReason(); reason != ReasonNone {
		return StepResult{Tick: g.tick, Food: g.food.Position(), Over: true, Reason: reason}
	}

	g.tick++
	g.handleInput(cmd)

	ate := g.snake.Eat(g.food)
	if ate {
		g.generateFood()
	}

	g.snake.Move()

	reason := g.endReason()
	return StepResult{
		Tick:    g.tick,
		Command: cmd,
		Ate:     ate,
		Food:    g.food.Position(),
		Over:    reason != ReasonNone,
		Reason:  reason,
	}
}

// IsGameOver reports whether the snake has hit itself or left the board.
func (g *Game) IsGameOver() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.endReason() != ReasonNone
}

func (g *Game) endReason() EndReason {
	switch {
	case g.snake.IsSelfCollision():
		return ReasonSelfCollision
	case g.snake.IsOutOfBounds():
		return ReasonOutOfBounds
	default:
		return ReasonNone
	}
}
