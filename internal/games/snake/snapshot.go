package snake

import "github.com/sm1k0/termsnake/internal/core"

// Snapshot is an immutable copy of the game state, handed to renderers and
// used for determinism tests and replay checks.
type Snapshot struct {
	Tick      uint64
	Body      []core.Coord // Head at index 0
	Direction core.Coord
	Food      core.Coord
	Over      bool
	Reason    EndReason
}

// Snapshot returns a copy of the current state that shares no memory with
// the game.
func (g *Game) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()

	reason := g.endReason()
	return Snapshot{
		Tick:      g.tick,
		Body:      g.snake.Body(),
		Direction: g.snake.Direction(),
		Food:      g.food.Position(),
		Over:      reason != ReasonNone,
		Reason:    reason,
	}
}

// Head returns the head position. The zero Snapshot has none and returns (0,0).
func (s Snapshot) Head() core.Coord {
	if len(s.Body) == 0 {
		return core.Coord{}
	}
	return s.Body[0]
}

// Len returns the body length.
func (s Snapshot) Len() int {
	return len(s.Body)
}
