package snake

import "github.com/sm1k0/termsnake/internal/core"

// Playable area limits, inclusive. The border is drawn outside of them.
const (
	MaxX = 31
	MaxY = 21
)

// Board is the playable area: 32 columns by 22 rows anchored at the origin.
var Board = core.NewRect(0, 0, MaxX+1, MaxY+1)

// Snake is an ordered body (head at index 0) moving in a unit direction.
// It performs no locking; the owning Game serializes access.
type Snake struct {
	body      []core.Coord
	direction core.Coord
}

// NewSnake creates a one-segment snake.
func NewSnake(start, direction core.Coord) *Snake {
	return &Snake{
		body:      []core.Coord{start},
		direction: direction,
	}
}

// Head returns the first body segment.
func (s *Snake) Head() core.Coord {
	return s.body[0]
}

// Len returns the number of body segments.
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []core.Coord {
	out := make([]core.Coord, len(s.body))
	copy(out, s.body)
	return out
}

// Direction returns the current unit direction.
func (s *Snake) Direction() core.Coord {
	return s.direction
}

// SetDirection changes course. Reversal is allowed and ends the game on the
// next move once the body has three or more segments. Vectors that are not
// one of the four unit directions are ignored.
func (s *Snake) SetDirection(d core.Coord) {
	if !d.IsDirection() {
		return
	}
	s.direction = d
}

// Move shifts the whole body one cell: a new head is prepended and the tail
// dropped. No bounds or collision checks happen here.
func (s *Snake) Move() {
	newHead := s.body[0].Add(s.direction)
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = newHead
}

// Grow appends a copy of the tail. The duplicate separates from the old tail
// on the following Move, so growth becomes visible one tick later.
func (s *Snake) Grow() {
	s.body = append(s.body, s.body[len(s.body)-1])
}

// IsSelfCollision reports whether any other segment shares the head's cell.
func (s *Snake) IsSelfCollision() bool {
	head := s.body[0]
	count := 0
	for _, seg := range s.body {
		if seg == head {
			count++
		}
	}
	return count > 1
}

// IsOutOfBounds reports whether the head has left the playable area.
func (s *Snake) IsOutOfBounds() bool {
	head := s.body[0]
	return !Board.Contains(head.X, head.Y)
}

// Eat grows the snake and returns true when the head is on the food.
func (s *Snake) Eat(f Food) bool {
	if s.body[0] != f.Position() {
		return false
	}
	s.Grow()
	return true
}
