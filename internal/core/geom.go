// Package core provides fundamental types shared by the game model and the
// platform layers. It has no terminal dependencies, so the game logic stays
// pure and testable.
package core

// Coord is a cell position on the board, or a unit step when used as a direction.
type Coord struct {
	X, Y int
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Unit direction vectors. Y grows downwards, as on the terminal.
var (
	Up    = Coord{X: 0, Y: -1}
	Down  = Coord{X: 0, Y: 1}
	Left  = Coord{X: -1, Y: 0}
	Right = Coord{X: 1, Y: 0}
)

// IsDirection reports whether c is one of the four unit vectors.
func (c Coord) IsDirection() bool {
	return c == Up || c == Down || c == Left || c == Right
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}
