package snake

import "github.com/sm1k0/termsnake/internal/core"

// Food is a single item on the board. It is immutable; the game replaces it
// with a new value each time it is eaten.
type Food struct {
	position core.Coord
}

// NewFood places food at p.
func NewFood(p core.Coord) Food {
	return Food{position: p}
}

// Position returns where the food lies.
func (f Food) Position() core.Coord {
	return f.position
}
