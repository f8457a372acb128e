package snake

import "github.com/sm1k0/termsnake/internal/core"

// Screen size needed to show the board with its border.
const (
	ScreenW = MaxX + 3
	ScreenH = MaxY + 3
)

// Style selects the glyph and color of each board element.
type Style struct {
	Border      rune
	Body        rune
	Food        rune
	BorderColor core.Color
	BodyColor   core.Color
	FoodColor   core.Color
}

// DefaultStyle is the classic look: '#' walls, '*' snake, '$' food.
func DefaultStyle() Style {
	return Style{
		Border:      '#',
		Body:        '*',
		Food:        '$',
		BorderColor: core.ColorGray,
		BodyColor:   core.ColorBrightGreen,
		FoodColor:   core.ColorBrightYellow,
	}
}

// Draw paints the border, the snake and the food. Board cell (x, y) lands on
// screen cell (x+1, y+1); the border occupies the ring around it.
func Draw(dst *core.Screen, snap Snapshot, st Style) {
	dst.DrawFrame(core.NewRect(0, 0, ScreenW, ScreenH), st.Border, st.BorderColor)

	for _, seg := range snap.Body {
		dst.SetColored(seg.X+1, seg.Y+1, st.Body, st.BodyColor)
	}

	dst.SetColored(snap.Food.X+1, snap.Food.Y+1, st.Food, st.FoodColor)
}
