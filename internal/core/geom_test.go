package core

import "testing"

func TestCoordAdd(t *testing.T) {
	got := Coord{X: 10, Y: 10}.Add(Right)
	if got != (Coord{X: 11, Y: 10}) {
		t.Errorf("Add() = %+v, expected (11,10)", got)
	}
	got = Coord{X: 0, Y: 0}.Add(Up)
	if got != (Coord{X: 0, Y: -1}) {
		t.Errorf("Add() = %+v, expected (0,-1)", got)
	}
}

func TestIsDirection(t *testing.T) {
	tests := []struct {
		name     string
		c        Coord
		expected bool
	}{
		{"up", Up, true},
		{"down", Down, true},
		{"left", Left, true},
		{"right", Right, true},
		{"zero", Coord{}, false},
		{"diagonal", Coord{X: 1, Y: 1}, false},
		{"double step", Coord{X: 2, Y: 0}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.c.IsDirection(); got != tc.expected {
				t.Errorf("IsDirection(%+v) = %v, expected %v", tc.c, got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 32, 22)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"origin", 0, 0, true},
		{"far corner", 31, 21, true},
		{"left of board", -1, 0, false},
		{"right of board", 32, 0, false},
		{"below board", 0, 22, false},
		{"above board", 0, -1, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestCommandVector(t *testing.T) {
	tests := []struct {
		cmd    Command
		vec    Coord
		mapped bool
	}{
		{CommandUp, Up, true},
		{CommandDown, Down, true},
		{CommandLeft, Left, true},
		{CommandRight, Right, true},
		{CommandNone, Coord{}, false},
		{Command(42), Coord{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			vec, ok := tc.cmd.Vector()
			if ok != tc.mapped || vec != tc.vec {
				t.Errorf("Vector() = %+v, %v; expected %+v, %v", vec, ok, tc.vec, tc.mapped)
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	for _, c := range []Command{CommandUp, CommandDown, CommandLeft, CommandRight, CommandNone} {
		if got := ParseCommand(c.String()); got != c {
			t.Errorf("ParseCommand(%q) = %v, expected %v", c.String(), got, c)
		}
	}
	if ParseCommand("jump") != CommandNone {
		t.Error("unknown names should parse as CommandNone")
	}
}

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor(" Bright_Green "); !ok || c != ColorBrightGreen {
		t.Errorf("ParseColor(bright_green) = %v, %v", c, ok)
	}
	if _, ok := ParseColor("chartreuse"); ok {
		t.Error("unknown colors should not parse")
	}
}
