package core

import "time"

// RuntimeConfig contains settings the platform passes to a game session.
type RuntimeConfig struct {
	TickEvery   time.Duration // Simulation period
	RenderEvery time.Duration // Redraw period, scheduled independently of ticks
	Seed        int64         // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with the classic 100ms cadence.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickEvery:   100 * time.Millisecond,
		RenderEvery: 100 * time.Millisecond,
		Seed:        0, // 0 means use current time in platform layer
	}
}

// WithSeed fills in a time-based seed when none was chosen.
func (c RuntimeConfig) WithSeed() RuntimeConfig {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	return c
}
