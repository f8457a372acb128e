package core

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TickEvery != 100*time.Millisecond || cfg.RenderEvery != 100*time.Millisecond {
		t.Errorf("DefaultConfig() = %+v, want 100ms periods", cfg)
	}
	if cfg.Seed != 0 {
		t.Errorf("DefaultConfig().Seed = %d, want 0", cfg.Seed)
	}
}

func TestWithSeed(t *testing.T) {
	if got := (RuntimeConfig{Seed: 42}).WithSeed().Seed; got != 42 {
		t.Errorf("WithSeed() kept seed = %d, want 42", got)
	}
	if got := (RuntimeConfig{}).WithSeed().Seed; got == 0 {
		t.Error("WithSeed() should pick a time-based seed for 0")
	}
}
