package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sm1k0/termsnake/internal/config"
	"github.com/sm1k0/termsnake/internal/core"
	"github.com/sm1k0/termsnake/internal/games/snake"
	"github.com/sm1k0/termsnake/internal/storage"
)

func TestCheckBackend(t *testing.T) {
	for _, ok := range []string{"tui", "tcell"} {
		if err := checkBackend(ok); err != nil {
			t.Errorf("checkBackend(%q) = %v", ok, err)
		}
	}
	if err := checkBackend("gl"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestLoadConfigLogLevelOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldConfig, oldLevel := flagConfig, flagLogLevel
	t.Cleanup(func() { flagConfig, flagLogLevel = oldConfig, oldLevel })

	flagConfig, flagLogLevel = path, ""
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Log.Level)
	}

	flagLogLevel = "debug"
	cfg, err = loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("flag did not override level, got %q", cfg.Log.Level)
	}

	flagLogLevel = "shouty"
	if _, err := loadConfig(); err == nil {
		t.Error("expected error for invalid --log-level")
	}
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil)
	if !strings.Contains(buf.String(), "No sessions recorded yet.") {
		t.Errorf("empty history output: %q", buf.String())
	}

	buf.Reset()
	started := time.Date(2026, 5, 4, 9, 30, 0, 0, time.Local)
	printHistory(&buf, []storage.Session{
		{ID: 2, StartedAt: started, Ticks: 22, Reason: "out_of_bounds"},
		{ID: 1, StartedAt: started},
	})
	out := buf.String()
	for _, want := range []string{"2026-05-04 09:30", "out_of_bounds", "unfinished"} {
		if !strings.Contains(out, want) {
			t.Errorf("history output missing %q:\n%s", want, out)
		}
	}
}

func TestReplayMatches(t *testing.T) {
	final := snake.Snapshot{Tick: 22, Over: true, Reason: snake.ReasonOutOfBounds}

	tests := []struct {
		name string
		sess storage.Session
		want bool
	}{
		{"same end", storage.Session{Ticks: 22, Reason: "out_of_bounds"}, true},
		{"different tick", storage.Session{Ticks: 21, Reason: "out_of_bounds"}, false},
		{"different reason", storage.Session{Ticks: 22, Reason: "self_collision"}, false},
		{"aborted", storage.Session{Ticks: 5, Reason: storage.ReasonAborted}, true},
		{"unfinished", storage.Session{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := replayMatches(tt.sess, final); got != tt.want {
				t.Errorf("replayMatches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIgnoreAbort(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"quit", context.Canceled, nil},
		{"wrapped quit", fmt.Errorf("tui: %w", context.Canceled), nil},
		{"failure", boom, boom},
		{"timeout", context.DeadlineExceeded, context.DeadlineExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ignoreAbort(tt.err); got != tt.want {
				t.Errorf("ignoreAbort(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestServerConfig(t *testing.T) {
	oldAddr, oldKey, oldIdle := flagSSHAddr, flagHostKey, flagIdleTimeout
	t.Cleanup(func() { flagSSHAddr, flagHostKey, flagIdleTimeout = oldAddr, oldKey, oldIdle })

	cfg := config.Default()
	cfg.Timing.Tick = 40 * time.Millisecond
	cfg.Glyphs.Snake = "o"

	flagSSHAddr, flagHostKey, flagIdleTimeout = "", "", 0
	got := serverConfig(cfg)
	if got.Address != ":23234" || got.IdleTimeout != 30*time.Minute || got.HostKeyPath != "" {
		t.Errorf("unset flags should keep defaults, got %+v", got)
	}
	if got.Runtime.TickEvery != 40*time.Millisecond || got.Style.Body != 'o' {
		t.Errorf("config not applied: runtime %+v, style %+v", got.Runtime, got.Style)
	}

	flagSSHAddr, flagHostKey, flagIdleTimeout = ":2222", "/tmp/key", 5
	got = serverConfig(cfg)
	want := core.RuntimeConfig{TickEvery: 40 * time.Millisecond, RenderEvery: 100 * time.Millisecond}
	if got.Address != ":2222" || got.HostKeyPath != "/tmp/key" || got.IdleTimeout != 5*time.Minute || got.Runtime != want {
		t.Errorf("serverConfig() = %+v", got)
	}
}
