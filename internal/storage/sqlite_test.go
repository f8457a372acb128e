package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sm1k0/termsnake/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSessionLifecycle(t *testing.T) {
	store := openTestStore(t)

	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	id, err := store.StartSession(42, started)
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}

	sess, err := store.Session(id)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if sess.Seed != 42 || sess.Reason != "" || sess.Ticks != 0 {
		t.Errorf("fresh session = %+v", sess)
	}
	if !sess.StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", sess.StartedAt, started)
	}

	if err := store.FinishSession(id, 22, "out_of_bounds"); err != nil {
		t.Fatalf("FinishSession() failed: %v", err)
	}
	sess, err = store.Session(id)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if sess.Ticks != 22 || sess.Reason != "out_of_bounds" {
		t.Errorf("finished session = %+v", sess)
	}
}

func TestStoreSessionNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.Session(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Session(99) error = %v, want ErrNotFound", err)
	}
	if err := store.FinishSession(99, 1, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FinishSession(99) error = %v, want ErrNotFound", err)
	}
}

func TestStoreSessionsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for seed := int64(1); seed <= 5; seed++ {
		if _, err := store.StartSession(seed, time.Now()); err != nil {
			t.Fatalf("StartSession() failed: %v", err)
		}
	}

	sessions, err := store.Sessions(3)
	if err != nil {
		t.Fatalf("Sessions() failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions with limit, got %d", len(sessions))
	}
	if sessions[0].Seed != 5 || sessions[1].Seed != 4 || sessions[2].Seed != 3 {
		t.Errorf("Sessions not in expected order: %+v", sessions)
	}
}

func TestStoreInputsAndScript(t *testing.T) {
	store := openTestStore(t)

	id, err := store.StartSession(7, time.Now())
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}

	inputs := []Input{
		{Tick: 9, Command: core.CommandLeft},
		{Tick: 2, Command: core.CommandUp},
	}
	if err := store.SaveInputs(id, inputs); err != nil {
		t.Fatalf("SaveInputs() failed: %v", err)
	}

	got, err := store.Inputs(id)
	if err != nil {
		t.Fatalf("Inputs() failed: %v", err)
	}
	if len(got) != 2 || got[0] != inputs[1] || got[1] != inputs[0] {
		t.Errorf("Inputs() = %+v, want ordered by tick", got)
	}

	script, err := store.Script(id)
	if err != nil {
		t.Fatalf("Script() failed: %v", err)
	}
	if script.Poll(2) != core.CommandUp || script.Poll(9) != core.CommandLeft || script.Poll(3) != core.CommandNone {
		t.Errorf("Script() = %v", script)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
