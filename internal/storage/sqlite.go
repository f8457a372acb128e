// Package storage provides an SQLite-backed session journal.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// The journal holds the seed and consumed commands of each recorded session,
// enough to replay it deterministically. Scores are not stored.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/sm1k0/termsnake/internal/core"
	"github.com/sm1k0/termsnake/internal/engine"
)

// ErrNotFound is returned when a session ID does not exist.
var ErrNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// Session is one recorded game.
type Session struct {
	ID        int64
	Seed      int64
	StartedAt time.Time
	Ticks     uint64
	Reason    string // Empty while the session is still running
}

// Input is a command consumed on a given tick.
type Input struct {
	Tick    uint64
	Command core.Command
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			started_at INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS inputs (
			session_id INTEGER NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			tick INTEGER NOT NULL,
			command TEXT NOT NULL,
			PRIMARY KEY (session_id, tick)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession records the start of a session and returns its ID.
func (s *Store) StartSession(seed int64, startedAt time.Time) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO sessions (seed, started_at) VALUES (?, ?)",
		seed, startedAt.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// FinishSession stores the final tick count and end reason.
func (s *Store) FinishSession(id int64, ticks uint64, reason string) error {
	res, err := s.db.Exec(
		"UPDATE sessions SET ticks = ?, end_reason = ? WHERE id = ?",
		int64(ticks), reason, id,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish session %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// SaveInputs writes the consumed commands of a session in one transaction.
func (s *Store) SaveInputs(id int64, inputs []Input) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO inputs (session_id, tick, command) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, in := range inputs {
		if _, err := stmt.Exec(id, int64(in.Tick), in.Command.String()); err != nil {
			return fmt.Errorf("storage: cannot save input at tick %d: %w", in.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit inputs: %w", err)
	}
	return nil
}

// Sessions lists the most recent sessions, newest first.
func (s *Store) Sessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, started_at, ticks, end_reason
		 FROM sessions
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Session returns a single session by ID.
func (s *Store) Session(id int64) (Session, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, started_at, ticks, end_reason FROM sessions WHERE id = ?`,
		id,
	)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return sess, err
}

// Inputs returns the recorded commands of a session ordered by tick.
func (s *Store) Inputs(id int64) ([]Input, error) {
	rows, err := s.db.Query(
		"SELECT tick, command FROM inputs WHERE session_id = ? ORDER BY tick",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []Input
	for rows.Next() {
		var (
			tick int64
			name string
		)
		if err := rows.Scan(&tick, &name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		cmd := core.ParseCommand(name)
		if cmd == core.CommandNone {
			return nil, fmt.Errorf("storage: unknown command %q at tick %d", name, tick)
		}
		inputs = append(inputs, Input{Tick: uint64(tick), Command: cmd})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return inputs, nil
}

// Script loads the inputs of a session as a replay schedule.
func (s *Store) Script(id int64) (engine.Script, error) {
	inputs, err := s.Inputs(id)
	if err != nil {
		return nil, err
	}
	script := make(engine.Script, len(inputs))
	for _, in := range inputs {
		script[in.Tick] = in.Command
	}
	return script, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (Session, error) {
	var (
		sess    Session
		started int64
		ticks   int64
	)
	if err := r.Scan(&sess.ID, &sess.Seed, &started, &ticks, &sess.Reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, err
		}
		return Session{}, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	sess.StartedAt = time.UnixMilli(started)
	sess.Ticks = uint64(ticks)
	return sess, nil
}
