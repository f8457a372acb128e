package storage

import (
	"sync"
	"time"

	"github.com/sm1k0/termsnake/internal/core"
	"github.com/sm1k0/termsnake/internal/games/snake"
)

// ReasonAborted marks a session that ended before game over.
const ReasonAborted = "aborted"

// Recorder collects the commands consumed by an engine and writes them to
// the journal when the session ends. It implements engine.Observer.
type Recorder struct {
	store *Store
	id    int64

	mu     sync.Mutex
	inputs []Input
}

// NewRecorder starts a journal entry for a session with the given seed.
func NewRecorder(store *Store, seed int64) (*Recorder, error) {
	id, err := store.StartSession(seed, time.Now())
	if err != nil {
		return nil, err
	}
	return &Recorder{store: store, id: id}, nil
}

// ID returns the journal session ID.
func (r *Recorder) ID() int64 {
	return r.id
}

// OnStep records the command consumed by the tick, if any.
func (r *Recorder) OnStep(res snake.StepResult) {
	if res.Command == core.CommandNone {
		return
	}
	r.mu.Lock()
	r.inputs = append(r.inputs, Input{Tick: res.Tick, Command: res.Command})
	r.mu.Unlock()
}

// Finish writes the collected inputs and the final state of the session.
func (r *Recorder) Finish(final snake.Snapshot) error {
	r.mu.Lock()
	inputs := r.inputs
	r.inputs = nil
	r.mu.Unlock()

	if err := r.store.SaveInputs(r.id, inputs); err != nil {
		return err
	}

	reason := string(final.Reason)
	if !final.Over {
		reason = ReasonAborted
	}
	return r.store.FinishSession(r.id, final.Tick, reason)
}
