package engine

import (
	"sync"

	"github.com/sm1k0/termsnake/internal/core"
)

// Mailbox holds at most one pending command. Submitting overwrites whatever
// is pending, so only the latest command before a tick takes effect.
type Mailbox struct {
	mu      sync.Mutex
	pending core.Command
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Submit stores cmd as the pending command. CommandNone is ignored so it
// cannot erase a real command.
func (m *Mailbox) Submit(cmd core.Command) {
	if cmd == core.CommandNone {
		return
	}
	m.mu.Lock()
	m.pending = cmd
	m.mu.Unlock()
}

// Poll takes the pending command, leaving the mailbox empty.
func (m *Mailbox) Poll(uint64) core.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	cmd := m.pending
	m.pending = core.CommandNone
	return cmd
}
