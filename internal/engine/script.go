package engine

import "github.com/sm1k0/termsnake/internal/core"

// Script is a fixed input schedule keyed by tick number, used to replay a
// recorded session.
type Script map[uint64]core.Command

// Poll returns the command scheduled for tick, if any.
func (s Script) Poll(tick uint64) core.Command {
	return s[tick]
}
