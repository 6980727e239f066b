// Package server provides the node-side wrapper that routes
// capability-gated calls and enforces the status-stream state machine
// on every watched extrinsic.
package server

import (
	"github.com/blockberries/sapi/types"
)

// StatusGuard enforces the state machine of one status stream:
//
//	Submitted → InBlock* → Finalized
//	         ↘ Dropped | Invalid | Error
//
// InBlock may repeat only for a different block, and nothing is
// admitted after a terminal state. A StatusGuard is owned by the
// goroutine relaying its stream.
type StatusGuard struct {
	state  types.TxState
	blocks map[types.Hash]struct{}
}

// NewStatusGuard creates a guard for a stream that has not reported
// anything yet.
func NewStatusGuard() *StatusGuard {
	return &StatusGuard{blocks: make(map[types.Hash]struct{})}
}

// State returns the last admitted state, or 0 before the first.
func (g *StatusGuard) State() types.TxState { return g.state }

// Done reports whether the stream has reached a terminal state.
func (g *StatusGuard) Done() bool { return g.state.Terminal() }

// Admit reports whether st may be forwarded and, if so, records it.
func (g *StatusGuard) Admit(st types.TxStatus) bool {
	if !g.state.CanAdvance(st.State) {
		return false
	}
	if st.State == types.TxInBlock {
		if _, seen := g.blocks[st.Block]; seen {
			return false
		}
		g.blocks[st.Block] = struct{}{}
	}
	g.state = st.State
	return true
}
