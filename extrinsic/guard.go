package extrinsic

import (
	"fmt"
	"sync/atomic"
)

// State is the construction state of a Submittable.
type State uint32

const (
	// Unsigned: built from a call. Sign is the only valid next step.
	Unsigned State = iota
	// Signing: Sign is running.
	Signing
	// Signed: the envelope is final. Submit is the only valid next
	// step.
	Signed
	// Submitting: Submit is running.
	Submitting
	// Submitted: handed to the node. Status is observed through
	// Progress.
	Submitted
)

func (s State) String() string {
	switch s {
	case Unsigned:
		return "Unsigned"
	case Signing:
		return "Signing"
	case Signed:
		return "Signed"
	case Submitting:
		return "Submitting"
	case Submitted:
		return "Submitted"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(s))
	}
}

// guard enforces the Unsigned → Signed → Submitted order. Misuse is a
// programming error and panics.
type guard struct {
	state atomic.Uint32
}

func (g *guard) load() State { return State(g.state.Load()) }

// acquire transitions from → via, panicking if the guard is elsewhere.
func (g *guard) acquire(op string, from, via State) {
	if !g.state.CompareAndSwap(uint32(from), uint32(via)) {
		panic(fmt.Sprintf("extrinsic: %s called in state %s (expected %s)", op, g.load(), from))
	}
}

// complete moves to the state reached by a successful step.
func (g *guard) complete(to State) { g.state.Store(uint32(to)) }

// fail rolls back to the state before the step.
func (g *guard) fail(back State) { g.state.Store(uint32(back)) }
