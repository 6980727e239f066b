package server

import (
	"testing"

	"github.com/blockberries/sapi/types"
)

var (
	blockA = types.Hash{0xa}
	blockB = types.Hash{0xb}
)

func TestStatusGuard_HappyPath(t *testing.T) {
	g := NewStatusGuard()

	for _, st := range []types.TxStatus{
		{State: types.TxSubmitted},
		{State: types.TxInBlock, Block: blockA},
		{State: types.TxFinalized, Block: blockA},
	} {
		if !g.Admit(st) {
			t.Fatalf("expected %s to be admitted in state %s", st, g.State())
		}
	}
	if !g.Done() {
		t.Fatal("expected Done after Finalized")
	}
}

func TestStatusGuard_DuplicateInBlock(t *testing.T) {
	g := NewStatusGuard()
	g.Admit(types.TxStatus{State: types.TxSubmitted})

	if !g.Admit(types.TxStatus{State: types.TxInBlock, Block: blockA}) {
		t.Fatal("expected first InBlock to be admitted")
	}
	if g.Admit(types.TxStatus{State: types.TxInBlock, Block: blockA}) {
		t.Fatal("expected repeated InBlock for the same block to be dropped")
	}
	// Re-inclusion after a reorg.
	if !g.Admit(types.TxStatus{State: types.TxInBlock, Block: blockB}) {
		t.Fatal("expected InBlock for another block to be admitted")
	}
}

func TestStatusGuard_NoRegression(t *testing.T) {
	g := NewStatusGuard()
	g.Admit(types.TxStatus{State: types.TxSubmitted})

	if g.Admit(types.TxStatus{State: types.TxSubmitted}) {
		t.Fatal("expected duplicate Submitted to be dropped")
	}
	g.Admit(types.TxStatus{State: types.TxInBlock, Block: blockA})
	if g.Admit(types.TxStatus{State: types.TxSubmitted}) {
		t.Fatal("expected Submitted after InBlock to be dropped")
	}
	if g.State() != types.TxInBlock {
		t.Fatalf("expected InBlock, got %s", g.State())
	}
}

func TestStatusGuard_NothingAfterTerminal(t *testing.T) {
	for _, terminal := range []types.TxState{types.TxFinalized, types.TxDropped, types.TxInvalid, types.TxError} {
		g := NewStatusGuard()
		g.Admit(types.TxStatus{State: types.TxSubmitted})
		if !g.Admit(types.TxStatus{State: terminal}) {
			t.Fatalf("expected %s to be admitted after Submitted", terminal)
		}
		for _, next := range []types.TxState{types.TxSubmitted, types.TxInBlock, types.TxFinalized, types.TxDropped} {
			if g.Admit(types.TxStatus{State: next, Block: blockB}) {
				t.Fatalf("expected %s to be dropped after %s", next, terminal)
			}
		}
	}
}

func TestStatusGuard_UnknownState(t *testing.T) {
	g := NewStatusGuard()
	if g.Admit(types.TxStatus{State: 0}) || g.Admit(types.TxStatus{State: 42}) {
		t.Fatal("expected unknown states to be dropped")
	}
	if g.State() != 0 {
		t.Fatalf("expected no state, got %s", g.State())
	}
}
