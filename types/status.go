package types

import "fmt"

// TxState is a state of an extrinsic after submission.
type TxState uint8

const (
	// TxSubmitted: the node accepted the extrinsic into its pool.
	TxSubmitted TxState = iota + 1
	// TxInBlock: included in a block that is not yet final.
	TxInBlock
	// TxFinalized: included in a finalized block. Terminal.
	TxFinalized
	// TxDropped: evicted from the pool without inclusion. Terminal.
	TxDropped
	// TxInvalid: rejected by the node as invalid. Terminal.
	TxInvalid
	// TxError: the node or transport failed while watching. Terminal.
	TxError
)

func (s TxState) String() string {
	switch s {
	case TxSubmitted:
		return "Submitted"
	case TxInBlock:
		return "InBlock"
	case TxFinalized:
		return "Finalized"
	case TxDropped:
		return "Dropped"
	case TxInvalid:
		return "Invalid"
	case TxError:
		return "Error"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Terminal reports whether no further status follows s.
func (s TxState) Terminal() bool {
	return s == TxFinalized || s == TxDropped || s == TxInvalid || s == TxError
}

// Failed reports whether s is a terminal failure.
func (s TxState) Failed() bool {
	return s == TxDropped || s == TxInvalid || s == TxError
}

// CanAdvance reports whether a status stream currently at s may report
// next. The stream is linear: InBlock may repeat only for a different
// block (a re-inclusion), and nothing follows a terminal state.
func (s TxState) CanAdvance(next TxState) bool {
	if s.Terminal() || next < TxSubmitted || next > TxError {
		return false
	}
	switch s {
	case 0:
		return true
	case TxSubmitted:
		return next != TxSubmitted
	case TxInBlock:
		return next != TxSubmitted
	}
	return false
}

// TxStatus is one notification on an extrinsic's status stream.
type TxStatus struct {
	State TxState `cramberry:"1"`
	// Block is set for InBlock and Finalized.
	Block Hash `cramberry:"2"`
	// Reason is set for Dropped, Invalid and Error.
	Reason string `cramberry:"3"`
}

func (s TxStatus) String() string {
	switch s.State {
	case TxInBlock, TxFinalized:
		return fmt.Sprintf("%s(%s)", s.State, s.Block)
	case TxDropped, TxInvalid, TxError:
		if s.Reason != "" {
			return fmt.Sprintf("%s(%s)", s.State, s.Reason)
		}
	}
	return s.State.String()
}
