package extrinsic

import (
	"context"
	"errors"
	"io"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/types"
)

// ErrStreamEnded is returned by the WaitFor helpers when the status
// stream closes before the awaited state.
var ErrStreamEnded = errors.New("extrinsic: status stream ended")

// Progress follows the status of a submitted extrinsic. Repeated
// notifications are dropped: InBlock is reported once per block and
// nothing follows a terminal state. It is not safe for concurrent use.
type Progress struct {
	hash   types.Hash
	ch     <-chan types.TxStatus
	cancel context.CancelFunc

	state    types.TxState
	inBlocks map[types.Hash]struct{}
	done     bool
}

func newProgress(hash types.Hash, ch <-chan types.TxStatus, cancel context.CancelFunc) *Progress {
	return &Progress{hash: hash, ch: ch, cancel: cancel, inBlocks: make(map[types.Hash]struct{})}
}

// Hash is the hash of the watched extrinsic.
func (p *Progress) Hash() types.Hash { return p.hash }

// Next returns the next status. Failures after submission arrive as
// statuses, not errors. It returns io.EOF after a terminal status or
// once the stream has closed, and ctx.Err() if ctx ends first.
func (p *Progress) Next(ctx context.Context) (types.TxStatus, error) {
	for {
		if p.done {
			return types.TxStatus{}, io.EOF
		}
		select {
		case <-ctx.Done():
			return types.TxStatus{}, ctx.Err()
		case st, ok := <-p.ch:
			if !ok {
				p.finish()
				return types.TxStatus{}, io.EOF
			}
			if !p.accept(st) {
				continue
			}
			if st.State.Terminal() {
				p.finish()
			}
			return st, nil
		}
	}
}

func (p *Progress) accept(st types.TxStatus) bool {
	if !p.state.CanAdvance(st.State) {
		return false
	}
	if st.State == types.TxInBlock {
		if _, seen := p.inBlocks[st.Block]; seen {
			return false
		}
		p.inBlocks[st.Block] = struct{}{}
	}
	p.state = st.State
	return true
}

func (p *Progress) finish() {
	p.done = true
	p.cancel()
}

// WaitForInBlock returns the first InBlock or Finalized status. A
// failure status is returned as *sapi.SubmissionError.
func (p *Progress) WaitForInBlock(ctx context.Context) (types.TxStatus, error) {
	return p.waitFor(ctx, func(s types.TxState) bool {
		return s == types.TxInBlock || s == types.TxFinalized
	})
}

// WaitForFinalized returns the Finalized status. A failure status is
// returned as *sapi.SubmissionError.
func (p *Progress) WaitForFinalized(ctx context.Context) (types.TxStatus, error) {
	return p.waitFor(ctx, func(s types.TxState) bool { return s == types.TxFinalized })
}

func (p *Progress) waitFor(ctx context.Context, want func(types.TxState) bool) (types.TxStatus, error) {
	for {
		st, err := p.Next(ctx)
		if errors.Is(err, io.EOF) {
			return st, ErrStreamEnded
		}
		if err != nil {
			return st, err
		}
		if st.State.Failed() {
			return st, sapi.NewSubmissionError(st)
		}
		if want(st.State) {
			return st, nil
		}
	}
}

// Close stops observing the extrinsic. The extrinsic itself is not
// retracted.
func (p *Progress) Close() {
	p.finish()
}
