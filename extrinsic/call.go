// Package extrinsic builds, signs and submits extrinsics and follows
// their status after submission.
//
// A Submittable moves through Unsigned, Signed and Submitted. Once
// submitted, its Progress reports the node's status notifications:
// InBlock and Finalized on success, or one of Dropped, Invalid and
// Error. Failures before submission are returned synchronously as
// *sapi.ConstructionError.
package extrinsic

import (
	"fmt"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

// Call is a typed call of a pallet.
type Call interface {
	Info() types.CallInfo
	// EncodeArgs writes the call's fields in declaration order.
	EncodeArgs(e *scale.Encoder)
}

// EncodeCall returns the pallet index, call index and arguments of c.
func EncodeCall(c Call) []byte {
	info := c.Info()
	e := scale.NewEncoder()
	e.EncodeU8(info.PalletIndex)
	e.EncodeU8(info.CallIndex)
	c.EncodeArgs(e)
	return e.Bytes()
}

// RawCall is a call with pre-encoded arguments.
type RawCall struct {
	CallInfo types.CallInfo
	Args     []byte
}

func (r RawCall) Info() types.CallInfo        { return r.CallInfo }
func (r RawCall) EncodeArgs(e *scale.Encoder) { e.Write(r.Args) }

// NewRawCall resolves pallet and call names against meta.
func NewRawCall(meta *metadata.Metadata, pallet, call string, args []byte) (RawCall, error) {
	p, err := meta.Pallet(pallet)
	if err != nil {
		return RawCall{}, sapi.NewConstructionError("call", "unknown pallet", err)
	}
	v, err := p.Call(call)
	if err != nil {
		return RawCall{}, sapi.NewConstructionError("call", "unknown call", err)
	}
	return RawCall{
		CallInfo: types.CallInfo{Pallet: pallet, Name: call, PalletIndex: p.Index, CallIndex: v.Index},
		Args:     args,
	}, nil
}

// CheckCall verifies that the names and indices of info agree with
// meta.
func CheckCall(meta *metadata.Metadata, info types.CallInfo) error {
	p, err := meta.Pallet(info.Pallet)
	if err != nil {
		return sapi.NewConstructionError("call "+info.String(), "unknown pallet", err)
	}
	if p.Index != info.PalletIndex {
		return sapi.NewConstructionError("call "+info.String(), fmt.Sprintf("pallet %s has index %d", p.Name, p.Index), nil)
	}
	v, err := p.Call(info.Name)
	if err != nil {
		return sapi.NewConstructionError("call "+info.String(), "unknown call", err)
	}
	if v.Index != info.CallIndex {
		return sapi.NewConstructionError("call "+info.String(), fmt.Sprintf("call %s.%s has index %d", p.Name, v.Name, v.Index), nil)
	}
	return nil
}
