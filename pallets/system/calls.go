package system

import (
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

const (
	remarkIndex          uint8 = 0
	remarkWithEventIndex uint8 = 7
)

// Remark makes an on-chain remark. It has no effect on state.
type Remark struct {
	Remark []byte
}

func (Remark) Info() types.CallInfo {
	return types.CallInfo{Pallet: PalletName, Name: "remark", PalletIndex: PalletIndex, CallIndex: remarkIndex}
}

func (c Remark) EncodeArgs(e *scale.Encoder) { e.EncodeBytes(c.Remark) }

func (c *Remark) DecodeArgs(d *scale.Decoder) (err error) {
	c.Remark, err = d.DecodeBytes()
	return err
}

// RemarkWithEvent makes an on-chain remark and deposits Remarked.
type RemarkWithEvent struct {
	Remark []byte
}

func (RemarkWithEvent) Info() types.CallInfo {
	return types.CallInfo{Pallet: PalletName, Name: "remark_with_event", PalletIndex: PalletIndex, CallIndex: remarkWithEventIndex}
}

func (c RemarkWithEvent) EncodeArgs(e *scale.Encoder) { e.EncodeBytes(c.Remark) }

func (c *RemarkWithEvent) DecodeArgs(d *scale.Decoder) (err error) {
	c.Remark, err = d.DecodeBytes()
	return err
}

// DecodeCall decodes the arguments of the call with the given index.
func DecodeCall(callIndex uint8, d *scale.Decoder) (extrinsic.Call, error) {
	switch callIndex {
	case remarkIndex:
		c := new(Remark)
		return c, c.DecodeArgs(d)
	case remarkWithEventIndex:
		c := new(RemarkWithEvent)
		return c, c.DecodeArgs(d)
	default:
		return nil, &scale.DecodeError{Err: scale.ErrInvalidVariant, Detail: "unknown System call"}
	}
}
