package types

import (
	"fmt"

	"github.com/blockberries/sapi/scale"
)

// CallInfo names a call and carries its two-level tag.
type CallInfo struct {
	Pallet      string
	Name        string
	PalletIndex uint8
	CallIndex   uint8
}

func (c CallInfo) String() string {
	return fmt.Sprintf("%s.%s(%d,%d)", c.Pallet, c.Name, c.PalletIndex, c.CallIndex)
}

// EventInfo names an event and carries its two-level tag.
type EventInfo struct {
	Pallet      string
	Name        string
	PalletIndex uint8
	EventIndex  uint8
}

func (e EventInfo) String() string {
	return fmt.Sprintf("%s.%s(%d,%d)", e.Pallet, e.Name, e.PalletIndex, e.EventIndex)
}

// PhaseKind is the discriminant of Phase.
type PhaseKind uint8

const (
	PhaseApplyExtrinsic PhaseKind = iota
	PhaseFinalization
	PhaseInitialization
)

// Phase is the stage of block execution in which an event was emitted.
type Phase struct {
	Kind PhaseKind
	// Extrinsic is the index of the extrinsic for PhaseApplyExtrinsic.
	Extrinsic uint32
}

func (p Phase) String() string {
	switch p.Kind {
	case PhaseApplyExtrinsic:
		return fmt.Sprintf("ApplyExtrinsic(%d)", p.Extrinsic)
	case PhaseFinalization:
		return "Finalization"
	default:
		return "Initialization"
	}
}

func (p Phase) EncodeTo(e *scale.Encoder) {
	e.EncodeVariant(uint8(p.Kind))
	if p.Kind == PhaseApplyExtrinsic {
		e.EncodeU32(p.Extrinsic)
	}
}

func (p *Phase) DecodeFrom(d *scale.Decoder) error {
	kind, err := d.DecodeVariant(3)
	if err != nil {
		return err
	}
	*p = Phase{Kind: PhaseKind(kind)}
	if p.Kind == PhaseApplyExtrinsic {
		p.Extrinsic, err = d.DecodeU32()
	}
	return err
}
