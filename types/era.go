package types

import (
	"fmt"
	"math/bits"

	"github.com/blockberries/sapi/scale"
)

// Era is the validity window of a transaction. The zero value is the
// immortal era.
type Era struct {
	Mortal bool
	Period uint64
	Phase  uint64
}

// ImmortalEra is valid forever.
var ImmortalEra = Era{}

// NewMortalEra builds an era of roughly period blocks anchored at block
// current. The period is rounded up to a power of two within 4..65536
// and the phase is quantized so that it fits the two-byte encoding.
func NewMortalEra(period, current uint64) Era {
	p := uint64(1) << 16
	if period <= 1<<16 {
		p = 1
		for p < period {
			p <<= 1
		}
	}
	p = min(max(p, 4), 1<<16)
	phase := current % p
	q := quantizeFactor(p)
	return Era{Mortal: true, Period: p, Phase: phase / q * q}
}

func quantizeFactor(period uint64) uint64 {
	return max(period>>12, 1)
}

// Birth is the first block number at which the era is valid, given the
// current block number.
func (e Era) Birth(current uint64) uint64 {
	if !e.Mortal {
		return 0
	}
	return (max(current, e.Phase)-e.Phase)/e.Period*e.Period + e.Phase
}

// Death is the first block number at which the era is no longer valid.
func (e Era) Death(current uint64) uint64 {
	if !e.Mortal {
		return ^uint64(0)
	}
	return e.Birth(current) + e.Period
}

func (e Era) String() string {
	if !e.Mortal {
		return "immortal"
	}
	return fmt.Sprintf("mortal(period=%d, phase=%d)", e.Period, e.Phase)
}

func (e Era) EncodeTo(enc *scale.Encoder) {
	if !e.Mortal {
		enc.PushByte(0)
		return
	}
	low := uint16(min(max(bits.TrailingZeros64(e.Period)-1, 1), 15))
	high := uint16(e.Phase/quantizeFactor(e.Period)) << 4
	enc.EncodeU16(low | high)
}

func (e *Era) DecodeFrom(d *scale.Decoder) error {
	first, err := d.ReadByte()
	if err != nil {
		return err
	}
	if first == 0 {
		*e = ImmortalEra
		return nil
	}
	second, err := d.ReadByte()
	if err != nil {
		return err
	}
	encoded := uint64(first) | uint64(second)<<8
	period := uint64(2) << (encoded % 16)
	phase := (encoded >> 4) * quantizeFactor(period)
	if period < 4 || phase >= period {
		return &scale.DecodeError{
			Offset: d.Offset() - 2,
			Err:    scale.ErrInvalidVariant,
			Detail: fmt.Sprintf("era period %d phase %d", period, phase),
		}
	}
	*e = Era{Mortal: true, Period: period, Phase: phase}
	return nil
}
