package scale

import (
	"math/big"

	"github.com/holiman/uint256"
)

// U128 is an unsigned 128-bit integer, the balance type of most
// Substrate runtimes. The zero value is 0.
type U128 struct {
	v uint256.Int
}

// NewU128 returns x as a U128.
func NewU128(x uint64) U128 {
	var u U128
	u.v.SetUint64(x)
	return u
}

// U128FromBig converts b, failing if it is negative or wider than 128
// bits.
func U128FromBig(b *big.Int) (U128, error) {
	if b.Sign() < 0 || b.BitLen() > 128 {
		return U128{}, ErrOverflow
	}
	v, _ := uint256.FromBig(b)
	return U128{v: *v}, nil
}

// U128FromDecimal parses a base-10 string.
func U128FromDecimal(s string) (U128, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return U128{}, err
	}
	if v.BitLen() > 128 {
		return U128{}, ErrOverflow
	}
	return U128{v: *v}, nil
}

func (u U128) Big() *big.Int { return u.v.ToBig() }

func (u U128) String() string { return u.v.Dec() }

func (u U128) IsZero() bool { return u.v.IsZero() }

func (u U128) Cmp(o U128) int { return u.v.Cmp(&o.v) }

// Add returns u+o and false if the result does not fit in 128 bits.
func (u U128) Add(o U128) (U128, bool) {
	var r U128
	r.v.Add(&u.v, &o.v)
	return r, r.v.BitLen() <= 128
}

// Sub returns u-o and false on underflow.
func (u U128) Sub(o U128) (U128, bool) {
	if u.v.Lt(&o.v) {
		return U128{}, false
	}
	var r U128
	r.v.Sub(&u.v, &o.v)
	return r, true
}

func (u U128) EncodeTo(e *Encoder) { e.EncodeU128(u) }

func (u *U128) DecodeFrom(d *Decoder) error {
	v, err := d.DecodeU128()
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// Compact wraps a U128 so that it encodes in compact form.
type Compact U128

func (c Compact) EncodeTo(e *Encoder) { e.EncodeCompactU128(U128(c)) }

func (c *Compact) DecodeFrom(d *Decoder) error {
	v, err := d.DecodeCompactU128()
	if err != nil {
		return err
	}
	*c = Compact(v)
	return nil
}
