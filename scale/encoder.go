package scale

import (
	"encoding/binary"

	"github.com/holiman/uint256"
)

// Encoder accumulates SCALE-encoded bytes.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 64)}
}

// Bytes returns the encoded output. The slice aliases the encoder's
// buffer until the next write.
func (e *Encoder) Bytes() []byte { return e.buf }

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int { return len(e.buf) }

func (e *Encoder) PushByte(b byte) { e.buf = append(e.buf, b) }

// Write appends raw bytes without a length prefix. Used for fixed-size
// arrays and pre-encoded values.
func (e *Encoder) Write(p []byte) { e.buf = append(e.buf, p...) }

func (e *Encoder) EncodeBool(v bool) {
	if v {
		e.PushByte(1)
		return
	}
	e.PushByte(0)
}

func (e *Encoder) EncodeU8(v uint8) { e.PushByte(v) }

func (e *Encoder) EncodeU16(v uint16) { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }

func (e *Encoder) EncodeU32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }

func (e *Encoder) EncodeU64(v uint64) { e.buf = binary.LittleEndian.AppendUint64(e.buf, v) }

func (e *Encoder) EncodeI8(v int8) { e.PushByte(uint8(v)) }

func (e *Encoder) EncodeI16(v int16) { e.EncodeU16(uint16(v)) }

func (e *Encoder) EncodeI32(v int32) { e.EncodeU32(uint32(v)) }

func (e *Encoder) EncodeI64(v int64) { e.EncodeU64(uint64(v)) }

// EncodeU128 writes v as 16 little-endian bytes.
func (e *Encoder) EncodeU128(v U128) {
	b := v.v.Bytes32()
	for i := 31; i >= 16; i-- {
		e.PushByte(b[i])
	}
}

// EncodeCompact writes v using the shortest compact width class.
func (e *Encoder) EncodeCompact(v uint64) {
	switch {
	case v < 1<<6:
		e.PushByte(byte(v) << 2)
	case v < 1<<14:
		e.EncodeU16(uint16(v)<<2 | 0b01)
	case v < 1<<30:
		e.EncodeU32(uint32(v)<<2 | 0b10)
	default:
		n := 4
		for n < 8 && v>>(8*n) != 0 {
			n++
		}
		e.PushByte(byte(n-4)<<2 | 0b11)
		for i := 0; i < n; i++ {
			e.PushByte(byte(v >> (8 * i)))
		}
	}
}

// EncodeCompactBig writes a compact integer of up to 256 bits.
func (e *Encoder) EncodeCompactBig(v *uint256.Int) {
	if v.IsUint64() {
		e.EncodeCompact(v.Uint64())
		return
	}
	n := (v.BitLen() + 7) / 8
	b := v.Bytes32()
	e.PushByte(byte(n-4)<<2 | 0b11)
	for i := 31; i > 31-n; i-- {
		e.PushByte(b[i])
	}
}

// EncodeCompactU128 writes v as a compact integer.
func (e *Encoder) EncodeCompactU128(v U128) { e.EncodeCompactBig(&v.v) }

// EncodeBytes writes a compact length prefix followed by p.
func (e *Encoder) EncodeBytes(p []byte) {
	e.EncodeCompact(uint64(len(p)))
	e.Write(p)
}

func (e *Encoder) EncodeString(s string) {
	e.EncodeCompact(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// EncodeVariant writes an enum discriminant.
func (e *Encoder) EncodeVariant(idx uint8) { e.PushByte(idx) }

// Encode writes v in place.
func (e *Encoder) Encode(v Encodable) { v.EncodeTo(e) }
