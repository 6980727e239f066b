package scale

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// Decoder reads SCALE values from a byte slice.
type Decoder struct {
	data []byte
	off  int
}

// NewDecoder returns a decoder positioned at the start of data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Len returns the number of unread bytes.
func (d *Decoder) Len() int { return len(d.data) - d.off }

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int { return d.off }

// Remaining returns the unread bytes without consuming them.
func (d *Decoder) Remaining() []byte { return d.data[d.off:] }

func (d *Decoder) fail(err error) error {
	return &DecodeError{Offset: d.off, Err: err}
}

func (d *Decoder) failf(err error, format string, args ...any) error {
	return &DecodeError{Offset: d.off, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// Read consumes exactly n bytes. The returned slice aliases the input.
func (d *Decoder) Read(n int) ([]byte, error) {
	if n < 0 || d.Len() < n {
		return nil, d.failf(ErrUnexpectedEOF, "need %d bytes, have %d", n, d.Len())
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b, nil
}

// ReadInto fills dst from the input.
func (d *Decoder) ReadInto(dst []byte) error {
	b, err := d.Read(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

func (d *Decoder) ReadByte() (byte, error) {
	b, err := d.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) DecodeBool() (bool, error) {
	b, err := d.ReadByte()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	d.off--
	return false, d.failf(ErrInvalidBool, "0x%02x", b)
}

func (d *Decoder) DecodeU8() (uint8, error) { return d.ReadByte() }

func (d *Decoder) DecodeU16() (uint16, error) {
	b, err := d.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Decoder) DecodeU32() (uint32, error) {
	b, err := d.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) DecodeU64() (uint64, error) {
	b, err := d.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *Decoder) DecodeI8() (int8, error) {
	v, err := d.DecodeU8()
	return int8(v), err
}

func (d *Decoder) DecodeI16() (int16, error) {
	v, err := d.DecodeU16()
	return int16(v), err
}

func (d *Decoder) DecodeI32() (int32, error) {
	v, err := d.DecodeU32()
	return int32(v), err
}

func (d *Decoder) DecodeI64() (int64, error) {
	v, err := d.DecodeU64()
	return int64(v), err
}

// DecodeU128 reads 16 little-endian bytes.
func (d *Decoder) DecodeU128() (U128, error) {
	b, err := d.Read(16)
	if err != nil {
		return U128{}, err
	}
	var be [16]byte
	for i := range be {
		be[i] = b[15-i]
	}
	var u U128
	u.v.SetBytes(be[:])
	return u, nil
}

// DecodeCompactBig reads a compact integer of up to 256 bits and
// rejects encodings that do not use the minimal width class.
func (d *Decoder) DecodeCompactBig() (*uint256.Int, error) {
	start := d.off
	first, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch first & 0b11 {
	case 0b00:
		return uint256.NewInt(uint64(first >> 2)), nil
	case 0b01:
		d.off = start
		b, err := d.Read(2)
		if err != nil {
			return nil, err
		}
		v := uint64(binary.LittleEndian.Uint16(b) >> 2)
		if v < 1<<6 {
			d.off = start
			return nil, d.failf(ErrNonCanonical, "%d in two-byte class", v)
		}
		return uint256.NewInt(v), nil
	case 0b10:
		d.off = start
		b, err := d.Read(4)
		if err != nil {
			return nil, err
		}
		v := uint64(binary.LittleEndian.Uint32(b) >> 2)
		if v < 1<<14 {
			d.off = start
			return nil, d.failf(ErrNonCanonical, "%d in four-byte class", v)
		}
		return uint256.NewInt(v), nil
	}
	n := int(first>>2) + 4
	if n > 32 {
		d.off = start
		return nil, d.failf(ErrOverflow, "%d-byte compact integer", n)
	}
	b, err := d.Read(n)
	if err != nil {
		return nil, err
	}
	if b[n-1] == 0 {
		d.off = start
		return nil, d.failf(ErrNonCanonical, "%d-byte integer with zero high byte", n)
	}
	be := make([]byte, n)
	for i := range be {
		be[i] = b[n-1-i]
	}
	v := new(uint256.Int).SetBytes(be)
	if n == 4 && v.Uint64() < 1<<30 {
		d.off = start
		return nil, d.failf(ErrNonCanonical, "%d in big-integer class", v.Uint64())
	}
	return v, nil
}

// DecodeCompact reads a compact integer that must fit in 64 bits.
func (d *Decoder) DecodeCompact() (uint64, error) {
	start := d.off
	v, err := d.DecodeCompactBig()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		d.off = start
		return 0, d.failf(ErrOverflow, "compact value exceeds 64 bits")
	}
	return v.Uint64(), nil
}

// DecodeCompactU32 reads a compact integer that must fit in 32 bits.
func (d *Decoder) DecodeCompactU32() (uint32, error) {
	start := d.off
	v, err := d.DecodeCompact()
	if err != nil {
		return 0, err
	}
	if v > 1<<32-1 {
		d.off = start
		return 0, d.failf(ErrOverflow, "compact value exceeds 32 bits")
	}
	return uint32(v), nil
}

// DecodeCompactU128 reads a compact integer that must fit in 128 bits.
func (d *Decoder) DecodeCompactU128() (U128, error) {
	start := d.off
	v, err := d.DecodeCompactBig()
	if err != nil {
		return U128{}, err
	}
	if v.BitLen() > 128 {
		d.off = start
		return U128{}, d.failf(ErrOverflow, "compact value exceeds 128 bits")
	}
	return U128{v: *v}, nil
}

// DecodeLength reads a compact length prefix. Every supported element
// occupies at least one byte, so a length larger than the remaining
// input is rejected up front.
func (d *Decoder) DecodeLength() (int, error) {
	start := d.off
	n, err := d.DecodeCompact()
	if err != nil {
		return 0, err
	}
	if n > uint64(d.Len()) {
		d.off = start
		return 0, d.failf(ErrLengthExceedsInput, "length %d, remaining %d", n, d.Len())
	}
	return int(n), nil
}

// DecodeBytes reads a length-prefixed byte sequence. The result is a
// copy.
func (d *Decoder) DecodeBytes() ([]byte, error) {
	n, err := d.DecodeLength()
	if err != nil {
		return nil, err
	}
	b, err := d.Read(n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

func (d *Decoder) DecodeString() (string, error) {
	b, err := d.DecodeBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeVariant reads an enum discriminant and rejects values >= n.
func (d *Decoder) DecodeVariant(n uint8) (uint8, error) {
	b, err := d.ReadByte()
	if err != nil {
		return 0, err
	}
	if b >= n {
		d.off--
		return 0, d.failf(ErrInvalidVariant, "index %d, %d variants", b, n)
	}
	return b, nil
}

// Decode reads v in place.
func (d *Decoder) Decode(v Decodable) error { return v.DecodeFrom(d) }
