// Package scale implements the SCALE binary codec used on the wire by
// Substrate-style chains.
//
// Encoding is append-based and total: any value representable by the
// types in this package can be encoded without error. Decoding is strict
// and fails with a *DecodeError on truncated input, out-of-range
// discriminants, non-canonical compact integers and trailing bytes.
package scale

// Encodable is implemented by every value that can be written with an
// Encoder. Implementations must not fail.
type Encodable interface {
	EncodeTo(e *Encoder)
}

// Decodable is implemented by pointer types that can be read from a
// Decoder.
type Decodable interface {
	DecodeFrom(d *Decoder) error
}

// Encode returns the SCALE encoding of v.
func Encode(v Encodable) []byte {
	e := NewEncoder()
	v.EncodeTo(e)
	return e.Bytes()
}

// Decode decodes v from data and requires the whole input to be
// consumed.
func Decode(data []byte, v Decodable) error {
	d := NewDecoder(data)
	if err := v.DecodeFrom(d); err != nil {
		return err
	}
	if d.Len() != 0 {
		return d.fail(ErrTrailingBytes)
	}
	return nil
}

// DecodePrefix decodes v from the start of data and returns the bytes
// that follow it.
func DecodePrefix(data []byte, v Decodable) ([]byte, error) {
	d := NewDecoder(data)
	if err := v.DecodeFrom(d); err != nil {
		return nil, err
	}
	return d.Remaining(), nil
}

// EncodeSlice writes a compact length prefix followed by every element.
func EncodeSlice[T Encodable](e *Encoder, items []T) {
	e.EncodeCompact(uint64(len(items)))
	for _, item := range items {
		item.EncodeTo(e)
	}
}

// DecodeSlice reads a compact length prefix and then that many elements
// using fn.
func DecodeSlice[T any](d *Decoder, fn func(*Decoder) (T, error)) ([]T, error) {
	n, err := d.DecodeLength()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		v, err := fn(d)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeOption writes None for a nil pointer and Some(v) otherwise.
func EncodeOption[T Encodable](e *Encoder, v *T) {
	if v == nil {
		e.PushByte(0)
		return
	}
	e.PushByte(1)
	(*v).EncodeTo(e)
}

// DecodeOption reads an Option and decodes the payload with fn when
// present.
func DecodeOption[T any](d *Decoder, fn func(*Decoder) (T, error)) (*T, error) {
	some, err := d.DecodeVariant(2)
	if err != nil {
		return nil, err
	}
	if some == 0 {
		return nil, nil
	}
	v, err := fn(d)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// DecodeValue adapts a Decodable pointer type to the function form used
// by DecodeSlice and DecodeOption.
func DecodeValue[T any, P interface {
	*T
	Decodable
}](d *Decoder) (T, error) {
	var v T
	err := P(&v).DecodeFrom(d)
	return v, err
}

// Skipper advances a decoder past exactly one encoded value.
type Skipper func(d *Decoder) error

// SkipFixed returns a Skipper for values of a fixed encoded width.
func SkipFixed(n int) Skipper {
	return func(d *Decoder) error {
		_, err := d.Read(n)
		return err
	}
}

// SkipCompact skips one compact integer.
func SkipCompact(d *Decoder) error {
	_, err := d.DecodeCompactBig()
	return err
}

// SkipBytes skips one length-prefixed byte sequence.
func SkipBytes(d *Decoder) error {
	_, err := d.DecodeBytes()
	return err
}

// SkipValue returns a Skipper that decodes and discards one value of T.
func SkipValue[T any, P interface {
	*T
	Decodable
}]() Skipper {
	return func(d *Decoder) error {
		_, err := DecodeValue[T, P](d)
		return err
	}
}
