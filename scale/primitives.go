package scale

// Named primitives so that plain integers and byte strings can be passed
// wherever an Encodable is expected, for example as storage map keys.

type (
	U8    uint8
	U16   uint16
	U32   uint32
	U64   uint64
	Bool  bool
	Bytes []byte
	Text  string

	// CompactU32 and CompactU64 encode in compact form.
	CompactU32 uint32
	CompactU64 uint64
)

func (v U8) EncodeTo(e *Encoder)   { e.EncodeU8(uint8(v)) }
func (v U16) EncodeTo(e *Encoder)  { e.EncodeU16(uint16(v)) }
func (v U32) EncodeTo(e *Encoder)  { e.EncodeU32(uint32(v)) }
func (v U64) EncodeTo(e *Encoder)  { e.EncodeU64(uint64(v)) }
func (v Bool) EncodeTo(e *Encoder) { e.EncodeBool(bool(v)) }
func (v Bytes) EncodeTo(e *Encoder) {
	e.EncodeBytes(v)
}
func (v Text) EncodeTo(e *Encoder)       { e.EncodeString(string(v)) }
func (v CompactU32) EncodeTo(e *Encoder) { e.EncodeCompact(uint64(v)) }
func (v CompactU64) EncodeTo(e *Encoder) { e.EncodeCompact(uint64(v)) }

func (v *U8) DecodeFrom(d *Decoder) error {
	x, err := d.DecodeU8()
	*v = U8(x)
	return err
}

func (v *U16) DecodeFrom(d *Decoder) error {
	x, err := d.DecodeU16()
	*v = U16(x)
	return err
}

func (v *U32) DecodeFrom(d *Decoder) error {
	x, err := d.DecodeU32()
	*v = U32(x)
	return err
}

func (v *U64) DecodeFrom(d *Decoder) error {
	x, err := d.DecodeU64()
	*v = U64(x)
	return err
}

func (v *Bool) DecodeFrom(d *Decoder) error {
	x, err := d.DecodeBool()
	*v = Bool(x)
	return err
}

func (v *Bytes) DecodeFrom(d *Decoder) error {
	x, err := d.DecodeBytes()
	*v = x
	return err
}

func (v *Text) DecodeFrom(d *Decoder) error {
	x, err := d.DecodeString()
	*v = Text(x)
	return err
}

func (v *CompactU32) DecodeFrom(d *Decoder) error {
	x, err := d.DecodeCompactU32()
	*v = CompactU32(x)
	return err
}

func (v *CompactU64) DecodeFrom(d *Decoder) error {
	x, err := d.DecodeCompact()
	*v = CompactU64(x)
	return err
}

// Raw is a pre-encoded value written verbatim.
type Raw []byte

func (r Raw) EncodeTo(e *Encoder) { e.Write(r) }
