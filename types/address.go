package types

import (
	"fmt"

	"github.com/blockberries/sapi/scale"
)

// MultiAddressKind is the discriminant of a MultiAddress.
type MultiAddressKind uint8

const (
	AddressID MultiAddressKind = iota
	AddressIndex
	AddressRaw
	Address32
	Address20
)

// MultiAddress is the address type of Substrate runtimes: an account id,
// an account index, or a raw byte form.
type MultiAddress struct {
	Kind    MultiAddressKind
	ID      AccountID32
	Index   uint32
	Raw     []byte
	Bytes32 [32]byte
	Bytes20 [20]byte
}

// NewAddressID returns the Id form, the one used by signed extrinsics.
func NewAddressID(a AccountID32) MultiAddress {
	return MultiAddress{Kind: AddressID, ID: a}
}

func (m MultiAddress) String() string {
	switch m.Kind {
	case AddressID:
		return m.ID.String()
	case AddressIndex:
		return fmt.Sprintf("index(%d)", m.Index)
	case AddressRaw:
		return fmt.Sprintf("raw(%x)", m.Raw)
	case Address32:
		return fmt.Sprintf("address32(%x)", m.Bytes32)
	default:
		return fmt.Sprintf("address20(%x)", m.Bytes20)
	}
}

func (m MultiAddress) EncodeTo(e *scale.Encoder) {
	e.EncodeVariant(uint8(m.Kind))
	switch m.Kind {
	case AddressID:
		m.ID.EncodeTo(e)
	case AddressIndex:
		e.EncodeCompact(uint64(m.Index))
	case AddressRaw:
		e.EncodeBytes(m.Raw)
	case Address32:
		e.Write(m.Bytes32[:])
	case Address20:
		e.Write(m.Bytes20[:])
	}
}

func (m *MultiAddress) DecodeFrom(d *scale.Decoder) error {
	kind, err := d.DecodeVariant(5)
	if err != nil {
		return err
	}
	*m = MultiAddress{Kind: MultiAddressKind(kind)}
	switch m.Kind {
	case AddressID:
		return m.ID.DecodeFrom(d)
	case AddressIndex:
		m.Index, err = d.DecodeCompactU32()
		return err
	case AddressRaw:
		m.Raw, err = d.DecodeBytes()
		return err
	case Address32:
		return d.ReadInto(m.Bytes32[:])
	default:
		return d.ReadInto(m.Bytes20[:])
	}
}
