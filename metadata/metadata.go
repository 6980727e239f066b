// Package metadata models the chain metadata a client needs: the pallet
// table with call, event and storage entries, and the signed-extension
// list of the extrinsic format.
//
// A Metadata value is immutable once built by New or Decode and safe for
// concurrent use.
package metadata

import (
	"errors"
	"fmt"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
)

// Magic is the little-endian "meta" tag that prefixes encoded metadata.
const Magic uint32 = 0x6174656d

// Version is the layout version understood by this package.
const Version uint8 = 1

var (
	ErrUnknownPallet  = errors.New("metadata: unknown pallet")
	ErrUnknownCall    = errors.New("metadata: unknown call")
	ErrUnknownEvent   = errors.New("metadata: unknown event")
	ErrUnknownStorage = errors.New("metadata: unknown storage entry")
)

// Field is a named argument of a call or event. TypeName is informative.
type Field struct {
	Name     string
	TypeName string
}

// Variant is one call or event of a pallet.
type Variant struct {
	Name   string
	Index  uint8
	Fields []Field
	Docs   string
}

// Modifier tells whether an absent storage value reads as None or as
// the declared default.
type Modifier uint8

const (
	Optional Modifier = iota
	Default
)

// StorageEntry describes one storage item. An entry with no hashers is
// a plain value; otherwise it is a map keyed by one segment per hasher.
type StorageEntry struct {
	Name      string
	Modifier  Modifier
	Hashers   []hasher.StorageHasher
	KeyTypes  []string
	ValueType string
	Default   []byte
	Docs      string
}

// IsMap reports whether the entry is keyed.
func (s StorageEntry) IsMap() bool { return len(s.Hashers) > 0 }

// Pallet is one runtime module.
type Pallet struct {
	Name    string
	Index   uint8
	Calls   []Variant
	Events  []Variant
	Storage []StorageEntry

	calls   map[string]*Variant
	events  map[string]*Variant
	byCall  map[uint8]*Variant
	byEvent map[uint8]*Variant
	storage map[string]*StorageEntry
}

// ExtrinsicInfo describes the extrinsic format.
type ExtrinsicInfo struct {
	Version          uint8
	SignedExtensions []string
}

// Metadata is the decoded pallet table.
type Metadata struct {
	Pallets   []Pallet
	Extrinsic ExtrinsicInfo

	byName  map[string]*Pallet
	byIndex map[uint8]*Pallet
}

// New validates the pallet table and builds its lookup indexes. Pallet
// names and indices must be unique, as must call and event names and
// indices within a pallet.
func New(ext ExtrinsicInfo, pallets ...Pallet) (*Metadata, error) {
	m := &Metadata{
		Pallets:   pallets,
		Extrinsic: ext,
		byName:    make(map[string]*Pallet, len(pallets)),
		byIndex:   make(map[uint8]*Pallet, len(pallets)),
	}
	for i := range m.Pallets {
		p := &m.Pallets[i]
		if _, dup := m.byName[p.Name]; dup {
			return nil, fmt.Errorf("metadata: duplicate pallet name %q", p.Name)
		}
		if other, dup := m.byIndex[p.Index]; dup {
			return nil, fmt.Errorf("metadata: pallets %q and %q share index %d", other.Name, p.Name, p.Index)
		}
		m.byName[p.Name] = p
		m.byIndex[p.Index] = p
		if err := p.index(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (p *Pallet) index() error {
	var err error
	if p.calls, p.byCall, err = indexVariants(p.Name, "call", p.Calls); err != nil {
		return err
	}
	if p.events, p.byEvent, err = indexVariants(p.Name, "event", p.Events); err != nil {
		return err
	}
	p.storage = make(map[string]*StorageEntry, len(p.Storage))
	for i := range p.Storage {
		s := &p.Storage[i]
		if _, dup := p.storage[s.Name]; dup {
			return fmt.Errorf("metadata: %s: duplicate storage entry %q", p.Name, s.Name)
		}
		for _, h := range s.Hashers {
			if h > hasher.Identity {
				return fmt.Errorf("metadata: %s.%s: invalid hasher %d", p.Name, s.Name, uint8(h))
			}
		}
		p.storage[s.Name] = s
	}
	return nil
}

func indexVariants(pallet, kind string, vs []Variant) (map[string]*Variant, map[uint8]*Variant, error) {
	byName := make(map[string]*Variant, len(vs))
	byIndex := make(map[uint8]*Variant, len(vs))
	for i := range vs {
		v := &vs[i]
		if _, dup := byName[v.Name]; dup {
			return nil, nil, fmt.Errorf("metadata: %s: duplicate %s name %q", pallet, kind, v.Name)
		}
		if other, dup := byIndex[v.Index]; dup {
			return nil, nil, fmt.Errorf("metadata: %s: %ss %q and %q share index %d", pallet, kind, other.Name, v.Name, v.Index)
		}
		byName[v.Name] = v
		byIndex[v.Index] = v
	}
	return byName, byIndex, nil
}

// Pallet looks up a pallet by name.
func (m *Metadata) Pallet(name string) (*Pallet, error) {
	p, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPallet, name)
	}
	return p, nil
}

// PalletByIndex looks up a pallet by its index.
func (m *Metadata) PalletByIndex(idx uint8) (*Pallet, error) {
	p, ok := m.byIndex[idx]
	if !ok {
		return nil, fmt.Errorf("%w index %d", ErrUnknownPallet, idx)
	}
	return p, nil
}

func (p *Pallet) Call(name string) (*Variant, error) {
	v, ok := p.calls[name]
	if !ok {
		return nil, fmt.Errorf("%w %s.%s", ErrUnknownCall, p.Name, name)
	}
	return v, nil
}

func (p *Pallet) CallByIndex(idx uint8) (*Variant, error) {
	v, ok := p.byCall[idx]
	if !ok {
		return nil, fmt.Errorf("%w %s index %d", ErrUnknownCall, p.Name, idx)
	}
	return v, nil
}

func (p *Pallet) Event(name string) (*Variant, error) {
	v, ok := p.events[name]
	if !ok {
		return nil, fmt.Errorf("%w %s.%s", ErrUnknownEvent, p.Name, name)
	}
	return v, nil
}

func (p *Pallet) EventByIndex(idx uint8) (*Variant, error) {
	v, ok := p.byEvent[idx]
	if !ok {
		return nil, fmt.Errorf("%w %s index %d", ErrUnknownEvent, p.Name, idx)
	}
	return v, nil
}

func (p *Pallet) StorageEntry(name string) (*StorageEntry, error) {
	s, ok := p.storage[name]
	if !ok {
		return nil, fmt.Errorf("%w %s.%s", ErrUnknownStorage, p.Name, name)
	}
	return s, nil
}

// StorageEntry looks up a storage entry by pallet and item name.
func (m *Metadata) StorageEntry(pallet, item string) (*StorageEntry, error) {
	p, err := m.Pallet(pallet)
	if err != nil {
		return nil, err
	}
	return p.StorageEntry(item)
}

// Encode serializes the metadata with the magic prefix and version.
func (m *Metadata) Encode() []byte {
	e := scale.NewEncoder()
	e.EncodeU32(Magic)
	e.EncodeU8(Version)
	scale.EncodeSlice(e, m.Pallets)
	e.EncodeU8(m.Extrinsic.Version)
	e.EncodeCompact(uint64(len(m.Extrinsic.SignedExtensions)))
	for _, s := range m.Extrinsic.SignedExtensions {
		e.EncodeString(s)
	}
	return e.Bytes()
}

// Decode parses and validates encoded metadata.
func Decode(data []byte) (*Metadata, error) {
	d := scale.NewDecoder(data)
	magic, err := d.DecodeU32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, &scale.DecodeError{Err: scale.ErrInvalidVariant, Detail: fmt.Sprintf("bad metadata magic 0x%08x", magic)}
	}
	version, err := d.DecodeU8()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, &scale.DecodeError{Offset: 4, Err: scale.ErrInvalidVariant, Detail: fmt.Sprintf("unsupported metadata version %d", version)}
	}
	pallets, err := scale.DecodeSlice(d, scale.DecodeValue[Pallet])
	if err != nil {
		return nil, err
	}
	var ext ExtrinsicInfo
	if ext.Version, err = d.DecodeU8(); err != nil {
		return nil, err
	}
	if ext.SignedExtensions, err = scale.DecodeSlice(d, (*scale.Decoder).DecodeString); err != nil {
		return nil, err
	}
	if d.Len() != 0 {
		return nil, &scale.DecodeError{Offset: d.Offset(), Err: scale.ErrTrailingBytes}
	}
	return New(ext, pallets...)
}
