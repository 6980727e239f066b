package metadata

import (
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
)

func (f Field) EncodeTo(e *scale.Encoder) {
	e.EncodeString(f.Name)
	e.EncodeString(f.TypeName)
}

func (f *Field) DecodeFrom(d *scale.Decoder) (err error) {
	if f.Name, err = d.DecodeString(); err != nil {
		return err
	}
	f.TypeName, err = d.DecodeString()
	return err
}

func (v Variant) EncodeTo(e *scale.Encoder) {
	e.EncodeString(v.Name)
	e.EncodeU8(v.Index)
	scale.EncodeSlice(e, v.Fields)
	e.EncodeString(v.Docs)
}

func (v *Variant) DecodeFrom(d *scale.Decoder) (err error) {
	if v.Name, err = d.DecodeString(); err != nil {
		return err
	}
	if v.Index, err = d.DecodeU8(); err != nil {
		return err
	}
	if v.Fields, err = scale.DecodeSlice(d, scale.DecodeValue[Field]); err != nil {
		return err
	}
	v.Docs, err = d.DecodeString()
	return err
}

func (s StorageEntry) EncodeTo(e *scale.Encoder) {
	e.EncodeString(s.Name)
	e.EncodeVariant(uint8(s.Modifier))
	scale.EncodeSlice(e, s.Hashers)
	e.EncodeCompact(uint64(len(s.KeyTypes)))
	for _, k := range s.KeyTypes {
		e.EncodeString(k)
	}
	e.EncodeString(s.ValueType)
	e.EncodeBytes(s.Default)
	e.EncodeString(s.Docs)
}

func (s *StorageEntry) DecodeFrom(d *scale.Decoder) (err error) {
	if s.Name, err = d.DecodeString(); err != nil {
		return err
	}
	mod, err := d.DecodeVariant(2)
	if err != nil {
		return err
	}
	s.Modifier = Modifier(mod)
	if s.Hashers, err = scale.DecodeSlice(d, scale.DecodeValue[hasher.StorageHasher]); err != nil {
		return err
	}
	if s.KeyTypes, err = scale.DecodeSlice(d, (*scale.Decoder).DecodeString); err != nil {
		return err
	}
	if s.ValueType, err = d.DecodeString(); err != nil {
		return err
	}
	if s.Default, err = d.DecodeBytes(); err != nil {
		return err
	}
	s.Docs, err = d.DecodeString()
	return err
}

func (p Pallet) EncodeTo(e *scale.Encoder) {
	e.EncodeString(p.Name)
	e.EncodeU8(p.Index)
	scale.EncodeSlice(e, p.Calls)
	scale.EncodeSlice(e, p.Events)
	scale.EncodeSlice(e, p.Storage)
}

func (p *Pallet) DecodeFrom(d *scale.Decoder) (err error) {
	if p.Name, err = d.DecodeString(); err != nil {
		return err
	}
	if p.Index, err = d.DecodeU8(); err != nil {
		return err
	}
	if p.Calls, err = scale.DecodeSlice(d, scale.DecodeValue[Variant]); err != nil {
		return err
	}
	if p.Events, err = scale.DecodeSlice(d, scale.DecodeValue[Variant]); err != nil {
		return err
	}
	p.Storage, err = scale.DecodeSlice(d, scale.DecodeValue[StorageEntry])
	return err
}
