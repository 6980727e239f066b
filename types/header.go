package types

import (
	"fmt"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
)

// DigestKind is the discriminant of a header digest item.
type DigestKind uint8

const (
	DigestOther                     DigestKind = 0
	DigestConsensus                 DigestKind = 4
	DigestSeal                      DigestKind = 5
	DigestPreRuntime                DigestKind = 6
	DigestRuntimeEnvironmentUpdated DigestKind = 8
)

// DigestItem is one entry of a header digest. Engine is only used by the
// consensus, seal and pre-runtime kinds.
type DigestItem struct {
	Kind   DigestKind `cramberry:"1"`
	Engine [4]byte    `cramberry:"2"`
	Data   []byte     `cramberry:"3"`
}

func (di DigestItem) EncodeTo(e *scale.Encoder) {
	e.EncodeVariant(uint8(di.Kind))
	switch di.Kind {
	case DigestConsensus, DigestSeal, DigestPreRuntime:
		e.Write(di.Engine[:])
		e.EncodeBytes(di.Data)
	case DigestOther:
		e.EncodeBytes(di.Data)
	}
}

func (di *DigestItem) DecodeFrom(d *scale.Decoder) error {
	start := d.Offset()
	kind, err := d.DecodeVariant(9)
	if err != nil {
		return err
	}
	*di = DigestItem{Kind: DigestKind(kind)}
	switch di.Kind {
	case DigestConsensus, DigestSeal, DigestPreRuntime:
		if err := d.ReadInto(di.Engine[:]); err != nil {
			return err
		}
		di.Data, err = d.DecodeBytes()
		return err
	case DigestOther:
		di.Data, err = d.DecodeBytes()
		return err
	case DigestRuntimeEnvironmentUpdated:
		return nil
	}
	return &scale.DecodeError{Offset: start, Err: scale.ErrInvalidVariant, Detail: fmt.Sprintf("digest item %d", kind)}
}

// Header is a block header. The number is carried as u64 and encoded in
// compact form, so it serves chains with u32 and u64 block numbers.
type Header struct {
	ParentHash     Hash         `cramberry:"1"`
	Number         uint64       `cramberry:"2"`
	StateRoot      Hash         `cramberry:"3"`
	ExtrinsicsRoot Hash         `cramberry:"4"`
	Digest         []DigestItem `cramberry:"5"`
}

func (h Header) EncodeTo(e *scale.Encoder) {
	h.ParentHash.EncodeTo(e)
	e.EncodeCompact(h.Number)
	h.StateRoot.EncodeTo(e)
	h.ExtrinsicsRoot.EncodeTo(e)
	scale.EncodeSlice(e, h.Digest)
}

func (h *Header) DecodeFrom(d *scale.Decoder) error {
	if err := h.ParentHash.DecodeFrom(d); err != nil {
		return err
	}
	n, err := d.DecodeCompact()
	if err != nil {
		return err
	}
	h.Number = n
	if err := h.StateRoot.DecodeFrom(d); err != nil {
		return err
	}
	if err := h.ExtrinsicsRoot.DecodeFrom(d); err != nil {
		return err
	}
	h.Digest, err = scale.DecodeSlice(d, scale.DecodeValue[DigestItem])
	return err
}

// Hash computes the block hash with the chain's hashing algorithm.
func (h Header) Hash(hashing hasher.Hashing) Hash {
	return HashFromBytes(hashing.Hash(scale.Encode(h)))
}
