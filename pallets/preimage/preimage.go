// Package preimage is the typed façade of the Preimage pallet.
package preimage

import (
	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

const (
	PalletName        = "Preimage"
	PalletIndex uint8 = 10
)

const (
	notePreimageIndex uint8 = 0
	notedIndex        uint8 = 0
)

// Module error indices.
const (
	ErrTooBig       uint8 = 0
	ErrAlreadyNoted uint8 = 1
)

// MaxSize is the largest preimage the pallet accepts.
const MaxSize = 4 << 20

var preimageHashers = []hasher.StorageHasher{hasher.Identity}

// Metadata describes the pallet as the runtime declares it.
func Metadata() metadata.Pallet {
	return metadata.Pallet{
		Name:  PalletName,
		Index: PalletIndex,
		Calls: []metadata.Variant{
			{Name: "note_preimage", Index: notePreimageIndex, Fields: []metadata.Field{{Name: "bytes", TypeName: "Vec<u8>"}}, Docs: "Register a preimage on-chain."},
		},
		Events: []metadata.Variant{
			{Name: "Noted", Index: notedIndex, Fields: []metadata.Field{{Name: "hash", TypeName: "Hash"}}, Docs: "A preimage has been noted."},
		},
		Storage: []metadata.StorageEntry{
			{Name: "PreimageFor", Modifier: metadata.Optional, Hashers: preimageHashers, KeyTypes: []string{"Hash"}, ValueType: "Vec<u8>"},
		},
	}
}

// RegisterEvents registers the pallet's events with r.
func RegisterEvents(r *events.Registry, meta *metadata.Metadata) error {
	return r.Register(meta, func() events.Event { return new(Noted) })
}

// PreimageFor addresses the preimage of hash.
func PreimageFor(hash types.Hash) storage.Address[scale.Bytes] {
	return storage.Map[scale.Bytes](PalletName, "PreimageFor", preimageHashers, []scale.Skipper{scale.SkipFixed(32)}, hash)
}

// Preimages addresses every noted preimage.
func Preimages() storage.Address[scale.Bytes] {
	return storage.Map[scale.Bytes](PalletName, "PreimageFor", preimageHashers, []scale.Skipper{scale.SkipFixed(32)})
}

// NotePreimage stores Bytes under their blake2b-256 hash.
type NotePreimage struct {
	Bytes []byte
}

func (NotePreimage) Info() types.CallInfo {
	return types.CallInfo{Pallet: PalletName, Name: "note_preimage", PalletIndex: PalletIndex, CallIndex: notePreimageIndex}
}

func (c NotePreimage) EncodeArgs(e *scale.Encoder) { e.EncodeBytes(c.Bytes) }

func (c *NotePreimage) DecodeArgs(d *scale.Decoder) (err error) {
	c.Bytes, err = d.DecodeBytes()
	return err
}

// DecodeCall decodes the arguments of the call with the given index.
func DecodeCall(callIndex uint8, d *scale.Decoder) (extrinsic.Call, error) {
	if callIndex != notePreimageIndex {
		return nil, &scale.DecodeError{Err: scale.ErrInvalidVariant, Detail: "unknown Preimage call"}
	}
	c := new(NotePreimage)
	return c, c.DecodeArgs(d)
}

// Noted: a preimage has been noted.
type Noted struct {
	Hash types.Hash
}

func (*Noted) Info() types.EventInfo {
	return types.EventInfo{Pallet: PalletName, Name: "Noted", PalletIndex: PalletIndex, EventIndex: notedIndex}
}

func (ev *Noted) EncodeTo(e *scale.Encoder)         { ev.Hash.EncodeTo(e) }
func (ev *Noted) DecodeFrom(d *scale.Decoder) error { return ev.Hash.DecodeFrom(d) }
