// Package types defines the chain primitives shared by the client, the
// transports and the dev node.
//
// Values that cross the chain wire implement scale.Encodable and
// scale.Decodable. Values that cross the node transport are plain Go
// structs with cramberry struct tags.
package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/blockberries/sapi/scale"
)

// Hash is a 32-byte block, extrinsic or state hash.
type Hash [32]byte

// HashFromHex parses a 0x-prefixed 32-byte hex string.
func HashFromHex(s string) (Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Hash{}, err
	}
	if len(b) != len(Hash{}) {
		return Hash{}, fmt.Errorf("types: hash must be 32 bytes, got %d", len(b))
	}
	var h Hash
	copy(h[:], b)
	return h, nil
}

// HashFromBytes copies b into a Hash. b must be 32 bytes.
func HashFromBytes(b []byte) Hash {
	var h Hash
	if len(b) != len(h) {
		panic(fmt.Sprintf("types: hash must be 32 bytes, got %d", len(b)))
	}
	copy(h[:], b)
	return h
}

func (h Hash) Hex() string    { return hexutil.Encode(h[:]) }
func (h Hash) String() string { return h.Hex() }
func (h Hash) IsZero() bool   { return h == Hash{} }

func (h Hash) EncodeTo(e *scale.Encoder) { e.Write(h[:]) }

func (h *Hash) DecodeFrom(d *scale.Decoder) error { return d.ReadInto(h[:]) }

// StorageKey is the exact byte sequence a node uses to look up a value.
type StorageKey []byte

func (k StorageKey) Hex() string { return hexutil.Encode(k) }

// StorageData is a raw SCALE-encoded storage value.
type StorageData []byte

// KeyValue is one entry returned by a paged storage read.
type KeyValue struct {
	Key   StorageKey  `cramberry:"1"`
	Value StorageData `cramberry:"2"`
}

// Extrinsic is an opaque, fully encoded extrinsic envelope including
// its compact length prefix.
type Extrinsic []byte

func (x Extrinsic) Hex() string { return hexutil.Encode(x) }
