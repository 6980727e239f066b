// Package storage derives storage keys and reads typed values from a
// node.
//
// A key is twox128(pallet) ++ twox128(item) followed by one hashed
// segment per map key. A wrong pallet name, item name or hasher yields a
// key the node does not hold, which reads exactly like an absent value.
package storage

import (
	"fmt"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

// PrefixLen is the width of the pallet and item name prefix.
const PrefixLen = 32

// Prefix returns twox128(pallet) ++ twox128(item).
func Prefix(pallet, item string) types.StorageKey {
	key := make(types.StorageKey, 0, PrefixLen)
	key = append(key, hasher.TwoX128([]byte(pallet))...)
	return append(key, hasher.TwoX128([]byte(item))...)
}

// MapKey is one encoded key segment and the hasher applied to it.
type MapKey struct {
	Value  []byte
	Hasher hasher.StorageHasher
}

// NewMapKey encodes v as a segment hashed with h.
func NewMapKey(v scale.Encodable, h hasher.StorageHasher) MapKey {
	return MapKey{Value: scale.Encode(v), Hasher: h}
}

// BuildKey returns the storage key of an entry. With no keys it is the
// plain prefix.
func BuildKey(pallet, item string, keys ...MapKey) types.StorageKey {
	key := Prefix(pallet, item)
	for _, k := range keys {
		key = append(key, k.Hasher.Hash(k.Value)...)
	}
	return key
}

// SplitKey walks the segments of a full map key that follow prefixLen
// bytes. A segment hashed with a reversible hasher is returned as its
// encoded value; skippers[i] finds where that value ends and may be nil
// for the last segment. A segment hashed one way is returned as nil.
func SplitKey(key []byte, prefixLen int, hashers []hasher.StorageHasher, skippers []scale.Skipper) ([][]byte, error) {
	if len(key) < prefixLen {
		return nil, &scale.DecodeError{Err: scale.ErrUnexpectedEOF, Detail: "storage key shorter than its prefix"}
	}
	rest := key[prefixLen:]
	segments := make([][]byte, len(hashers))
	for i, h := range hashers {
		w := h.HashWidth()
		if len(rest) < w {
			return nil, &scale.DecodeError{Offset: len(key) - len(rest), Err: scale.ErrUnexpectedEOF, Detail: fmt.Sprintf("segment %d hash", i)}
		}
		rest = rest[w:]
		if !h.Reversible() {
			continue
		}
		var skip scale.Skipper
		if i < len(skippers) {
			skip = skippers[i]
		}
		if skip == nil {
			if i != len(hashers)-1 {
				return nil, fmt.Errorf("storage: no skipper for segment %d", i)
			}
			segments[i] = rest
			rest = nil
			continue
		}
		d := scale.NewDecoder(rest)
		if err := skip(d); err != nil {
			return nil, err
		}
		segments[i] = rest[:d.Offset()]
		rest = rest[d.Offset():]
	}
	if len(rest) != 0 {
		return nil, &scale.DecodeError{Offset: len(key) - len(rest), Err: scale.ErrTrailingBytes, Detail: "storage key"}
	}
	return segments, nil
}
