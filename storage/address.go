package storage

import (
	"fmt"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

// Address names a storage entry, or a partial key prefix of a map, and
// how to decode its values.
type Address[V any] struct {
	Pallet string
	Entry  string
	// Hashers and Skippers describe the entry's full key tuple.
	Hashers  []hasher.StorageHasher
	Skippers []scale.Skipper
	// Keys may be shorter than Hashers to address a prefix for
	// iteration.
	Keys []MapKey

	decode func(*scale.Decoder) (V, error)
}

// Plain addresses a value entry.
func Plain[V any, P interface {
	*V
	scale.Decodable
}](pallet, entry string) Address[V] {
	return Address[V]{Pallet: pallet, Entry: entry, decode: scale.DecodeValue[V, P]}
}

// Map addresses a map entry whose key tuple is hashed with hashers. keys
// may cover any prefix of the tuple. It panics if more keys than
// hashers are given.
func Map[V any, P interface {
	*V
	scale.Decodable
}](pallet, entry string, hashers []hasher.StorageHasher, skippers []scale.Skipper, keys ...scale.Encodable) Address[V] {
	if len(keys) > len(hashers) {
		panic(fmt.Sprintf("storage: %s.%s takes %d keys, got %d", pallet, entry, len(hashers), len(keys)))
	}
	a := Address[V]{
		Pallet:   pallet,
		Entry:    entry,
		Hashers:  hashers,
		Skippers: skippers,
		Keys:     make([]MapKey, len(keys)),
		decode:   scale.DecodeValue[V, P],
	}
	for i, k := range keys {
		a.Keys[i] = NewMapKey(k, hashers[i])
	}
	return a
}

// Key is the storage key of the address.
func (a Address[V]) Key() types.StorageKey {
	return BuildKey(a.Pallet, a.Entry, a.Keys...)
}

// IsComplete reports whether every segment of the key tuple is given.
func (a Address[V]) IsComplete() bool { return len(a.Keys) == len(a.Hashers) }

func (a Address[V]) String() string {
	return fmt.Sprintf("%s.%s", a.Pallet, a.Entry)
}

// DecodeValue decodes a value of the address's type. The whole input
// must be consumed.
func (a Address[V]) DecodeValue(data []byte) (V, error) {
	d := scale.NewDecoder(data)
	v, err := a.decode(d)
	if err != nil {
		return v, err
	}
	if d.Len() != 0 {
		var zero V
		return zero, &scale.DecodeError{Offset: d.Offset(), Err: scale.ErrTrailingBytes}
	}
	return v, nil
}
