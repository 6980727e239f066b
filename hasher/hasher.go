// Package hasher implements the storage-key hashing strategies and the
// block hashing algorithms used by Substrate-style chains.
package hasher

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/blockberries/sapi/scale"
)

// ErrNotReversible is returned when the original key cannot be recovered
// from a hashed segment.
var ErrNotReversible = errors.New("hasher: one-way hasher")

// StorageHasher selects how a storage map key segment is hashed. The
// numeric values match the order used in chain metadata.
type StorageHasher uint8

const (
	Blake2_128 StorageHasher = iota
	Blake2_256
	Blake2_128Concat
	Twox128
	Twox256
	Twox64Concat
	Identity

	numHashers
)

func (h StorageHasher) String() string {
	switch h {
	case Blake2_128:
		return "Blake2_128"
	case Blake2_256:
		return "Blake2_256"
	case Blake2_128Concat:
		return "Blake2_128Concat"
	case Twox128:
		return "Twox128"
	case Twox256:
		return "Twox256"
	case Twox64Concat:
		return "Twox64Concat"
	case Identity:
		return "Identity"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(h))
	}
}

// ParseStorageHasher is the inverse of String.
func ParseStorageHasher(s string) (StorageHasher, error) {
	for h := Blake2_128; h < numHashers; h++ {
		if h.String() == s {
			return h, nil
		}
	}
	return 0, fmt.Errorf("hasher: unknown storage hasher %q", s)
}

// HashWidth is the number of hash bytes the hasher emits before any
// concatenated key.
func (h StorageHasher) HashWidth() int {
	switch h {
	case Blake2_128, Blake2_128Concat, Twox128:
		return 16
	case Blake2_256, Twox256:
		return 32
	case Twox64Concat:
		return 8
	default:
		return 0
	}
}

// Reversible reports whether the encoded key can be recovered from the
// hasher output.
func (h StorageHasher) Reversible() bool {
	return h == Blake2_128Concat || h == Twox64Concat || h == Identity
}

// Hash applies the hasher to an encoded key segment.
func (h StorageHasher) Hash(encoded []byte) []byte {
	switch h {
	case Blake2_128:
		return Blake2b128(encoded)
	case Blake2_256:
		sum := blake2b.Sum256(encoded)
		return sum[:]
	case Blake2_128Concat:
		return append(Blake2b128(encoded), encoded...)
	case Twox128:
		return TwoX128(encoded)
	case Twox256:
		return TwoX256(encoded)
	case Twox64Concat:
		return append(TwoX64(encoded), encoded...)
	case Identity:
		return append([]byte(nil), encoded...)
	}
	panic(fmt.Sprintf("hasher: invalid storage hasher %d", uint8(h)))
}

// Suffix returns the encoded key carried by a reversible hasher's
// output.
func (h StorageHasher) Suffix(hashed []byte) ([]byte, error) {
	if !h.Reversible() {
		return nil, ErrNotReversible
	}
	if len(hashed) < h.HashWidth() {
		return nil, fmt.Errorf("hasher: %s output shorter than %d bytes", h, h.HashWidth())
	}
	return hashed[h.HashWidth():], nil
}

func (h StorageHasher) EncodeTo(e *scale.Encoder) { e.EncodeVariant(uint8(h)) }

func (h *StorageHasher) DecodeFrom(d *scale.Decoder) error {
	v, err := d.DecodeVariant(uint8(numHashers))
	if err != nil {
		return err
	}
	*h = StorageHasher(v)
	return nil
}

// TwoX64 is xxHash64 with seed 0, little-endian.
func TwoX64(data []byte) []byte {
	return binary.LittleEndian.AppendUint64(nil, xxhash.Sum64(data))
}

// TwoX128 concatenates xxHash64 with seeds 0 and 1.
func TwoX128(data []byte) []byte {
	return twox(data, 2)
}

// TwoX256 concatenates xxHash64 with seeds 0 through 3.
func TwoX256(data []byte) []byte {
	return twox(data, 4)
}

func twox(data []byte, rounds int) []byte {
	out := make([]byte, 0, 8*rounds)
	for seed := 0; seed < rounds; seed++ {
		d := xxhash.NewWithSeed(uint64(seed))
		_, _ = d.Write(data)
		out = binary.LittleEndian.AppendUint64(out, d.Sum64())
	}
	return out
}

// Blake2b128 is the 16-byte BLAKE2b digest.
func Blake2b128(data []byte) []byte {
	h, _ := blake2b.New(16, nil)
	h.Write(data)
	return h.Sum(nil)
}

// Blake2b256 is the 32-byte BLAKE2b digest.
func Blake2b256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}
