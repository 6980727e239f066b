// Package config holds the chain profiles that parameterize the client.
//
// A Config bundles the primitive types a chain uses: the account id, the
// address form carried in extrinsics, the signature, the hashing
// algorithm and the integer widths of nonces and block numbers. The
// signed-extension layer lives beside it in ParamsSpec, since the same
// primitives are used with different extension sets across runtime
// upgrades.
package config

import (
	"fmt"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

// AccountID is the account identifier of a chain.
type AccountID interface {
	comparable
	scale.Encodable
	Bytes() []byte
}

// Address is the signer address form written into extrinsics.
type Address interface {
	scale.Encodable
}

// Signature is the signature form written into extrinsics.
type Signature interface {
	scale.Encodable
}

// IntWidth is the encoded width of a fixed-size integer.
type IntWidth uint8

const (
	U32 IntWidth = 4
	U64 IntWidth = 8
)

func (w IntWidth) String() string {
	switch w {
	case U32:
		return "u32"
	case U64:
		return "u64"
	default:
		return fmt.Sprintf("IntWidth(%d)", uint8(w))
	}
}

// Valid reports whether w is a known width.
func (w IntWidth) Valid() bool { return w == U32 || w == U64 }

// Encode writes v with width w. v is truncated to u32 for U32.
func (w IntWidth) Encode(e *scale.Encoder, v uint64) {
	if w == U32 {
		e.EncodeU32(uint32(v))
		return
	}
	e.EncodeU64(v)
}

// Decode reads a value of width w.
func (w IntWidth) Decode(d *scale.Decoder) (uint64, error) {
	if w == U32 {
		v, err := d.DecodeU32()
		return uint64(v), err
	}
	return d.DecodeU64()
}

// Max is the largest value representable with width w.
func (w IntWidth) Max() uint64 {
	if w == U32 {
		return 1<<32 - 1
	}
	return ^uint64(0)
}

// Config is one chain profile. The zero value is not usable; start from
// one of the profile constructors.
type Config[A AccountID, Ad Address, S Signature] struct {
	Name string
	// Hashing computes block and extrinsic hashes. Its digest must be
	// HashSize bytes.
	Hashing  hasher.Hashing
	HashSize int
	// Index is the nonce width. BlockNumber is the width of block
	// numbers in storage.
	Index       IntWidth
	BlockNumber IntWidth
	// ToAddress maps a signer's account id to the address form used in
	// the extrinsic envelope.
	ToAddress func(A) Ad
}

// Validate checks that the profile's parts agree with each other.
func (c Config[A, Ad, S]) Validate() error {
	fail := func(format string, args ...any) error {
		return sapi.NewConstructionError("config "+c.Name, fmt.Sprintf(format, args...), nil)
	}
	if c.Hashing == nil {
		return fail("no hashing algorithm")
	}
	if c.Hashing.Size() != c.HashSize {
		return fail("%s produces %d-byte digests, profile declares %d", c.Hashing.Name(), c.Hashing.Size(), c.HashSize)
	}
	if c.HashSize != len(types.Hash{}) {
		return fail("hash size %d is not supported", c.HashSize)
	}
	if !c.Index.Valid() {
		return fail("invalid index width %s", c.Index)
	}
	if !c.BlockNumber.Valid() {
		return fail("invalid block number width %s", c.BlockNumber)
	}
	if c.ToAddress == nil {
		return fail("no address mapping")
	}
	return nil
}

// Hash hashes data with the profile's algorithm.
func (c Config[A, Ad, S]) Hash(data []byte) types.Hash {
	return types.HashFromBytes(c.Hashing.Hash(data))
}

// SubstrateConfig is the profile shape of Substrate-based chains.
type SubstrateConfig = Config[types.AccountID32, types.MultiAddress, types.MultiSignature]

// EthereumConfig is the profile shape of Ethereum compatible chains.
type EthereumConfig = Config[types.AccountID20, types.AccountID20, types.EcdsaSignature]

// Substrate is the default Substrate node profile.
func Substrate() SubstrateConfig {
	return SubstrateConfig{
		Name:        "substrate",
		Hashing:     hasher.BlakeTwo256,
		HashSize:    32,
		Index:       U32,
		BlockNumber: U32,
		ToAddress:   types.NewAddressID,
	}
}

// Polkadot uses the Substrate primitives.
func Polkadot() SubstrateConfig {
	c := Substrate()
	c.Name = "polkadot"
	return c
}

// Ethereum is the profile of Substrate chains with Ethereum style
// accounts: 20-byte account ids used directly as addresses and raw
// recoverable ECDSA signatures.
func Ethereum() EthereumConfig {
	return EthereumConfig{
		Name:        "ethereum",
		Hashing:     hasher.BlakeTwo256,
		HashSize:    32,
		Index:       U32,
		BlockNumber: U32,
		ToAddress:   func(a types.AccountID20) types.AccountID20 { return a },
	}
}
