package hasher

import (
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/blake2b"
)

// Hashing is the algorithm a chain uses for block and extrinsic hashes.
type Hashing interface {
	Name() string
	// Size is the digest width in bytes.
	Size() int
	Hash(data []byte) []byte
}

var (
	// BlakeTwo256 is BLAKE2b with a 32-byte digest.
	BlakeTwo256 Hashing = blakeTwo256{}
	// Keccak256 is the legacy Keccak-256 used by Ethereum.
	Keccak256 Hashing = keccak256{}
)

type blakeTwo256 struct{}

func (blakeTwo256) Name() string { return "BlakeTwo256" }
func (blakeTwo256) Size() int    { return 32 }
func (blakeTwo256) Hash(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

type keccak256 struct{}

func (keccak256) Name() string            { return "Keccak256" }
func (keccak256) Size() int               { return 32 }
func (keccak256) Hash(data []byte) []byte { return crypto.Keccak256(data) }
