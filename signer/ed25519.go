// Package signer provides key pairs that sign extrinsic payloads for
// the chain profiles in package config.
//
// Signers sign whatever bytes they are given. Hashing of long payloads
// is done by the extrinsic builder before the payload reaches a signer.
package signer

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ed25519"

	"github.com/blockberries/sapi/types"
)

// Ed25519 is an ed25519 key pair. The account id is the public key.
type Ed25519 struct {
	priv ed25519.PrivateKey
	id   types.AccountID32
}

// NewEd25519 builds a key pair from a 32-byte seed.
func NewEd25519(seed []byte) (*Ed25519, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("signer: ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	s := &Ed25519{priv: priv}
	copy(s.id[:], priv.Public().(ed25519.PublicKey))
	return s, nil
}

// Dev returns the deterministic development key for name, e.g. "Alice".
// The seed is blake2b-256 of "//" followed by the name.
func Dev(name string) *Ed25519 {
	seed := blake2b.Sum256([]byte("//" + name))
	s, _ := NewEd25519(seed[:])
	return s
}

func (s *Ed25519) AccountID() types.AccountID32 { return s.id }

// Seed returns the 32-byte private seed.
func (s *Ed25519) Seed() []byte { return s.priv.Seed() }

func (s *Ed25519) Sign(payload []byte) (types.MultiSignature, error) {
	sig := types.MultiSignature{Kind: types.SigEd25519}
	copy(sig.Bytes[:], ed25519.Sign(s.priv, payload))
	return sig, nil
}
