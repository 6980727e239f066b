package signer

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/types"
)

// Ecdsa is a secp256k1 key pair in the Substrate account scheme: the
// account id is blake2b-256 of the compressed public key and the
// signature covers blake2b-256 of the payload.
type Ecdsa struct {
	key *ecdsa.PrivateKey
	id  types.AccountID32
}

// NewEcdsa builds a key pair from a 32-byte private key.
func NewEcdsa(secret []byte) (*Ecdsa, error) {
	key, err := crypto.ToECDSA(secret)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}
	return &Ecdsa{key: key, id: ecdsaAccount(crypto.CompressPubkey(&key.PublicKey))}, nil
}

// DevEcdsa returns the deterministic development ECDSA key for name.
func DevEcdsa(name string) *Ecdsa {
	seed := hasher.Blake2b256([]byte("//" + name + "//ecdsa"))
	s, err := NewEcdsa(seed[:])
	if err != nil {
		panic(err)
	}
	return s
}

func ecdsaAccount(compressed []byte) types.AccountID32 {
	return types.AccountID32(hasher.Blake2b256(compressed))
}

func (s *Ecdsa) AccountID() types.AccountID32 { return s.id }

// PublicKey returns the 33-byte compressed public key.
func (s *Ecdsa) PublicKey() []byte { return crypto.CompressPubkey(&s.key.PublicKey) }

func (s *Ecdsa) Sign(payload []byte) (types.MultiSignature, error) {
	digest := hasher.Blake2b256(payload)
	raw, err := crypto.Sign(digest[:], s.key)
	if err != nil {
		return types.MultiSignature{}, fmt.Errorf("signer: %w", err)
	}
	sig := types.MultiSignature{Kind: types.SigEcdsa}
	copy(sig.Bytes[:], raw)
	return sig, nil
}

// Ethereum is a secp256k1 key pair in the Ethereum account scheme: the
// account id is the 20-byte address and the signature covers
// keccak-256 of the payload.
type Ethereum struct {
	key *ecdsa.PrivateKey
	id  types.AccountID20
}

// NewEthereum builds a key pair from a 32-byte private key.
func NewEthereum(secret []byte) (*Ethereum, error) {
	key, err := crypto.ToECDSA(secret)
	if err != nil {
		return nil, fmt.Errorf("signer: %w", err)
	}
	return &Ethereum{key: key, id: types.AccountID20(crypto.PubkeyToAddress(key.PublicKey))}, nil
}

func (s *Ethereum) AccountID() types.AccountID20 { return s.id }

func (s *Ethereum) Sign(payload []byte) (types.EcdsaSignature, error) {
	raw, err := crypto.Sign(crypto.Keccak256(payload), s.key)
	if err != nil {
		return types.EcdsaSignature{}, fmt.Errorf("signer: %w", err)
	}
	return types.EcdsaSignature(raw), nil
}
