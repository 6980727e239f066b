package signer

import (
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ed25519"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/types"
)

// Verify checks a MultiSignature by account over payload. Sr25519 is
// not supported and never verifies.
func Verify(account types.AccountID32, payload []byte, sig types.MultiSignature) bool {
	switch sig.Kind {
	case types.SigEd25519:
		return ed25519.Verify(ed25519.PublicKey(account[:]), payload, sig.Raw())
	case types.SigEcdsa:
		digest := hasher.Blake2b256(payload)
		pub, err := crypto.SigToPub(digest[:], sig.Raw())
		if err != nil {
			return false
		}
		return ecdsaAccount(crypto.CompressPubkey(pub)) == account
	default:
		return false
	}
}

// VerifyEthereum checks an Ethereum style signature by address over
// payload.
func VerifyEthereum(address types.AccountID20, payload []byte, sig types.EcdsaSignature) bool {
	pub, err := crypto.SigToPub(crypto.Keccak256(payload), sig[:])
	if err != nil {
		return false
	}
	return types.AccountID20(crypto.PubkeyToAddress(*pub)) == address
}
