package types

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/blockberries/sapi/scale"
)

// SignatureKind is the discriminant of a MultiSignature.
type SignatureKind uint8

const (
	SigEd25519 SignatureKind = iota
	SigSr25519
	SigEcdsa
)

func (k SignatureKind) String() string {
	switch k {
	case SigEd25519:
		return "Ed25519"
	case SigSr25519:
		return "Sr25519"
	default:
		return "Ecdsa"
	}
}

// MultiSignature is a signature from any of the schemes a Substrate
// runtime accepts. Ed25519 and Sr25519 use the first 64 bytes of Bytes.
type MultiSignature struct {
	Kind  SignatureKind
	Bytes [65]byte
}

// Len is the number of significant signature bytes for Kind.
func (s MultiSignature) Len() int {
	if s.Kind == SigEcdsa {
		return 65
	}
	return 64
}

// Raw returns the significant signature bytes.
func (s MultiSignature) Raw() []byte { return s.Bytes[:s.Len()] }

func (s MultiSignature) EncodeTo(e *scale.Encoder) {
	e.EncodeVariant(uint8(s.Kind))
	e.Write(s.Raw())
}

func (s *MultiSignature) DecodeFrom(d *scale.Decoder) error {
	kind, err := d.DecodeVariant(3)
	if err != nil {
		return err
	}
	*s = MultiSignature{Kind: SignatureKind(kind)}
	return d.ReadInto(s.Bytes[:s.Len()])
}

// EcdsaSignature is a recoverable secp256k1 signature in R || S || V
// form, used directly by Ethereum compatible chains.
type EcdsaSignature [65]byte

func (s EcdsaSignature) Hex() string { return hexutil.Encode(s[:]) }

func (s EcdsaSignature) EncodeTo(e *scale.Encoder) { e.Write(s[:]) }

func (s *EcdsaSignature) DecodeFrom(d *scale.Decoder) error { return d.ReadInto(s[:]) }
