package extrinsic

import (
	"github.com/blockberries/sapi/config"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

const (
	// Version is the extrinsic format version written by this package.
	Version = 4

	signedBit = 0x80

	// maxUnhashedPayload is the longest signing payload signed as is.
	// Longer payloads are signed through their blake2b-256 hash.
	maxUnhashedPayload = 256
)

// SigningPayload returns the bytes a signer signs: call, extra and
// additional data, hashed when longer than 256 bytes.
func SigningPayload(call []byte, params config.ExtrinsicParams) []byte {
	e := scale.NewEncoder()
	e.Write(call)
	params.EncodeExtra(e)
	params.EncodeAdditional(e)
	payload := e.Bytes()
	if len(payload) > maxUnhashedPayload {
		sum := hasher.Blake2b256(payload)
		return sum[:]
	}
	return payload
}

// EncodeSigned returns the length-prefixed signed envelope.
func EncodeSigned(address, signature scale.Encodable, params config.ExtrinsicParams, call []byte) types.Extrinsic {
	e := scale.NewEncoder()
	e.EncodeU8(signedBit | Version)
	address.EncodeTo(e)
	signature.EncodeTo(e)
	params.EncodeExtra(e)
	e.Write(call)
	return withLength(e.Bytes())
}

// EncodeUnsigned returns the length-prefixed unsigned envelope.
func EncodeUnsigned(call []byte) types.Extrinsic {
	e := scale.NewEncoder()
	e.EncodeU8(Version)
	e.Write(call)
	return withLength(e.Bytes())
}

func withLength(body []byte) types.Extrinsic {
	e := scale.NewEncoder()
	e.EncodeBytes(body)
	return types.Extrinsic(e.Bytes())
}

// ExtraDecoder reads the extra part of a signed envelope.
type ExtraDecoder interface {
	DecodeExtra(d *scale.Decoder) error
}

// Envelope is a decoded extrinsic of the Substrate profile.
type Envelope struct {
	Signed    bool
	Address   types.MultiAddress
	Signature types.MultiSignature
	// Call holds the encoded call, tags included.
	Call []byte
}

// DecodeEnvelope parses a length-prefixed extrinsic. For a signed
// envelope the extra part is decoded into extra.
func DecodeEnvelope(ext types.Extrinsic, extra ExtraDecoder) (*Envelope, error) {
	outer := scale.NewDecoder(ext)
	body, err := outer.DecodeBytes()
	if err != nil {
		return nil, err
	}
	if outer.Len() != 0 {
		return nil, &scale.DecodeError{Offset: outer.Offset(), Err: scale.ErrTrailingBytes, Detail: "extrinsic"}
	}

	d := scale.NewDecoder(body)
	head, err := d.DecodeU8()
	if err != nil {
		return nil, err
	}
	if head&^signedBit != Version {
		return nil, &scale.DecodeError{Err: scale.ErrInvalidVariant, Detail: "unsupported extrinsic version"}
	}
	env := &Envelope{Signed: head&signedBit != 0}
	if env.Signed {
		if err := env.Address.DecodeFrom(d); err != nil {
			return nil, err
		}
		if err := env.Signature.DecodeFrom(d); err != nil {
			return nil, err
		}
		if err := extra.DecodeExtra(d); err != nil {
			return nil, err
		}
	}
	if d.Len() < 2 {
		return nil, &scale.DecodeError{Offset: d.Offset(), Err: scale.ErrUnexpectedEOF, Detail: "call tags"}
	}
	env.Call = d.Remaining()
	return env, nil
}
