package types

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// GenericSS58Prefix is the address format of development chains.
const GenericSS58Prefix uint16 = 42

var ss58Context = []byte("SS58PRE")

var ErrInvalidSS58 = errors.New("types: invalid SS58 address")

// ToSS58 renders the account in SS58 format under the given network
// prefix.
func (a AccountID32) ToSS58(prefix uint16) string {
	var payload []byte
	switch {
	case prefix < 64:
		payload = []byte{byte(prefix)}
	default:
		// Two-byte form: six low bits of the first byte carry bits 2..7,
		// the second byte carries bits 0..1 and 8..13.
		first := byte((prefix&0b1111_1100)>>2) | 0b0100_0000
		second := byte(prefix>>8) | byte(prefix&0b11)<<6
		payload = []byte{first, second}
	}
	payload = append(payload, a[:]...)
	sum := ss58Checksum(payload)
	return base58.Encode(append(payload, sum[:2]...))
}

// ParseSS58 decodes an SS58 address and returns the account and its
// network prefix.
func ParseSS58(s string) (AccountID32, uint16, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return AccountID32{}, 0, fmt.Errorf("%w: %v", ErrInvalidSS58, err)
	}
	if len(raw) < 1 {
		return AccountID32{}, 0, ErrInvalidSS58
	}
	var prefix uint16
	prefixLen := 1
	switch {
	case raw[0] < 64:
		prefix = uint16(raw[0])
	case raw[0] < 128:
		if len(raw) < 2 {
			return AccountID32{}, 0, ErrInvalidSS58
		}
		lower := (raw[0] << 2) | (raw[1] >> 6)
		upper := raw[1] & 0b0011_1111
		prefix = uint16(lower) | uint16(upper)<<8
		prefixLen = 2
	default:
		return AccountID32{}, 0, fmt.Errorf("%w: reserved prefix byte 0x%02x", ErrInvalidSS58, raw[0])
	}
	if len(raw) != prefixLen+32+2 {
		return AccountID32{}, 0, fmt.Errorf("%w: unexpected length %d", ErrInvalidSS58, len(raw))
	}
	body := raw[:prefixLen+32]
	sum := ss58Checksum(body)
	if !bytes.Equal(sum[:2], raw[prefixLen+32:]) {
		return AccountID32{}, 0, fmt.Errorf("%w: checksum mismatch", ErrInvalidSS58)
	}
	var a AccountID32
	copy(a[:], raw[prefixLen:prefixLen+32])
	return a, prefix, nil
}

func ss58Checksum(payload []byte) [64]byte {
	return blake2b.Sum512(append(append([]byte{}, ss58Context...), payload...))
}
