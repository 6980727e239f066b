package types

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/blockberries/sapi/scale"
)

// AccountID32 is the 32-byte account identifier used by Substrate
// chains.
type AccountID32 [32]byte

func (a AccountID32) Bytes() []byte  { return a[:] }
func (a AccountID32) Hex() string    { return hexutil.Encode(a[:]) }
func (a AccountID32) String() string { return a.ToSS58(GenericSS58Prefix) }

func (a AccountID32) EncodeTo(e *scale.Encoder) { e.Write(a[:]) }

func (a *AccountID32) DecodeFrom(d *scale.Decoder) error { return d.ReadInto(a[:]) }

// AccountID20 is the 20-byte account identifier used by Ethereum
// compatible chains.
type AccountID20 [20]byte

func (a AccountID20) Bytes() []byte  { return a[:] }
func (a AccountID20) Hex() string    { return hexutil.Encode(a[:]) }
func (a AccountID20) String() string { return a.Hex() }

func (a AccountID20) EncodeTo(e *scale.Encoder) { e.Write(a[:]) }

func (a *AccountID20) DecodeFrom(d *scale.Decoder) error { return d.ReadInto(a[:]) }
