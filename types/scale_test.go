package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

func TestEraEncoding(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{0x00}, scale.Encode(types.ImmortalEra))

	e := types.NewMortalEra(64, 42)
	require.Equal(types.Era{Mortal: true, Period: 64, Phase: 42}, e)
	require.Equal([]byte{0xa5, 0x02}, scale.Encode(e))

	e = types.NewMortalEra(32768, 20000)
	require.EqualValues(32768, e.Period)
	require.EqualValues(20000, e.Phase)
	require.Equal([]byte{0x4e, 0x9c}, scale.Encode(e))

	for _, era := range []types.Era{types.ImmortalEra, types.NewMortalEra(64, 42), types.NewMortalEra(32768, 20000)} {
		var got types.Era
		require.NoError(scale.Decode(scale.Encode(era), &got))
		require.Equal(era, got)
	}
}

func TestEraNormalizesPeriod(t *testing.T) {
	require := require.New(t)

	require.EqualValues(4, types.NewMortalEra(1, 10).Period)
	require.EqualValues(128, types.NewMortalEra(100, 10).Period)
	require.EqualValues(1<<16, types.NewMortalEra(1<<20, 10).Period)

	e := types.NewMortalEra(64, 130)
	require.EqualValues(2, e.Phase)
	require.EqualValues(130, e.Birth(130))
	require.EqualValues(194, e.Death(130))
	require.EqualValues(130, e.Birth(150))
}

func TestEraRejectsPhaseOutsidePeriod(t *testing.T) {
	// Period 4 (low nibble 1) with phase 15.
	var e types.Era
	err := scale.Decode([]byte{0xf1, 0x00}, &e)
	require.ErrorIs(t, err, scale.ErrInvalidVariant)
}

func TestMultiAddressCodec(t *testing.T) {
	require := require.New(t)

	id := types.AccountID32{1, 2, 3}
	addr := types.NewAddressID(id)
	enc := scale.Encode(addr)
	require.Len(enc, 33)
	require.Equal(byte(0x00), enc[0])

	for _, m := range []types.MultiAddress{
		addr,
		{Kind: types.AddressIndex, Index: 77},
		{Kind: types.AddressRaw, Raw: []byte{9, 9}},
		{Kind: types.Address20, Bytes20: [20]byte{7}},
	} {
		var got types.MultiAddress
		require.NoError(scale.Decode(scale.Encode(m), &got))
		require.Equal(m, got)
	}

	var got types.MultiAddress
	require.ErrorIs(scale.Decode([]byte{0x05}, &got), scale.ErrInvalidVariant)
}

func TestMultiSignatureCodec(t *testing.T) {
	require := require.New(t)

	ed := types.MultiSignature{Kind: types.SigEd25519}
	ed.Bytes[0] = 0xee
	require.Len(scale.Encode(ed), 65)

	ecdsa := types.MultiSignature{Kind: types.SigEcdsa}
	ecdsa.Bytes[64] = 0x01
	require.Len(scale.Encode(ecdsa), 66)

	for _, s := range []types.MultiSignature{ed, ecdsa} {
		var got types.MultiSignature
		require.NoError(scale.Decode(scale.Encode(s), &got))
		require.Equal(s, got)
	}
}

func TestHeaderHash(t *testing.T) {
	require := require.New(t)

	h := types.Header{Number: 1, Digest: []types.DigestItem{{Kind: types.DigestOther, Data: []byte{1}}}}
	var got types.Header
	require.NoError(scale.Decode(scale.Encode(h), &got))
	require.Equal(h, got)

	require.Equal(h.Hash(hasher.BlakeTwo256), got.Hash(hasher.BlakeTwo256))
	require.NotEqual(h.Hash(hasher.BlakeTwo256), h.Hash(hasher.Keccak256))

	var di types.DigestItem
	require.ErrorIs(scale.Decode([]byte{0x02}, &di), scale.ErrInvalidVariant)
}

func TestPhaseCodec(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{0, 3, 0, 0, 0}, scale.Encode(types.Phase{Kind: types.PhaseApplyExtrinsic, Extrinsic: 3}))
	require.Equal([]byte{1}, scale.Encode(types.Phase{Kind: types.PhaseFinalization}))
	var p types.Phase
	require.ErrorIs(scale.Decode([]byte{3}, &p), scale.ErrInvalidVariant)
}

func TestSS58(t *testing.T) {
	require := require.New(t)

	// The well-known development account of the sr25519 key "//Alice".
	alice, prefix, err := types.ParseSS58("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY")
	require.NoError(err)
	require.EqualValues(42, prefix)
	require.Equal("0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d", alice.Hex())
	require.Equal("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY", alice.ToSS58(42))

	for _, p := range []uint16{0, 2, 63, 64, 255, 1000, 16383} {
		got, gotPrefix, err := types.ParseSS58(alice.ToSS58(p))
		require.NoError(err)
		require.Equal(alice, got)
		require.Equal(p, gotPrefix)
	}

	_, _, err = types.ParseSS58("5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQZ")
	require.ErrorIs(err, types.ErrInvalidSS58)
}

func TestTxStateTransitions(t *testing.T) {
	require := require.New(t)

	var start types.TxState
	require.True(start.CanAdvance(types.TxSubmitted))
	require.True(types.TxSubmitted.CanAdvance(types.TxInBlock))
	require.True(types.TxSubmitted.CanAdvance(types.TxInvalid))
	require.False(types.TxSubmitted.CanAdvance(types.TxSubmitted))
	require.True(types.TxInBlock.CanAdvance(types.TxFinalized))
	require.True(types.TxInBlock.CanAdvance(types.TxInBlock))
	require.False(types.TxInBlock.CanAdvance(types.TxSubmitted))
	for _, s := range []types.TxState{types.TxFinalized, types.TxDropped, types.TxInvalid, types.TxError} {
		require.True(s.Terminal())
		require.False(s.CanAdvance(types.TxInBlock))
	}
	require.False(types.TxFinalized.Failed())
	require.True(types.TxDropped.Failed())
}
