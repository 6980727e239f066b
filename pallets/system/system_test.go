package system_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/pallets/system"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

func TestMetadataAgreesWithFacade(t *testing.T) {
	require := require.New(t)

	meta, err := metadata.New(metadata.ExtrinsicInfo{Version: 4}, system.Metadata())
	require.NoError(err)

	for _, c := range []extrinsic.Call{system.Remark{}, system.RemarkWithEvent{}} {
		require.NoError(extrinsic.CheckCall(meta, c.Info()))
	}

	r := events.NewRegistry()
	require.NoError(system.RegisterEvents(r, meta))
	for _, ev := range []events.Event{&system.ExtrinsicSuccess{}, &system.ExtrinsicFailed{}, &system.NewAccount{}, &system.Remarked{}} {
		info, ok := r.Lookup(ev.Info().PalletIndex, ev.Info().EventIndex)
		require.True(ok, ev.Info().String())
		require.Equal(ev.Info(), info)
	}

	for _, key := range []types.StorageKey{system.Number().Key(), system.Events().Key(), system.Accounts().Key(), system.BlockHashes().Key()} {
		require.Len(key, storage.PrefixLen)
	}
	entry, err := meta.StorageEntry(system.PalletName, "Account")
	require.NoError(err)
	var info system.AccountInfo
	require.NoError(scale.Decode(entry.Default, &info))
	require.Zero(info)
}

func TestAccountKey(t *testing.T) {
	alice := types.AccountID32{0xd4, 0x35, 0x93, 0xc7}
	key := system.Account(alice).Key()
	require.Equal(t, "0x26aa394eea5630e07c48ae0c9558cef7b99d880ec681799c0cf30e8886371da9", types.StorageKey(key[:32]).Hex())
	require.Equal(t, alice[:], []byte(key[48:]))
}

func TestAccountInfoEncoding(t *testing.T) {
	require := require.New(t)

	info := system.AccountInfo{
		Nonce:     5,
		Providers: 1,
		Data:      system.AccountData{Free: scale.NewU128(1 << 40), Reserved: scale.NewU128(7)},
	}
	data := scale.Encode(info)
	require.Len(data, 4*4+4*16)
	require.Equal([]byte{5, 0, 0, 0}, data[:4])

	var got system.AccountInfo
	require.NoError(scale.Decode(data, &got))
	require.Equal(info, got)

	require.ErrorIs(scale.Decode(data[:len(data)-1], &got), scale.ErrUnexpectedEOF)
}

func TestDispatchError(t *testing.T) {
	tests := []struct {
		err  system.DispatchError
		want []byte
	}{
		{err: system.DispatchError{Kind: system.ErrBadOrigin}, want: []byte{2}},
		{err: system.DispatchError{Kind: system.ErrModule, Module: system.ModuleError{Index: 5, Error: [4]byte{2}}}, want: []byte{3, 5, 2, 0, 0, 0}},
		{err: system.DispatchError{Kind: system.ErrToken, Detail: system.TokenFundsUnavailable}, want: []byte{7, 0}},
		{err: system.DispatchError{Kind: system.ErrArithmetic, Detail: system.ArithmeticOverflow}, want: []byte{8, 1}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, scale.Encode(tt.err), tt.err.String())
		var got system.DispatchError
		require.NoError(t, scale.Decode(tt.want, &got))
		require.Equal(t, tt.err, got)
	}

	var got system.DispatchError
	require.ErrorIs(t, scale.Decode([]byte{14}, &got), scale.ErrInvalidVariant)
	require.ErrorIs(t, scale.Decode([]byte{8, 3}, &got), scale.ErrInvalidVariant)
}

func TestExtrinsicFailedEvent(t *testing.T) {
	require := require.New(t)

	ev := &system.ExtrinsicFailed{
		DispatchError: system.DispatchError{Kind: system.ErrModule, Module: system.ModuleError{Index: 5, Error: [4]byte{2}}},
		DispatchInfo:  system.DispatchInfo{Weight: system.Weight{RefTime: 1000, ProofSize: 64}, Class: system.ClassNormal, PaysFee: true},
	}
	got := new(system.ExtrinsicFailed)
	require.NoError(scale.Decode(scale.Encode(ev), got))
	require.Equal(ev, got)
}

func TestDecodeCall(t *testing.T) {
	require := require.New(t)

	data := extrinsic.EncodeCall(system.RemarkWithEvent{Remark: []byte("gm")})
	require.Equal([]byte{0, 7, 8, 'g', 'm'}, data)

	d := scale.NewDecoder(data[2:])
	c, err := system.DecodeCall(data[1], d)
	require.NoError(err)
	require.Equal(&system.RemarkWithEvent{Remark: []byte("gm")}, c)

	_, err = system.DecodeCall(42, scale.NewDecoder(nil))
	require.ErrorIs(err, scale.ErrInvalidVariant)
}

func TestEventRecordsValue(t *testing.T) {
	require := require.New(t)

	raw := []byte{0x04, 0x01, 0x00, 0x03, 0xaa}
	var v system.EventRecords
	require.NoError(scale.Decode(raw, &v))
	require.Equal(system.EventRecords(raw), v)
	require.Equal(raw, scale.Encode(v))
}
