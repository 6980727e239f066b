package balances_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/pallets/balances"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/types"
)

var bob = types.AccountID32{0x8e, 0xaf, 0x04, 0x15}

func TestTransferEncoding(t *testing.T) {
	require := require.New(t)

	call := balances.TransferKeepAlive{Dest: types.NewAddressID(bob), Value: scale.NewU128(12345)}
	data := extrinsic.EncodeCall(call)

	want := append([]byte{5, 3, 0}, bob[:]...)
	want = append(want, 0xe5, 0xc0)
	require.Equal(want, data)

	got, err := balances.DecodeCall(data[1], scale.NewDecoder(data[2:]))
	require.NoError(err)
	require.Equal(&call, got)
}

func TestForceTransferRoundTrip(t *testing.T) {
	require := require.New(t)

	call := balances.ForceTransfer{
		Source: types.NewAddressID(types.AccountID32{1}),
		Dest:   types.NewAddressID(bob),
		Value:  scale.NewU128(1 << 50),
	}
	data := extrinsic.EncodeCall(call)
	d := scale.NewDecoder(data[2:])
	got, err := balances.DecodeCall(data[1], d)
	require.NoError(err)
	require.Zero(d.Len())
	require.Equal(&call, got)

	_, err = balances.DecodeCall(1, scale.NewDecoder(nil))
	require.ErrorIs(err, scale.ErrInvalidVariant)
}

func TestMetadataAgreesWithFacade(t *testing.T) {
	require := require.New(t)

	meta, err := metadata.New(metadata.ExtrinsicInfo{Version: 4}, balances.Metadata())
	require.NoError(err)
	for _, c := range []extrinsic.Call{balances.TransferAllowDeath{}, balances.TransferKeepAlive{}, balances.ForceTransfer{}} {
		require.NoError(extrinsic.CheckCall(meta, c.Info()))
	}

	r := events.NewRegistry()
	require.NoError(balances.RegisterEvents(r, meta))
	for _, ev := range []events.Event{&balances.Endowed{}, &balances.Transfer{}, &balances.Withdraw{}} {
		_, ok := r.Lookup(ev.Info().PalletIndex, ev.Info().EventIndex)
		require.True(ok, ev.Info().String())
	}

	require.Equal("0xc2261276cc9d1f8598ea4b6a74b15c2f57c875e4cff74148e4628f264b974c80", balances.TotalIssuance().Key().Hex())
}

func TestTransferEvent(t *testing.T) {
	ev := &balances.Transfer{From: types.AccountID32{1}, To: bob, Amount: scale.NewU128(10)}
	data := scale.Encode(ev)
	require.Len(t, data, 32+32+16)

	got := new(balances.Transfer)
	require.NoError(t, scale.Decode(data, got))
	require.Equal(t, ev, got)
}

func TestModuleError(t *testing.T) {
	e := balances.ModuleError(balances.ErrInsufficientBalance)
	require.Equal(t, []byte{3, balances.PalletIndex, balances.ErrInsufficientBalance, 0, 0, 0}, scale.Encode(e))
}
