package staking_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/pallets/staking"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

func TestErasStakersKey(t *testing.T) {
	require := require.New(t)

	validator := types.AccountID32{0xaa}
	key := staking.ErasStakers(1, validator).Key()
	require.Len(key, 32+8+4+8+32)

	segs, err := storage.SplitKey(key, storage.PrefixLen,
		[]hasher.StorageHasher{hasher.Twox64Concat, hasher.Twox64Concat},
		[]scale.Skipper{scale.SkipFixed(4), nil})
	require.NoError(err)
	require.Equal([]byte{1, 0, 0, 0}, segs[0])
	require.Equal(validator[:], segs[1])

	// The era-only address is a prefix of every key of that era.
	prefix := staking.ErasStakersOf(1).Key()
	require.Equal([]byte(prefix), []byte(key[:len(prefix)]))
	require.False(staking.ErasStakersOf(1).IsComplete())
	require.Equal([]byte(staking.AllErasStakers().Key()), []byte(key[:storage.PrefixLen]))
}

func TestExposureRoundTrip(t *testing.T) {
	require := require.New(t)

	x := staking.Exposure{
		Total: scale.NewU128(300),
		Own:   scale.NewU128(100),
		Others: []staking.IndividualExposure{
			{Who: types.AccountID32{1}, Value: scale.NewU128(150)},
			{Who: types.AccountID32{2}, Value: scale.NewU128(50)},
		},
	}
	var got staking.Exposure
	require.NoError(scale.Decode(scale.Encode(x), &got))
	require.Equal(x, got)
}

func TestDefaultExposure(t *testing.T) {
	require := require.New(t)

	meta, err := metadata.New(metadata.ExtrinsicInfo{Version: 4}, staking.Metadata())
	require.NoError(err)
	entry, err := meta.StorageEntry(staking.PalletName, "ErasStakers")
	require.NoError(err)
	require.Equal([]byte{0, 0, 0}, entry.Default)

	v, err := staking.ErasStakers(0, types.AccountID32{}).DecodeValue(entry.Default)
	require.NoError(err)
	require.True(v.Total.IsZero())
	require.Empty(v.Others)
}
