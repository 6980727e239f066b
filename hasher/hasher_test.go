package hasher_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestTwoX128KnownValues(t *testing.T) {
	require := require.New(t)

	require.Equal(mustHex(t, "26aa394eea5630e07c48ae0c9558cef7"), hasher.TwoX128([]byte("System")))
	require.Equal(mustHex(t, "b99d880ec681799c0cf30e8886371da9"), hasher.TwoX128([]byte("Account")))
	require.Equal(mustHex(t, "c2261276cc9d1f8598ea4b6a74b15c2f"), hasher.TwoX128([]byte("Balances")))
	require.Equal(mustHex(t, "57c875e4cff74148e4628f264b974c80"), hasher.TwoX128([]byte("TotalIssuance")))
}

func TestHashWidths(t *testing.T) {
	input := []byte("segment")
	for _, h := range []hasher.StorageHasher{
		hasher.Blake2_128, hasher.Blake2_256, hasher.Blake2_128Concat,
		hasher.Twox128, hasher.Twox256, hasher.Twox64Concat, hasher.Identity,
	} {
		out := h.Hash(input)
		want := h.HashWidth()
		if h.Reversible() {
			want += len(input)
		}
		require.Len(t, out, want, h.String())
	}
}

func TestConcatHashersAreReversible(t *testing.T) {
	values := [][]byte{
		{},
		scale.Encode(scale.U32(7)),
		scale.Encode(scale.Text("a longer key segment")),
		make([]byte, 32),
	}
	for _, h := range []hasher.StorageHasher{hasher.Twox64Concat, hasher.Blake2_128Concat, hasher.Identity} {
		for _, enc := range values {
			got, err := h.Suffix(h.Hash(enc))
			require.NoError(t, err)
			require.Equal(t, enc, got, "%s(%x)", h, enc)
		}
	}
}

func TestOneWayHashersRejectSuffix(t *testing.T) {
	for _, h := range []hasher.StorageHasher{hasher.Blake2_128, hasher.Blake2_256, hasher.Twox128, hasher.Twox256} {
		require.False(t, h.Reversible())
		_, err := h.Suffix(h.Hash([]byte{1}))
		require.ErrorIs(t, err, hasher.ErrNotReversible)
	}
}

func TestDifferentHashersDiffer(t *testing.T) {
	enc := scale.Encode(scale.U64(99))
	seen := map[string]hasher.StorageHasher{}
	for _, h := range []hasher.StorageHasher{
		hasher.Blake2_128, hasher.Blake2_256, hasher.Blake2_128Concat,
		hasher.Twox128, hasher.Twox256, hasher.Twox64Concat, hasher.Identity,
	} {
		key := string(h.Hash(enc))
		prev, dup := seen[key]
		require.False(t, dup, "%s collides with %s", h, prev)
		seen[key] = h
	}
}

func TestStorageHasherCodec(t *testing.T) {
	require := require.New(t)

	require.Equal([]byte{0x05}, scale.Encode(hasher.Twox64Concat))
	var h hasher.StorageHasher
	require.NoError(scale.Decode([]byte{0x02}, &h))
	require.Equal(hasher.Blake2_128Concat, h)
	require.ErrorIs(scale.Decode([]byte{0x07}, &h), scale.ErrInvalidVariant)

	parsed, err := hasher.ParseStorageHasher("Identity")
	require.NoError(err)
	require.Equal(hasher.Identity, parsed)
	_, err = hasher.ParseStorageHasher("Sha256")
	require.Error(err)
}

func TestHashingAlgorithms(t *testing.T) {
	require := require.New(t)

	require.Equal(32, hasher.BlakeTwo256.Size())
	require.Len(hasher.BlakeTwo256.Hash(nil), 32)
	require.Equal(
		mustHex(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"),
		hasher.Keccak256.Hash(nil),
	)
	require.NotEqual(hasher.BlakeTwo256.Hash([]byte("x")), hasher.Keccak256.Hash([]byte("x")))
}
