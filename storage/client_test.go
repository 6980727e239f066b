package storage_test

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

// kvStore serves point and paged reads from a sorted in-memory map.
type kvStore struct {
	data map[string][]byte
}

func newKVStore() *kvStore { return &kvStore{data: map[string][]byte{}} }

func (s *kvStore) put(key types.StorageKey, v scale.Encodable) { s.data[string(key)] = scale.Encode(v) }

func (s *kvStore) read(_ context.Context, key types.StorageKey, _ types.Hash) (types.StorageData, bool, error) {
	v, ok := s.data[string(key)]
	return v, ok, nil
}

func (s *kvStore) paged(_ context.Context, prefix, start types.StorageKey, count uint32, _ types.Hash) ([]types.KeyValue, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if bytes.HasPrefix([]byte(k), prefix) && (start == nil || k > string(start)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if uint32(len(keys)) > count {
		keys = keys[:count]
	}
	out := make([]types.KeyValue, len(keys))
	for i, k := range keys {
		out[i] = types.KeyValue{Key: types.StorageKey(k), Value: s.data[k]}
	}
	return out, nil
}

func testMetadata(t *testing.T) *metadata.Metadata {
	m, err := metadata.New(metadata.ExtrinsicInfo{Version: 4},
		metadata.Pallet{
			Name:  "Balances",
			Index: 5,
			Storage: []metadata.StorageEntry{
				{Name: "TotalIssuance", Modifier: metadata.Default, Default: scale.Encode(scale.NewU128(1000))},
				{Name: "Locks", Modifier: metadata.Optional, Hashers: []hasher.StorageHasher{hasher.Blake2_128Concat}},
			},
		})
	require.NoError(t, err)
	return m
}

func totalIssuance() storage.Address[scale.U128] {
	return storage.Plain[scale.U128]("Balances", "TotalIssuance")
}

func locks(keys ...scale.Encodable) storage.Address[scale.U32] {
	return storage.Map[scale.U32]("Balances", "Locks", []hasher.StorageHasher{hasher.Blake2_128Concat}, []scale.Skipper{scale.SkipFixed(32)}, keys...)
}

func stakers(keys ...scale.Encodable) storage.Address[scale.U64] {
	return storage.Map[scale.U64]("Staking", "ErasStakers",
		[]hasher.StorageHasher{hasher.Twox64Concat, hasher.Twox64Concat},
		[]scale.Skipper{scale.SkipFixed(4), scale.SkipFixed(32)}, keys...)
}

func TestFetch(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	store := newKVStore()
	store.put(totalIssuance().Key(), scale.NewU128(42))
	node := sapi.NewMockNode(ctrl)
	node.EXPECT().ReadStorage(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(store.read).AnyTimes()

	c := storage.NewClient(node, testMetadata(t))

	v, ok, err := storage.Fetch(ctx, c, totalIssuance())
	require.NoError(err)
	require.True(ok)
	require.Equal("42", v.String())

	lock, ok, err := storage.Fetch(ctx, c, locks(alice))
	require.NoError(err)
	require.False(ok)
	require.Zero(lock)
}

func TestFetchOrDefault(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	node := sapi.NewMockNode(ctrl)
	node.EXPECT().ReadStorage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, false, nil).AnyTimes()
	c := storage.NewClient(node, testMetadata(t))

	v, err := storage.FetchOrDefault(ctx, c, totalIssuance())
	require.NoError(err)
	require.Equal("1000", v.String())

	lock, err := storage.FetchOrDefault(ctx, c, locks(alice))
	require.NoError(err)
	require.Zero(lock)

	// A misspelled item reads as absent and has no declared default.
	_, err = storage.FetchOrDefault(ctx, c, storage.Plain[scale.U128]("Balances", "TotalIssuanse"))
	require.ErrorIs(err, metadata.ErrUnknownStorage)

	_, err = storage.FetchOrDefault(ctx, storage.NewClient(node, nil), totalIssuance())
	require.ErrorContains(err, "no metadata")
}

func TestFetchPassesTransportErrorsThrough(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	terr := sapi.NewTransportError("ReadStorage", errors.New("connection reset"))
	node := sapi.NewMockNode(ctrl)
	node.EXPECT().ReadStorage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, false, terr)
	node.EXPECT().ReadStoragePaged(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, terr)
	c := storage.NewClient(node, testMetadata(t))

	_, _, err := storage.Fetch(context.Background(), c, totalIssuance())
	require.Same(terr, err)

	_, _, err = storage.Iter(c, locks()).Next(context.Background())
	require.Same(terr, err)
}

func TestFetchRejectsCorruptValue(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	node := sapi.NewMockNode(ctrl)
	node.EXPECT().ReadStorage(gomock.Any(), gomock.Any(), gomock.Any()).Return(types.StorageData{1, 2, 3}, true, nil)
	c := storage.NewClient(node, nil)

	_, _, err := storage.Fetch(context.Background(), c, totalIssuance())
	_, ok := scale.IsDecodeError(err)
	require.True(ok, "expected DecodeError, got %v", err)
}

func TestIterPages(t *testing.T) {
	tests := []struct {
		entries  int
		pageSize uint32
		calls    int
	}{
		{entries: 5, pageSize: 2, calls: 3},
		{entries: 4, pageSize: 2, calls: 3},
		{entries: 3, pageSize: 64, calls: 1},
		{entries: 0, pageSize: 4, calls: 1},
	}
	for _, tt := range tests {
		require := require.New(t)
		ctrl := gomock.NewController(t)

		store := newKVStore()
		want := map[types.AccountID32]uint32{}
		for i := 0; i < tt.entries; i++ {
			id := types.AccountID32{byte(i + 1)}
			store.put(locks(id).Key(), scale.U32(i*10))
			want[id] = uint32(i * 10)
		}
		// Another entry of the same pallet must not leak into the walk.
		store.put(totalIssuance().Key(), scale.NewU128(1))

		node := sapi.NewMockNode(ctrl)
		node.EXPECT().ReadStoragePaged(gomock.Any(), gomock.Any(), gomock.Any(), tt.pageSize, gomock.Any()).
			DoAndReturn(store.paged).Times(tt.calls)

		c := storage.NewClient(node, nil, storage.WithPageSize(tt.pageSize))
		entries, err := storage.Iter(c, locks()).Collect(context.Background())
		require.NoError(err)
		require.Len(entries, tt.entries)

		got := map[types.AccountID32]uint32{}
		for _, e := range entries {
			require.Len(e.Segments, 1)
			var id types.AccountID32
			require.NoError(scale.Decode(e.Segments[0], &id))
			got[id] = uint32(e.Value)
		}
		require.Equal(want, got)
	}
}

func TestIterPartialKey(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	store := newKVStore()
	for era := uint32(0); era < 3; era++ {
		for i := 0; i < 4; i++ {
			store.put(stakers(scale.U32(era), types.AccountID32{byte(i)}).Key(), scale.U64(uint64(era)*100+uint64(i)))
		}
	}
	node := sapi.NewMockNode(ctrl)
	node.EXPECT().ReadStoragePaged(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(store.paged).AnyTimes()
	c := storage.NewClient(node, nil, storage.WithPageSize(3))

	entries, err := storage.Iter(c, stakers(scale.U32(1))).Collect(context.Background())
	require.NoError(err)
	require.Len(entries, 4)
	for _, e := range entries {
		require.Equal(scale.Encode(scale.U32(1)), e.Segments[0])
		require.GreaterOrEqual(uint64(e.Value), uint64(100))
		require.Less(uint64(e.Value), uint64(200))
	}

	all, err := storage.Iter(c, stakers()).Collect(context.Background())
	require.NoError(err)
	require.Len(all, 12)
}

func TestIterOneWayHasher(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	addr := func(keys ...scale.Encodable) storage.Address[scale.Bytes] {
		return storage.Map[scale.Bytes]("Preimage", "Blobs", []hasher.StorageHasher{hasher.Blake2_256}, nil, keys...)
	}
	store := newKVStore()
	store.put(addr(scale.U32(1)).Key(), scale.Bytes("one"))
	store.put(addr(scale.U32(2)).Key(), scale.Bytes("two"))

	node := sapi.NewMockNode(ctrl)
	node.EXPECT().ReadStoragePaged(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(store.paged).AnyTimes()
	c := storage.NewClient(node, nil)

	entries, err := storage.Iter(c, addr()).Collect(context.Background())
	require.NoError(err)
	require.Len(entries, 2)
	for _, e := range entries {
		require.Nil(e.Segments[0])
		require.Contains([]string{"one", "two"}, string(e.Value))
	}
}

func TestIterErrorIsSticky(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	node := sapi.NewMockNode(ctrl)
	node.EXPECT().ReadStoragePaged(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]types.KeyValue{{Key: locks(alice).Key(), Value: types.StorageData{1}}}, nil).Times(1)
	c := storage.NewClient(node, nil)

	it := storage.Iter(c, locks())
	_, ok, err := it.Next(context.Background())
	require.False(ok)
	require.ErrorIs(err, scale.ErrUnexpectedEOF)

	_, _, again := it.Next(context.Background())
	require.Equal(err, again)
}

func TestClientAt(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	block := types.Hash{0xb1}

	node := sapi.NewMockNode(ctrl)
	node.EXPECT().ReadStorage(gomock.Any(), totalIssuance().Key(), block).Return(scale.Encode(scale.NewU128(7)), true, nil)
	node.EXPECT().ReadStorage(gomock.Any(), totalIssuance().Key(), types.Hash{}).Return(scale.Encode(scale.NewU128(9)), true, nil)

	c := storage.NewClient(node, testMetadata(t))
	pinned := c.At(block)
	require.Equal(block, pinned.Block())
	require.True(c.Block().IsZero())

	v, _, err := storage.Fetch(ctx, pinned, totalIssuance())
	require.NoError(err)
	require.Equal("7", v.String())
	v, _, err = storage.Fetch(ctx, c, totalIssuance())
	require.NoError(err)
	require.Equal("9", v.String())
}

func TestIterPinsToFinalizedHead(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	head := types.Hash{0x0f}

	store := newKVStore()
	for i := 0; i < 3; i++ {
		store.put(locks(types.AccountID32{byte(i + 1)}).Key(), scale.U32(i))
	}
	node := sapi.NewMockFullNode(ctrl)
	node.EXPECT().FinalizedHead(gomock.Any()).Return(head, nil).Times(1)
	node.EXPECT().ReadStoragePaged(gomock.Any(), gomock.Any(), gomock.Any(), uint32(1), head).
		DoAndReturn(store.paged).Times(4)

	it := storage.Iter(storage.NewClient(node, nil, storage.WithPageSize(1)), locks())
	require.True(it.At().IsZero())
	entries, err := it.Collect(context.Background())
	require.NoError(err)
	require.Len(entries, 3)
	require.Equal(head, it.At())
}

func TestIterKeepsClientBlock(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)
	block := types.Hash{0xaa}

	// No FinalizedHead expectation: a pinned client never asks for it.
	node := sapi.NewMockFullNode(ctrl)
	node.EXPECT().ReadStoragePaged(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), block).Return(nil, nil)

	entries, err := storage.Iter(storage.NewClient(node, nil).At(block), locks()).Collect(context.Background())
	require.NoError(err)
	require.Empty(entries)
}

func TestIterFinalizedHeadError(t *testing.T) {
	require := require.New(t)
	ctrl := gomock.NewController(t)

	terr := sapi.NewTransportError("FinalizedHead", errors.New("connection reset"))
	node := sapi.NewMockFullNode(ctrl)
	node.EXPECT().FinalizedHead(gomock.Any()).Return(types.Hash{}, terr)

	_, err := storage.Iter(storage.NewClient(node, nil), locks()).Collect(context.Background())
	require.ErrorIs(err, terr)
}

func TestCheckAddress(t *testing.T) {
	require := require.New(t)
	meta := testMetadata(t)

	require.NoError(storage.CheckAddress(meta, totalIssuance()))
	require.NoError(storage.CheckAddress(meta, locks(alice)))
	require.ErrorIs(storage.CheckAddress(meta, stakers()), metadata.ErrUnknownPallet)

	twox := storage.Map[scale.U32]("Balances", "Locks", []hasher.StorageHasher{hasher.Twox64Concat}, []scale.Skipper{scale.SkipFixed(32)})
	require.ErrorIs(storage.CheckAddress(meta, twox), storage.ErrAddressMismatch)

	double := storage.Map[scale.U32]("Balances", "Locks",
		[]hasher.StorageHasher{hasher.Blake2_128Concat, hasher.Blake2_128Concat},
		[]scale.Skipper{scale.SkipFixed(32), scale.SkipFixed(32)})
	require.ErrorIs(storage.CheckAddress(meta, double), storage.ErrAddressMismatch)

	plain := storage.Plain[scale.U32]("Balances", "Locks")
	require.ErrorIs(storage.CheckAddress(meta, plain), storage.ErrAddressMismatch)

	// FetchOrDefault consults the entry anyway and refuses a mismatched
	// address instead of decoding a default for the wrong layout.
	node := sapi.NewMockNode(gomock.NewController(t))
	node.EXPECT().ReadStorage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, false, nil)
	_, err := storage.FetchOrDefault(context.Background(), storage.NewClient(node, meta), twox)
	require.ErrorIs(err, storage.ErrAddressMismatch)
}
