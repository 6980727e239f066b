package sapitest

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/pallets/balances"
	"github.com/blockberries/sapi/pallets/system"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/signer"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

// RunComplianceSuite runs a standard compliance test suite against a
// node connection to verify the behavior clients rely on.
//
// The factory function should return a connection to a fresh chain for
// each test. The chain must run the System and Balances pallets with
// the dev accounts Alice and Bob endowed, and must include submitted
// extrinsics without outside help.
func RunComplianceSuite(t *testing.T, factory func(*testing.T) sapi.Connection) {
	t.Helper()

	alice := signer.Dev("Alice")
	bob := signer.Dev("Bob").AccountID()

	t.Run("metadata_decodes", func(t *testing.T) {
		conn := factory(t)
		raw, err := conn.Metadata(context.Background())
		if err != nil {
			t.Fatalf("Metadata: %v", err)
		}
		meta, err := metadata.Decode(raw)
		if err != nil {
			t.Fatalf("metadata does not decode: %v", err)
		}
		for _, name := range []string{system.PalletName, balances.PalletName} {
			if _, err := meta.Pallet(name); err != nil {
				t.Errorf("missing pallet: %v", err)
			}
		}
	})

	t.Run("genesis_matches_block_zero", func(t *testing.T) {
		conn := factory(t)
		reader := conn.AsChainReader()
		if reader == nil {
			t.Skip("node does not serve ChainReader")
		}
		ctx := context.Background()
		genesis, err := conn.GenesisHash(ctx)
		if err != nil {
			t.Fatalf("GenesisHash: %v", err)
		}
		zero, err := reader.BlockHash(ctx, 0)
		if err != nil {
			t.Fatalf("BlockHash(0): %v", err)
		}
		if zero != genesis {
			t.Errorf("block 0 is %s, genesis is %s", zero, genesis)
		}
	})

	t.Run("absent_key_is_not_error", func(t *testing.T) {
		conn := factory(t)
		value, ok, err := conn.ReadStorage(context.Background(), system.BlockHash(1<<30).Key(), types.Hash{})
		if err != nil {
			t.Fatalf("ReadStorage: %v", err)
		}
		if ok || len(value) != 0 {
			t.Errorf("expected an absent key, got %x", value)
		}
	})

	t.Run("paged_read_respects_bounds", func(t *testing.T) {
		conn := factory(t)
		ctx := context.Background()
		prefix := system.Accounts().Key()
		var start types.StorageKey
		seen := 0
		for {
			page, err := conn.ReadStoragePaged(ctx, prefix, start, 2, types.Hash{})
			if err != nil {
				t.Fatalf("ReadStoragePaged: %v", err)
			}
			if len(page) > 2 {
				t.Fatalf("page of %d entries exceeds count 2", len(page))
			}
			for _, kv := range page {
				if !bytes.HasPrefix(kv.Key, prefix) {
					t.Fatalf("key %x outside prefix", kv.Key)
				}
				if start != nil && bytes.Compare(kv.Key, start) <= 0 {
					t.Fatalf("key %x not after start %x", kv.Key, start)
				}
				start = kv.Key
			}
			seen += len(page)
			if len(page) < 2 {
				break
			}
		}
		if seen < 2 {
			t.Errorf("expected at least two accounts, saw %d", seen)
		}
	})

	t.Run("transfer_finalizes", func(t *testing.T) {
		h := NewHarness(t, factory(t))
		before := h.Free(bob)
		nonce := h.Nonce(alice.AccountID())

		h.MustFinalize(&balances.TransferKeepAlive{Dest: types.NewAddressID(bob), Value: scale.NewU128(1000)}, alice)

		want, _ := before.Add(scale.NewU128(1000))
		if got := h.Free(bob); got.Cmp(want) != 0 {
			t.Errorf("Bob's balance: got %s, want %s", got, want)
		}
		if got := h.Nonce(alice.AccountID()); got != nonce+1 {
			t.Errorf("Alice's nonce: got %d, want %d", got, nonce+1)
		}
	})

	t.Run("status_stream_is_linear", func(t *testing.T) {
		h := NewHarness(t, factory(t))
		progress := h.Submit(&system.Remark{Remark: []byte("linear")}, alice)
		defer progress.Close()

		ctx := context.Background()
		var last types.TxState
		for !last.Terminal() {
			st, err := progress.Next(ctx)
			if err != nil {
				t.Fatalf("stream ended after %s: %v", last, err)
			}
			if !last.CanAdvance(st.State) {
				t.Fatalf("%s followed %s", st.State, last)
			}
			last = st.State
		}
		if last != types.TxFinalized {
			t.Errorf("expected Finalized, got %s", last)
		}
	})

	t.Run("reads_at_block", func(t *testing.T) {
		h := NewHarness(t, factory(t))
		reader := h.Conn().AsChainReader()
		if reader == nil {
			t.Skip("node does not serve ChainReader")
		}
		ctx := context.Background()
		before, err := reader.FinalizedHead(ctx)
		if err != nil {
			t.Fatalf("FinalizedHead: %v", err)
		}
		nonce := h.Nonce(alice.AccountID())
		st := h.MustFinalize(&system.RemarkWithEvent{Remark: []byte("pinned")}, alice)

		old, err := storage.FetchOrDefault(ctx, h.Client().Storage().At(before), system.Account(alice.AccountID()))
		if err != nil {
			t.Fatalf("Fetch at %s: %v", before, err)
		}
		if uint64(old.Nonce) != nonce {
			t.Errorf("nonce at %s: got %d, want %d", before, old.Nonce, nonce)
		}
		if len(events.Find[*system.Remarked](h.Events(st.Block))) != 1 {
			t.Errorf("block %s lacks the Remarked event", st.Block)
		}
	})

	t.Run("bad_nonce_is_invalid", func(t *testing.T) {
		h := NewHarness(t, factory(t))
		h.MustFinalize(&system.Remark{Remark: []byte("first")}, alice)

		st := h.MustReject(&system.Remark{Remark: []byte("replay")}, alice, extrinsic.WithNonce(0))
		if st.State != types.TxInvalid {
			t.Errorf("expected Invalid, got %s", st)
		}
	})

	t.Run("concurrent_reads", func(t *testing.T) {
		conn := factory(t)
		key := system.Account(bob).Key()
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, ok, err := conn.ReadStorage(context.Background(), key, types.Hash{}); err != nil || !ok {
					t.Errorf("ReadStorage: ok=%v err=%v", ok, err)
				}
			}()
		}
		wg.Wait()
	})

	t.Run("mortal_era_needs_chain_reader", func(t *testing.T) {
		h := NewHarness(t, factory(t))
		tx, err := h.Client().Tx(&system.Remark{Remark: []byte("mortal")})
		if err != nil {
			t.Fatalf("Tx: %v", err)
		}
		err = tx.Sign(context.Background(), alice, extrinsic.WithMortality(64))
		if h.Conn().AsChainReader() != nil {
			if err != nil {
				t.Errorf("Sign: %v", err)
			}
			return
		}
		if _, ok := sapi.IsConstruction(err); !ok {
			t.Errorf("expected ConstructionError, got %v", err)
		}
	})

	// Storage reads through the typed client agree with raw reads.
	t.Run("typed_fetch_matches_raw", func(t *testing.T) {
		h := NewHarness(t, factory(t))
		addr := system.Account(bob)
		info, ok, err := storage.Fetch(context.Background(), h.Client().Storage(), addr)
		if err != nil || !ok {
			t.Fatalf("Fetch: ok=%v err=%v", ok, err)
		}
		raw, _, err := h.Conn().ReadStorage(context.Background(), addr.Key(), types.Hash{})
		if err != nil {
			t.Fatalf("ReadStorage: %v", err)
		}
		if !bytes.Equal(scale.Encode(info), raw) {
			t.Errorf("re-encoded value %x differs from raw %x", scale.Encode(info), raw)
		}
	})
}
