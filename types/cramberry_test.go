package types_test

import (
	"testing"

	"github.com/blockberries/sapi/types"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// roundTrip marshals v, unmarshals into a new T, and returns it.
func roundTrip[T any](t *testing.T, v T) T {
	t.Helper()
	data, err := cramberry.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var out T
	if err := cramberry.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	return out
}

func TestTxStatus_RoundTrip(t *testing.T) {
	st := types.TxStatus{
		State:  types.TxInBlock,
		Block:  types.Hash{0xaa, 0xbb},
		Reason: "",
	}
	got := roundTrip(t, st)
	if got != st {
		t.Fatalf("TxStatus round-trip failed: got %+v, want %+v", got, st)
	}

	dropped := types.TxStatus{State: types.TxDropped, Reason: "pool full"}
	if got := roundTrip(t, dropped); got != dropped {
		t.Fatalf("TxStatus round-trip failed: got %+v, want %+v", got, dropped)
	}
}

func TestRuntimeVersion_RoundTrip(t *testing.T) {
	rv := types.RuntimeVersion{
		SpecName:           "sapi-dev",
		ImplName:           "devnode",
		AuthoringVersion:   1,
		SpecVersion:        100,
		ImplVersion:        2,
		TransactionVersion: 7,
	}
	got := roundTrip(t, rv)
	if got != rv {
		t.Fatalf("RuntimeVersion round-trip failed: got %+v, want %+v", got, rv)
	}
}

func TestKeyValue_RoundTrip(t *testing.T) {
	kv := types.KeyValue{
		Key:   types.StorageKey{0x26, 0xaa, 0x39},
		Value: types.StorageData{0x01, 0x02},
	}
	got := roundTrip(t, kv)
	if string(got.Key) != string(kv.Key) || string(got.Value) != string(kv.Value) {
		t.Fatalf("KeyValue round-trip failed: got %+v, want %+v", got, kv)
	}
}

func TestHeader_RoundTrip(t *testing.T) {
	h := types.Header{
		ParentHash:     types.Hash{0x01},
		Number:         42,
		StateRoot:      types.Hash{0x02},
		ExtrinsicsRoot: types.Hash{0x03},
		Digest: []types.DigestItem{
			{Kind: types.DigestPreRuntime, Engine: [4]byte{'a', 'u', 'r', 'a'}, Data: []byte{0x05}},
		},
	}
	got := roundTrip(t, h)
	if got.Number != 42 || got.ParentHash != h.ParentHash || len(got.Digest) != 1 {
		t.Fatalf("Header round-trip failed: got %+v", got)
	}
	if got.Digest[0].Engine != h.Digest[0].Engine {
		t.Fatalf("digest engine mismatch: %v", got.Digest[0].Engine)
	}
}

func TestTransactionValidity_RoundTrip(t *testing.T) {
	v := types.TransactionValidity{Valid: false, Reason: "stale nonce", Longevity: 64}
	got := roundTrip(t, v)
	if got != v {
		t.Fatalf("TransactionValidity round-trip failed: got %+v, want %+v", got, v)
	}
}

func TestCapabilities(t *testing.T) {
	caps := types.CapChainReader | types.CapValidation
	if !caps.Has(types.CapChainReader) || !caps.Has(types.CapValidation) {
		t.Fatalf("expected both capabilities in %s", caps)
	}
	if caps.String() != "ChainReader|Validation" {
		t.Fatalf("unexpected String(): %s", caps)
	}
	if types.Capabilities(0).String() != "none" {
		t.Fatal("expected none")
	}
	if got := roundTrip(t, caps); got != caps {
		t.Fatalf("Capabilities round-trip failed: got %v", got)
	}
}
