// Package sapitest provides test utilities for code built on sapi: a
// configurable node mock, a test harness around a client, and a
// compliance suite for node connections.
package sapitest

import (
	"context"
	"sync/atomic"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/config"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/pallets/balances"
	"github.com/blockberries/sapi/pallets/system"
	"github.com/blockberries/sapi/server"
	"github.com/blockberries/sapi/types"
)

// Compile-time check that MockNode satisfies all interfaces.
var (
	_ sapi.FullNode   = (*MockNode)(nil)
	_ server.Declarer = (*MockNode)(nil)
)

// Default values served by an unconfigured MockNode.
var (
	MockGenesis = types.Hash{0x01}
	MockBlock   = types.Hash{0x02}
	MockRuntime = types.RuntimeVersion{SpecName: "mock", ImplName: "sapitest", SpecVersion: 1, TransactionVersion: 1}
)

// MockMetadata is the metadata an unconfigured MockNode serves: System
// and Balances with the plain tip extensions.
func MockMetadata() []byte {
	m, err := metadata.New(
		metadata.ExtrinsicInfo{Version: extrinsic.Version, SignedExtensions: config.PlainTip{}.Identifiers()},
		system.Metadata(), balances.Metadata())
	if err != nil {
		panic(err)
	}
	return m.Encode()
}

// MockNode is a configurable node for client testing. All methods are
// configurable via function fields. Unconfigured methods return
// sensible defaults: absent storage and an extrinsic that is finalized
// in MockBlock.
//
// MockNode implements every optional interface so it can be used to
// test capability discovery. Control which capabilities are declared
// via the DeclaredCapabilities field.
type MockNode struct {
	// DeclaredCapabilities is what the node claims to serve.
	DeclaredCapabilities types.Capabilities

	MetadataFn            func(context.Context) ([]byte, error)
	RuntimeVersionFn      func(context.Context) (types.RuntimeVersion, error)
	GenesisHashFn         func(context.Context) (types.Hash, error)
	ReadStorageFn         func(context.Context, types.StorageKey, types.Hash) (types.StorageData, bool, error)
	ReadStoragePagedFn    func(context.Context, types.StorageKey, types.StorageKey, uint32, types.Hash) ([]types.KeyValue, error)
	SubmitAndWatchFn      func(context.Context, types.Extrinsic) (<-chan types.TxStatus, error)
	FinalizedHeadFn       func(context.Context) (types.Hash, error)
	HeaderFn              func(context.Context, types.Hash) (types.Header, error)
	BlockHashFn           func(context.Context, uint64) (types.Hash, error)
	ValidateTransactionFn func(context.Context, types.TransactionSource, types.Extrinsic) (types.TransactionValidity, error)

	// Call counters (atomic for concurrent access).
	ReadStorageCalls atomic.Int64
	PagedCalls       atomic.Int64
	SubmitCalls      atomic.Int64
}

func (m *MockNode) Capabilities() types.Capabilities { return m.DeclaredCapabilities }

func (m *MockNode) Metadata(ctx context.Context) ([]byte, error) {
	if m.MetadataFn != nil {
		return m.MetadataFn(ctx)
	}
	return MockMetadata(), nil
}

func (m *MockNode) RuntimeVersion(ctx context.Context) (types.RuntimeVersion, error) {
	if m.RuntimeVersionFn != nil {
		return m.RuntimeVersionFn(ctx)
	}
	return MockRuntime, nil
}

func (m *MockNode) GenesisHash(ctx context.Context) (types.Hash, error) {
	if m.GenesisHashFn != nil {
		return m.GenesisHashFn(ctx)
	}
	return MockGenesis, nil
}

func (m *MockNode) ReadStorage(ctx context.Context, key types.StorageKey, at types.Hash) (types.StorageData, bool, error) {
	m.ReadStorageCalls.Add(1)
	if m.ReadStorageFn != nil {
		return m.ReadStorageFn(ctx, key, at)
	}
	return nil, false, nil
}

func (m *MockNode) ReadStoragePaged(ctx context.Context, prefix, startKey types.StorageKey, count uint32, at types.Hash) ([]types.KeyValue, error) {
	m.PagedCalls.Add(1)
	if m.ReadStoragePagedFn != nil {
		return m.ReadStoragePagedFn(ctx, prefix, startKey, count, at)
	}
	return nil, nil
}

func (m *MockNode) SubmitAndWatch(ctx context.Context, ext types.Extrinsic) (<-chan types.TxStatus, error) {
	m.SubmitCalls.Add(1)
	if m.SubmitAndWatchFn != nil {
		return m.SubmitAndWatchFn(ctx, ext)
	}
	return Statuses(
		types.TxStatus{State: types.TxSubmitted},
		types.TxStatus{State: types.TxInBlock, Block: MockBlock},
		types.TxStatus{State: types.TxFinalized, Block: MockBlock},
	), nil
}

func (m *MockNode) FinalizedHead(ctx context.Context) (types.Hash, error) {
	if m.FinalizedHeadFn != nil {
		return m.FinalizedHeadFn(ctx)
	}
	return MockGenesis, nil
}

func (m *MockNode) Header(ctx context.Context, hash types.Hash) (types.Header, error) {
	if m.HeaderFn != nil {
		return m.HeaderFn(ctx, hash)
	}
	return types.Header{}, nil
}

func (m *MockNode) BlockHash(ctx context.Context, number uint64) (types.Hash, error) {
	if m.BlockHashFn != nil {
		return m.BlockHashFn(ctx, number)
	}
	return MockGenesis, nil
}

func (m *MockNode) ValidateTransaction(ctx context.Context, source types.TransactionSource, ext types.Extrinsic) (types.TransactionValidity, error) {
	if m.ValidateTransactionFn != nil {
		return m.ValidateTransactionFn(ctx, source, ext)
	}
	return types.TransactionValidity{Valid: true, Longevity: ^uint64(0)}, nil
}

// Statuses returns a closed channel holding sts.
func Statuses(sts ...types.TxStatus) <-chan types.TxStatus {
	ch := make(chan types.TxStatus, len(sts))
	for _, st := range sts {
		ch <- st
	}
	close(ch)
	return ch
}
