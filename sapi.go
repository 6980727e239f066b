// Package sapi defines the boundary between the typed client and the
// node it talks to.
//
// The core [Node] interface is required. [ChainReader] and [Validator]
// are optional capabilities discovered via Go type assertion when a
// connection is established.
package sapi

import (
	"context"

	"github.com/blockberries/sapi/types"
)

//go:generate mockgen -source sapi.go -destination sapi_mocks.go -package sapi

// Node is the transport contract every node connection must satisfy.
//
// All methods MUST be safe for concurrent use.
type Node interface {
	// Metadata returns the encoded chain metadata. The client reads it
	// once at construction.
	Metadata(ctx context.Context) ([]byte, error)

	// RuntimeVersion returns the version of the runtime the node is
	// currently executing. Spec and transaction versions are bound into
	// every signature.
	RuntimeVersion(ctx context.Context) (types.RuntimeVersion, error)

	// GenesisHash returns the hash of block 0.
	GenesisHash(ctx context.Context) (types.Hash, error)

	// ReadStorage performs a point lookup in the state of block at, or
	// of the best block when at is zero. An absent key is reported as
	// (nil, false, nil), never as an error. A block whose state the node
	// does not hold is an error.
	ReadStorage(ctx context.Context, key types.StorageKey, at types.Hash) (types.StorageData, bool, error)

	// ReadStoragePaged returns up to count entries whose keys start with
	// prefix, in node-defined order, from the state of block at (zero
	// for the best block). If startKey is non-nil only keys strictly
	// after it are returned.
	ReadStoragePaged(ctx context.Context, prefix, startKey types.StorageKey, count uint32, at types.Hash) ([]types.KeyValue, error)

	// SubmitAndWatch hands a signed extrinsic to the node and returns its
	// status stream. The channel is closed after a terminal status or
	// when ctx is cancelled. Cancelling ctx stops observation only; the
	// extrinsic is not retracted.
	SubmitAndWatch(ctx context.Context, ext types.Extrinsic) (<-chan types.TxStatus, error)
}

// ChainReader exposes block headers. Mortal eras need it to anchor
// their checkpoint.
//
// Declared via: types.CapChainReader
type ChainReader interface {
	// FinalizedHead returns the hash of the latest finalized block.
	FinalizedHead(ctx context.Context) (types.Hash, error)

	// Header returns the header of the block with the given hash.
	Header(ctx context.Context, hash types.Hash) (types.Header, error)

	// BlockHash returns the hash of the block at the given number.
	BlockHash(ctx context.Context, number uint64) (types.Hash, error)
}

// Validator dry-runs pool admission of an extrinsic without submitting
// it.
//
// Declared via: types.CapValidation
type Validator interface {
	ValidateTransaction(ctx context.Context, source types.TransactionSource, ext types.Extrinsic) (types.TransactionValidity, error)
}

// FullNode is a convenience interface embedding every capability.
type FullNode interface {
	Node
	ChainReader
	Validator
}

// Connection represents a transport-agnostic connection to a node. Both
// gRPC clients and in-process adapters implement this.
type Connection interface {
	Node

	// Capabilities returns the capabilities discovered when the
	// connection was established.
	Capabilities() types.Capabilities

	// AsChainReader returns the ChainReader interface if available, or
	// nil if the node does not support it.
	AsChainReader() ChainReader

	// AsValidator returns the Validator interface if available.
	AsValidator() Validator

	// Close terminates the connection.
	Close() error
}
