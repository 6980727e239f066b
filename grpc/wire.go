package sapigrpc

import "github.com/blockberries/sapi/types"

// Transport-specific wrapper types for RPC methods whose interface
// signatures don't map to a single request/response struct.
// These are used only for gRPC serialization boundaries.

// Empty is the request of RPCs that take no parameters.
type Empty struct{}

// CapabilitiesResponse reports the capabilities the node serves. The
// client requests it once when dialing.
type CapabilitiesResponse struct {
	Capabilities types.Capabilities `cramberry:"1"`
}

// MetadataResponse wraps the return value of Node.Metadata.
type MetadataResponse struct {
	Data []byte `cramberry:"1"`
}

// HashResponse wraps a block hash.
type HashResponse struct {
	Hash types.Hash `cramberry:"1"`
}

// ReadStorageRequest wraps the parameters for Node.ReadStorage. A zero
// At reads the best block.
type ReadStorageRequest struct {
	Key types.StorageKey `cramberry:"1"`
	At  types.Hash       `cramberry:"2"`
}

// ReadStorageResponse wraps the return values of Node.ReadStorage.
type ReadStorageResponse struct {
	Value types.StorageData `cramberry:"1"`
	Found bool              `cramberry:"2"`
}

// ReadStoragePagedRequest wraps the parameters for
// Node.ReadStoragePaged. HasStart distinguishes an absent start key
// from an empty one.
type ReadStoragePagedRequest struct {
	Prefix   types.StorageKey `cramberry:"1"`
	StartKey types.StorageKey `cramberry:"2"`
	HasStart bool             `cramberry:"3"`
	Count    uint32           `cramberry:"4"`
	At       types.Hash       `cramberry:"5"`
}

// ReadStoragePagedResponse wraps the return value of
// Node.ReadStoragePaged.
type ReadStoragePagedResponse struct {
	Entries []types.KeyValue `cramberry:"1"`
}

// SubmitRequest carries an encoded extrinsic for the SubmitAndWatch
// server-streaming RPC.
type SubmitRequest struct {
	Extrinsic types.Extrinsic `cramberry:"1"`
}

// HeaderRequest wraps the parameter for ChainReader.Header.
type HeaderRequest struct {
	Hash types.Hash `cramberry:"1"`
}

// BlockHashRequest wraps the parameter for ChainReader.BlockHash.
type BlockHashRequest struct {
	Number uint64 `cramberry:"1"`
}

// ValidateRequest wraps the parameters for Validator.ValidateTransaction.
type ValidateRequest struct {
	Source    types.TransactionSource `cramberry:"1"`
	Extrinsic types.Extrinsic         `cramberry:"2"`
}
