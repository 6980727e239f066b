// Package local provides an in-process sapi connection.
//
// For nodes compiled into the same binary as the client, this adapter
// wraps the node with status-stream enforcement and capability
// discovery, with no serialization overhead.
package local

import (
	"context"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/server"
	"github.com/blockberries/sapi/types"
)

// Compile-time interface check.
var _ sapi.Connection = (*Connection)(nil)

// Connection wraps a local Node with status-stream enforcement and
// capability discovery.
type Connection struct {
	srv *server.Server
}

// NewConnection creates an in-process connection wrapping node.
func NewConnection(node sapi.Node) (*Connection, error) {
	srv, err := server.New(node)
	if err != nil {
		return nil, err
	}
	return &Connection{srv: srv}, nil
}

func (c *Connection) Metadata(ctx context.Context) ([]byte, error) {
	return c.srv.Metadata(ctx)
}

func (c *Connection) RuntimeVersion(ctx context.Context) (types.RuntimeVersion, error) {
	return c.srv.RuntimeVersion(ctx)
}

func (c *Connection) GenesisHash(ctx context.Context) (types.Hash, error) {
	return c.srv.GenesisHash(ctx)
}

func (c *Connection) ReadStorage(ctx context.Context, key types.StorageKey, at types.Hash) (types.StorageData, bool, error) {
	return c.srv.ReadStorage(ctx, key, at)
}

func (c *Connection) ReadStoragePaged(ctx context.Context, prefix, startKey types.StorageKey, count uint32, at types.Hash) ([]types.KeyValue, error) {
	return c.srv.ReadStoragePaged(ctx, prefix, startKey, count, at)
}

func (c *Connection) SubmitAndWatch(ctx context.Context, ext types.Extrinsic) (<-chan types.TxStatus, error) {
	return c.srv.SubmitAndWatch(ctx, ext)
}

func (c *Connection) Capabilities() types.Capabilities {
	return c.srv.Capabilities()
}

func (c *Connection) AsChainReader() sapi.ChainReader {
	if c.srv.AsChainReader() == nil {
		return nil
	}
	return c.srv
}

func (c *Connection) AsValidator() sapi.Validator {
	if c.srv.AsValidator() == nil {
		return nil
	}
	return c.srv
}

func (c *Connection) Close() error { return nil }

// Server returns the underlying server for advanced use cases.
func (c *Connection) Server() *server.Server {
	return c.srv
}
