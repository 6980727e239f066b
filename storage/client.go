package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/types"
)

// DefaultPageSize is the number of entries requested per page when
// iterating a map.
const DefaultPageSize = 64

// ErrAddressMismatch is returned when an address disagrees with the
// hashers the metadata declares for its entry.
var ErrAddressMismatch = errors.New("storage: address does not match metadata")

// Client reads storage from a node. It is immutable and safe for
// concurrent use.
type Client struct {
	node     sapi.Node
	meta     *metadata.Metadata
	pageSize uint32
	// at pins reads to a block. Zero reads the best block.
	at types.Hash
}

// Option configures a Client.
type Option func(*Client)

// WithPageSize sets the iteration page size. Zero keeps the default.
func WithPageSize(n uint32) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewClient returns a storage client over node. meta supplies default
// values for FetchOrDefault and may be nil otherwise.
func NewClient(node sapi.Node, meta *metadata.Metadata, opts ...Option) *Client {
	c := &Client{node: node, meta: meta, pageSize: DefaultPageSize}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PageSize returns the iteration page size.
func (c *Client) PageSize() uint32 { return c.pageSize }

// At returns a client whose reads see the state of block hash. A zero
// hash returns a client that follows the best block.
func (c *Client) At(hash types.Hash) *Client {
	pinned := *c
	pinned.at = hash
	return &pinned
}

// Block returns the block reads are pinned to, or zero.
func (c *Client) Block() types.Hash { return c.at }

// Raw reads the bytes stored under key.
func (c *Client) Raw(ctx context.Context, key types.StorageKey) (types.StorageData, bool, error) {
	return c.node.ReadStorage(ctx, key, c.at)
}

// finalizedHead returns the node's finalized head, or zero when the node
// does not serve ChainReader.
func (c *Client) finalizedHead(ctx context.Context) (types.Hash, error) {
	var reader sapi.ChainReader
	switch n := c.node.(type) {
	case sapi.Connection:
		reader = n.AsChainReader()
	case sapi.ChainReader:
		reader = n
	}
	if reader == nil {
		return types.Hash{}, nil
	}
	return reader.FinalizedHead(ctx)
}

// Fetch reads and decodes the value at addr. An absent value is
// reported as (zero, false, nil).
func Fetch[V any](ctx context.Context, c *Client, addr Address[V]) (V, bool, error) {
	var zero V
	data, ok, err := c.node.ReadStorage(ctx, addr.Key(), c.at)
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := addr.DecodeValue(data)
	if err != nil {
		return zero, false, fmt.Errorf("storage: decode %s: %w", addr, err)
	}
	return v, true, nil
}

// FetchOrDefault reads the value at addr and falls back to the default
// the metadata declares for the entry when it is absent.
func FetchOrDefault[V any](ctx context.Context, c *Client, addr Address[V]) (V, error) {
	v, ok, err := Fetch(ctx, c, addr)
	if err != nil || ok {
		return v, err
	}
	if c.meta == nil {
		return v, fmt.Errorf("storage: %s: no metadata for default value", addr)
	}
	entry, err := c.meta.StorageEntry(addr.Pallet, addr.Entry)
	if err != nil {
		return v, err
	}
	if err := checkEntry(entry, addr); err != nil {
		return v, err
	}
	if entry.Modifier == metadata.Optional && len(entry.Default) == 0 {
		return v, nil
	}
	v, err = addr.DecodeValue(entry.Default)
	if err != nil {
		return v, fmt.Errorf("storage: decode default of %s: %w", addr, err)
	}
	return v, nil
}

// CheckAddress verifies that meta declares the entry of addr with the
// hashers addr uses. An address that passes builds the keys the node
// stores the entry under.
func CheckAddress[V any](meta *metadata.Metadata, addr Address[V]) error {
	entry, err := meta.StorageEntry(addr.Pallet, addr.Entry)
	if err != nil {
		return err
	}
	return checkEntry(entry, addr)
}

func checkEntry[V any](entry *metadata.StorageEntry, addr Address[V]) error {
	if len(entry.Hashers) != len(addr.Hashers) {
		return fmt.Errorf("%w: %s has %d hashers, metadata declares %d",
			ErrAddressMismatch, addr, len(addr.Hashers), len(entry.Hashers))
	}
	for i, h := range entry.Hashers {
		if addr.Hashers[i] != h {
			return fmt.Errorf("%w: %s key %d hashed with %s, metadata declares %s",
				ErrAddressMismatch, addr, i, addr.Hashers[i], h)
		}
	}
	return nil
}
