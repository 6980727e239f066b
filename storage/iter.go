package storage

import (
	"context"
	"fmt"

	"github.com/blockberries/sapi/types"
)

// Entry is one map entry found by a KeyIter.
type Entry[V any] struct {
	Key types.StorageKey
	// Segments holds the encoded key tuple. Segments hashed one way are
	// nil.
	Segments [][]byte
	Value    V
}

// KeyIter walks the entries under a map prefix a page at a time. Order
// is whatever the node returns. Every page is read from the same block:
// the client's pinned block, or else the finalized head at the first
// call to Next. A node without ChainReader is read at its best block
// page by page. A KeyIter is not safe for concurrent use; dropping it
// abandons the walk.
type KeyIter[V any] struct {
	c      *Client
	addr   Address[V]
	prefix types.StorageKey
	at     types.Hash
	pinned bool

	page []types.KeyValue
	last types.StorageKey
	done bool
	err  error
}

// Iter returns an iterator over the entries under addr, which may name
// the whole map or a partial key tuple. No request is made until the
// first call to Next.
func Iter[V any](c *Client, addr Address[V]) *KeyIter[V] {
	return &KeyIter[V]{c: c, addr: addr, prefix: addr.Key()}
}

// Next returns the next entry. It returns false once the prefix is
// exhausted. After an error the iterator keeps returning it.
func (it *KeyIter[V]) Next(ctx context.Context) (Entry[V], bool, error) {
	if it.err != nil {
		return Entry[V]{}, false, it.err
	}
	if len(it.page) == 0 {
		if it.done {
			return Entry[V]{}, false, nil
		}
		if err := it.fill(ctx); err != nil {
			it.err = err
			return Entry[V]{}, false, err
		}
		if len(it.page) == 0 {
			return Entry[V]{}, false, nil
		}
	}
	kv := it.page[0]
	it.page = it.page[1:]

	e := Entry[V]{Key: kv.Key}
	segments, err := SplitKey(kv.Key, PrefixLen, it.addr.Hashers, it.addr.Skippers)
	if err != nil {
		it.err = fmt.Errorf("storage: %s key %s: %w", it.addr, kv.Key.Hex(), err)
		return Entry[V]{}, false, it.err
	}
	e.Segments = segments
	if e.Value, err = it.addr.DecodeValue(kv.Value); err != nil {
		it.err = fmt.Errorf("storage: decode %s: %w", it.addr, err)
		return Entry[V]{}, false, it.err
	}
	return e, true, nil
}

// At returns the block the walk reads. It is zero before the first call
// to Next and for nodes without ChainReader.
func (it *KeyIter[V]) At() types.Hash { return it.at }

func (it *KeyIter[V]) fill(ctx context.Context) error {
	if !it.pinned {
		it.at = it.c.at
		if it.at.IsZero() {
			head, err := it.c.finalizedHead(ctx)
			if err != nil {
				return err
			}
			it.at = head
		}
		it.pinned = true
	}
	size := it.c.pageSize
	page, err := it.c.node.ReadStoragePaged(ctx, it.prefix, it.last, size, it.at)
	if err != nil {
		return err
	}
	if uint32(len(page)) < size {
		it.done = true
	}
	if len(page) > 0 {
		it.last = page[len(page)-1].Key
	}
	it.page = page
	return nil
}

// Collect drains the iterator.
func (it *KeyIter[V]) Collect(ctx context.Context) ([]Entry[V], error) {
	var out []Entry[V]
	for {
		e, ok, err := it.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, e)
	}
}
