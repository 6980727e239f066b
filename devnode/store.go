package devnode

import (
	"bytes"
	"sort"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/scale"
	sapistorage "github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

// reader is a point lookup over chain state.
type reader interface {
	get(key []byte) ([]byte, bool, error)
}

// kv is the read side shared by a leveldb database and its snapshots.
type kv interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
}

// view reads chain state from the database or from the snapshot taken
// when a block was imported.
type view struct {
	src kv
}

// store is the committed chain state, held in an in-memory leveldb.
type store struct {
	view
	db *leveldb.DB
}

func openStore() (*store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "open state store")
	}
	return &store{view: view{src: db}, db: db}, nil
}

func (s *store) close() error { return s.db.Close() }

// snapshot freezes the committed state.
func (s *store) snapshot() (*leveldb.Snapshot, error) {
	snap, err := s.db.GetSnapshot()
	return snap, errors.Wrap(err, "snapshot state")
}

func (v view) get(key []byte) ([]byte, bool, error) {
	value, err := v.src.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "get %x", key)
	}
	return value, true, nil
}

// page returns up to count entries under prefix in key order, starting
// strictly after start when it is non-nil.
func (v view) page(prefix, start []byte, count uint32) ([]types.KeyValue, error) {
	r := util.BytesPrefix(prefix)
	if start != nil && bytes.Compare(start, r.Start) >= 0 {
		r.Start = append(append([]byte{}, start...), 0)
	}
	iter := v.src.NewIterator(r, nil)
	defer iter.Release()

	var out []types.KeyValue
	for uint32(len(out)) < count && iter.Next() {
		key := make([]byte, len(iter.Key()))
		copy(key, iter.Key())
		value := make([]byte, len(iter.Value()))
		copy(value, iter.Value())
		out = append(out, types.KeyValue{Key: key, Value: value})
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrapf(err, "iterate %x", prefix)
	}
	return out, nil
}

func (s *store) commit(o *overlay) error {
	batch := new(leveldb.Batch)
	for _, k := range o.sortedKeys() {
		batch.Put([]byte(k), o.writes[k])
	}
	return errors.Wrap(s.db.Write(batch, nil), "commit block state")
}

// overlay buffers writes on top of a reader.
type overlay struct {
	base   reader
	writes map[string][]byte
}

func newOverlay(base reader) *overlay {
	return &overlay{base: base, writes: map[string][]byte{}}
}

func (o *overlay) get(key []byte) ([]byte, bool, error) {
	if v, ok := o.writes[string(key)]; ok {
		return v, true, nil
	}
	return o.base.get(key)
}

func (o *overlay) put(key []byte, v scale.Encodable) {
	o.putRaw(key, scale.Encode(v))
}

func (o *overlay) putRaw(key, v []byte) {
	if v == nil {
		v = []byte{}
	}
	o.writes[string(key)] = v
}

func (o *overlay) child() *overlay { return newOverlay(o) }

// apply merges the writes of a child into o.
func (o *overlay) apply(c *overlay) {
	for k, v := range c.writes {
		o.writes[k] = v
	}
}

func (o *overlay) sortedKeys() []string {
	keys := make([]string, 0, len(o.writes))
	for k := range o.writes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// root folds the writes into the parent state root. It is a digest of
// the block's changes, not a trie root.
func (o *overlay) root(parent types.Hash) types.Hash {
	e := scale.NewEncoder()
	parent.EncodeTo(e)
	for _, k := range o.sortedKeys() {
		e.EncodeBytes([]byte(k))
		e.EncodeBytes(o.writes[k])
	}
	return types.HashFromBytes(hasher.BlakeTwo256.Hash(e.Bytes()))
}

// load reads and decodes the value at addr.
func load[V any](r reader, addr sapistorage.Address[V]) (V, bool, error) {
	var zero V
	data, ok, err := r.get(addr.Key())
	if err != nil || !ok {
		return zero, false, err
	}
	v, err := addr.DecodeValue(data)
	if err != nil {
		return zero, false, errors.Wrapf(err, "decode %s", addr)
	}
	return v, true, nil
}
