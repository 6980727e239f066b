// Package devnode is an in-memory development chain that speaks the
// sapi node contract. It runs the System, Balances, Staking and Preimage
// pallets, checks signatures, eras and nonces, and authors a block per
// submission or on a timer.
package devnode

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/config"
	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/pallets/balances"
	"github.com/blockberries/sapi/pallets/system"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/signer"
	"github.com/blockberries/sapi/types"
)

// ErrUnknownBlock is returned for a hash or number the chain does not
// hold.
var ErrUnknownBlock = errors.New("devnode: unknown block")

// Weight charged per extrinsic and per encoded byte.
const (
	baseWeight = 125_000_000
	byteWeight = 2_000
)

var _ sapi.FullNode = (*Node)(nil)

type pending struct {
	ext    types.Extrinsic
	hash   types.Hash
	env    *extrinsic.Envelope
	params config.PlainTipParams
	// watch has room for every status the node ever sends.
	watch chan types.TxStatus
}

func (p *pending) finish(st types.TxStatus) {
	p.watch <- st
	close(p.watch)
}

// Node is a single-authority chain with instant finality. It is safe for
// concurrent use.
type Node struct {
	cfg     Config
	rt      runtime
	meta    []byte
	version types.RuntimeVersion

	// sealMu serializes block authoring.
	sealMu sync.Mutex

	mu      sync.RWMutex
	state   *store
	headers map[types.Hash]types.Header
	hashes  []types.Hash
	genesis types.Hash
	// states holds the state of the last StateHistory blocks.
	states map[types.Hash]*leveldb.Snapshot

	poolMu sync.Mutex
	pool   []*pending

	closeOnce sync.Once
}

// New builds the genesis state of cfg and returns a node at block 0.
func New(cfg Config) (*Node, error) {
	params, err := cfg.parse()
	if err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	st, err := openStore()
	if err != nil {
		return nil, err
	}
	o := newOverlay(st)
	if err := genesis(o, cfg); err != nil {
		st.close()
		return nil, errors.Wrap(err, "genesis")
	}
	header := types.Header{StateRoot: o.root(types.Hash{}), ExtrinsicsRoot: extrinsicsRoot(nil)}
	hash := header.Hash(hasher.BlakeTwo256)
	o.put(system.BlockHash(0).Key(), hash)
	if err := st.commit(o); err != nil {
		st.close()
		return nil, err
	}
	snap, err := st.snapshot()
	if err != nil {
		st.close()
		return nil, err
	}

	n := &Node{
		cfg:  cfg,
		rt:   runtime{params: params},
		meta: Metadata().Encode(),
		version: types.RuntimeVersion{
			SpecName:           cfg.SpecName,
			ImplName:           "sapi-devnode",
			AuthoringVersion:   1,
			SpecVersion:        cfg.SpecVersion,
			ImplVersion:        1,
			TransactionVersion: cfg.TransactionVersion,
		},
		state:   st,
		headers: map[types.Hash]types.Header{hash: header},
		hashes:  []types.Hash{hash},
		genesis: hash,
		states:  map[types.Hash]*leveldb.Snapshot{hash: snap},
	}
	log.Info("Initialised dev chain", "spec", cfg.SpecName, "genesis", hash, "accounts", len(cfg.Accounts))
	return n, nil
}

func (n *Node) Metadata(ctx context.Context) ([]byte, error) {
	return append([]byte(nil), n.meta...), nil
}

func (n *Node) RuntimeVersion(ctx context.Context) (types.RuntimeVersion, error) {
	return n.version, nil
}

func (n *Node) GenesisHash(ctx context.Context) (types.Hash, error) {
	return n.genesis, nil
}

func (n *Node) ReadStorage(ctx context.Context, key types.StorageKey, at types.Hash) (types.StorageData, bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, err := n.stateAt(at)
	if err != nil {
		return nil, false, err
	}
	data, ok, err := v.get(key)
	return data, ok, err
}

func (n *Node) ReadStoragePaged(ctx context.Context, prefix, startKey types.StorageKey, count uint32, at types.Hash) ([]types.KeyValue, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, err := n.stateAt(at)
	if err != nil {
		return nil, err
	}
	return v.page(prefix, startKey, count)
}

// stateAt returns the state of block at, or the best state when at is
// zero. The caller holds n.mu.
func (n *Node) stateAt(at types.Hash) (view, error) {
	if at.IsZero() {
		return n.state.view, nil
	}
	snap, ok := n.states[at]
	if !ok {
		if _, known := n.headers[at]; known {
			return view{}, errors.Wrapf(ErrUnknownBlock, "state of %s pruned", at)
		}
		return view{}, errors.Wrapf(ErrUnknownBlock, "hash %s", at)
	}
	return view{src: snap}, nil
}

// SubmitAndWatch queues ext. A malformed envelope is rejected with an
// error; every other verdict arrives on the stream. With InstantSeal the
// block is authored before SubmitAndWatch returns, so the stream is
// already complete.
func (n *Node) SubmitAndWatch(ctx context.Context, ext types.Extrinsic) (<-chan types.TxStatus, error) {
	p := &pending{
		ext:   ext,
		hash:  types.HashFromBytes(hasher.BlakeTwo256.Hash(ext)),
		watch: make(chan types.TxStatus, 4),
	}
	env, err := extrinsic.DecodeEnvelope(ext, &p.params)
	if err != nil {
		return nil, errors.Wrap(err, "decode extrinsic")
	}
	p.env = env
	p.watch <- types.TxStatus{State: types.TxSubmitted}

	n.poolMu.Lock()
	if len(n.pool) >= n.cfg.PoolLimit {
		n.poolMu.Unlock()
		log.Warn("Transaction pool full", "tx", p.hash, "limit", n.cfg.PoolLimit)
		p.finish(types.TxStatus{State: types.TxDropped, Reason: "transaction pool full"})
		return p.watch, nil
	}
	n.pool = append(n.pool, p)
	n.poolMu.Unlock()
	log.Debug("Queued transaction", "tx", p.hash)

	if n.cfg.InstantSeal {
		if _, err := n.SealBlock(); err != nil {
			log.Error("Failed to seal block", "err", err)
		}
	}
	return p.watch, nil
}

// PoolSize returns the number of queued extrinsics.
func (n *Node) PoolSize() int {
	n.poolMu.Lock()
	defer n.poolMu.Unlock()
	return len(n.pool)
}

func (n *Node) head() types.Header {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.headers[n.hashes[len(n.hashes)-1]]
}

// SealBlock authors a block from the queued extrinsics and finalizes
// it. Extrinsics failing validation are reported Invalid and left out.
func (n *Node) SealBlock() (types.Hash, error) {
	n.sealMu.Lock()
	defer n.sealMu.Unlock()

	n.poolMu.Lock()
	queue := n.pool
	n.pool = nil
	n.poolMu.Unlock()

	parent := n.head()
	number := parent.Number + 1
	o := newOverlay(n.state)

	var (
		records  []events.Record
		included []*pending
	)
	for i, p := range queue {
		// Each extrinsic writes to its own child so that an internal
		// error leaves no fee or nonce behind.
		c := o.child()
		evs, reason, err := n.apply(c, number, p)
		if err != nil {
			for _, q := range queue[i:] {
				q.finish(types.TxStatus{State: types.TxError, Reason: err.Error()})
			}
			break
		}
		if reason != "" {
			log.Debug("Rejected transaction", "tx", p.hash, "reason", reason)
			p.finish(types.TxStatus{State: types.TxInvalid, Reason: reason})
			continue
		}
		o.apply(c)
		phase := types.Phase{Kind: types.PhaseApplyExtrinsic, Extrinsic: uint32(len(included))}
		for _, ev := range evs {
			records = append(records, events.Record{Phase: phase, Event: ev, Topics: []types.Hash{}})
		}
		included = append(included, p)
	}

	header := types.Header{
		ParentHash:     parent.Hash(hasher.BlakeTwo256),
		Number:         number,
		ExtrinsicsRoot: extrinsicsRoot(included),
	}
	o.put(system.Number().Key(), scale.U32(number))
	o.putRaw(system.Events().Key(), events.EncodeRecords(records))
	header.StateRoot = o.root(parent.StateRoot)
	hash := header.Hash(hasher.BlakeTwo256)
	o.put(system.BlockHash(uint32(number)).Key(), hash)

	n.mu.Lock()
	err := n.state.commit(o)
	if err == nil {
		n.headers[hash] = header
		n.hashes = append(n.hashes, hash)
		n.keepState(hash)
	}
	n.mu.Unlock()
	if err != nil {
		for _, p := range included {
			p.finish(types.TxStatus{State: types.TxError, Reason: err.Error()})
		}
		return types.Hash{}, err
	}
	log.Info("Imported block", "number", number, "hash", hash, "txs", len(included), "events", len(records))

	for _, p := range included {
		p.watch <- types.TxStatus{State: types.TxInBlock, Block: hash}
		p.finish(types.TxStatus{State: types.TxFinalized, Block: hash})
	}
	return hash, nil
}

// keepState snapshots the state of the block just committed and
// releases the state that fell out of the history window. The caller
// holds n.mu.
func (n *Node) keepState(hash types.Hash) {
	snap, err := n.state.snapshot()
	if err != nil {
		log.Warn("Block state not kept", "hash", hash, "err", err)
	} else {
		n.states[hash] = snap
	}
	if old := len(n.hashes) - 1 - n.cfg.StateHistory; old >= 0 {
		if snap, ok := n.states[n.hashes[old]]; ok {
			snap.Release()
			delete(n.states, n.hashes[old])
		}
	}
}

// apply validates p against o and executes it. A non-empty reason
// rejects p and leaves o untouched.
func (n *Node) apply(o *overlay, number uint64, p *pending) ([]events.Event, string, error) {
	who, call, fee, reason, err := n.check(o, number, p.env, &p.params)
	if err != nil || reason != "" {
		return nil, reason, err
	}
	paid, err := preDispatch(o, who, fee)
	if err != nil {
		return nil, "", err
	}
	if !paid {
		return nil, "insufficient funds to pay fees", nil
	}

	var evs []events.Event
	if !fee.IsZero() {
		evs = append(evs, &balances.Withdraw{Who: who, Amount: fee})
	}
	info := system.DispatchInfo{
		Weight:  system.Weight{RefTime: baseWeight + byteWeight*uint64(len(p.ext)), ProofSize: uint64(len(p.ext))},
		Class:   system.ClassNormal,
		PaysFee: true,
	}
	child := o.child()
	dispatched, failure, err := n.rt.dispatch(child, who, call)
	if err != nil {
		return nil, "", err
	}
	if failure != nil {
		log.Debug("Dispatch failed", "tx", p.hash, "call", call.Info().Name, "err", failure)
		return append(evs, &system.ExtrinsicFailed{DispatchError: *failure, DispatchInfo: info}), "", nil
	}
	o.apply(child)
	evs = append(evs, dispatched...)
	return append(evs, &system.ExtrinsicSuccess{DispatchInfo: info}), "", nil
}

// check runs the admission checks of a transaction to be included in
// block number: signer, call, era, signature, nonce and fee.
func (n *Node) check(r reader, number uint64, env *extrinsic.Envelope, params *config.PlainTipParams) (types.AccountID32, extrinsic.Call, scale.U128, string, error) {
	var (
		who  types.AccountID32
		zero scale.U128
	)
	if !env.Signed {
		return who, nil, zero, "unsigned transactions are not accepted", nil
	}
	if env.Address.Kind != types.AddressID {
		return who, nil, zero, "cannot look up signer " + env.Address.String(), nil
	}
	who = env.Address.ID
	call, err := decodeCall(env.Call)
	if err != nil {
		return who, nil, zero, "undecodable call: " + err.Error(), nil
	}

	checkpoint := n.genesis
	if params.Era.Mortal {
		birth := params.Era.Birth(number)
		hash, ok := n.blockHash(birth)
		if !ok {
			return who, nil, zero, "era birth block not found", nil
		}
		checkpoint = hash
	}
	signed := *params
	signed.SpecVersion = n.cfg.SpecVersion
	signed.TxVersion = n.cfg.TransactionVersion
	signed.Genesis = n.genesis
	signed.Checkpoint = checkpoint
	if !signer.Verify(who, extrinsic.SigningPayload(env.Call, &signed), env.Signature) {
		return who, nil, zero, "bad signature", nil
	}

	account, err := accountOf(r, who)
	if err != nil {
		return who, nil, zero, "", err
	}
	switch {
	case params.Nonce < uint64(account.Nonce):
		return who, nil, zero, "stale nonce", nil
	case params.Nonce > uint64(account.Nonce):
		return who, nil, zero, "future nonce", nil
	}
	fee, ok := n.rt.params.baseFee.Add(params.Tip)
	if !ok || account.Data.Free.Cmp(fee) < 0 {
		return who, nil, zero, "insufficient funds to pay fees", nil
	}
	return who, call, fee, "", nil
}

func (n *Node) blockHash(number uint64) (types.Hash, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if number >= uint64(len(n.hashes)) {
		return types.Hash{}, false
	}
	return n.hashes[number], true
}

func extrinsicsRoot(included []*pending) types.Hash {
	e := scale.NewEncoder()
	for _, p := range included {
		p.hash.EncodeTo(e)
	}
	return types.HashFromBytes(hasher.BlakeTwo256.Hash(e.Bytes()))
}

// FinalizedHead returns the best block. Every block is final once
// authored.
func (n *Node) FinalizedHead(ctx context.Context) (types.Hash, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.hashes[len(n.hashes)-1], nil
}

func (n *Node) Header(ctx context.Context, hash types.Hash) (types.Header, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	h, ok := n.headers[hash]
	if !ok {
		return types.Header{}, errors.Wrapf(ErrUnknownBlock, "hash %s", hash)
	}
	return h, nil
}

func (n *Node) BlockHash(ctx context.Context, number uint64) (types.Hash, error) {
	h, ok := n.blockHash(number)
	if !ok {
		return types.Hash{}, errors.Wrapf(ErrUnknownBlock, "number %d", number)
	}
	return h, nil
}

// ValidateTransaction runs the admission checks of ext against the best
// state without queueing it. It reads a snapshot and holds no lock while
// checking, so blocks keep sealing meanwhile.
func (n *Node) ValidateTransaction(ctx context.Context, source types.TransactionSource, ext types.Extrinsic) (types.TransactionValidity, error) {
	var params config.PlainTipParams
	env, err := extrinsic.DecodeEnvelope(ext, &params)
	if err != nil {
		return types.TransactionValidity{Reason: "undecodable extrinsic: " + err.Error()}, nil
	}
	n.mu.RLock()
	number := n.headers[n.hashes[len(n.hashes)-1]].Number + 1
	snap, err := n.state.snapshot()
	n.mu.RUnlock()
	if err != nil {
		return types.TransactionValidity{}, err
	}
	defer snap.Release()

	_, _, _, reason, err := n.check(view{src: snap}, number, env, &params)
	if err != nil {
		return types.TransactionValidity{}, err
	}
	if reason != "" {
		log.Debug("Transaction would be rejected", "source", source, "reason", reason)
		return types.TransactionValidity{Reason: reason}, nil
	}

	v := types.TransactionValidity{Valid: true, Priority: math.MaxUint64, Longevity: math.MaxUint64}
	if tip := params.Tip.Big(); tip.IsUint64() {
		v.Priority = tip.Uint64()
	}
	if params.Era.Mortal {
		v.Longevity = params.Era.Death(number) - number
	}
	return v, nil
}

// Run seals a block every BlockTime until ctx is done. With InstantSeal
// it only waits for ctx.
func (n *Node) Run(ctx context.Context) error {
	if n.cfg.InstantSeal {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(n.cfg.BlockTime)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := n.SealBlock(); err != nil {
				return errors.Wrap(err, "seal block")
			}
		}
	}
}

// Close releases the state store. Further reads fail.
func (n *Node) Close() error {
	var err error
	n.closeOnce.Do(func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for hash, snap := range n.states {
			snap.Release()
			delete(n.states, hash)
		}
		err = n.state.close()
	})
	return err
}
