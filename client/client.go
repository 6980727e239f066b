// Package client binds a node connection to a chain profile: it reads
// the node's metadata, genesis hash and runtime version once, then hands
// out storage reads, event decoding and extrinsic builders that share
// them.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/log"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/config"
	"github.com/blockberries/sapi/events"
	"github.com/blockberries/sapi/extrinsic"
	"github.com/blockberries/sapi/hasher"
	"github.com/blockberries/sapi/metadata"
	"github.com/blockberries/sapi/scale"
	"github.com/blockberries/sapi/storage"
	"github.com/blockberries/sapi/types"
)

// Registrar adds a pallet's events to a registry. The RegisterEvents
// functions of the pallet packages have this shape.
type Registrar func(*events.Registry, *metadata.Metadata) error

type options struct {
	params      config.ParamsSpec
	storageOpts []storage.Option
	registrars  []Registrar
}

// Option configures a Client.
type Option func(*options)

// WithParams selects the signed-extension layout. The default is
// config.PlainTip.
func WithParams(p config.ParamsSpec) Option {
	return func(o *options) { o.params = p }
}

// WithPageSize sets the page size of storage iteration.
func WithPageSize(n uint32) Option {
	return func(o *options) { o.storageOpts = append(o.storageOpts, storage.WithPageSize(n)) }
}

// WithEvents registers the events of the given pallets.
func WithEvents(r ...Registrar) Option {
	return func(o *options) { o.registrars = append(o.registrars, r...) }
}

// Client is a typed view of one node under one chain profile. It is
// immutable after New and safe for concurrent use.
type Client[A config.AccountID, Ad config.Address, S config.Signature] struct {
	conn    sapi.Connection
	cfg     config.Config[A, Ad, S]
	params  config.ParamsSpec
	meta    *metadata.Metadata
	genesis types.Hash
	runtime types.RuntimeVersion
	storage *storage.Client
	events  *events.Registry
}

// New validates cfg and reads what every later operation needs from the
// node. Transport failures are returned unchanged; inconsistencies
// between cfg, the options and the node are *sapi.ConstructionError.
func New[A config.AccountID, Ad config.Address, S config.Signature](ctx context.Context, conn sapi.Connection, cfg config.Config[A, Ad, S], opts ...Option) (*Client[A, Ad, S], error) {
	o := options{params: config.PlainTip{}}
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	raw, err := conn.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	meta, err := metadata.Decode(raw)
	if err != nil {
		return nil, sapi.NewConstructionError("client", "invalid metadata", err)
	}
	if meta.Extrinsic.Version != extrinsic.Version {
		return nil, sapi.NewConstructionError("client", fmt.Sprintf("extrinsic version %d is not supported", meta.Extrinsic.Version), nil)
	}
	if missing := config.MissingExtensions(o.params, meta.Extrinsic.SignedExtensions); len(missing) > 0 {
		return nil, sapi.NewConstructionError("client", "runtime does not declare signed extensions "+strings.Join(missing, ", "), nil)
	}
	genesis, err := conn.GenesisHash(ctx)
	if err != nil {
		return nil, err
	}
	rv, err := conn.RuntimeVersion(ctx)
	if err != nil {
		return nil, err
	}

	reg := events.NewRegistry()
	for _, register := range o.registrars {
		if err := register(reg, meta); err != nil {
			return nil, sapi.NewConstructionError("client", "register events", err)
		}
	}

	log.Debug("Client connected", "profile", cfg.Name, "spec", rv.SpecName, "specVersion", rv.SpecVersion,
		"pallets", len(meta.Pallets), "capabilities", conn.Capabilities())

	return &Client[A, Ad, S]{
		conn:    conn,
		cfg:     cfg,
		params:  o.params,
		meta:    meta,
		genesis: genesis,
		runtime: rv,
		storage: storage.NewClient(conn, meta, o.storageOpts...),
		events:  reg,
	}, nil
}

func (c *Client[A, Ad, S]) Config() config.Config[A, Ad, S] { return c.cfg }
func (c *Client[A, Ad, S]) Params() config.ParamsSpec       { return c.params }
func (c *Client[A, Ad, S]) Runtime() types.RuntimeVersion   { return c.runtime }
func (c *Client[A, Ad, S]) GenesisHash() types.Hash         { return c.genesis }
func (c *Client[A, Ad, S]) Conn() sapi.Connection           { return c.conn }
func (c *Client[A, Ad, S]) Metadata() *metadata.Metadata    { return c.meta }
func (c *Client[A, Ad, S]) Storage() *storage.Client        { return c.storage }
func (c *Client[A, Ad, S]) Events() *events.Registry        { return c.events }

// AccountNonce reads the nonce of account from System.Account. An
// account that does not exist has nonce 0.
func (c *Client[A, Ad, S]) AccountNonce(ctx context.Context, account A) (uint64, error) {
	key := storage.BuildKey("System", "Account", storage.NewMapKey(account, hasher.Blake2_128Concat))
	data, ok, err := c.storage.Raw(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	nonce, err := c.cfg.Index.Decode(scale.NewDecoder(data))
	if err != nil {
		return 0, fmt.Errorf("client: decode nonce of %x: %w", account.Bytes(), err)
	}
	return nonce, nil
}

// Tx checks call against the metadata and returns it ready for signing.
func (c *Client[A, Ad, S]) Tx(call extrinsic.Call) (*extrinsic.Submittable[A, Ad, S], error) {
	if err := extrinsic.CheckCall(c.meta, call.Info()); err != nil {
		return nil, err
	}
	return extrinsic.New[A, Ad, S](c, call), nil
}

// BlockEvents reads and decodes the System.Events of block at. A zero
// hash reads the best block. Pass the block of an InBlock or Finalized
// status to get the events of the block that included a transaction.
func (c *Client[A, Ad, S]) BlockEvents(ctx context.Context, at types.Hash) ([]events.Record, error) {
	data, ok, err := c.storage.At(at).Raw(ctx, storage.BuildKey("System", "Events"))
	if err != nil || !ok {
		return nil, err
	}
	return c.events.DecodeRecords(data)
}
