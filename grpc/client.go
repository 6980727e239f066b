package sapigrpc

import (
	"context"
	"errors"
	"io"

	"github.com/ethereum/go-ethereum/log"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/types"

	"google.golang.org/grpc"
)

// Compile-time interface check.
var _ sapi.Connection = (*Client)(nil)

// Client implements sapi.Connection for remote nodes over gRPC using
// cramberry serialization. Every failure is returned as a
// *sapi.TransportError.
type Client struct {
	cc   *grpc.ClientConn
	caps types.Capabilities
}

// Dial connects to a remote node and learns its capabilities.
func Dial(ctx context.Context, addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(
		grpc.ForceCodec(Codec{}),
	))
	cc, err := grpc.DialContext(ctx, addr, opts...)
	if err != nil {
		return nil, sapi.NewTransportError("dial "+addr, err)
	}
	resp := new(CapabilitiesResponse)
	if err := cc.Invoke(ctx, fullMethod("Capabilities"), &Empty{}, resp); err != nil {
		cc.Close()
		return nil, sapi.NewTransportError("Capabilities", err)
	}
	log.Debug("Connected to node", "addr", addr, "capabilities", resp.Capabilities)
	return &Client{cc: cc, caps: resp.Capabilities}, nil
}

func (c *Client) Close() error {
	return c.cc.Close()
}

func (c *Client) invoke(ctx context.Context, method string, req, resp any) error {
	if err := c.cc.Invoke(ctx, fullMethod(method), req, resp); err != nil {
		return sapi.NewTransportError(method, err)
	}
	return nil
}

// --- Node ---

func (c *Client) Metadata(ctx context.Context) ([]byte, error) {
	resp := new(MetadataResponse)
	if err := c.invoke(ctx, "Metadata", &Empty{}, resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) RuntimeVersion(ctx context.Context) (types.RuntimeVersion, error) {
	resp := new(types.RuntimeVersion)
	if err := c.invoke(ctx, "RuntimeVersion", &Empty{}, resp); err != nil {
		return types.RuntimeVersion{}, err
	}
	return *resp, nil
}

func (c *Client) GenesisHash(ctx context.Context) (types.Hash, error) {
	resp := new(HashResponse)
	if err := c.invoke(ctx, "GenesisHash", &Empty{}, resp); err != nil {
		return types.Hash{}, err
	}
	return resp.Hash, nil
}

func (c *Client) ReadStorage(ctx context.Context, key types.StorageKey, at types.Hash) (types.StorageData, bool, error) {
	resp := new(ReadStorageResponse)
	if err := c.invoke(ctx, "ReadStorage", &ReadStorageRequest{Key: key, At: at}, resp); err != nil {
		return nil, false, err
	}
	if !resp.Found {
		return nil, false, nil
	}
	if resp.Value == nil {
		resp.Value = types.StorageData{}
	}
	return resp.Value, true, nil
}

func (c *Client) ReadStoragePaged(ctx context.Context, prefix, startKey types.StorageKey, count uint32, at types.Hash) ([]types.KeyValue, error) {
	req := &ReadStoragePagedRequest{Prefix: prefix, StartKey: startKey, HasStart: startKey != nil, Count: count, At: at}
	resp := new(ReadStoragePagedResponse)
	if err := c.invoke(ctx, "ReadStoragePaged", req, resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// SubmitAndWatch opens the status stream of ext. A node that rejects
// the extrinsic before its first status fails the call itself. A stream
// that breaks before a terminal status reports TxError.
func (c *Client) SubmitAndWatch(ctx context.Context, ext types.Extrinsic) (<-chan types.TxStatus, error) {
	sctx, cancel := context.WithCancel(ctx)
	stream, err := c.cc.NewStream(sctx, &grpc.StreamDesc{
		StreamName:    "SubmitAndWatch",
		ServerStreams: true,
	}, fullMethod("SubmitAndWatch"))
	if err != nil {
		cancel()
		return nil, sapi.NewTransportError("SubmitAndWatch", err)
	}
	if err := stream.SendMsg(&SubmitRequest{Extrinsic: ext}); err != nil {
		cancel()
		return nil, sapi.NewTransportError("SubmitAndWatch", err)
	}
	if err := stream.CloseSend(); err != nil {
		cancel()
		return nil, sapi.NewTransportError("SubmitAndWatch", err)
	}
	first := new(types.TxStatus)
	if err := stream.RecvMsg(first); err != nil {
		cancel()
		return nil, sapi.NewTransportError("SubmitAndWatch", err)
	}

	ch := make(chan types.TxStatus)
	go func() {
		defer cancel()
		defer close(ch)
		st := *first
		for {
			select {
			case ch <- st:
			case <-sctx.Done():
				return
			}
			if st.State.Terminal() {
				return
			}
			next := new(types.TxStatus)
			if err := stream.RecvMsg(next); err != nil {
				if errors.Is(err, io.EOF) || sctx.Err() != nil {
					return
				}
				log.Debug("Status stream broken", "err", err)
				st = types.TxStatus{State: types.TxError, Reason: err.Error()}
				continue
			}
			st = *next
		}
	}()
	return ch, nil
}

// --- Capability Accessors ---

func (c *Client) Capabilities() types.Capabilities { return c.caps }

func (c *Client) AsChainReader() sapi.ChainReader {
	if c.caps.Has(types.CapChainReader) {
		return &clientChainReader{c}
	}
	return nil
}

func (c *Client) AsValidator() sapi.Validator {
	if c.caps.Has(types.CapValidation) {
		return &clientValidator{c}
	}
	return nil
}

// --- ChainReader wrapper ---

type clientChainReader struct{ c *Client }

func (w *clientChainReader) FinalizedHead(ctx context.Context) (types.Hash, error) {
	resp := new(HashResponse)
	if err := w.c.invoke(ctx, "FinalizedHead", &Empty{}, resp); err != nil {
		return types.Hash{}, err
	}
	return resp.Hash, nil
}

func (w *clientChainReader) Header(ctx context.Context, hash types.Hash) (types.Header, error) {
	resp := new(types.Header)
	if err := w.c.invoke(ctx, "Header", &HeaderRequest{Hash: hash}, resp); err != nil {
		return types.Header{}, err
	}
	return *resp, nil
}

func (w *clientChainReader) BlockHash(ctx context.Context, number uint64) (types.Hash, error) {
	resp := new(HashResponse)
	if err := w.c.invoke(ctx, "BlockHash", &BlockHashRequest{Number: number}, resp); err != nil {
		return types.Hash{}, err
	}
	return resp.Hash, nil
}

// --- Validator wrapper ---

type clientValidator struct{ c *Client }

func (w *clientValidator) ValidateTransaction(ctx context.Context, source types.TransactionSource, ext types.Extrinsic) (types.TransactionValidity, error) {
	resp := new(types.TransactionValidity)
	if err := w.c.invoke(ctx, "ValidateTransaction", &ValidateRequest{Source: source, Extrinsic: ext}, resp); err != nil {
		return types.TransactionValidity{}, err
	}
	return *resp, nil
}
