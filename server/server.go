package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/log"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/types"
)

// ErrNotSupported is returned by capability-gated methods when the
// wrapped node does not provide the capability.
var ErrNotSupported = errors.New("capability not supported")

// Declarer is implemented by nodes that declare their capabilities
// instead of having them inferred.
type Declarer interface {
	Capabilities() types.Capabilities
}

// Server wraps a Node with capability routing and status-stream
// enforcement. Transports serve a node exclusively through this server.
type Server struct {
	node sapi.Node
	caps types.Capabilities

	// Optional interfaces (nil if not supported).
	chainReader sapi.ChainReader
	validator   sapi.Validator
}

var _ sapi.FullNode = (*Server)(nil)

// New creates a Server wrapping node. A node that declares a capability
// it does not implement is rejected.
func New(node sapi.Node) (*Server, error) {
	s := &Server{node: node}
	s.chainReader, _ = node.(sapi.ChainReader)
	s.validator, _ = node.(sapi.Validator)

	declared := implemented(node)
	if d, ok := node.(Declarer); ok {
		declared = d.Capabilities()
	}
	if err := discoverCapabilities(node, declared); err != nil {
		return nil, err
	}
	s.caps = declared
	return s, nil
}

// Capabilities returns the capabilities the server routes.
func (s *Server) Capabilities() types.Capabilities { return s.caps }

func (s *Server) Metadata(ctx context.Context) ([]byte, error) {
	return s.node.Metadata(ctx)
}

func (s *Server) RuntimeVersion(ctx context.Context) (types.RuntimeVersion, error) {
	return s.node.RuntimeVersion(ctx)
}

func (s *Server) GenesisHash(ctx context.Context) (types.Hash, error) {
	return s.node.GenesisHash(ctx)
}

func (s *Server) ReadStorage(ctx context.Context, key types.StorageKey, at types.Hash) (types.StorageData, bool, error) {
	return s.node.ReadStorage(ctx, key, at)
}

// ReadStoragePaged delegates to the node. A zero count is rejected and
// an oversized page is truncated.
func (s *Server) ReadStoragePaged(ctx context.Context, prefix, startKey types.StorageKey, count uint32, at types.Hash) ([]types.KeyValue, error) {
	if count == 0 {
		return nil, fmt.Errorf("server: ReadStoragePaged with zero count")
	}
	kvs, err := s.node.ReadStoragePaged(ctx, prefix, startKey, count, at)
	if err != nil {
		return nil, err
	}
	if uint32(len(kvs)) > count {
		log.Warn("Node returned an oversized page", "count", count, "returned", len(kvs))
		kvs = kvs[:count]
	}
	return kvs, nil
}

// SubmitAndWatch submits ext and relays its status stream through a
// StatusGuard. The returned channel is closed after a terminal status,
// when the node's stream ends, or when ctx is done.
func (s *Server) SubmitAndWatch(ctx context.Context, ext types.Extrinsic) (<-chan types.TxStatus, error) {
	wctx, cancel := context.WithCancel(ctx)
	in, err := s.node.SubmitAndWatch(wctx, ext)
	if err != nil {
		cancel()
		return nil, err
	}
	out := make(chan types.TxStatus)
	go func() {
		defer cancel()
		relay(wctx, in, out)
	}()
	return out, nil
}

func relay(ctx context.Context, in <-chan types.TxStatus, out chan<- types.TxStatus) {
	defer close(out)
	g := NewStatusGuard()
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-in:
			if !ok {
				if !g.Done() {
					log.Warn("Status stream ended before a terminal state", "state", g.State())
				}
				return
			}
			if !g.Admit(st) {
				log.Warn("Dropping status out of order", "state", g.State(), "status", st)
				continue
			}
			select {
			case out <- st:
			case <-ctx.Done():
				return
			}
			if g.Done() {
				return
			}
		}
	}
}

// --- Capability-gated optional methods ---

// FinalizedHead delegates to ChainReader if supported.
func (s *Server) FinalizedHead(ctx context.Context) (types.Hash, error) {
	if s.AsChainReader() == nil {
		return types.Hash{}, fmt.Errorf("server: ChainReader: %w", ErrNotSupported)
	}
	return s.chainReader.FinalizedHead(ctx)
}

// Header delegates to ChainReader if supported.
func (s *Server) Header(ctx context.Context, hash types.Hash) (types.Header, error) {
	if s.AsChainReader() == nil {
		return types.Header{}, fmt.Errorf("server: ChainReader: %w", ErrNotSupported)
	}
	return s.chainReader.Header(ctx, hash)
}

// BlockHash delegates to ChainReader if supported.
func (s *Server) BlockHash(ctx context.Context, number uint64) (types.Hash, error) {
	if s.AsChainReader() == nil {
		return types.Hash{}, fmt.Errorf("server: ChainReader: %w", ErrNotSupported)
	}
	return s.chainReader.BlockHash(ctx, number)
}

// ValidateTransaction delegates to Validator if supported.
func (s *Server) ValidateTransaction(ctx context.Context, source types.TransactionSource, ext types.Extrinsic) (types.TransactionValidity, error) {
	if s.AsValidator() == nil {
		return types.TransactionValidity{}, fmt.Errorf("server: Validator: %w", ErrNotSupported)
	}
	return s.validator.ValidateTransaction(ctx, source, ext)
}

// AsChainReader returns the ChainReader interface or nil.
func (s *Server) AsChainReader() sapi.ChainReader {
	if s.caps.Has(types.CapChainReader) {
		return s.chainReader
	}
	return nil
}

// AsValidator returns the Validator interface or nil.
func (s *Server) AsValidator() sapi.Validator {
	if s.caps.Has(types.CapValidation) {
		return s.validator
	}
	return nil
}

// Close is a no-op for the server wrapper.
func (s *Server) Close() error { return nil }

func implemented(node sapi.Node) types.Capabilities {
	var caps types.Capabilities
	if _, ok := node.(sapi.ChainReader); ok {
		caps |= types.CapChainReader
	}
	if _, ok := node.(sapi.Validator); ok {
		caps |= types.CapValidation
	}
	return caps
}

// discoverCapabilities checks which optional interfaces the node
// implements and verifies consistency with declared capabilities.
func discoverCapabilities(node sapi.Node, declared types.Capabilities) error {
	_, hasChainReader := node.(sapi.ChainReader)
	_, hasValidator := node.(sapi.Validator)

	if declared.Has(types.CapChainReader) && !hasChainReader {
		return fmt.Errorf("server: node declared CapChainReader but does not implement ChainReader")
	}
	if declared.Has(types.CapValidation) && !hasValidator {
		return fmt.Errorf("server: node declared CapValidation but does not implement Validator")
	}

	// Warn (but don't error) if the node implements an interface but didn't declare it.
	if !declared.Has(types.CapChainReader) && hasChainReader {
		log.Warn("Node implements ChainReader but did not declare it; capability will not be used")
	}
	if !declared.Has(types.CapValidation) && hasValidator {
		log.Warn("Node implements Validator but did not declare it; capability will not be used")
	}
	return nil
}
