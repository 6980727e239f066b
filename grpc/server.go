package sapigrpc

import (
	"context"
	"errors"
	"net"

	"github.com/blockberries/sapi"
	"github.com/blockberries/sapi/server"
	"github.com/blockberries/sapi/types"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Compile-time interface check.
var _ NodeServiceServer = (*GRPCServer)(nil)

// GRPCServer serves a node over gRPC. No type conversion is needed:
// wire types are serialized directly via cramberry.
type GRPCServer struct {
	srv *server.Server
}

// NewGRPCServer creates a gRPC server wrapping node.
func NewGRPCServer(node sapi.Node) (*GRPCServer, error) {
	srv, err := server.New(node)
	if err != nil {
		return nil, err
	}
	return &GRPCServer{srv: srv}, nil
}

// Register adds the node service to a gRPC server.
func (s *GRPCServer) Register(gs *grpc.Server) {
	RegisterNodeServiceServer(gs, s)
}

// NewServer returns a grpc.Server with the node service registered.
func (s *GRPCServer) NewServer(opts ...grpc.ServerOption) *grpc.Server {
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs
}

// Serve starts the gRPC server on the given listener.
func (s *GRPCServer) Serve(lis net.Listener, opts ...grpc.ServerOption) error {
	return s.NewServer(opts...).Serve(lis)
}

// Server returns the underlying server for advanced use.
func (s *GRPCServer) Server() *server.Server {
	return s.srv
}

// toStatus maps unsupported capabilities to codes.Unimplemented. Other
// errors pass through and reach the client as codes.Unknown.
func toStatus(err error) error {
	if errors.Is(err, server.ErrNotSupported) {
		return status.Error(codes.Unimplemented, err.Error())
	}
	return err
}

func (s *GRPCServer) Capabilities(context.Context, *Empty) (*CapabilitiesResponse, error) {
	return &CapabilitiesResponse{Capabilities: s.srv.Capabilities()}, nil
}

// --- Node RPCs ---

func (s *GRPCServer) Metadata(ctx context.Context, _ *Empty) (*MetadataResponse, error) {
	data, err := s.srv.Metadata(ctx)
	if err != nil {
		return nil, err
	}
	return &MetadataResponse{Data: data}, nil
}

func (s *GRPCServer) RuntimeVersion(ctx context.Context, _ *Empty) (*types.RuntimeVersion, error) {
	rv, err := s.srv.RuntimeVersion(ctx)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (s *GRPCServer) GenesisHash(ctx context.Context, _ *Empty) (*HashResponse, error) {
	h, err := s.srv.GenesisHash(ctx)
	if err != nil {
		return nil, err
	}
	return &HashResponse{Hash: h}, nil
}

func (s *GRPCServer) ReadStorage(ctx context.Context, req *ReadStorageRequest) (*ReadStorageResponse, error) {
	v, ok, err := s.srv.ReadStorage(ctx, req.Key, req.At)
	if err != nil {
		return nil, err
	}
	return &ReadStorageResponse{Value: v, Found: ok}, nil
}

func (s *GRPCServer) ReadStoragePaged(ctx context.Context, req *ReadStoragePagedRequest) (*ReadStoragePagedResponse, error) {
	var start types.StorageKey
	if req.HasStart {
		start = req.StartKey
		if start == nil {
			start = types.StorageKey{}
		}
	}
	kvs, err := s.srv.ReadStoragePaged(ctx, req.Prefix, start, req.Count, req.At)
	if err != nil {
		return nil, err
	}
	return &ReadStoragePagedResponse{Entries: kvs}, nil
}

// SubmitAndWatch streams the status of the submitted extrinsic until
// the stream is terminal or the client goes away.
func (s *GRPCServer) SubmitAndWatch(req *SubmitRequest, stream grpc.ServerStream) error {
	ch, err := s.srv.SubmitAndWatch(stream.Context(), req.Extrinsic)
	if err != nil {
		return err
	}
	for st := range ch {
		if err := stream.SendMsg(&st); err != nil {
			return err
		}
	}
	return nil
}

// --- ChainReader RPCs ---

func (s *GRPCServer) FinalizedHead(ctx context.Context, _ *Empty) (*HashResponse, error) {
	h, err := s.srv.FinalizedHead(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return &HashResponse{Hash: h}, nil
}

func (s *GRPCServer) Header(ctx context.Context, req *HeaderRequest) (*types.Header, error) {
	h, err := s.srv.Header(ctx, req.Hash)
	if err != nil {
		return nil, toStatus(err)
	}
	return &h, nil
}

func (s *GRPCServer) BlockHash(ctx context.Context, req *BlockHashRequest) (*HashResponse, error) {
	h, err := s.srv.BlockHash(ctx, req.Number)
	if err != nil {
		return nil, toStatus(err)
	}
	return &HashResponse{Hash: h}, nil
}

// --- Validator RPC ---

func (s *GRPCServer) ValidateTransaction(ctx context.Context, req *ValidateRequest) (*types.TransactionValidity, error) {
	v, err := s.srv.ValidateTransaction(ctx, req.Source, req.Extrinsic)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v, nil
}
