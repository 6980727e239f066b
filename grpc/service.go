package sapigrpc

import (
	"context"
	"fmt"

	"github.com/blockberries/sapi/types"

	"google.golang.org/grpc"
)

const serviceName = "sapi.v1.NodeService"

// NodeServiceServer is the server-side interface for the node gRPC
// service.
type NodeServiceServer interface {
	Capabilities(context.Context, *Empty) (*CapabilitiesResponse, error)
	Metadata(context.Context, *Empty) (*MetadataResponse, error)
	RuntimeVersion(context.Context, *Empty) (*types.RuntimeVersion, error)
	GenesisHash(context.Context, *Empty) (*HashResponse, error)
	ReadStorage(context.Context, *ReadStorageRequest) (*ReadStorageResponse, error)
	ReadStoragePaged(context.Context, *ReadStoragePagedRequest) (*ReadStoragePagedResponse, error)
	SubmitAndWatch(*SubmitRequest, grpc.ServerStream) error
	FinalizedHead(context.Context, *Empty) (*HashResponse, error)
	Header(context.Context, *HeaderRequest) (*types.Header, error)
	BlockHash(context.Context, *BlockHashRequest) (*HashResponse, error)
	ValidateTransaction(context.Context, *ValidateRequest) (*types.TransactionValidity, error)
}

// RegisterNodeServiceServer registers the NodeServiceServer on a gRPC
// server.
func RegisterNodeServiceServer(s *grpc.Server, srv NodeServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

// --- Handler functions ---

// unary adapts a typed unary method to a grpc.MethodDesc handler.
func unary[Req any, Resp any](call func(NodeServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, _ grpc.UnaryServerInterceptor) (any, error) {
		req := new(Req)
		if err := dec(req); err != nil {
			return nil, err
		}
		return call(srv.(NodeServiceServer), ctx, req)
	}
}

func handlerSubmitAndWatch(srv any, stream grpc.ServerStream) error {
	req := new(SubmitRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(NodeServiceServer).SubmitAndWatch(req, stream)
}

// fullMethod builds the full gRPC method path.
func fullMethod(method string) string {
	return fmt.Sprintf("/%s/%s", serviceName, method)
}

// serviceDesc is the manual gRPC service descriptor for the node.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*NodeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Capabilities", Handler: unary(NodeServiceServer.Capabilities)},
		{MethodName: "Metadata", Handler: unary(NodeServiceServer.Metadata)},
		{MethodName: "RuntimeVersion", Handler: unary(NodeServiceServer.RuntimeVersion)},
		{MethodName: "GenesisHash", Handler: unary(NodeServiceServer.GenesisHash)},
		{MethodName: "ReadStorage", Handler: unary(NodeServiceServer.ReadStorage)},
		{MethodName: "ReadStoragePaged", Handler: unary(NodeServiceServer.ReadStoragePaged)},
		{MethodName: "FinalizedHead", Handler: unary(NodeServiceServer.FinalizedHead)},
		{MethodName: "Header", Handler: unary(NodeServiceServer.Header)},
		{MethodName: "BlockHash", Handler: unary(NodeServiceServer.BlockHash)},
		{MethodName: "ValidateTransaction", Handler: unary(NodeServiceServer.ValidateTransaction)},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubmitAndWatch",
			Handler:       handlerSubmitAndWatch,
			ServerStreams: true,
			ClientStreams: false,
		},
	},
	Metadata: "sapi/v1/node.cram",
}
