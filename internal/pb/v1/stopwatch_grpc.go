package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	StopwatchService_ServiceName             = "stopwatch.v1.StopwatchService"
	StopwatchService_Press_FullMethodName    = "/stopwatch.v1.StopwatchService/Press"
	StopwatchService_GetState_FullMethodName = "/stopwatch.v1.StopwatchService/GetState"
)

// StopwatchServiceClient is the client API for StopwatchService.
type StopwatchServiceClient interface {
	Press(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type stopwatchServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStopwatchServiceClient creates a client bound to cc.
func NewStopwatchServiceClient(cc grpc.ClientConnInterface) StopwatchServiceClient {
	return &stopwatchServiceClient{cc}
}

func (c *stopwatchServiceClient) Press(
	ctx context.Context,
	in *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)

	err := c.cc.Invoke(ctx, StopwatchService_Press_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (c *stopwatchServiceClient) GetState(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (*structpb.Struct, error) {
	out := new(structpb.Struct)

	err := c.cc.Invoke(ctx, StopwatchService_GetState_FullMethodName, in, out, opts...)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// StopwatchServiceServer is the server API for StopwatchService.
// Implementations must embed UnimplementedStopwatchServiceServer.
type StopwatchServiceServer interface {
	Press(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	mustEmbedUnimplementedStopwatchServiceServer()
}

// UnimplementedStopwatchServiceServer answers every method with codes.Unimplemented.
type UnimplementedStopwatchServiceServer struct{}

func (UnimplementedStopwatchServiceServer) Press(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Press not implemented")
}

func (UnimplementedStopwatchServiceServer) GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetState not implemented")
}

func (UnimplementedStopwatchServiceServer) mustEmbedUnimplementedStopwatchServiceServer() {}

// RegisterStopwatchServiceServer registers srv on s.
func RegisterStopwatchServiceServer(s grpc.ServiceRegistrar, srv StopwatchServiceServer) {
	s.RegisterService(&StopwatchService_ServiceDesc, srv)
}

func _StopwatchService_Press_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(StopwatchServiceServer).Press(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StopwatchService_Press_FullMethodName,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StopwatchServiceServer).Press(ctx, req.(*wrapperspb.StringValue))
	}

	return interceptor(ctx, in, info, handler)
}

func _StopwatchService_GetState_Handler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}

	if interceptor == nil {
		return srv.(StopwatchServiceServer).GetState(ctx, in)
	}

	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: StopwatchService_GetState_FullMethodName,
	}

	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(StopwatchServiceServer).GetState(ctx, req.(*emptypb.Empty))
	}

	return interceptor(ctx, in, info, handler)
}

// StopwatchService_ServiceDesc is the grpc.ServiceDesc for StopwatchService.
var StopwatchService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: StopwatchService_ServiceName,
	HandlerType: (*StopwatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Press",
			Handler:    _StopwatchService_Press_Handler,
		},
		{
			MethodName: "GetState",
			Handler:    _StopwatchService_GetState_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "stopwatch/v1/stopwatch.proto",
}
