// Package proto describes the shortener gRPC service. Requests and
// responses are google.protobuf.StringValue messages, so no generated
// message types are needed.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "shortener.Shortener"

	ShortenURLFullMethod = "/shortener.Shortener/ShortenURL"
	ExpandURLFullMethod  = "/shortener.Shortener/ExpandURL"
)

// ShortenerServer is the server API for the Shortener service.
type ShortenerServer interface {
	// ShortenURL takes a target URL and returns the absolute short URL.
	ShortenURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	// ExpandURL takes an identifier and returns its target URL.
	ExpandURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// UnimplementedShortenerServer can be embedded to have forward compatible implementations.
type UnimplementedShortenerServer struct{}

func (UnimplementedShortenerServer) ShortenURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ShortenURL not implemented")
}

func (UnimplementedShortenerServer) ExpandURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ExpandURL not implemented")
}

func RegisterShortenerServer(s grpc.ServiceRegistrar, srv ShortenerServer) {
	s.RegisterService(&shortenerServiceDesc, srv)
}

func unaryHandler(
	fullMethod string,
	call func(ShortenerServer, context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error),
) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ShortenerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ShortenerServer), ctx, req.(*wrapperspb.StringValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var shortenerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShortenerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ShortenURL",
			Handler:    unaryHandler(ShortenURLFullMethod, ShortenerServer.ShortenURL),
		},
		{
			MethodName: "ExpandURL",
			Handler:    unaryHandler(ExpandURLFullMethod, ShortenerServer.ExpandURL),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// ShortenerClient is the client API for the Shortener service.
type ShortenerClient interface {
	ShortenURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	ExpandURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type shortenerClient struct {
	cc grpc.ClientConnInterface
}

func NewShortenerClient(cc grpc.ClientConnInterface) ShortenerClient {
	return &shortenerClient{cc: cc}
}

func (c *shortenerClient) ShortenURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, ShortenURLFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *shortenerClient) ExpandURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, ExpandURLFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
