package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// CatalogServiceName is the fully qualified gRPC service name.
const CatalogServiceName = "interiorcatalog.v1.CatalogService"

const (
	listDoorsMethod    = "/" + CatalogServiceName + "/ListDoors"
	listProductsMethod = "/" + CatalogServiceName + "/ListProducts"
	saveFilterMethod   = "/" + CatalogServiceName + "/SaveFilter"
)

// CatalogServiceServer is the server API for the catalog service.
// Requests and responses are well-known Struct/ListValue messages, so no generated code is needed.
type CatalogServiceServer interface {
	ListDoors(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	ListProducts(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	SaveFilter(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedCatalogServiceServer can be embedded for forward compatibility.
type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) ListDoors(context.Context, *structpb.Struct) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListDoors not implemented")
}

func (UnimplementedCatalogServiceServer) ListProducts(context.Context, *structpb.Struct) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListProducts not implemented")
}

func (UnimplementedCatalogServiceServer) SaveFilter(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SaveFilter not implemented")
}

// RegisterCatalogServiceServer registers srv on s.
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}

func listDoorsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ListDoors(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listDoorsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServiceServer).ListDoors(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listProductsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).ListProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listProductsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServiceServer).ListProducts(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func saveFilterHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).SaveFilter(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: saveFilterMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CatalogServiceServer).SaveFilter(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// CatalogServiceDesc is the grpc.ServiceDesc for the catalog service.
var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListDoors", Handler: listDoorsHandler},
		{MethodName: "ListProducts", Handler: listProductsHandler},
		{MethodName: "SaveFilter", Handler: saveFilterHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "interiorcatalog/v1/catalog.proto",
}

// CatalogServiceClient is the client API for the catalog service.
type CatalogServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCatalogServiceClient wraps an established connection.
func NewCatalogServiceClient(cc grpc.ClientConnInterface) *CatalogServiceClient {
	return &CatalogServiceClient{cc: cc}
}

func (c *CatalogServiceClient) ListDoors(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, listDoorsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogServiceClient) ListProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, listProductsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CatalogServiceClient) SaveFilter(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, saveFilterMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
