package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "rebacs.v1.RelationService"

// RelationServiceServer is the server API for the RelationService.
type RelationServiceServer interface {
	Grant(context.Context, *GrantRequest) (*GrantResponse, error)
	Revoke(context.Context, *RevokeRequest) (*RevokeResponse, error)
	Exists(context.Context, *ExistsRequest) (*ExistsResponse, error)
	IsPermitted(context.Context, *IsPermittedRequest) (*IsPermittedResponse, error)
	Expand(context.Context, *ExpandRequest) (*ExpandResponse, error)
}

// RegisterRelationServiceServer registers srv on s.
func RegisterRelationServiceServer(s grpc.ServiceRegistrar, srv RelationServiceServer) {
	s.RegisterService(&RelationService_ServiceDesc, srv)
}

func grantHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GrantRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelationServiceServer).Grant(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/Grant",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RelationServiceServer).Grant(ctx, req.(*GrantRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func revokeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(RevokeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelationServiceServer).Revoke(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/Revoke",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RelationServiceServer).Revoke(ctx, req.(*RevokeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func existsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ExistsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelationServiceServer).Exists(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/Exists",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RelationServiceServer).Exists(ctx, req.(*ExistsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func isPermittedHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(IsPermittedRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelationServiceServer).IsPermitted(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/IsPermitted",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RelationServiceServer).IsPermitted(ctx, req.(*IsPermittedRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func expandHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ExpandRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelationServiceServer).Expand(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/Expand",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RelationServiceServer).Expand(ctx, req.(*ExpandRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// RelationService_ServiceDesc is the grpc.ServiceDesc for the
// RelationService. It is maintained by hand because the service speaks
// JSON rather than protobuf.
var RelationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RelationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Grant", Handler: grantHandler},
		{MethodName: "Revoke", Handler: revokeHandler},
		{MethodName: "Exists", Handler: existsHandler},
		{MethodName: "IsPermitted", Handler: isPermittedHandler},
		{MethodName: "Expand", Handler: expandHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rebacs/v1/relation_service.json",
}
