package api

import (
	"context"

	"google.golang.org/grpc"
)

// RelationServiceClient is the client API for the RelationService.
type RelationServiceClient interface {
	Grant(ctx context.Context, in *GrantRequest, opts ...grpc.CallOption) (*GrantResponse, error)
	Revoke(ctx context.Context, in *RevokeRequest, opts ...grpc.CallOption) (*RevokeResponse, error)
	Exists(ctx context.Context, in *ExistsRequest, opts ...grpc.CallOption) (*ExistsResponse, error)
	IsPermitted(ctx context.Context, in *IsPermittedRequest, opts ...grpc.CallOption) (*IsPermittedResponse, error)
	Expand(ctx context.Context, in *ExpandRequest, opts ...grpc.CallOption) (*ExpandResponse, error)
}

type relationServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRelationServiceClient wraps cc in a RelationServiceClient. Every call
// is forced onto the JSON content-subtype so it pairs with the server codec.
func NewRelationServiceClient(cc grpc.ClientConnInterface) RelationServiceClient {
	return &relationServiceClient{cc}
}

func (c *relationServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *relationServiceClient) Grant(ctx context.Context, in *GrantRequest, opts ...grpc.CallOption) (*GrantResponse, error) {
	out := new(GrantResponse)
	if err := c.invoke(ctx, "Grant", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *relationServiceClient) Revoke(ctx context.Context, in *RevokeRequest, opts ...grpc.CallOption) (*RevokeResponse, error) {
	out := new(RevokeResponse)
	if err := c.invoke(ctx, "Revoke", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *relationServiceClient) Exists(ctx context.Context, in *ExistsRequest, opts ...grpc.CallOption) (*ExistsResponse, error) {
	out := new(ExistsResponse)
	if err := c.invoke(ctx, "Exists", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *relationServiceClient) IsPermitted(ctx context.Context, in *IsPermittedRequest, opts ...grpc.CallOption) (*IsPermittedResponse, error) {
	out := new(IsPermittedResponse)
	if err := c.invoke(ctx, "IsPermitted", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *relationServiceClient) Expand(ctx context.Context, in *ExpandRequest, opts ...grpc.CallOption) (*ExpandResponse, error) {
	out := new(ExpandResponse)
	if err := c.invoke(ctx, "Expand", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
