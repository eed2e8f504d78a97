package catalogv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CatalogServiceName = "omnipos.catalog.v1.CatalogService"

type GetTreeRequest struct {
	IncludeUnavailable bool `json:"include_unavailable,omitempty"`
}

type GetTreeResponse struct {
	Categories []CategoryNode `json:"categories"`
}

type ListProductsRequest struct {
	ScopeCategoryID    string `json:"scope_category_id,omitempty"`
	SearchTerm         string `json:"search_term,omitempty"`
	Lang               string `json:"lang,omitempty"`
	IncludeUnavailable bool   `json:"include_unavailable,omitempty"`
}

type ListProductsResponse struct {
	Products []ListedProduct `json:"products"`
}

type GetGateStateResponse struct {
	Gate GateState `json:"gate"`
}

type GetProductDisplayRequest struct {
	ID   string `json:"id"`
	Lang string `json:"lang,omitempty"`
}

type GetProductDisplayResponse struct {
	Product DisplayProduct `json:"product"`
}

type CatalogServiceServer interface {
	GetTree(context.Context, *GetTreeRequest) (*GetTreeResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	GetGateState(context.Context, *Empty) (*GetGateStateResponse, error)
	GetProductDisplay(context.Context, *GetProductDisplayRequest) (*GetProductDisplayResponse, error)
}

type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) GetTree(context.Context, *GetTreeRequest) (*GetTreeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTree not implemented")
}
func (UnimplementedCatalogServiceServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}
func (UnimplementedCatalogServiceServer) GetGateState(context.Context, *Empty) (*GetGateStateResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetGateState not implemented")
}
func (UnimplementedCatalogServiceServer) GetProductDisplay(context.Context, *GetProductDisplayRequest) (*GetProductDisplayResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProductDisplay not implemented")
}

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CatalogServiceName, "GetTree", CatalogServiceServer.GetTree),
		unary(CatalogServiceName, "ListProducts", CatalogServiceServer.ListProducts),
		unary(CatalogServiceName, "GetGateState", CatalogServiceServer.GetGateState),
		unary(CatalogServiceName, "GetProductDisplay", CatalogServiceServer.GetProductDisplay),
	},
	Metadata: "omnipos/catalog/v1/catalog.json",
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

type CatalogServiceClient interface {
	GetTree(ctx context.Context, in *GetTreeRequest, opts ...grpc.CallOption) (*GetTreeResponse, error)
	ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
	GetGateState(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetGateStateResponse, error)
	GetProductDisplay(ctx context.Context, in *GetProductDisplayRequest, opts ...grpc.CallOption) (*GetProductDisplayResponse, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc}
}

func (c *catalogServiceClient) GetTree(ctx context.Context, in *GetTreeRequest, opts ...grpc.CallOption) (*GetTreeResponse, error) {
	return invoke[GetTreeResponse](ctx, c.cc, "/"+CatalogServiceName+"/GetTree", in, opts)
}

func (c *catalogServiceClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.cc, "/"+CatalogServiceName+"/ListProducts", in, opts)
}

func (c *catalogServiceClient) GetGateState(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*GetGateStateResponse, error) {
	return invoke[GetGateStateResponse](ctx, c.cc, "/"+CatalogServiceName+"/GetGateState", in, opts)
}

func (c *catalogServiceClient) GetProductDisplay(ctx context.Context, in *GetProductDisplayRequest, opts ...grpc.CallOption) (*GetProductDisplayResponse, error) {
	return invoke[GetProductDisplayResponse](ctx, c.cc, "/"+CatalogServiceName+"/GetProductDisplay", in, opts)
}
