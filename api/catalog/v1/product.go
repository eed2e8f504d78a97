package catalogv1

import (
	"context"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ProductServiceName = "omnipos.catalog.v1.ProductService"

type CreateProductRequest struct {
	CategoryID  string          `json:"category_id"`
	Name        LocalizedText   `json:"name"`
	Description LocalizedText   `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageRef    string          `json:"image_ref,omitempty"`
	// IsAvailable defaults to true when omitted.
	IsAvailable      *bool     `json:"is_available,omitempty"`
	IsOffer          bool      `json:"is_offer,omitempty"`
	IsHighlight      bool      `json:"is_highlight,omitempty"`
	HasVariants      bool      `json:"has_variants,omitempty"`
	Variants         []Variant `json:"variants,omitempty"`
	ModifierGroupIDs []string  `json:"modifier_group_ids,omitempty"`
}

type UpdateProductRequest struct {
	ID               string          `json:"id"`
	CategoryID       string          `json:"category_id"`
	Name             LocalizedText   `json:"name"`
	Description      LocalizedText   `json:"description"`
	Price            decimal.Decimal `json:"price"`
	ImageRef         string          `json:"image_ref,omitempty"`
	IsOffer          bool            `json:"is_offer,omitempty"`
	IsHighlight      bool            `json:"is_highlight,omitempty"`
	HasVariants      bool            `json:"has_variants,omitempty"`
	Variants         []Variant       `json:"variants,omitempty"`
	ModifierGroupIDs []string        `json:"modifier_group_ids,omitempty"`
}

type ProductResponse struct {
	Product Product `json:"product"`
}

type ProductIDRequest struct {
	ID string `json:"id"`
}

type SetAvailabilityRequest struct {
	ID          string `json:"id"`
	IsAvailable bool   `json:"is_available"`
}

type ReorderProductsRequest struct {
	CategoryID string   `json:"category_id"`
	OrderedIDs []string `json:"ordered_ids"`
}

type MoveProductRequest struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
}

type SearchProductsRequest struct {
	Query string `json:"query"`
	Lang  string `json:"lang,omitempty"`
	Limit int32  `json:"limit,omitempty"`
}

type SearchProductsResponse struct {
	Products []ListedProduct `json:"products"`
}

type ProductServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	GetProduct(context.Context, *ProductIDRequest) (*ProductResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *ProductIDRequest) (*Empty, error)
	ToggleAvailability(context.Context, *ProductIDRequest) (*ProductResponse, error)
	SetAvailability(context.Context, *SetAvailabilityRequest) (*ProductResponse, error)
	ReorderProducts(context.Context, *ReorderProductsRequest) (*Empty, error)
	MoveProduct(context.Context, *MoveProductRequest) (*ProductResponse, error)
	SearchProducts(context.Context, *SearchProductsRequest) (*SearchProductsResponse, error)
}

type UnimplementedProductServiceServer struct{}

func (UnimplementedProductServiceServer) CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProduct not implemented")
}
func (UnimplementedProductServiceServer) GetProduct(context.Context, *ProductIDRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProduct not implemented")
}
func (UnimplementedProductServiceServer) UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateProduct not implemented")
}
func (UnimplementedProductServiceServer) DeleteProduct(context.Context, *ProductIDRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteProduct not implemented")
}
func (UnimplementedProductServiceServer) ToggleAvailability(context.Context, *ProductIDRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ToggleAvailability not implemented")
}
func (UnimplementedProductServiceServer) SetAvailability(context.Context, *SetAvailabilityRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetAvailability not implemented")
}
func (UnimplementedProductServiceServer) ReorderProducts(context.Context, *ReorderProductsRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method ReorderProducts not implemented")
}
func (UnimplementedProductServiceServer) MoveProduct(context.Context, *MoveProductRequest) (*ProductResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MoveProduct not implemented")
}
func (UnimplementedProductServiceServer) SearchProducts(context.Context, *SearchProductsRequest) (*SearchProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SearchProducts not implemented")
}

var ProductService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ProductServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ProductServiceName, "CreateProduct", ProductServiceServer.CreateProduct),
		unary(ProductServiceName, "GetProduct", ProductServiceServer.GetProduct),
		unary(ProductServiceName, "UpdateProduct", ProductServiceServer.UpdateProduct),
		unary(ProductServiceName, "DeleteProduct", ProductServiceServer.DeleteProduct),
		unary(ProductServiceName, "ToggleAvailability", ProductServiceServer.ToggleAvailability),
		unary(ProductServiceName, "SetAvailability", ProductServiceServer.SetAvailability),
		unary(ProductServiceName, "ReorderProducts", ProductServiceServer.ReorderProducts),
		unary(ProductServiceName, "MoveProduct", ProductServiceServer.MoveProduct),
		unary(ProductServiceName, "SearchProducts", ProductServiceServer.SearchProducts),
	},
	Metadata: "omnipos/catalog/v1/product.json",
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ProductService_ServiceDesc, srv)
}

type ProductServiceClient interface {
	CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	GetProduct(ctx context.Context, in *ProductIDRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, in *UpdateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, in *ProductIDRequest, opts ...grpc.CallOption) (*Empty, error)
	ToggleAvailability(ctx context.Context, in *ProductIDRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	SetAvailability(ctx context.Context, in *SetAvailabilityRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	ReorderProducts(ctx context.Context, in *ReorderProductsRequest, opts ...grpc.CallOption) (*Empty, error)
	MoveProduct(ctx context.Context, in *MoveProductRequest, opts ...grpc.CallOption) (*ProductResponse, error)
	SearchProducts(ctx context.Context, in *SearchProductsRequest, opts ...grpc.CallOption) (*SearchProductsResponse, error)
}

type productServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProductServiceClient(cc grpc.ClientConnInterface) ProductServiceClient {
	return &productServiceClient{cc: cc}
}

func (c *productServiceClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, "/"+ProductServiceName+"/CreateProduct", in, opts)
}

func (c *productServiceClient) GetProduct(ctx context.Context, in *ProductIDRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, "/"+ProductServiceName+"/GetProduct", in, opts)
}

func (c *productServiceClient) UpdateProduct(ctx context.Context, in *UpdateProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, "/"+ProductServiceName+"/UpdateProduct", in, opts)
}

func (c *productServiceClient) DeleteProduct(ctx context.Context, in *ProductIDRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "/"+ProductServiceName+"/DeleteProduct", in, opts)
}

func (c *productServiceClient) ToggleAvailability(ctx context.Context, in *ProductIDRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, "/"+ProductServiceName+"/ToggleAvailability", in, opts)
}

func (c *productServiceClient) SetAvailability(ctx context.Context, in *SetAvailabilityRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, "/"+ProductServiceName+"/SetAvailability", in, opts)
}

func (c *productServiceClient) ReorderProducts(ctx context.Context, in *ReorderProductsRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "/"+ProductServiceName+"/ReorderProducts", in, opts)
}

func (c *productServiceClient) MoveProduct(ctx context.Context, in *MoveProductRequest, opts ...grpc.CallOption) (*ProductResponse, error) {
	return invoke[ProductResponse](ctx, c.cc, "/"+ProductServiceName+"/MoveProduct", in, opts)
}

func (c *productServiceClient) SearchProducts(ctx context.Context, in *SearchProductsRequest, opts ...grpc.CallOption) (*SearchProductsResponse, error) {
	return invoke[SearchProductsResponse](ctx, c.cc, "/"+ProductServiceName+"/SearchProducts", in, opts)
}
