package catalogv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CategoryServiceName = "omnipos.catalog.v1.CategoryService"

type CreateCategoryRequest struct {
	ParentID string        `json:"parent_id,omitempty"`
	Name     LocalizedText `json:"name"`
	Banners  []string      `json:"banners,omitempty"`
	// SortOrder is optional; omitted appends the category to its siblings.
	SortOrder *int32 `json:"sort_order,omitempty"`
}

type CategoryResponse struct {
	Category Category `json:"category"`
}

type GetCategoryRequest struct {
	ID string `json:"id"`
}

type ListCategoriesRequest struct {
	// ParentID filters by scope: omitted lists all, "" lists roots.
	ParentID *string `json:"parent_id,omitempty"`
	Page     int32   `json:"page,omitempty"`
	PageSize int32   `json:"page_size,omitempty"`
}

type ListCategoriesResponse struct {
	Categories []Category `json:"categories"`
	Total      int32      `json:"total"`
}

type UpdateCategoryRequest struct {
	ID       string        `json:"id"`
	ParentID string        `json:"parent_id,omitempty"`
	Name     LocalizedText `json:"name"`
	Banners  []string      `json:"banners,omitempty"`
}

type DeleteCategoryRequest struct {
	ID      string `json:"id"`
	Cascade bool   `json:"cascade,omitempty"`
}

type DeleteCategoryResponse struct {
	DeletedCategoryIDs []string `json:"deleted_category_ids"`
	DeletedProductIDs  []string `json:"deleted_product_ids"`
}

type ReorderCategoriesRequest struct {
	ParentID   string   `json:"parent_id,omitempty"`
	OrderedIDs []string `json:"ordered_ids"`
}

type CategoryServiceServer interface {
	CreateCategory(context.Context, *CreateCategoryRequest) (*CategoryResponse, error)
	GetCategory(context.Context, *GetCategoryRequest) (*CategoryResponse, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error)
	UpdateCategory(context.Context, *UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(context.Context, *DeleteCategoryRequest) (*DeleteCategoryResponse, error)
	ReorderCategories(context.Context, *ReorderCategoriesRequest) (*Empty, error)
}

type UnimplementedCategoryServiceServer struct{}

func (UnimplementedCategoryServiceServer) CreateCategory(context.Context, *CreateCategoryRequest) (*CategoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateCategory not implemented")
}
func (UnimplementedCategoryServiceServer) GetCategory(context.Context, *GetCategoryRequest) (*CategoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCategory not implemented")
}
func (UnimplementedCategoryServiceServer) ListCategories(context.Context, *ListCategoriesRequest) (*ListCategoriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListCategories not implemented")
}
func (UnimplementedCategoryServiceServer) UpdateCategory(context.Context, *UpdateCategoryRequest) (*CategoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateCategory not implemented")
}
func (UnimplementedCategoryServiceServer) DeleteCategory(context.Context, *DeleteCategoryRequest) (*DeleteCategoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteCategory not implemented")
}
func (UnimplementedCategoryServiceServer) ReorderCategories(context.Context, *ReorderCategoriesRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method ReorderCategories not implemented")
}

var CategoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CategoryServiceName,
	HandlerType: (*CategoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(CategoryServiceName, "CreateCategory", CategoryServiceServer.CreateCategory),
		unary(CategoryServiceName, "GetCategory", CategoryServiceServer.GetCategory),
		unary(CategoryServiceName, "ListCategories", CategoryServiceServer.ListCategories),
		unary(CategoryServiceName, "UpdateCategory", CategoryServiceServer.UpdateCategory),
		unary(CategoryServiceName, "DeleteCategory", CategoryServiceServer.DeleteCategory),
		unary(CategoryServiceName, "ReorderCategories", CategoryServiceServer.ReorderCategories),
	},
	Metadata: "omnipos/catalog/v1/category.json",
}

func RegisterCategoryServiceServer(s grpc.ServiceRegistrar, srv CategoryServiceServer) {
	s.RegisterService(&CategoryService_ServiceDesc, srv)
}

type CategoryServiceClient interface {
	CreateCategory(ctx context.Context, in *CreateCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error)
	GetCategory(ctx context.Context, in *GetCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error)
	ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error)
	UpdateCategory(ctx context.Context, in *UpdateCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, in *DeleteCategoryRequest, opts ...grpc.CallOption) (*DeleteCategoryResponse, error)
	ReorderCategories(ctx context.Context, in *ReorderCategoriesRequest, opts ...grpc.CallOption) (*Empty, error)
}

type categoryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCategoryServiceClient(cc grpc.ClientConnInterface) CategoryServiceClient {
	return &categoryServiceClient{cc: cc}
}

func (c *categoryServiceClient) CreateCategory(ctx context.Context, in *CreateCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error) {
	return invoke[CategoryResponse](ctx, c.cc, "/"+CategoryServiceName+"/CreateCategory", in, opts)
}

func (c *categoryServiceClient) GetCategory(ctx context.Context, in *GetCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error) {
	return invoke[CategoryResponse](ctx, c.cc, "/"+CategoryServiceName+"/GetCategory", in, opts)
}

func (c *categoryServiceClient) ListCategories(ctx context.Context, in *ListCategoriesRequest, opts ...grpc.CallOption) (*ListCategoriesResponse, error) {
	return invoke[ListCategoriesResponse](ctx, c.cc, "/"+CategoryServiceName+"/ListCategories", in, opts)
}

func (c *categoryServiceClient) UpdateCategory(ctx context.Context, in *UpdateCategoryRequest, opts ...grpc.CallOption) (*CategoryResponse, error) {
	return invoke[CategoryResponse](ctx, c.cc, "/"+CategoryServiceName+"/UpdateCategory", in, opts)
}

func (c *categoryServiceClient) DeleteCategory(ctx context.Context, in *DeleteCategoryRequest, opts ...grpc.CallOption) (*DeleteCategoryResponse, error) {
	return invoke[DeleteCategoryResponse](ctx, c.cc, "/"+CategoryServiceName+"/DeleteCategory", in, opts)
}

func (c *categoryServiceClient) ReorderCategories(ctx context.Context, in *ReorderCategoriesRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, "/"+CategoryServiceName+"/ReorderCategories", in, opts)
}
