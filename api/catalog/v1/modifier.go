package catalogv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ModifierGroupServiceName = "omnipos.catalog.v1.ModifierGroupService"

type CreateModifierGroupRequest struct {
	Name         LocalizedText    `json:"name"`
	MinSelection int32            `json:"min_selection"`
	MaxSelection int32            `json:"max_selection"`
	Options      []ModifierOption `json:"options"`
}

type UpdateModifierGroupRequest struct {
	ID           string           `json:"id"`
	Name         LocalizedText    `json:"name"`
	MinSelection int32            `json:"min_selection"`
	MaxSelection int32            `json:"max_selection"`
	Options      []ModifierOption `json:"options"`
}

type ModifierGroupResponse struct {
	Group ModifierGroup `json:"group"`
}

type ModifierGroupIDRequest struct {
	ID string `json:"id"`
}

type ListModifierGroupsResponse struct {
	Groups []ModifierGroup `json:"groups"`
}

type DeleteModifierGroupResponse struct {
	DetachedProducts int32 `json:"detached_products"`
}

type ModifierGroupServiceServer interface {
	CreateModifierGroup(context.Context, *CreateModifierGroupRequest) (*ModifierGroupResponse, error)
	GetModifierGroup(context.Context, *ModifierGroupIDRequest) (*ModifierGroupResponse, error)
	ListModifierGroups(context.Context, *Empty) (*ListModifierGroupsResponse, error)
	UpdateModifierGroup(context.Context, *UpdateModifierGroupRequest) (*ModifierGroupResponse, error)
	DeleteModifierGroup(context.Context, *ModifierGroupIDRequest) (*DeleteModifierGroupResponse, error)
}

type UnimplementedModifierGroupServiceServer struct{}

func (UnimplementedModifierGroupServiceServer) CreateModifierGroup(context.Context, *CreateModifierGroupRequest) (*ModifierGroupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateModifierGroup not implemented")
}
func (UnimplementedModifierGroupServiceServer) GetModifierGroup(context.Context, *ModifierGroupIDRequest) (*ModifierGroupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetModifierGroup not implemented")
}
func (UnimplementedModifierGroupServiceServer) ListModifierGroups(context.Context, *Empty) (*ListModifierGroupsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListModifierGroups not implemented")
}
func (UnimplementedModifierGroupServiceServer) UpdateModifierGroup(context.Context, *UpdateModifierGroupRequest) (*ModifierGroupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateModifierGroup not implemented")
}
func (UnimplementedModifierGroupServiceServer) DeleteModifierGroup(context.Context, *ModifierGroupIDRequest) (*DeleteModifierGroupResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteModifierGroup not implemented")
}

var ModifierGroupService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ModifierGroupServiceName,
	HandlerType: (*ModifierGroupServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ModifierGroupServiceName, "CreateModifierGroup", ModifierGroupServiceServer.CreateModifierGroup),
		unary(ModifierGroupServiceName, "GetModifierGroup", ModifierGroupServiceServer.GetModifierGroup),
		unary(ModifierGroupServiceName, "ListModifierGroups", ModifierGroupServiceServer.ListModifierGroups),
		unary(ModifierGroupServiceName, "UpdateModifierGroup", ModifierGroupServiceServer.UpdateModifierGroup),
		unary(ModifierGroupServiceName, "DeleteModifierGroup", ModifierGroupServiceServer.DeleteModifierGroup),
	},
	Metadata: "omnipos/catalog/v1/modifier.json",
}

func RegisterModifierGroupServiceServer(s grpc.ServiceRegistrar, srv ModifierGroupServiceServer) {
	s.RegisterService(&ModifierGroupService_ServiceDesc, srv)
}

type ModifierGroupServiceClient interface {
	CreateModifierGroup(ctx context.Context, in *CreateModifierGroupRequest, opts ...grpc.CallOption) (*ModifierGroupResponse, error)
	GetModifierGroup(ctx context.Context, in *ModifierGroupIDRequest, opts ...grpc.CallOption) (*ModifierGroupResponse, error)
	ListModifierGroups(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListModifierGroupsResponse, error)
	UpdateModifierGroup(ctx context.Context, in *UpdateModifierGroupRequest, opts ...grpc.CallOption) (*ModifierGroupResponse, error)
	DeleteModifierGroup(ctx context.Context, in *ModifierGroupIDRequest, opts ...grpc.CallOption) (*DeleteModifierGroupResponse, error)
}

type modifierGroupServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewModifierGroupServiceClient(cc grpc.ClientConnInterface) ModifierGroupServiceClient {
	return &modifierGroupServiceClient{cc: cc}
}

func (c *modifierGroupServiceClient) CreateModifierGroup(ctx context.Context, in *CreateModifierGroupRequest, opts ...grpc.CallOption) (*ModifierGroupResponse, error) {
	return invoke[ModifierGroupResponse](ctx, c.cc, "/"+ModifierGroupServiceName+"/CreateModifierGroup", in, opts)
}

func (c *modifierGroupServiceClient) GetModifierGroup(ctx context.Context, in *ModifierGroupIDRequest, opts ...grpc.CallOption) (*ModifierGroupResponse, error) {
	return invoke[ModifierGroupResponse](ctx, c.cc, "/"+ModifierGroupServiceName+"/GetModifierGroup", in, opts)
}

func (c *modifierGroupServiceClient) ListModifierGroups(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListModifierGroupsResponse, error) {
	return invoke[ListModifierGroupsResponse](ctx, c.cc, "/"+ModifierGroupServiceName+"/ListModifierGroups", in, opts)
}

func (c *modifierGroupServiceClient) UpdateModifierGroup(ctx context.Context, in *UpdateModifierGroupRequest, opts ...grpc.CallOption) (*ModifierGroupResponse, error) {
	return invoke[ModifierGroupResponse](ctx, c.cc, "/"+ModifierGroupServiceName+"/UpdateModifierGroup", in, opts)
}

func (c *modifierGroupServiceClient) DeleteModifierGroup(ctx context.Context, in *ModifierGroupIDRequest, opts ...grpc.CallOption) (*DeleteModifierGroupResponse, error) {
	return invoke[DeleteModifierGroupResponse](ctx, c.cc, "/"+ModifierGroupServiceName+"/DeleteModifierGroup", in, opts)
}
