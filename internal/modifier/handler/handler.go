package handler

import (
	"context"

	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/grpcutil"
	"github.com/fekuna/omnipos-catalog-service/internal/mapper"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
)

var _ catalogv1.ModifierGroupServiceServer = (*ModifierGroupHandler)(nil)

type ModifierGroupHandler struct {
	catalogv1.UnimplementedModifierGroupServiceServer
	uc     modifier.UseCase
	errs   *grpcutil.Errors
	logger logger.ZapLogger
}

func NewModifierGroupHandler(uc modifier.UseCase, errs *grpcutil.Errors, log logger.ZapLogger) *ModifierGroupHandler {
	return &ModifierGroupHandler{
		uc:     uc,
		errs:   errs,
		logger: log,
	}
}

func (h *ModifierGroupHandler) CreateModifierGroup(ctx context.Context, req *catalogv1.CreateModifierGroupRequest) (*catalogv1.ModifierGroupResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := h.uc.CreateModifierGroup(ctx, &dto.ModifierGroupInput{
		MerchantID:   merchantID,
		Name:         req.Name,
		MinSelection: int(req.MinSelection),
		MaxSelection: int(req.MaxSelection),
		Options:      mapper.ModifierOptionsFromAPI(req.Options),
	})
	if err != nil {
		return nil, h.errs.Status(ctx, "create modifier group", err)
	}
	return &catalogv1.ModifierGroupResponse{Group: mapper.ModifierGroupToAPI(group)}, nil
}

func (h *ModifierGroupHandler) GetModifierGroup(ctx context.Context, req *catalogv1.ModifierGroupIDRequest) (*catalogv1.ModifierGroupResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := h.uc.GetModifierGroup(ctx, merchantID, req.ID)
	if err != nil {
		return nil, h.errs.Status(ctx, "get modifier group", err)
	}
	return &catalogv1.ModifierGroupResponse{Group: mapper.ModifierGroupToAPI(group)}, nil
}

func (h *ModifierGroupHandler) ListModifierGroups(ctx context.Context, _ *catalogv1.Empty) (*catalogv1.ListModifierGroupsResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := h.uc.ListModifierGroups(ctx, merchantID)
	if err != nil {
		return nil, h.errs.Status(ctx, "list modifier groups", err)
	}
	out := make([]catalogv1.ModifierGroup, len(groups))
	for i := range groups {
		out[i] = mapper.ModifierGroupToAPI(&groups[i])
	}
	return &catalogv1.ListModifierGroupsResponse{Groups: out}, nil
}

func (h *ModifierGroupHandler) UpdateModifierGroup(ctx context.Context, req *catalogv1.UpdateModifierGroupRequest) (*catalogv1.ModifierGroupResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	group, err := h.uc.UpdateModifierGroup(ctx, &dto.UpdateModifierGroupInput{
		ID: req.ID,
		ModifierGroupInput: dto.ModifierGroupInput{
			MerchantID:   merchantID,
			Name:         req.Name,
			MinSelection: int(req.MinSelection),
			MaxSelection: int(req.MaxSelection),
			Options:      mapper.ModifierOptionsFromAPI(req.Options),
		},
	})
	if err != nil {
		return nil, h.errs.Status(ctx, "update modifier group", err)
	}
	return &catalogv1.ModifierGroupResponse{Group: mapper.ModifierGroupToAPI(group)}, nil
}

func (h *ModifierGroupHandler) DeleteModifierGroup(ctx context.Context, req *catalogv1.ModifierGroupIDRequest) (*catalogv1.DeleteModifierGroupResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	detached, err := h.uc.DeleteModifierGroup(ctx, merchantID, req.ID)
	if err != nil {
		return nil, h.errs.Status(ctx, "delete modifier group", err)
	}
	return &catalogv1.DeleteModifierGroupResponse{DetachedProducts: int32(detached)}, nil
}
