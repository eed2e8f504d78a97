package handler

import (
	"context"

	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/grpcutil"
	"github.com/fekuna/omnipos-catalog-service/internal/mapper"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
)

var _ catalogv1.CategoryServiceServer = (*CategoryHandler)(nil)

type CategoryHandler struct {
	catalogv1.UnimplementedCategoryServiceServer
	uc     category.UseCase
	errs   *grpcutil.Errors
	logger logger.ZapLogger
}

func NewCategoryHandler(uc category.UseCase, errs *grpcutil.Errors, log logger.ZapLogger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		errs:   errs,
		logger: log,
	}
}

func (h *CategoryHandler) CreateCategory(ctx context.Context, req *catalogv1.CreateCategoryRequest) (*catalogv1.CategoryResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	input := &dto.CreateCategoryInput{
		MerchantID: merchantID,
		Name:       req.Name,
		Banners:    req.Banners,
	}
	if req.ParentID != "" {
		input.ParentID = &req.ParentID
	}
	if req.SortOrder != nil {
		order := int(*req.SortOrder)
		input.SortOrder = &order
	}

	cat, err := h.uc.CreateCategory(ctx, input)
	if err != nil {
		return nil, h.errs.Status(ctx, "create category", err)
	}
	return &catalogv1.CategoryResponse{Category: mapper.CategoryToAPI(cat)}, nil
}

func (h *CategoryHandler) GetCategory(ctx context.Context, req *catalogv1.GetCategoryRequest) (*catalogv1.CategoryResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := h.uc.GetCategory(ctx, merchantID, req.ID)
	if err != nil {
		return nil, h.errs.Status(ctx, "get category", err)
	}
	return &catalogv1.CategoryResponse{Category: mapper.CategoryToAPI(cat)}, nil
}

func (h *CategoryHandler) ListCategories(ctx context.Context, req *catalogv1.ListCategoriesRequest) (*catalogv1.ListCategoriesResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	filters := &dto.CategoryFilters{
		MerchantID: merchantID,
		ParentID:   req.ParentID,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	}

	cats, count, err := h.uc.ListCategories(ctx, filters)
	if err != nil {
		return nil, h.errs.Status(ctx, "list categories", err)
	}

	out := make([]catalogv1.Category, len(cats))
	for i := range cats {
		out[i] = mapper.CategoryToAPI(&cats[i])
	}
	return &catalogv1.ListCategoriesResponse{Categories: out, Total: int32(count)}, nil
}

func (h *CategoryHandler) UpdateCategory(ctx context.Context, req *catalogv1.UpdateCategoryRequest) (*catalogv1.CategoryResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	input := &dto.UpdateCategoryInput{
		ID:         req.ID,
		MerchantID: merchantID,
		Name:       req.Name,
		Banners:    req.Banners,
	}
	if req.ParentID != "" {
		input.ParentID = &req.ParentID
	}

	cat, err := h.uc.UpdateCategory(ctx, input)
	if err != nil {
		return nil, h.errs.Status(ctx, "update category", err)
	}
	return &catalogv1.CategoryResponse{Category: mapper.CategoryToAPI(cat)}, nil
}

func (h *CategoryHandler) DeleteCategory(ctx context.Context, req *catalogv1.DeleteCategoryRequest) (*catalogv1.DeleteCategoryResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.uc.DeleteCategory(ctx, &dto.DeleteCategoryInput{
		ID:         req.ID,
		MerchantID: merchantID,
		Cascade:    req.Cascade,
	})
	if err != nil {
		return nil, h.errs.Status(ctx, "delete category", err)
	}
	return &catalogv1.DeleteCategoryResponse{
		DeletedCategoryIDs: result.CategoryIDs,
		DeletedProductIDs:  result.ProductIDs,
	}, nil
}

func (h *CategoryHandler) ReorderCategories(ctx context.Context, req *catalogv1.ReorderCategoriesRequest) (*catalogv1.Empty, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	input := &dto.ReorderInput{
		MerchantID: merchantID,
		OrderedIDs: req.OrderedIDs,
	}
	if req.ParentID != "" {
		input.ParentID = &req.ParentID
	}
	if err := h.uc.ReorderCategories(ctx, input); err != nil {
		return nil, h.errs.Status(ctx, "reorder categories", err)
	}
	return &catalogv1.Empty{}, nil
}
