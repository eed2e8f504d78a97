package handler

import (
	"context"

	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/grpcutil"
	"github.com/fekuna/omnipos-catalog-service/internal/mapper"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

var _ catalogv1.ProductServiceServer = (*ProductHandler)(nil)

type ProductHandler struct {
	catalogv1.UnimplementedProductServiceServer
	uc     product.UseCase
	errs   *grpcutil.Errors
	url    mapper.URLFunc
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, errs *grpcutil.Errors, url mapper.URLFunc, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		errs:   errs,
		url:    url,
		logger: log,
	}
}

func (h *ProductHandler) respond(p *model.Product) *catalogv1.ProductResponse {
	return &catalogv1.ProductResponse{Product: mapper.ProductToAPI(p, h.url)}
}

func variantInputs(variants []catalogv1.Variant) []dto.VariantInput {
	out := make([]dto.VariantInput, len(variants))
	for i, v := range variants {
		out[i] = dto.VariantInput{Name: v.Name, Price: v.Price}
	}
	return out
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *catalogv1.CreateProductRequest) (*catalogv1.ProductResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.CreateProduct(ctx, &dto.CreateProductInput{
		MerchantID:       merchantID,
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		ImageRef:         req.ImageRef,
		IsAvailable:      req.IsAvailable,
		IsOffer:          req.IsOffer,
		IsHighlight:      req.IsHighlight,
		HasVariants:      req.HasVariants,
		Variants:         variantInputs(req.Variants),
		ModifierGroupIDs: req.ModifierGroupIDs,
	})
	if err != nil {
		return nil, h.errs.Status(ctx, "create product", err)
	}
	return h.respond(p), nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *catalogv1.ProductIDRequest) (*catalogv1.ProductResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.GetProduct(ctx, merchantID, req.ID)
	if err != nil {
		return nil, h.errs.Status(ctx, "get product", err)
	}
	return h.respond(p), nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *catalogv1.UpdateProductRequest) (*catalogv1.ProductResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.UpdateProduct(ctx, &dto.UpdateProductInput{
		ID:               req.ID,
		MerchantID:       merchantID,
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		ImageRef:         req.ImageRef,
		IsOffer:          req.IsOffer,
		IsHighlight:      req.IsHighlight,
		HasVariants:      req.HasVariants,
		Variants:         variantInputs(req.Variants),
		ModifierGroupIDs: req.ModifierGroupIDs,
	})
	if err != nil {
		return nil, h.errs.Status(ctx, "update product", err)
	}
	return h.respond(p), nil
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *catalogv1.ProductIDRequest) (*catalogv1.Empty, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.uc.DeleteProduct(ctx, merchantID, req.ID); err != nil {
		return nil, h.errs.Status(ctx, "delete product", err)
	}
	h.logger.Info("product deleted", zap.String("merchant_id", merchantID), zap.String("product_id", req.ID))
	return &catalogv1.Empty{}, nil
}

func (h *ProductHandler) ToggleAvailability(ctx context.Context, req *catalogv1.ProductIDRequest) (*catalogv1.ProductResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.ToggleAvailability(ctx, merchantID, req.ID)
	if err != nil {
		return nil, h.errs.Status(ctx, "toggle availability", err)
	}
	return h.respond(p), nil
}

func (h *ProductHandler) SetAvailability(ctx context.Context, req *catalogv1.SetAvailabilityRequest) (*catalogv1.ProductResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.SetAvailability(ctx, merchantID, req.ID, req.IsAvailable)
	if err != nil {
		return nil, h.errs.Status(ctx, "set availability", err)
	}
	return h.respond(p), nil
}

func (h *ProductHandler) ReorderProducts(ctx context.Context, req *catalogv1.ReorderProductsRequest) (*catalogv1.Empty, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	err = h.uc.ReorderProducts(ctx, &dto.ReorderInput{
		MerchantID: merchantID,
		CategoryID: req.CategoryID,
		OrderedIDs: req.OrderedIDs,
	})
	if err != nil {
		return nil, h.errs.Status(ctx, "reorder products", err)
	}
	return &catalogv1.Empty{}, nil
}

func (h *ProductHandler) MoveProduct(ctx context.Context, req *catalogv1.MoveProductRequest) (*catalogv1.ProductResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := h.uc.MoveProduct(ctx, &dto.MoveInput{
		ID:         req.ID,
		MerchantID: merchantID,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return nil, h.errs.Status(ctx, "move product", err)
	}
	return h.respond(p), nil
}

func (h *ProductHandler) SearchProducts(ctx context.Context, req *catalogv1.SearchProductsRequest) (*catalogv1.SearchProductsResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	lang := req.Lang
	if lang == "" {
		lang = auth.GetLanguage(ctx)
	}
	found, err := h.uc.SearchProducts(ctx, &dto.SearchInput{
		MerchantID: merchantID,
		Query:      req.Query,
		Lang:       lang,
		Limit:      int(req.Limit),
	})
	if err != nil {
		return nil, h.errs.Status(ctx, "search products", err)
	}
	return &catalogv1.SearchProductsResponse{Products: mapper.ListedToAPI(found, h.url)}, nil
}
