package handler

import (
	"context"

	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/grpcutil"
	"github.com/fekuna/omnipos-catalog-service/internal/mapper"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
)

var _ catalogv1.CatalogServiceServer = (*CatalogHandler)(nil)

type CatalogHandler struct {
	catalogv1.UnimplementedCatalogServiceServer
	uc     catalog.UseCase
	errs   *grpcutil.Errors
	url    mapper.URLFunc
	logger logger.ZapLogger
}

func NewCatalogHandler(uc catalog.UseCase, errs *grpcutil.Errors, url mapper.URLFunc, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		errs:   errs,
		url:    url,
		logger: log,
	}
}

func (h *CatalogHandler) GetTree(ctx context.Context, req *catalogv1.GetTreeRequest) (*catalogv1.GetTreeResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	t, err := h.uc.GetTree(ctx, merchantID, req.IncludeUnavailable)
	if err != nil {
		return nil, h.errs.Status(ctx, "get tree", err)
	}
	return &catalogv1.GetTreeResponse{Categories: mapper.TreeToAPI(t, h.url)}, nil
}

func (h *CatalogHandler) ListProducts(ctx context.Context, req *catalogv1.ListProductsRequest) (*catalogv1.ListProductsResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	query := tree.Query{
		ScopeCategoryID: req.ScopeCategoryID,
		SearchTerm:      req.SearchTerm,
		Lang:            h.lang(ctx, req.Lang),
	}
	listed, err := h.uc.ListProducts(ctx, merchantID, query, req.IncludeUnavailable)
	if err != nil {
		return nil, h.errs.Status(ctx, "list products", err)
	}
	return &catalogv1.ListProductsResponse{Products: mapper.ListedToAPI(listed, h.url)}, nil
}

func (h *CatalogHandler) GetGateState(ctx context.Context, _ *catalogv1.Empty) (*catalogv1.GetGateStateResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	gate, err := h.uc.GetGateState(ctx, merchantID)
	if err != nil {
		return nil, h.errs.Status(ctx, "get gate state", err)
	}
	return &catalogv1.GetGateStateResponse{Gate: mapper.GateToAPI(gate)}, nil
}

func (h *CatalogHandler) GetProductDisplay(ctx context.Context, req *catalogv1.GetProductDisplayRequest) (*catalogv1.GetProductDisplayResponse, error) {
	merchantID, err := grpcutil.MerchantID(ctx)
	if err != nil {
		return nil, err
	}

	display, err := h.uc.GetProductDisplay(ctx, merchantID, req.ID, h.lang(ctx, req.Lang))
	if err != nil {
		return nil, h.errs.Status(ctx, "get product display", err)
	}
	imageURL := ""
	if display.ImageRef != "" && h.url != nil {
		imageURL = h.url(display.ImageRef)
	}
	return &catalogv1.GetProductDisplayResponse{Product: mapper.DisplayToAPI(*display, imageURL)}, nil
}

// lang prefers the explicit request field over the accept-language header.
func (h *CatalogHandler) lang(ctx context.Context, requested string) string {
	if requested != "" {
		return requested
	}
	return auth.GetLanguage(ctx)
}
