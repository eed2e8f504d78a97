package session

import (
	"context"

	catalogv1 "github.com/fekuna/omnipos-catalog-service/api/catalog/v1"
	"github.com/fekuna/omnipos-catalog-service/internal/auth"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/mapper"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

var _ Backend = (*GRPCBackend)(nil)

// GRPCBackend talks to the catalog service on behalf of one merchant.
type GRPCBackend struct {
	catalog    catalogv1.CatalogServiceClient
	categories catalogv1.CategoryServiceClient
	products   catalogv1.ProductServiceClient
	merchantID string
	lang       string
}

func NewGRPCBackend(cc grpc.ClientConnInterface, merchantID, lang string) *GRPCBackend {
	return &GRPCBackend{
		catalog:    catalogv1.NewCatalogServiceClient(cc),
		categories: catalogv1.NewCategoryServiceClient(cc),
		products:   catalogv1.NewProductServiceClient(cc),
		merchantID: merchantID,
		lang:       lang,
	}
}

func (b *GRPCBackend) outgoing(ctx context.Context) context.Context {
	pairs := []string{auth.MerchantHeader, b.merchantID}
	if b.lang != "" {
		pairs = append(pairs, auth.LanguageHeader, b.lang)
	}
	return metadata.AppendToOutgoingContext(ctx, pairs...)
}

func (b *GRPCBackend) FetchTree(ctx context.Context, includeUnavailable bool) (tree.Tree, error) {
	res, err := b.catalog.GetTree(b.outgoing(ctx), &catalogv1.GetTreeRequest{IncludeUnavailable: includeUnavailable})
	if err != nil {
		return tree.Tree{}, err
	}
	return mapper.TreeFromAPI(res.Categories, b.merchantID), nil
}

func (b *GRPCBackend) PersistCategoryOrder(ctx context.Context, parentID string, orderedIDs []string) error {
	_, err := b.categories.ReorderCategories(b.outgoing(ctx), &catalogv1.ReorderCategoriesRequest{
		ParentID:   parentID,
		OrderedIDs: orderedIDs,
	})
	return err
}

func (b *GRPCBackend) PersistProductOrder(ctx context.Context, categoryID string, orderedIDs []string) error {
	_, err := b.products.ReorderProducts(b.outgoing(ctx), &catalogv1.ReorderProductsRequest{
		CategoryID: categoryID,
		OrderedIDs: orderedIDs,
	})
	return err
}

func (b *GRPCBackend) ToggleAvailability(ctx context.Context, productID string) (model.Product, error) {
	res, err := b.products.ToggleAvailability(b.outgoing(ctx), &catalogv1.ProductIDRequest{ID: productID})
	if err != nil {
		return model.Product{}, err
	}
	return mapper.ProductFromAPI(res.Product, b.merchantID), nil
}

func (b *GRPCBackend) MoveProduct(ctx context.Context, productID, categoryID string) (model.Product, error) {
	res, err := b.products.MoveProduct(b.outgoing(ctx), &catalogv1.MoveProductRequest{ID: productID, CategoryID: categoryID})
	if err != nil {
		return model.Product{}, err
	}
	return mapper.ProductFromAPI(res.Product, b.merchantID), nil
}
