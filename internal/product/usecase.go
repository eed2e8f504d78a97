package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, merchantID, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, merchantID, id string) error

	ToggleAvailability(ctx context.Context, merchantID, id string) (*model.Product, error)
	SetAvailability(ctx context.Context, merchantID, id string, available bool) (*model.Product, error)
	ReorderProducts(ctx context.Context, input *dto.ReorderInput) error
	MoveProduct(ctx context.Context, input *dto.MoveInput) (*model.Product, error)

	SearchProducts(ctx context.Context, input *dto.SearchInput) ([]tree.ListedProduct, error)
}

// Searcher ranks product ids for a free-text query, best match first.
type Searcher interface {
	SearchProductIDs(ctx context.Context, merchantID, query string, limit int) ([]string, error)
}

// TreeSource provides the merchant's catalog tree.
type TreeSource interface {
	GetTree(ctx context.Context, merchantID string, includeUnavailable bool) (tree.Tree, error)
}
