// Package catalog serves the assembled, read-only views of a merchant's catalog.
package catalog

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
)

type UseCase interface {
	GetTree(ctx context.Context, merchantID string, includeUnavailable bool) (tree.Tree, error)
	ListProducts(ctx context.Context, merchantID string, query tree.Query, includeUnavailable bool) ([]tree.ListedProduct, error)
	GetGateState(ctx context.Context, merchantID string) (tree.GateState, error)
	GetProductDisplay(ctx context.Context, merchantID, productID, lang string) (*tree.DisplayProduct, error)
}
