package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

// Repository persists products together with their variants and modifier group
// links. Lookups return nil, nil when nothing matches.
type Repository interface {
	// Create appends the product to its category and sets its SortOrder.
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, merchantID, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	// Update rewrites everything except is_available, replacing variants and links.
	// The stored position is kept unless the category changes, in which case the
	// product is appended to the new one. SortOrder is set either way.
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, merchantID, id string) (bool, error)

	// ToggleAvailability flips is_available and nothing else.
	ToggleAvailability(ctx context.Context, merchantID, id string) (*model.Product, error)
	SetAvailability(ctx context.Context, merchantID, id string, available bool) (*model.Product, error)

	ReplaceOrder(ctx context.Context, merchantID, categoryID string, orderedIDs []string) error
	// Move appends the product to categoryID and returns its new position.
	Move(ctx context.Context, merchantID, id, categoryID string) (int, error)
}
