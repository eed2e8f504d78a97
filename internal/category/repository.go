package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	// Create inserts the category and sets its SortOrder. A nil at appends it to
	// its siblings; otherwise siblings at or after *at shift down one place.
	Create(ctx context.Context, category *model.Category, at *int) error
	FindByID(ctx context.Context, merchantID, id string) (*model.Category, error)
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
	// Update keeps the stored position unless the parent changes, in which case
	// the category is appended to its new siblings. SortOrder is set either way.
	Update(ctx context.Context, category *model.Category) error

	// CountContents returns the number of direct subcategories and of products
	// attached to the category or to any of its subcategories.
	CountContents(ctx context.Context, merchantID, id string) (subcategories int, products int, err error)
	// DeleteCascade removes the category, its subcategories and all their products in one transaction.
	DeleteCascade(ctx context.Context, merchantID, id string) (*dto.DeleteResult, error)

	// Ordering within a sibling scope; parentID nil means root categories.
	ListSiblingIDs(ctx context.Context, merchantID string, parentID *string) ([]string, error)
	ReplaceOrder(ctx context.Context, merchantID string, parentID *string, orderedIDs []string) error
}
