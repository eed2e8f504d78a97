package modifier

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, group *model.ModifierGroup) error
	FindByID(ctx context.Context, merchantID, id string) (*model.ModifierGroup, error)
	// FindByIDs returns the groups that exist, in no particular order.
	FindByIDs(ctx context.Context, merchantID string, ids []string) ([]model.ModifierGroup, error)
	FindAll(ctx context.Context, merchantID string) ([]model.ModifierGroup, error)
	Update(ctx context.Context, group *model.ModifierGroup) error
	// Delete removes the group and its links from every product in one
	// transaction. It reports whether the group existed and how many products
	// lost the link.
	Delete(ctx context.Context, merchantID, id string) (found bool, detached int, err error)
}
