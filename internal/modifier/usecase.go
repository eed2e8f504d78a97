package modifier

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier/dto"
)

type UseCase interface {
	CreateModifierGroup(ctx context.Context, input *dto.ModifierGroupInput) (*model.ModifierGroup, error)
	GetModifierGroup(ctx context.Context, merchantID, id string) (*model.ModifierGroup, error)
	ListModifierGroups(ctx context.Context, merchantID string) ([]model.ModifierGroup, error)
	UpdateModifierGroup(ctx context.Context, input *dto.UpdateModifierGroupInput) (*model.ModifierGroup, error)
	// DeleteModifierGroup returns the number of products the group was detached from.
	DeleteModifierGroup(ctx context.Context, merchantID, id string) (int, error)
}
