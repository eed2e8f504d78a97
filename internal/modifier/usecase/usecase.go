package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/treecache"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/validate"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

type modifierUseCase struct {
	repo      modifier.Repository
	cache     *treecache.Cache
	publisher event.Publisher
	langs     validate.Languages
	logger    logger.ZapLogger
}

func NewModifierUseCase(
	repo modifier.Repository,
	cache *treecache.Cache,
	publisher event.Publisher,
	langs validate.Languages,
	log logger.ZapLogger,
) modifier.UseCase {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &modifierUseCase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		langs:     langs,
		logger:    log,
	}
}

func (uc *modifierUseCase) validate(input *dto.ModifierGroupInput) error {
	var v apperror.Violations
	uc.langs.RequiredText(&v, "name", input.Name)
	if input.MinSelection < 0 {
		v.Add("min_selection", "must be zero or greater")
	}
	if input.MaxSelection < input.MinSelection {
		v.Add("max_selection", "must be greater than or equal to min_selection")
	}
	if len(input.Options) == 0 {
		v.Add("options", "at least one option is required")
	}
	for i, o := range input.Options {
		uc.langs.RequiredText(&v, fmt.Sprintf("options[%d].name", i), o.Name)
		validate.NonNegativePrice(&v, fmt.Sprintf("options[%d].price", i), o.Price)
	}
	return v.Err("invalid modifier group")
}

func (uc *modifierUseCase) CreateModifierGroup(ctx context.Context, input *dto.ModifierGroupInput) (*model.ModifierGroup, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	now := time.Now()
	group := &model.ModifierGroup{
		BaseModel:    model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		MerchantID:   input.MerchantID,
		Name:         input.Name,
		MinSelection: input.MinSelection,
		MaxSelection: input.MaxSelection,
		Options:      append(model.ModifierOptions{}, input.Options...),
	}
	if err := uc.repo.Create(ctx, group); err != nil {
		return nil, apperror.Database(err, "failed to create modifier group")
	}

	uc.changed(ctx, event.New(event.ModifierGroupCreated, group.MerchantID, group.ID, group))
	return group, nil
}

func (uc *modifierUseCase) GetModifierGroup(ctx context.Context, merchantID, id string) (*model.ModifierGroup, error) {
	group, err := uc.repo.FindByID(ctx, merchantID, id)
	if err != nil {
		return nil, apperror.Database(err, "failed to load modifier group")
	}
	if group == nil {
		return nil, apperror.NotFound("modifier group", id)
	}
	return group, nil
}

// ListModifierGroups orders groups by their primary-language name, then id.
func (uc *modifierUseCase) ListModifierGroups(ctx context.Context, merchantID string) ([]model.ModifierGroup, error) {
	groups, err := uc.repo.FindAll(ctx, merchantID)
	if err != nil {
		return nil, apperror.Database(err, "failed to list modifier groups")
	}
	fold := cases.Fold()
	keys := make(map[string]string, len(groups))
	for _, g := range groups {
		keys[g.ID] = fold.String(g.Name.Resolve(uc.langs.Primary, uc.langs.Primary))
	}
	sort.SliceStable(groups, func(i, j int) bool {
		ki, kj := keys[groups[i].ID], keys[groups[j].ID]
		if ki != kj {
			return ki < kj
		}
		return groups[i].ID < groups[j].ID
	})
	return groups, nil
}

func (uc *modifierUseCase) UpdateModifierGroup(ctx context.Context, input *dto.UpdateModifierGroupInput) (*model.ModifierGroup, error) {
	if err := uc.validate(&input.ModifierGroupInput); err != nil {
		return nil, err
	}
	group, err := uc.GetModifierGroup(ctx, input.MerchantID, input.ID)
	if err != nil {
		return nil, err
	}

	group.Name = input.Name
	group.MinSelection = input.MinSelection
	group.MaxSelection = input.MaxSelection
	group.Options = append(model.ModifierOptions{}, input.Options...)
	group.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, group); err != nil {
		return nil, apperror.Database(err, "failed to update modifier group")
	}

	uc.changed(ctx, event.New(event.ModifierGroupUpdated, group.MerchantID, group.ID, group))
	return group, nil
}

func (uc *modifierUseCase) DeleteModifierGroup(ctx context.Context, merchantID, id string) (int, error) {
	found, detached, err := uc.repo.Delete(ctx, merchantID, id)
	if err != nil {
		return 0, apperror.Database(err, "failed to delete modifier group")
	}
	if !found {
		return 0, apperror.NotFound("modifier group", id)
	}

	uc.logger.Info("modifier group deleted",
		zap.String("merchant_id", merchantID),
		zap.String("modifier_group_id", id),
		zap.Int("detached_products", detached),
	)
	uc.changed(ctx, event.New(event.ModifierGroupDeleted, merchantID, id, map[string]int{"detached_products": detached}))
	return detached, nil
}

func (uc *modifierUseCase) changed(ctx context.Context, ev event.Event) {
	uc.cache.Invalidate(ctx, ev.MerchantID)
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		uc.logger.Error("failed to publish catalog event",
			zap.String("event_type", string(ev.EventType)),
			zap.String("entity_id", ev.EntityID),
			zap.Error(err),
		)
	}
}
