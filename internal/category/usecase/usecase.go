package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/treecache"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/validate"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type categoryUseCase struct {
	repo      category.Repository
	cache     *treecache.Cache
	publisher event.Publisher
	assets    storage.Verifier
	langs     validate.Languages
	logger    logger.ZapLogger
}

func NewCategoryUseCase(
	repo category.Repository,
	cache *treecache.Cache,
	publisher event.Publisher,
	assets storage.Verifier,
	langs validate.Languages,
	log logger.ZapLogger,
) category.UseCase {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &categoryUseCase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		assets:    assets,
		langs:     langs,
		logger:    log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	parentID := normalizeParent(input.ParentID)

	var v apperror.Violations
	uc.langs.RequiredText(&v, "name", input.Name)
	if input.SortOrder != nil && *input.SortOrder < 0 {
		v.Add("sort_order", "must be zero or greater")
	}
	if err := v.Err("invalid category"); err != nil {
		return nil, err
	}

	if parentID != nil {
		if err := uc.checkParent(ctx, input.MerchantID, *parentID); err != nil {
			return nil, err
		}
	}
	if err := validate.AssetRefs(ctx, uc.assets, "banners", input.Banners...); err != nil {
		return nil, err
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MerchantID: input.MerchantID,
		ParentID:   parentID,
		Name:       input.Name,
		Banners:    nonNilStrings(input.Banners),
	}

	if err := uc.repo.Create(ctx, cat, input.SortOrder); err != nil {
		return nil, apperror.Database(err, "failed to create category")
	}

	uc.logger.Info("category created", zap.String("merchant_id", cat.MerchantID), zap.String("category_id", cat.ID))
	uc.changed(ctx, event.New(event.CategoryCreated, cat.MerchantID, cat.ID, cat))
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, merchantID, id string) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, merchantID, id)
	if err != nil {
		return nil, apperror.Database(err, "failed to load category")
	}
	if cat == nil {
		return nil, apperror.NotFound("category", id)
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	categories, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Database(err, "failed to list categories")
	}
	return categories, count, nil
}

func (uc *categoryUseCase) UpdateCategory(ctx context.Context, input *dto.UpdateCategoryInput) (*model.Category, error) {
	parentID := normalizeParent(input.ParentID)

	var v apperror.Violations
	uc.langs.RequiredText(&v, "name", input.Name)
	if parentID != nil && *parentID == input.ID {
		v.Add("parent_id", "a category cannot be its own parent")
	}
	if err := v.Err("invalid category"); err != nil {
		return nil, err
	}

	cat, err := uc.GetCategory(ctx, input.MerchantID, input.ID)
	if err != nil {
		return nil, err
	}

	if parentID != nil {
		if err := uc.checkParent(ctx, input.MerchantID, *parentID); err != nil {
			return nil, err
		}
		subs, _, err := uc.repo.CountContents(ctx, input.MerchantID, cat.ID)
		if err != nil {
			return nil, apperror.Database(err, "failed to inspect category")
		}
		if subs > 0 {
			return nil, apperror.New(apperror.CodeInvalidInput, "a category with subcategories cannot become a subcategory")
		}
	}
	if err := validate.AssetRefs(ctx, uc.assets, "banners", input.Banners...); err != nil {
		return nil, err
	}

	cat.ParentID = parentID
	cat.Name = input.Name
	cat.Banners = nonNilStrings(input.Banners)
	cat.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, apperror.Database(err, "failed to update category")
	}

	uc.changed(ctx, event.New(event.CategoryUpdated, cat.MerchantID, cat.ID, cat))
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, input *dto.DeleteCategoryInput) (*dto.DeleteResult, error) {
	if _, err := uc.GetCategory(ctx, input.MerchantID, input.ID); err != nil {
		return nil, err
	}

	if !input.Cascade {
		subs, products, err := uc.repo.CountContents(ctx, input.MerchantID, input.ID)
		if err != nil {
			return nil, apperror.Database(err, "failed to inspect category")
		}
		if subs > 0 || products > 0 {
			return nil, apperror.Conflict("category not empty")
		}
	}

	result, err := uc.repo.DeleteCascade(ctx, input.MerchantID, input.ID)
	if err != nil {
		return nil, apperror.Database(err, "failed to delete category")
	}

	uc.logger.Info("category deleted",
		zap.String("merchant_id", input.MerchantID),
		zap.String("category_id", input.ID),
		zap.Int("categories", len(result.CategoryIDs)),
		zap.Int("products", len(result.ProductIDs)),
	)
	uc.changed(ctx, event.New(event.CategoryDeleted, input.MerchantID, input.ID, event.Removal{
		CategoryIDs: result.CategoryIDs,
		ProductIDs:  result.ProductIDs,
	}))
	return result, nil
}

func (uc *categoryUseCase) ReorderCategories(ctx context.Context, input *dto.ReorderInput) error {
	parentID := normalizeParent(input.ParentID)
	if len(input.OrderedIDs) == 0 {
		return apperror.New(apperror.CodeInvalidInput, "ordered ids are required")
	}

	scope := "categories:" + parentKeyOf(parentID)
	err := uc.cache.WithScopeLock(ctx, input.MerchantID, scope, func() error {
		return uc.repo.ReplaceOrder(ctx, input.MerchantID, parentID, input.OrderedIDs)
	})
	switch {
	case errors.Is(err, model.ErrOrderMismatch):
		return apperror.Wrap(apperror.CodeInvalidInput, err, "ordered ids must be exactly the current siblings")
	case errors.Is(err, treecache.ErrLockBusy):
		return apperror.Wrap(apperror.CodeConflict, err, "categories are being reordered")
	case err != nil:
		return apperror.Database(err, "failed to reorder categories")
	}

	uc.changed(ctx, event.New(event.CategoriesReordered, input.MerchantID, parentKeyOf(parentID), event.Order{
		ScopeID:    parentKeyOf(parentID),
		OrderedIDs: input.OrderedIDs,
	}))
	return nil
}

// checkParent enforces the two-level hierarchy: the parent must exist and be a root.
func (uc *categoryUseCase) checkParent(ctx context.Context, merchantID, parentID string) error {
	parent, err := uc.repo.FindByID(ctx, merchantID, parentID)
	if err != nil {
		return apperror.Database(err, "failed to load parent category")
	}
	if parent == nil {
		return apperror.Referential("parent category %s does not exist", parentID)
	}
	if !parent.IsRoot() {
		return apperror.New(apperror.CodeInvalidInput, "subcategories cannot have subcategories")
	}
	return nil
}

func (uc *categoryUseCase) changed(ctx context.Context, ev event.Event) {
	uc.cache.Invalidate(ctx, ev.MerchantID)
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		uc.logger.Error("failed to publish catalog event",
			zap.String("event_type", string(ev.EventType)),
			zap.String("entity_id", ev.EntityID),
			zap.Error(err),
		)
	}
}

func normalizeParent(parentID *string) *string {
	if parentID == nil || *parentID == "" {
		return nil
	}
	id := *parentID
	return &id
}

func parentKeyOf(parentID *string) string {
	if parentID == nil {
		return ""
	}
	return *parentID
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
