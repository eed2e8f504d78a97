package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/treecache"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/validate"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultSearchLimit = 20

type productUseCase struct {
	repo       product.Repository
	categories category.Repository
	modifiers  modifier.Repository
	cache      *treecache.Cache
	publisher  event.Publisher
	assets     storage.Verifier
	searcher   product.Searcher
	trees      product.TreeSource
	langs      validate.Languages
	logger     logger.ZapLogger
}

// NewProductUseCase wires the product use case. cache, assets and searcher are optional.
func NewProductUseCase(
	repo product.Repository,
	categories category.Repository,
	modifiers modifier.Repository,
	cache *treecache.Cache,
	publisher event.Publisher,
	assets storage.Verifier,
	searcher product.Searcher,
	trees product.TreeSource,
	langs validate.Languages,
	log logger.ZapLogger,
) product.UseCase {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	return &productUseCase{
		repo:       repo,
		categories: categories,
		modifiers:  modifiers,
		cache:      cache,
		publisher:  publisher,
		assets:     assets,
		searcher:   searcher,
		trees:      trees,
		langs:      langs,
		logger:     log,
	}
}

// productFields is what create and update have in common.
type productFields struct {
	merchantID       string
	categoryID       string
	name             model.LocalizedText
	description      model.LocalizedText
	price            decimal.Decimal
	imageRef         string
	hasVariants      bool
	variants         []dto.VariantInput
	modifierGroupIDs []string
}

func (uc *productUseCase) check(ctx context.Context, f *productFields) ([]string, error) {
	var v apperror.Violations
	uc.langs.RequiredText(&v, "name", f.name)
	uc.langs.OptionalText(&v, "description", f.description)
	validate.NonNegativePrice(&v, "price", f.price)
	if strings.TrimSpace(f.categoryID) == "" {
		v.Add("category_id", "is required")
	}
	if f.hasVariants && len(f.variants) == 0 {
		v.Add("variants", "at least one variant is required when has_variants is set")
	}
	for i, variant := range f.variants {
		uc.langs.RequiredText(&v, fmt.Sprintf("variants[%d].name", i), variant.Name)
		validate.NonNegativePrice(&v, fmt.Sprintf("variants[%d].price", i), variant.Price)
	}
	if err := v.Err("invalid product"); err != nil {
		return nil, err
	}

	cat, err := uc.categories.FindByID(ctx, f.merchantID, f.categoryID)
	if err != nil {
		return nil, apperror.Database(err, "failed to load category")
	}
	if cat == nil {
		return nil, apperror.Referential("category %s does not exist", f.categoryID)
	}

	groupIDs := dedupe(f.modifierGroupIDs)
	if err := uc.checkModifierGroups(ctx, f.merchantID, groupIDs); err != nil {
		return nil, err
	}
	if f.imageRef != "" {
		if err := validate.AssetRefs(ctx, uc.assets, "image_ref", f.imageRef); err != nil {
			return nil, err
		}
	}
	return groupIDs, nil
}

func (uc *productUseCase) checkModifierGroups(ctx context.Context, merchantID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	groups, err := uc.modifiers.FindByIDs(ctx, merchantID, ids)
	if err != nil {
		return apperror.Database(err, "failed to load modifier groups")
	}
	byID := make(map[string]model.ModifierGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}
	for _, id := range ids {
		g, ok := byID[id]
		if !ok {
			return apperror.Referential("modifier group %s does not exist", id)
		}
		if len(g.Options) == 0 {
			return apperror.Newf(apperror.CodeInvalidInput, "modifier group %s has no options", id)
		}
	}
	return nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	fields := &productFields{
		merchantID:       input.MerchantID,
		categoryID:       input.CategoryID,
		name:             input.Name,
		description:      input.Description,
		price:            input.Price,
		imageRef:         input.ImageRef,
		hasVariants:      input.HasVariants,
		variants:         input.Variants,
		modifierGroupIDs: input.ModifierGroupIDs,
	}
	groupIDs, err := uc.check(ctx, fields)
	if err != nil {
		return nil, err
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	now := time.Now()
	p := &model.Product{
		BaseModel:        model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		MerchantID:       input.MerchantID,
		CategoryID:       input.CategoryID,
		Name:             input.Name,
		Description:      input.Description,
		Price:            input.Price,
		ImageRef:         optional(input.ImageRef),
		IsAvailable:      available,
		IsOffer:          input.IsOffer,
		IsHighlight:      input.IsHighlight,
		HasVariants:      input.HasVariants,
		Variants:         variants(input.Variants),
		ModifierGroupIDs: groupIDs,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, apperror.Database(err, "failed to create product")
	}

	uc.logger.Info("product created", zap.String("merchant_id", p.MerchantID), zap.String("product_id", p.ID))
	uc.changed(ctx, event.New(event.ProductCreated, p.MerchantID, p.ID, p))
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, merchantID, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, merchantID, id)
	if err != nil {
		return nil, apperror.Database(err, "failed to load product")
	}
	if p == nil {
		return nil, apperror.NotFound("product", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, apperror.Database(err, "failed to list products")
	}
	return products, count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	fields := &productFields{
		merchantID:       input.MerchantID,
		categoryID:       input.CategoryID,
		name:             input.Name,
		description:      input.Description,
		price:            input.Price,
		imageRef:         input.ImageRef,
		hasVariants:      input.HasVariants,
		variants:         input.Variants,
		modifierGroupIDs: input.ModifierGroupIDs,
	}
	groupIDs, err := uc.check(ctx, fields)
	if err != nil {
		return nil, err
	}

	p, err := uc.GetProduct(ctx, input.MerchantID, input.ID)
	if err != nil {
		return nil, err
	}

	p.CategoryID = input.CategoryID
	p.Name = input.Name
	p.Description = input.Description
	p.Price = input.Price
	p.ImageRef = optional(input.ImageRef)
	p.IsOffer = input.IsOffer
	p.IsHighlight = input.IsHighlight
	p.HasVariants = input.HasVariants
	p.Variants = variants(input.Variants)
	p.ModifierGroupIDs = groupIDs
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, apperror.Database(err, "failed to update product")
	}

	uc.changed(ctx, event.New(event.ProductUpdated, p.MerchantID, p.ID, p))
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, merchantID, id string) error {
	deleted, err := uc.repo.Delete(ctx, merchantID, id)
	if err != nil {
		return apperror.Database(err, "failed to delete product")
	}
	if !deleted {
		return apperror.NotFound("product", id)
	}

	uc.changed(ctx, event.New(event.ProductDeleted, merchantID, id, event.Removal{ProductIDs: []string{id}}))
	return nil
}

func (uc *productUseCase) ToggleAvailability(ctx context.Context, merchantID, id string) (*model.Product, error) {
	p, err := uc.repo.ToggleAvailability(ctx, merchantID, id)
	return uc.availabilityChanged(ctx, merchantID, id, p, err)
}

func (uc *productUseCase) SetAvailability(ctx context.Context, merchantID, id string, available bool) (*model.Product, error) {
	p, err := uc.repo.SetAvailability(ctx, merchantID, id, available)
	return uc.availabilityChanged(ctx, merchantID, id, p, err)
}

func (uc *productUseCase) availabilityChanged(ctx context.Context, merchantID, id string, p *model.Product, err error) (*model.Product, error) {
	if err != nil {
		return nil, apperror.Database(err, "failed to change product availability")
	}
	if p == nil {
		return nil, apperror.NotFound("product", id)
	}
	uc.logger.Info("product availability changed",
		zap.String("merchant_id", merchantID),
		zap.String("product_id", id),
		zap.Bool("is_available", p.IsAvailable),
	)
	uc.changed(ctx, event.New(event.AvailabilityChanged, merchantID, id, p))
	return p, nil
}

func (uc *productUseCase) ReorderProducts(ctx context.Context, input *dto.ReorderInput) error {
	if input.CategoryID == "" || len(input.OrderedIDs) == 0 {
		return apperror.New(apperror.CodeInvalidInput, "category id and ordered ids are required")
	}

	err := uc.cache.WithScopeLock(ctx, input.MerchantID, "products:"+input.CategoryID, func() error {
		return uc.repo.ReplaceOrder(ctx, input.MerchantID, input.CategoryID, input.OrderedIDs)
	})
	switch {
	case errors.Is(err, model.ErrOrderMismatch):
		return apperror.Wrap(apperror.CodeInvalidInput, err, "ordered ids must be exactly the products of the category")
	case errors.Is(err, treecache.ErrLockBusy):
		return apperror.Wrap(apperror.CodeConflict, err, "products are being reordered")
	case err != nil:
		return apperror.Database(err, "failed to reorder products")
	}

	uc.changed(ctx, event.New(event.ProductsReordered, input.MerchantID, input.CategoryID, event.Order{
		ScopeID:    input.CategoryID,
		OrderedIDs: input.OrderedIDs,
	}))
	return nil
}

// MoveProduct attaches a product to another category, at the end of it.
func (uc *productUseCase) MoveProduct(ctx context.Context, input *dto.MoveInput) (*model.Product, error) {
	p, err := uc.GetProduct(ctx, input.MerchantID, input.ID)
	if err != nil {
		return nil, err
	}
	if p.CategoryID == input.CategoryID {
		return p, nil
	}

	cat, err := uc.categories.FindByID(ctx, input.MerchantID, input.CategoryID)
	if err != nil {
		return nil, apperror.Database(err, "failed to load category")
	}
	if cat == nil {
		return nil, apperror.Referential("category %s does not exist", input.CategoryID)
	}

	next, err := uc.repo.Move(ctx, input.MerchantID, p.ID, input.CategoryID)
	if err != nil {
		return nil, apperror.Database(err, "failed to move product")
	}
	p.CategoryID = input.CategoryID
	p.SortOrder = next
	p.UpdatedAt = time.Now()

	uc.changed(ctx, event.New(event.ProductMoved, p.MerchantID, p.ID, p))
	return p, nil
}

// SearchProducts ranks with the search index when one is configured and falls
// back to a substring match over the catalog tree otherwise or when the index fails.
func (uc *productUseCase) SearchProducts(ctx context.Context, input *dto.SearchInput) ([]tree.ListedProduct, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	t, err := uc.trees.GetTree(ctx, input.MerchantID, true)
	if err != nil {
		return nil, err
	}
	listed := tree.ListProducts(t, tree.Query{Lang: input.Lang, PrimaryLang: uc.langs.Primary})

	query := strings.TrimSpace(input.Query)
	if uc.searcher != nil && query != "" {
		ids, err := uc.searcher.SearchProductIDs(ctx, input.MerchantID, query, limit)
		if err == nil {
			return pick(listed, ids), nil
		}
		uc.logger.Error("search index failed, falling back to the catalog tree",
			zap.String("merchant_id", input.MerchantID), zap.Error(err))
	}

	out := tree.ListProducts(t, tree.Query{SearchTerm: query, Lang: input.Lang, PrimaryLang: uc.langs.Primary})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (uc *productUseCase) changed(ctx context.Context, ev event.Event) {
	uc.cache.Invalidate(ctx, ev.MerchantID)
	if err := uc.publisher.Publish(ctx, ev); err != nil {
		uc.logger.Error("failed to publish catalog event",
			zap.String("event_type", string(ev.EventType)),
			zap.String("entity_id", ev.EntityID),
			zap.Error(err),
		)
	}
}

// pick returns the listed products named by ids, in ids order. Ids the tree
// does not know (stale index entries) are skipped.
func pick(listed []tree.ListedProduct, ids []string) []tree.ListedProduct {
	byID := make(map[string]tree.ListedProduct, len(listed))
	for _, lp := range listed {
		byID[lp.ID] = lp
	}
	out := make([]tree.ListedProduct, 0, len(ids))
	for _, id := range ids {
		if lp, ok := byID[id]; ok {
			out = append(out, lp)
		}
	}
	return out
}

// dedupe drops repeated ids, keeping the first occurrence.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func variants(in []dto.VariantInput) []model.ProductVariant {
	out := make([]model.ProductVariant, len(in))
	for i, v := range in {
		out[i] = model.ProductVariant{Position: i, Name: v.Name, Price: v.Price}
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
