package usecase

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/treecache"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	categorydto "github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/modifier"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	productdto "github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type catalogUseCase struct {
	categories  category.Repository
	products    product.Repository
	modifiers   modifier.Repository
	cache       *treecache.Cache
	primaryLang string
	logger      logger.ZapLogger
}

func NewCatalogUseCase(
	categories category.Repository,
	products product.Repository,
	modifiers modifier.Repository,
	cache *treecache.Cache,
	primaryLang string,
	log logger.ZapLogger,
) catalog.UseCase {
	return &catalogUseCase{
		categories:  categories,
		products:    products,
		modifiers:   modifiers,
		cache:       cache,
		primaryLang: primaryLang,
		logger:      log,
	}
}

// GetTree serves from the tree cache and rebuilds from storage on a miss.
func (uc *catalogUseCase) GetTree(ctx context.Context, merchantID string, includeUnavailable bool) (tree.Tree, error) {
	t, gen, ok := uc.cache.Get(ctx, merchantID, includeUnavailable)
	if ok {
		return t, nil
	}

	cats, _, err := uc.categories.FindAll(ctx, &categorydto.CategoryFilters{MerchantID: merchantID})
	if err != nil {
		return tree.Tree{}, apperror.Database(err, "failed to load categories")
	}
	products, _, err := uc.products.FindAll(ctx, &productdto.ProductFilters{
		MerchantID:         merchantID,
		IncludeUnavailable: includeUnavailable,
	})
	if err != nil {
		return tree.Tree{}, apperror.Database(err, "failed to load products")
	}

	t = tree.Build(cats, products)
	uc.logger.Debug("catalog tree built",
		zap.String("merchant_id", merchantID),
		zap.Int("categories", len(cats)),
		zap.Int("products", t.ProductCount()),
	)
	uc.cache.Set(ctx, merchantID, includeUnavailable, gen, t)
	return t, nil
}

func (uc *catalogUseCase) ListProducts(ctx context.Context, merchantID string, query tree.Query, includeUnavailable bool) ([]tree.ListedProduct, error) {
	t, err := uc.GetTree(ctx, merchantID, includeUnavailable)
	if err != nil {
		return nil, err
	}
	if query.PrimaryLang == "" {
		query.PrimaryLang = uc.primaryLang
	}
	return tree.ListProducts(t, query), nil
}

// GetGateState looks at every product, available or not: an unavailable
// product still means the catalog is set up.
func (uc *catalogUseCase) GetGateState(ctx context.Context, merchantID string) (tree.GateState, error) {
	t, err := uc.GetTree(ctx, merchantID, true)
	if err != nil {
		return tree.GateState{}, err
	}
	return tree.ComputeGateState(t), nil
}

func (uc *catalogUseCase) GetProductDisplay(ctx context.Context, merchantID, productID, lang string) (*tree.DisplayProduct, error) {
	p, err := uc.products.FindByID(ctx, merchantID, productID)
	if err != nil {
		return nil, apperror.Database(err, "failed to load product")
	}
	if p == nil {
		return nil, apperror.NotFound("product", productID)
	}

	groups := map[string]model.ModifierGroup{}
	if len(p.ModifierGroupIDs) > 0 {
		found, err := uc.modifiers.FindByIDs(ctx, merchantID, p.ModifierGroupIDs)
		if err != nil {
			return nil, apperror.Database(err, "failed to load modifier groups")
		}
		for _, g := range found {
			groups[g.ID] = g
		}
	}

	display := tree.ResolveProduct(*p, groups, lang, uc.primaryLang)
	return &display, nil
}
