package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/storage/memstore"
	"github.com/fekuna/omnipos-catalog-service/internal/validate"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const merchant = "m-1"

type fixture struct {
	uc     category.UseCase
	store  *memstore.Store
	events *event.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	events := &event.Recorder{}
	uc := NewCategoryUseCase(
		repository.NewMemoryRepository(store),
		nil,
		events,
		nil,
		validate.Languages{Primary: "pt", Supported: []string{"pt", "en", "es"}},
		logger.NewNop(),
	)
	return &fixture{uc: uc, store: store, events: events}
}

func (f *fixture) create(t *testing.T, name string, parentID *string) *model.Category {
	t.Helper()
	cat, err := f.uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
		MerchantID: merchant,
		ParentID:   parentID,
		Name:       model.Text("pt", name),
	})
	require.NoError(t, err)
	return cat
}

func (f *fixture) addProduct(t *testing.T, id, categoryID string) {
	t.Helper()
	require.NoError(t, f.store.Write(func(tx *memstore.Tx) error {
		tx.Products[id] = model.Product{
			BaseModel:  model.BaseModel{ID: id},
			MerchantID: merchant,
			CategoryID: categoryID,
			Name:       model.Text("pt", id),
			Price:      decimal.NewFromInt(10),
		}
		return nil
	}))
}

func TestCreateCategory_AppendsAtEnd(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "Bebidas", nil)
	b := f.create(t, "Pratos", nil)
	sub := f.create(t, "Sucos", &a.ID)

	assert.Equal(t, 0, a.SortOrder)
	assert.Equal(t, 1, b.SortOrder)
	assert.Equal(t, 0, sub.SortOrder)
	assert.Equal(t, []event.Type{event.CategoryCreated, event.CategoryCreated, event.CategoryCreated}, f.events.Types())
}

func (f *fixture) rootOrders(t *testing.T) map[string]int {
	t.Helper()
	root := ""
	cats, _, err := f.uc.ListCategories(context.Background(), &dto.CategoryFilters{MerchantID: merchant, ParentID: &root})
	require.NoError(t, err)
	orders := make(map[string]int, len(cats))
	for _, c := range cats {
		orders[c.ID] = c.SortOrder
	}
	return orders
}

func TestCreateCategory_ExplicitOrderShiftsSiblings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "Bebidas", nil)
	b := f.create(t, "Pratos", nil)

	zero := 0
	first, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: merchant, Name: model.Text("pt", "Entradas"), SortOrder: &zero})
	require.NoError(t, err)
	second, err := f.uc.CreateCategory(ctx, &dto.CreateCategoryInput{MerchantID: merchant, Name: model.Text("pt", "Ofertas"), SortOrder: &zero})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		second.ID: 0,
		first.ID:  1,
		a.ID:      2,
		b.ID:      3,
	}, f.rootOrders(t))
}

func TestCreateCategory_ConcurrentAppendsGetDistinctOrders(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.uc.CreateCategory(context.Background(), &dto.CreateCategoryInput{
				MerchantID: merchant,
				Name:       model.Text("pt", fmt.Sprintf("Categoria %d", i)),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	seen := map[int]bool{}
	for _, order := range f.rootOrders(t) {
		assert.False(t, seen[order], "order %d used twice", order)
		seen[order] = true
	}
	assert.Len(t, seen, 20)
}

func TestCreateCategory_Validation(t *testing.T) {
	f := newFixture(t)
	root := f.create(t, "Bebidas", nil)
	sub := f.create(t, "Sucos", &root.ID)
	missing := "nope"
	negative := -1

	tests := []struct {
		name  string
		input dto.CreateCategoryInput
		code  apperror.ErrorCode
	}{
		{
			name:  "missing primary name",
			input: dto.CreateCategoryInput{MerchantID: merchant, Name: model.Text("en", "Drinks")},
			code:  apperror.CodeInvalidInput,
		},
		{
			name:  "negative sort order",
			input: dto.CreateCategoryInput{MerchantID: merchant, Name: model.Text("pt", "X"), SortOrder: &negative},
			code:  apperror.CodeInvalidInput,
		},
		{
			name:  "unknown parent",
			input: dto.CreateCategoryInput{MerchantID: merchant, Name: model.Text("pt", "X"), ParentID: &missing},
			code:  apperror.CodeReferential,
		},
		{
			name:  "third level",
			input: dto.CreateCategoryInput{MerchantID: merchant, Name: model.Text("pt", "X"), ParentID: &sub.ID},
			code:  apperror.CodeInvalidInput,
		},
		{
			name:  "parent of another merchant",
			input: dto.CreateCategoryInput{MerchantID: "m-2", Name: model.Text("pt", "X"), ParentID: &root.ID},
			code:  apperror.CodeReferential,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateCategory(context.Background(), &tt.input)
			assert.Equal(t, tt.code, apperror.CodeOf(err))
		})
	}
}

func TestGetCategory_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.GetCategory(context.Background(), merchant, "missing")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
}

func TestUpdateCategory_HierarchyRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "Bebidas", nil)
	b := f.create(t, "Pratos", nil)
	f.create(t, "Sucos", &a.ID)

	_, err := f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: a.ID, MerchantID: merchant, ParentID: &a.ID, Name: a.Name})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput), "self parent")

	_, err = f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: a.ID, MerchantID: merchant, ParentID: &b.ID, Name: a.Name})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput), "root with children under another root")

	moved, err := f.uc.UpdateCategory(ctx, &dto.UpdateCategoryInput{ID: b.ID, MerchantID: merchant, ParentID: &a.ID, Name: model.Text("pt", "Pratos", "en", "Dishes")})
	require.NoError(t, err)
	assert.Equal(t, a.ID, *moved.ParentID)
	assert.Equal(t, 1, moved.SortOrder, "appended after the existing subcategory")
	assert.Equal(t, "Dishes", moved.Name.Resolve("en", "pt"))
}

func TestUpdateCategory_KeepsOrderInSameScope(t *testing.T) {
	f := newFixture(t)
	f.create(t, "Bebidas", nil)
	b := f.create(t, "Pratos", nil)

	empty := ""
	updated, err := f.uc.UpdateCategory(context.Background(), &dto.UpdateCategoryInput{ID: b.ID, MerchantID: merchant, ParentID: &empty, Name: model.Text("pt", "Pratos quentes")})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.SortOrder)
	assert.Nil(t, updated.ParentID)
}

func TestDeleteCategory_RejectsNonEmptyWithoutCascade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	root := f.create(t, "Bebidas", nil)
	sub := f.create(t, "Sucos", &root.ID)
	f.addProduct(t, "p-1", sub.ID)

	_, err := f.uc.DeleteCategory(ctx, &dto.DeleteCategoryInput{ID: root.ID, MerchantID: merchant})
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))

	result, err := f.uc.DeleteCategory(ctx, &dto.DeleteCategoryInput{ID: root.ID, MerchantID: merchant, Cascade: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{root.ID, sub.ID}, result.CategoryIDs)
	assert.Equal(t, []string{"p-1"}, result.ProductIDs)

	_, err = f.uc.GetCategory(ctx, merchant, sub.ID)
	assert.True(t, apperror.HasCode(err, apperror.CodeNotFound))
	assert.Equal(t, event.CategoryDeleted, f.events.Types()[len(f.events.Types())-1])
}

func TestDeleteCategory_EmptyWithoutCascade(t *testing.T) {
	f := newFixture(t)
	root := f.create(t, "Bebidas", nil)

	result, err := f.uc.DeleteCategory(context.Background(), &dto.DeleteCategoryInput{ID: root.ID, MerchantID: merchant})
	require.NoError(t, err)
	assert.Equal(t, []string{root.ID}, result.CategoryIDs)
}

func TestReorderCategories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "A", nil)
	b := f.create(t, "B", nil)
	c := f.create(t, "C", nil)

	require.NoError(t, f.uc.ReorderCategories(ctx, &dto.ReorderInput{MerchantID: merchant, OrderedIDs: []string{c.ID, a.ID, b.ID}}))

	list, _, err := f.uc.ListCategories(ctx, &dto.CategoryFilters{MerchantID: merchant})
	require.NoError(t, err)
	ids := make([]string, len(list))
	for i, cat := range list {
		ids[i] = cat.ID
	}
	assert.Equal(t, []string{c.ID, a.ID, b.ID}, ids)
}

func TestReorderCategories_RequiresExactSiblingSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, "A", nil)
	b := f.create(t, "B", nil)

	for _, ids := range [][]string{{a.ID}, {a.ID, a.ID}, {a.ID, b.ID, "x"}, {}} {
		err := f.uc.ReorderCategories(ctx, &dto.ReorderInput{MerchantID: merchant, OrderedIDs: ids})
		assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput), "%v", ids)
	}

	list, _, err := f.uc.ListCategories(ctx, &dto.CategoryFilters{MerchantID: merchant})
	require.NoError(t, err)
	assert.Equal(t, a.ID, list[0].ID)
}

func TestReorderCategories_StorageFailure(t *testing.T) {
	f := newFixture(t)
	a := f.create(t, "A", nil)
	b := f.create(t, "B", nil)
	f.store.FailNextWrite(errors.New("disk full"))

	err := f.uc.ReorderCategories(context.Background(), &dto.ReorderInput{MerchantID: merchant, OrderedIDs: []string{b.ID, a.ID}})
	assert.True(t, apperror.HasCode(err, apperror.CodeDatabase))
}
