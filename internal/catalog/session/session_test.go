package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	mu          sync.Mutex
	tree        tree.Tree
	fetchHook   func(ctx context.Context) error
	persistErr  error
	toggleErr   error
	// when set, persist and toggle calls signal entered and wait for release
	entered     chan struct{}
	release     chan struct{}
	categoryOps [][]string
	productOps  [][]string
}

func (f *fakeBackend) FetchTree(ctx context.Context, _ bool) (tree.Tree, error) {
	if f.fetchHook != nil {
		if err := f.fetchHook(ctx); err != nil {
			return tree.Tree{}, err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tree, nil
}

func (f *fakeBackend) block() {
	f.mu.Lock()
	entered, release := f.entered, f.release
	f.mu.Unlock()
	if release == nil {
		return
	}
	entered <- struct{}{}
	<-release
}

func (f *fakeBackend) PersistCategoryOrder(_ context.Context, _ string, ids []string) error {
	f.block()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categoryOps = append(f.categoryOps, ids)
	return f.persistErr
}

func (f *fakeBackend) PersistProductOrder(_ context.Context, _ string, ids []string) error {
	f.block()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productOps = append(f.productOps, ids)
	return f.persistErr
}

func (f *fakeBackend) ToggleAvailability(_ context.Context, productID string) (model.Product, error) {
	f.block()
	if f.toggleErr != nil {
		return model.Product{}, f.toggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.tree.Product(productID)
	if !ok {
		return model.Product{}, errors.New("not found")
	}
	p.IsAvailable = !p.IsAvailable
	f.tree, _ = f.tree.WithProduct(p)
	return p, nil
}

func (f *fakeBackend) MoveProduct(_ context.Context, productID, categoryID string) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var cats []model.Category
	var prods []model.Product
	var moved model.Product
	for _, r := range f.tree.Categories {
		cats = append(cats, r.Category)
		prods = append(prods, r.Products...)
		for _, s := range r.Subcategories {
			cats = append(cats, s.Category)
			prods = append(prods, s.Products...)
		}
	}
	for i := range prods {
		if prods[i].ID == productID {
			prods[i].CategoryID = categoryID
			prods[i].SortOrder = 100
			moved = prods[i]
		}
	}
	f.tree = tree.Build(cats, prods)
	return moved, nil
}

func category(id, parent string, order int, name string) model.Category {
	c := model.Category{BaseModel: model.BaseModel{ID: id}, Name: model.Text("pt", name), SortOrder: order}
	if parent != "" {
		c.ParentID = &parent
	}
	return c
}

func product(id, categoryID string, order int, name string) model.Product {
	return model.Product{
		BaseModel:   model.BaseModel{ID: id},
		CategoryID:  categoryID,
		Name:        model.Text("pt", name),
		IsAvailable: true,
		SortOrder:   order,
	}
}

func newFixture(t *testing.T) (*Session, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{tree: tree.Build(
		[]model.Category{
			category("drinks", "", 0, "Drinks"),
			category("food", "", 1, "Food"),
			category("hot", "drinks", 0, "Hot"),
		},
		[]model.Product{
			product("juice", "drinks", 0, "Suco"),
			product("soda", "drinks", 1, "Refrigerante"),
			product("coffee", "hot", 0, "Café"),
		},
	)}
	s := New(backend, logger.NewNop(), Options{PrimaryLang: "pt"})
	require.NoError(t, s.Refresh(context.Background()))
	return s, backend
}

func TestSession_RefreshComputesGate(t *testing.T) {
	backend := &fakeBackend{}
	s := New(backend, logger.NewNop(), Options{PrimaryLang: "pt"})
	assert.True(t, s.Gate().Locked)

	backend.tree = tree.Build([]model.Category{category("root", "", 0, "Root")}, nil)
	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, tree.GateState{Locked: true, HasCategories: true}, s.Gate())

	backend.tree = tree.Build(
		[]model.Category{category("root", "", 0, "Root")},
		[]model.Product{product("p", "root", 0, "X")},
	)
	require.NoError(t, s.Refresh(context.Background()))
	assert.False(t, s.Gate().Locked)

	backend.tree = tree.Build([]model.Category{category("root", "", 0, "Root")}, nil)
	require.NoError(t, s.Refresh(context.Background()))
	assert.True(t, s.Gate().Locked, "deleting the last product locks again")
}

func TestSession_ReorderCategoriesPersistsFullOrder(t *testing.T) {
	s, backend := newFixture(t)

	require.NoError(t, s.ReorderCategories(context.Background(), "", "food", "drinks"))

	ids, _ := s.Snapshot().CategoryIDs("")
	assert.Equal(t, []string{"food", "drinks"}, ids)
	require.Len(t, backend.categoryOps, 1)
	assert.Equal(t, []string{"food", "drinks"}, backend.categoryOps[0])
}

func TestSession_ReorderRollsBackOnFailure(t *testing.T) {
	s, backend := newFixture(t)
	backend.persistErr = errors.New("backend down")

	err := s.ReorderCategories(context.Background(), "", "food", "drinks")
	require.Error(t, err)

	ids, _ := s.Snapshot().CategoryIDs("")
	assert.Equal(t, []string{"drinks", "food"}, ids)

	err = s.ReorderProducts(context.Background(), "soda", "juice")
	require.Error(t, err)
	ids, _ = s.Snapshot().ProductIDs("drinks")
	assert.Equal(t, []string{"juice", "soda"}, ids)
}

// runBlocked starts op, waits until it reaches the backend, runs meanwhile
// with the backend unblocked, then lets op finish and returns its error.
func runBlocked(t *testing.T, backend *fakeBackend, op func() error, meanwhile func()) error {
	t.Helper()
	entered, release := make(chan struct{}), make(chan struct{})
	backend.mu.Lock()
	backend.entered, backend.release = entered, release
	backend.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- op() }()
	<-entered

	backend.mu.Lock()
	backend.entered, backend.release = nil, nil
	backend.mu.Unlock()
	meanwhile()

	close(release)
	return <-done
}

func TestSession_FailedCategoryReorderUndoneAfterInterleavedToggle(t *testing.T) {
	s, backend := newFixture(t)
	backend.persistErr = errors.New("backend down")

	err := runBlocked(t, backend,
		func() error { return s.ReorderCategories(context.Background(), "", "food", "drinks") },
		func() {
			_, err := s.ToggleAvailability(context.Background(), "juice")
			require.NoError(t, err)
		})
	require.Error(t, err)

	ids, _ := s.Snapshot().CategoryIDs("")
	assert.Equal(t, []string{"drinks", "food"}, ids, "local order matches the server again")
	juice, _ := s.Snapshot().Product("juice")
	assert.False(t, juice.IsAvailable, "the toggle that landed meanwhile is kept")
}

func TestSession_FailedProductReorderUndoneAfterInterleavedToggle(t *testing.T) {
	s, backend := newFixture(t)
	backend.persistErr = errors.New("backend down")

	err := runBlocked(t, backend,
		func() error { return s.ReorderProducts(context.Background(), "soda", "juice") },
		func() {
			_, err := s.ToggleAvailability(context.Background(), "coffee")
			require.NoError(t, err)
		})
	require.Error(t, err)

	ids, _ := s.Snapshot().ProductIDs("drinks")
	assert.Equal(t, []string{"juice", "soda"}, ids)
	coffee, _ := s.Snapshot().Product("coffee")
	assert.False(t, coffee.IsAvailable)
}

func TestSession_FailedToggleUndoneAfterInterleavedReorder(t *testing.T) {
	s, backend := newFixture(t)
	backend.toggleErr = errors.New("timeout")

	err := runBlocked(t, backend,
		func() error {
			_, err := s.ToggleAvailability(context.Background(), "juice")
			return err
		},
		func() {
			require.NoError(t, s.ReorderCategories(context.Background(), "", "food", "drinks"))
		})
	require.Error(t, err)

	juice, _ := s.Snapshot().Product("juice")
	assert.True(t, juice.IsAvailable, "failed toggle is undone")
	ids, _ := s.Snapshot().CategoryIDs("")
	assert.Equal(t, []string{"food", "drinks"}, ids, "the persisted reorder stays")
}

func TestSession_ReorderOnSelfIsNoop(t *testing.T) {
	s, backend := newFixture(t)
	require.NoError(t, s.ReorderCategories(context.Background(), "", "food", "food"))
	assert.Empty(t, backend.categoryOps)
}

func TestSession_ReorderProductsWithinCategory(t *testing.T) {
	s, backend := newFixture(t)

	require.NoError(t, s.ReorderProducts(context.Background(), "soda", "juice"))
	ids, _ := s.Snapshot().ProductIDs("drinks")
	assert.Equal(t, []string{"soda", "juice"}, ids)
	assert.Equal(t, [][]string{{"soda", "juice"}}, backend.productOps)
}

func TestSession_CrossCategoryDropIsNoop(t *testing.T) {
	s, backend := newFixture(t)
	before := s.Snapshot()

	err := s.ReorderProducts(context.Background(), "coffee", "juice")
	assert.ErrorIs(t, err, ErrCrossScope)
	assert.Equal(t, before, s.Snapshot())
	assert.Empty(t, backend.productOps)
}

func TestSession_ToggleAvailability(t *testing.T) {
	s, backend := newFixture(t)

	p, err := s.ToggleAvailability(context.Background(), "juice")
	require.NoError(t, err)
	assert.False(t, p.IsAvailable)
	local, _ := s.Snapshot().Product("juice")
	assert.False(t, local.IsAvailable)

	backend.toggleErr = errors.New("timeout")
	_, err = s.ToggleAvailability(context.Background(), "juice")
	require.Error(t, err)
	local, _ = s.Snapshot().Product("juice")
	assert.False(t, local.IsAvailable, "failed toggle must be rolled back")
}

func TestSession_MoveProductRefetches(t *testing.T) {
	s, _ := newFixture(t)

	_, err := s.MoveProduct(context.Background(), "juice", "food")
	require.NoError(t, err)

	ids, _ := s.Snapshot().ProductIDs("food")
	assert.Equal(t, []string{"juice"}, ids)
	assert.Len(t, s.Products("drinks", "", "pt"), 2)
}

func TestSession_SupersededFetchIsDropped(t *testing.T) {
	backend := &fakeBackend{}
	s := New(backend, logger.NewNop(), Options{PrimaryLang: "pt"})

	slowStarted := make(chan struct{})
	first := true
	var hookMu sync.Mutex
	backend.fetchHook = func(ctx context.Context) error {
		hookMu.Lock()
		isFirst := first
		first = false
		hookMu.Unlock()
		if !isFirst {
			return nil
		}
		close(slowStarted)
		<-ctx.Done()
		return ctx.Err()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.Refresh(context.Background()) }()
	<-slowStarted

	backend.mu.Lock()
	backend.tree = tree.Build([]model.Category{category("fresh", "", 0, "Fresh")}, nil)
	backend.mu.Unlock()
	require.NoError(t, s.Refresh(context.Background()))

	assert.ErrorIs(t, <-errCh, ErrSuperseded)
	ids, _ := s.Snapshot().CategoryIDs("")
	assert.Equal(t, []string{"fresh"}, ids)
}
