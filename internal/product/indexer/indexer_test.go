package indexer

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type fakeStore struct {
	docs      map[string]Document
	deleteErr error
	lastQuery map[string]any
	hits      []string
}

func newFakeStore() *fakeStore { return &fakeStore{docs: map[string]Document{}} }

func (f *fakeStore) CreateIndex(context.Context, string, string) error { return nil }

func (f *fakeStore) Index(_ context.Context, _ string, id string, doc any) error {
	f.docs[id] = doc.(Document)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _ string, id string) error {
	delete(f.docs, id)
	return f.deleteErr
}

func (f *fakeStore) Search(_ context.Context, _ string, query map[string]any) (*search.SearchResponse, error) {
	f.lastQuery = query
	res := &search.SearchResponse{}
	for _, id := range f.hits {
		res.Hits.Hits = append(res.Hits.Hits, search.Hit{ID: id})
	}
	return res, nil
}

func product(id string) *model.Product {
	return &model.Product{
		BaseModel:   model.BaseModel{ID: id},
		MerchantID:  "m-1",
		CategoryID:  "c-1",
		Name:        model.Text("pt", "Café", "en", "Coffee"),
		IsAvailable: true,
	}
}

func TestIndexer_FollowsProductEvents(t *testing.T) {
	store := newFakeStore()
	idx := New(store, "", logger.NewNop())
	ctx := context.Background()

	require.NoError(t, idx.Publish(ctx, event.New(event.ProductCreated, "m-1", "p-1", product("p-1"))))
	require.NoError(t, idx.Publish(ctx, event.New(event.ProductCreated, "m-1", "p-2", product("p-2"))))
	require.NoError(t, idx.Publish(ctx, event.New(event.ProductCreated, "m-1", "p-3", product("p-3"))))
	assert.Equal(t, map[string]string{"pt": "Café", "en": "Coffee"}, store.docs["p-1"].Name)

	off := product("p-1")
	off.IsAvailable = false
	require.NoError(t, idx.Publish(ctx, event.New(event.AvailabilityChanged, "m-1", "p-1", off)))
	assert.False(t, store.docs["p-1"].IsAvailable)

	require.NoError(t, idx.Publish(ctx, event.New(event.ProductDeleted, "m-1", "p-1", event.Removal{ProductIDs: []string{"p-1"}})))
	require.NoError(t, idx.Publish(ctx, event.New(event.CategoryDeleted, "m-1", "c-1", event.Removal{
		CategoryIDs: []string{"c-1"},
		ProductIDs:  []string{"p-2"},
	})))
	require.NoError(t, idx.Publish(ctx, event.New(event.ModifierGroupCreated, "m-1", "g-1", nil)))

	assert.Len(t, store.docs, 1)
	assert.Contains(t, store.docs, "p-3")
}

func TestIndexer_CategoryDeleteJoinsErrors(t *testing.T) {
	store := newFakeStore()
	store.deleteErr = errors.New("es down")
	idx := New(store, "", logger.NewNop())

	err := idx.Publish(context.Background(), event.New(event.CategoryDeleted, "m-1", "c-1", event.Removal{
		ProductIDs: []string{"p-1", "p-2"},
	}))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestIndexer_SearchScopesToMerchant(t *testing.T) {
	store := newFakeStore()
	store.hits = []string{"p-2", "p-1"}
	idx := New(store, "", logger.NewNop())

	ids, err := idx.SearchProductIDs(context.Background(), "m-9", "cafe", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-2", "p-1"}, ids)

	assert.Equal(t, 5, store.lastQuery["size"])
	filter := store.lastQuery["query"].(map[string]any)["bool"].(map[string]any)["filter"].([]any)
	assert.Equal(t, map[string]any{"term": map[string]any{"merchant_id": "m-9"}}, filter[0])
}
