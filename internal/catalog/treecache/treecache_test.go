package treecache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/tree"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(cache.NewFromClient(client), time.Minute, logger.NewNop()), mr
}

func sampleTree(name string) tree.Tree {
	return tree.Build([]model.Category{{
		BaseModel:  model.BaseModel{ID: "c1"},
		MerchantID: "m1",
		Name:       model.Text("pt", name),
	}}, nil)
}

func TestNilCacheIsNoop(t *testing.T) {
	c := New(nil, 0, nil)
	assert.Nil(t, c)

	_, gen, ok := c.Get(context.Background(), "m1", true)
	assert.False(t, ok)
	assert.Equal(t, NoGeneration, gen)
	c.Set(context.Background(), "m1", true, 0, tree.Tree{})
	c.Invalidate(context.Background(), "m1")

	called := false
	err := c.WithScopeLock(context.Background(), "m1", "categories:root", func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestTreeKey(t *testing.T) {
	assert.Equal(t, "catalog:tree:m1:0:all", treeKey("m1", 0, true))
	assert.Equal(t, "catalog:tree:m1:3:available", treeKey("m1", 3, false))
}

func TestGetSetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	_, gen, ok := c.Get(ctx, "m1", true)
	require.False(t, ok)
	assert.Equal(t, Generation(0), gen)

	c.Set(ctx, "m1", true, gen, sampleTree("Bebidas"))

	got, _, ok := c.Get(ctx, "m1", true)
	require.True(t, ok)
	ids, _ := got.CategoryIDs("")
	assert.Equal(t, []string{"c1"}, ids)

	_, _, ok = c.Get(ctx, "m1", false)
	assert.False(t, ok, "variants are cached separately")
}

func TestInvalidateDropsBothVariants(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "m1", true, 0, sampleTree("Bebidas"))
	c.Set(ctx, "m1", false, 0, sampleTree("Bebidas"))
	c.Invalidate(ctx, "m1")

	_, gen, ok := c.Get(ctx, "m1", true)
	assert.False(t, ok)
	assert.Equal(t, Generation(1), gen)
	_, _, ok = c.Get(ctx, "m1", false)
	assert.False(t, ok)
}

func TestLoadOverlappingWriteIsNotCached(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	// a reader misses and starts loading rows
	_, gen, ok := c.Get(ctx, "m1", true)
	require.False(t, ok)
	stale := sampleTree("Antes")

	// a write commits and invalidates before the reader stores its tree
	c.Invalidate(ctx, "m1")
	c.Set(ctx, "m1", true, gen, stale)

	_, next, ok := c.Get(ctx, "m1", true)
	assert.False(t, ok, "the tree loaded before the write must not be served")
	assert.Equal(t, gen+1, next)

	c.Set(ctx, "m1", true, next, sampleTree("Depois"))
	got, _, ok := c.Get(ctx, "m1", true)
	require.True(t, ok)
	node, found := got.Find("c1")
	require.True(t, found)
	assert.Equal(t, "Depois", node.Category.Name.Resolve("pt", "pt"))
}

func TestSetWithoutGenerationIsSkipped(t *testing.T) {
	c, mr := newTestCache(t)
	c.Set(context.Background(), "m1", true, NoGeneration, sampleTree("Bebidas"))
	assert.Empty(t, mr.Keys())
}

func TestScopeLockBusy(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("lock:catalog:m1:products:c1", "someone-else"))

	called := false
	err := c.WithScopeLock(context.Background(), "m1", "products:c1", func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrLockBusy)
	assert.False(t, called)
}

func TestScopeLockReleasedAfterRun(t *testing.T) {
	c, mr := newTestCache(t)
	boom := errors.New("boom")

	err := c.WithScopeLock(context.Background(), "m1", "categories:", func() error {
		assert.True(t, mr.Exists("lock:catalog:m1:categories:"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("lock:catalog:m1:categories:"))
}

func TestUnreachableRedisDegrades(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()
	c := New(cache.NewFromClient(client), time.Minute, logger.NewNop())
	ctx := context.Background()

	_, gen, ok := c.Get(ctx, "m1", true)
	assert.False(t, ok)
	assert.Equal(t, NoGeneration, gen)
	c.Set(ctx, "m1", true, gen, tree.Tree{})
	c.Invalidate(ctx, "m1")

	called := false
	err := c.WithScopeLock(ctx, "m1", "products:c1", func() error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, called, "reorders fall back to the database locks")
}
