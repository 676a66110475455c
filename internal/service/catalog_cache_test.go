package service

import (
	"context"
	"testing"
	"time"

	"cleaning-service-scheduler/internal/testfixtures"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedService struct {
	Name     string `json:"name"`
	Duration int    `json:"duration"`
}

func TestCatalogCacheRoundTripAndInvalidate(t *testing.T) {
	client, _ := testfixtures.NewRedis(t)
	cache := NewRedisCatalogCache(client, time.Minute, testfixtures.NewLogger())
	ctx := context.Background()
	id := uuid.New()

	var got cachedService
	assert.False(t, cache.Get(ctx, id, &got))

	gen, ok := cache.Generation(ctx, id)
	require.True(t, ok)
	cache.Set(ctx, id, gen, cachedService{Name: "Deep Clean", Duration: 120})
	require.True(t, cache.Get(ctx, id, &got))
	assert.Equal(t, cachedService{Name: "Deep Clean", Duration: 120}, got)

	cache.Invalidate(ctx, id)
	assert.False(t, cache.Get(ctx, id, &got))
}

func TestCatalogCacheDropsValueLoadedBeforeInvalidate(t *testing.T) {
	client, _ := testfixtures.NewRedis(t)
	cache := NewRedisCatalogCache(client, time.Minute, testfixtures.NewLogger())
	ctx := context.Background()
	id := uuid.New()

	// A reader loads the old row, then the writer commits and invalidates.
	gen, ok := cache.Generation(ctx, id)
	require.True(t, ok)
	cache.Invalidate(ctx, id)
	cache.Set(ctx, id, gen, cachedService{Name: "Deep Clean", Duration: 60})

	var got cachedService
	assert.False(t, cache.Get(ctx, id, &got))

	fresh, ok := cache.Generation(ctx, id)
	require.True(t, ok)
	assert.Equal(t, gen+1, fresh)
	cache.Set(ctx, id, fresh, cachedService{Name: "Deep Clean", Duration: 120})
	require.True(t, cache.Get(ctx, id, &got))
	assert.Equal(t, 120, got.Duration)
}

func TestCatalogCacheTreatsCorruptEntryAsMiss(t *testing.T) {
	client, srv := testfixtures.NewRedis(t)
	cache := NewRedisCatalogCache(client, time.Minute, testfixtures.NewLogger())
	id := uuid.New()

	require.NoError(t, srv.Set(catalogKeyPrefix+id.String(), "{not json"))

	var got cachedService
	assert.False(t, cache.Get(context.Background(), id, &got))
}

func TestCatalogCacheTreatsOutageAsMiss(t *testing.T) {
	client, srv := testfixtures.NewRedis(t)
	cache := NewRedisCatalogCache(client, time.Minute, testfixtures.NewLogger())
	srv.Close()

	var got cachedService
	assert.False(t, cache.Get(context.Background(), uuid.New(), &got))
	_, ok := cache.Generation(context.Background(), uuid.New())
	assert.False(t, ok)
	cache.Set(context.Background(), uuid.New(), 0, cachedService{})
}
