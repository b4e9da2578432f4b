package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	cfg, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	cfg.API.ResponseFormat = ResponseFlat
	cfg.UI.Currency = "EUR"
	require.NoError(t, store.Save(ctx, cfg))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "active.json")
	exerciseStore(t, NewFileStore(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStoreCreatesDefaultsOnFirstLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "active.json")
	_, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), decoded)
}

func TestFileStoreMergesOldDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "active.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api":{"includeDealScore":false}}`), 0o644))

	cfg, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, cfg.API.IncludeDealScore)
	assert.True(t, cfg.API.IncludeValueScore)
	assert.Equal(t, "Buy Now", cfg.UI.ButtonText)
}

func TestFileStoreFallsBackOnCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "active.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	cfg, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedisStore(client, "tixmarket:settings:active"))
	assert.True(t, mr.Exists("tixmarket:settings:active"))
}

func TestRedisStoreMergesPartialDocument(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, mr.Set("cfg", `{"content":{"venueInfo":"address_only"}}`))

	cfg, err := NewRedisStore(client, "cfg").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, VenueAddressOnly, cfg.Content.VenueInfo)
	assert.Equal(t, DescriptionsDetailed, cfg.Content.EventDescriptions)
}
