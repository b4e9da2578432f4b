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

	"tixmarket/internal/shared/apperr"
	"tixmarket/internal/shared/constants"
	"tixmarket/pkg/cache"
)

func writeScenarios(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a-minimal.json": `{"name":"Minimal","description":"Bare listings","config":{"api":{"responseFormat":"flat","includeDealScore":false}}}`,
		"b-euro.json":    `{"name":"Euro","description":"EUR pricing","config":{"ui":{"currency":"EUR","priceFormat":"currency_code"}}}`,
		"c-broken.json":  `{"name":`,
		"d-invalid.json": `{"name":"Invalid","description":"bad enum","config":{"ui":{"currency":"JPY"}}}`,
		"e-empty.json":   `{"name":"Empty","description":"no config"}`,
		"notes.txt":      `ignored`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestScenarioCatalogList(t *testing.T) {
	catalog := NewScenarioCatalog(writeScenarios(t))
	scenarios, err := catalog.List(context.Background())
	require.NoError(t, err)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Minimal", "Euro", "Invalid", "Empty"}, names)
}

func TestScenarioCatalogMissingDirectory(t *testing.T) {
	catalog := NewScenarioCatalog(filepath.Join(t.TempDir(), "nope"))
	scenarios, err := catalog.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, scenarios)
}

func TestScenarioCatalogFind(t *testing.T) {
	catalog := NewScenarioCatalog(writeScenarios(t))

	s, err := catalog.Find(context.Background(), "Euro")
	require.NoError(t, err)
	assert.Equal(t, "EUR pricing", s.Description)

	_, err = catalog.Find(context.Background(), "Empty")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = catalog.Find(context.Background(), "Unknown")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestScenarioCatalogCachesList(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	dir := writeScenarios(t)
	catalog := NewScenarioCatalog(dir)
	catalog.SetCacheService(cache.NewService(client))
	ctx := context.Background()

	first, err := catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 4)
	assert.True(t, mr.Exists(constants.ScenarioListKey))

	// served from cache even after the files change
	require.NoError(t, os.Remove(filepath.Join(dir, "b-euro.json")))
	cached, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 4)

	require.NoError(t, catalog.Refresh(ctx))
	fresh, err := catalog.List(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 3)
}

func TestServiceLoadScenario(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store, NewScenarioCatalog(writeScenarios(t)))
	ctx := context.Background()

	cfg, err := svc.LoadScenario(ctx, "Minimal")
	require.NoError(t, err)
	assert.Equal(t, ResponseFlat, cfg.API.ResponseFormat)
	assert.False(t, cfg.API.IncludeDealScore)
	assert.True(t, cfg.API.IncludeFees)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, current)

	_, err = svc.LoadScenario(ctx, "Invalid")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	current, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg, current, "rejected scenario must not be stored")
}

func TestServiceReplaceValidates(t *testing.T) {
	svc := NewService(NewMemoryStore(), NewScenarioCatalog(t.TempDir()))
	ctx := context.Background()

	cfg, err := svc.Replace(ctx, []byte(`{"ui":{"currency":"GBP"}}`))
	require.NoError(t, err)
	assert.Equal(t, "GBP", cfg.UI.Currency)

	_, err = svc.Replace(ctx, []byte(`{"api":{"responseFormat":"xml"}}`))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, ResponseNested, current.API.ResponseFormat)
	assert.Equal(t, "GBP", current.UI.Currency)
}
