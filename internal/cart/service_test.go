package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tixmarket/internal/catalog"
	"tixmarket/internal/events"
	"tixmarket/internal/listings"
	"tixmarket/internal/settings"
	"tixmarket/internal/shared/apperr"
	"tixmarket/internal/shared/constants"
	"tixmarket/pkg/clock"
	"tixmarket/pkg/randsrc"
)

func newCartService(t *testing.T, store Store) (Service, listings.Service) {
	t.Helper()
	eventService := events.NewService(events.NewRepository())
	generator := listings.NewGenerator(randsrc.New(3), clock.NewFixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	listingService := listings.NewService(listings.NewRepository(), generator)
	settingsService := settings.NewService(settings.NewMemoryStore(), settings.NewScenarioCatalog(t.TempDir()))
	catalogService := catalog.NewService(eventService, listingService, settingsService, nil)
	require.NoError(t, catalogService.Bootstrap(context.Background(), events.DefaultSeeds()))
	return NewService(store, listingService, catalogService), listingService
}

func newRedisStore(t *testing.T) Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, PreloadScript(context.Background(), client))
	return NewRedisStore(client, constants.CartKey)
}

func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  newRedisStore(t),
	}
}

func TestAddAccumulatesAndCaps(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			svc, listingService := newCartService(t, store)
			ctx := context.Background()
			l, err := listingService.GetByID(ctx, 1001)
			require.NoError(t, err)

			item, err := svc.Add(ctx, 1001, 1)
			require.NoError(t, err)
			assert.Equal(t, 1, item.Quantity)

			item, err = svc.Add(ctx, 1001, l.Quantity)
			require.NoError(t, err)
			assert.Equal(t, l.Quantity, item.Quantity)

			items, err := store.Items(ctx)
			require.NoError(t, err)
			assert.Equal(t, []Item{{ListingID: 1001, Quantity: l.Quantity}}, items)
		})
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	svc, listingService := newCartService(t, NewMemoryStore())
	ctx := context.Background()
	l, err := listingService.GetByID(ctx, 2001)
	require.NoError(t, err)

	_, err = svc.Add(ctx, 0, 1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Add(ctx, 2001, -2)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = svc.Add(ctx, 999999, 1)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Add(ctx, 2001, l.Quantity+1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestListAndRemove(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			svc, _ := newCartService(t, store)
			ctx := context.Background()

			_, err := svc.Add(ctx, 3001, 1)
			require.NoError(t, err)
			_, err = svc.Add(ctx, 1001, 1)
			require.NoError(t, err)

			views, err := svc.List(ctx)
			require.NoError(t, err)
			require.Len(t, views, 2)
			assert.Equal(t, 1001, views[0].ListingID)
			assert.Equal(t, 3001, views[1].ListingID)
			assert.NotNil(t, views[0].Listing)
			assert.NotNil(t, views[0].Event)

			require.NoError(t, svc.Remove(ctx, 1001))
			require.NoError(t, svc.Remove(ctx, 1001))
			views, err = svc.List(ctx)
			require.NoError(t, err)
			require.Len(t, views, 1)
			assert.Equal(t, 3001, views[0].ListingID)
		})
	}
}

func TestListSkipsVanishedListings(t *testing.T) {
	store := NewMemoryStore()
	svc, _ := newCartService(t, store)
	_, err := store.Add(context.Background(), 777777, 2, 2)
	require.NoError(t, err)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestCartHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newCartService(t, NewMemoryStore())
	engine := gin.New()
	SetupCartRoutes(engine.Group("/api"), NewController(svc))

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/api/cart", `{"listingId":1001}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/api/cart", `{"listingId":1001,"quantity":0}`).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodPost, "/api/cart", `{"listingId":5,"quantity":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/api/cart", `{"listingId":1001,"quantity":99}`).Code)

	rec := do(http.MethodPost, "/api/cart", `{"listingId":1001,"quantity":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var added struct {
		Data Item `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, Item{ListingID: 1001, Quantity: 1}, added.Data)

	rec = do(http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Contains(t, listed.Data[0], "listing")
	assert.Contains(t, listed.Data[0], "event")

	assert.Equal(t, http.StatusOK, do(http.MethodDelete, "/api/cart/1001", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodDelete, "/api/cart/abc", "").Code)
}
