package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/internal/catalog"
	"github.com/pageza/alchemorsel-discover/backend/internal/events"
	"github.com/pageza/alchemorsel-discover/backend/internal/middleware"
	"github.com/pageza/alchemorsel-discover/backend/internal/service"
	"github.com/pageza/alchemorsel-discover/backend/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApp struct {
	router  *gin.Engine
	prefs   *service.PreferencesService
	reviews *service.ReviewService
	filters *service.FilterService
	bus     *events.Bus
}

// failingStore reads nothing and fails every write.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, storage.ErrNotFound }
func (failingStore) Set(context.Context, string, []byte) error  { return errors.New("disk full") }
func (failingStore) Delete(context.Context, string) error        { return errors.New("disk full") }

// newTestApp wires the embedded catalog and the session services behind a
// gin engine. load controls whether the stores are loaded first.
func newTestApp(t *testing.T, store storage.KeyValueStore, load bool) *testApp {
	t.Helper()
	logger := zap.NewNop()
	cat, err := catalog.Load(context.Background(), catalog.EmbeddedProvider{}, logger)
	require.NoError(t, err)

	bus := events.NewBus()
	prefs := service.NewPreferencesService(store, bus, logger)
	reviews := service.NewReviewService(store, cat.SeedReviews(), bus, logger)
	filters := service.NewFilterService(cat, prefs, bus, logger)
	recipes := service.NewRecipeService(cat, prefs, reviews, filters)
	if load {
		require.NoError(t, prefs.Load(context.Background()))
		require.NoError(t, reviews.Load(context.Background()))
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	SetupAPI(router, Services{
		Preferences: prefs,
		Filters:     filters,
		Recipes:     recipes,
		Bus:         bus,
	}, nil, logger)

	return &testApp{router: router, prefs: prefs, reviews: reviews, filters: filters, bus: bus}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

type recipeList struct {
	Recipes []struct {
		ID string `json:"id"`
	} `json:"recipes"`
	Total       int  `json:"total"`
	ActiveCount int  `json:"active_count"`
	FavsOnly    bool `json:"favorites_only"`
}

func (l recipeList) ids() []string {
	out := make([]string, len(l.Recipes))
	for i, r := range l.Recipes {
		out[i] = r.ID
	}
	return out
}

func (a *testApp) listRecipes(t *testing.T) recipeList {
	t.Helper()
	w := a.do(t, http.MethodGet, "/api/v1/recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list recipeList
	decode(t, w, &list)
	return list
}
