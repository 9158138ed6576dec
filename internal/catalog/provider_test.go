package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

func TestEmbeddedProvider(t *testing.T) {
	c, err := Load(context.Background(), EmbeddedProvider{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 8, c.Len())

	for _, r := range c.All() {
		if r.Vegan {
			assert.True(t, r.Vegetarian, r.ID)
		}
	}
	assert.NotEmpty(t, c.SeedReviews())
}

func TestDBProviderReadsSeededCatalogInOrder(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RecipeRecord{}))

	ctx := context.Background()
	recipes, err := EmbeddedProvider{}.Recipes(ctx)
	require.NoError(t, err)
	require.NoError(t, Seed(ctx, db, recipes))
	require.NoError(t, Seed(ctx, db, recipes), "seeding twice replaces rows")

	got, err := NewDBProvider(db).Recipes(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(recipes))
	for i := range recipes {
		assert.Equal(t, recipes[i].ID, got[i].ID)
		assert.Equal(t, recipes[i].MealTime, got[i].MealTime)
		assert.Equal(t, recipes[i].Ingredients, got[i].Ingredients)
		assert.Equal(t, recipes[i].NutritionalInfo, got[i].NutritionalInfo)
	}
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Recipe{validRecipe("1"), validRecipe("2")})
	}))
	defer srv.Close()

	c, err := Load(context.Background(), NewHTTPProvider(srv.URL, time.Second), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestHTTPProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPProvider(srv.URL, time.Second).Recipes(context.Background())
	assert.Error(t, err)
}

func TestDecodeRecipesRejectsGarbage(t *testing.T) {
	_, err := DecodeRecipes([]byte("not json"))
	assert.Error(t, err)
}
