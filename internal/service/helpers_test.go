package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/internal/catalog"
	"github.com/pageza/alchemorsel-discover/backend/internal/events"
	"github.com/pageza/alchemorsel-discover/backend/internal/models"
	"github.com/pageza/alchemorsel-discover/backend/internal/storage"
)

// MockStore is a mock implementation of storage.KeyValueStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func testRecipes() []models.Recipe {
	return []models.Recipe{
		{
			ID: "1", Name: "Red Lentil Soup", PrepTime: 30, Rating: 4.5, ServingSize: 4,
			Vegan: true, Vegetarian: true,
			MealTime:    []models.MealTime{models.MealTimeLunch},
			CuisineType: []string{"indian"}, DishType: []string{"soup"}, Allergens: []string{},
			Ingredients: []models.Ingredient{{Name: "Red lentils"}, {Name: "Carrot"}},
			Reviews:     []models.Review{{ID: "seed-1", UserID: "u1", UserName: "Ana", Rating: 4, Comment: "Hearty", Date: "2024-01-01"}},
		},
		{
			ID: "2", Name: "Peanut Noodles", PrepTime: 20, Rating: 4.8, ServingSize: 2,
			Vegetarian:  true,
			MealTime:    []models.MealTime{models.MealTimeDinner},
			CuisineType: []string{"thai"}, DishType: []string{"noodles"}, Allergens: []string{"peanuts"},
			Ingredients: []models.Ingredient{{Name: "Rice noodles"}, {Name: "Peanut butter"}},
		},
		{
			ID: "3", Name: "Shrimp Tacos", PrepTime: 25, Rating: 4.0, ServingSize: 3,
			MealTime:    []models.MealTime{models.MealTimeDinner},
			CuisineType: []string{"mexican"}, DishType: []string{"tacos"}, Allergens: []string{"shellfish"},
			Ingredients: []models.Ingredient{{Name: "Shrimp"}, {Name: "Corn tortillas"}},
		},
	}
}

type testEnv struct {
	bus     *events.Bus
	store   storage.KeyValueStore
	catalog *catalog.Catalog
	prefs   *PreferencesService
	reviews *ReviewService
	filters *FilterService
	recipes *RecipeService
}

// newTestEnv wires the services the way cmd/api does, without loading state.
func newTestEnv(t *testing.T, store storage.KeyValueStore) *testEnv {
	t.Helper()
	cat, err := catalog.New(testRecipes(), zap.NewNop())
	require.NoError(t, err)

	bus := events.NewBus()
	logger := zap.NewNop()
	prefs := NewPreferencesService(store, bus, logger)
	reviews := NewReviewService(store, cat.SeedReviews(), bus, logger)
	filters := NewFilterService(cat, prefs, bus, logger)
	return &testEnv{
		bus:     bus,
		store:   store,
		catalog: cat,
		prefs:   prefs,
		reviews: reviews,
		filters: filters,
		recipes: NewRecipeService(cat, prefs, reviews, filters),
	}
}

// newLoadedEnv returns a testEnv on a memory store with both stores loaded.
func newLoadedEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newTestEnv(t, storage.NewMemoryStore())
	require.NoError(t, env.prefs.Load(context.Background()))
	require.NoError(t, env.reviews.Load(context.Background()))
	return env
}

func recipeIDs(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}
