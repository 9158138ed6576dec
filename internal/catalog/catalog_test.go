package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

func validRecipe(id string) models.Recipe {
	return models.Recipe{ID: id, Name: "Recipe " + id, PrepTime: 10, Rating: 4, ServingSize: 2}
}

func TestNewValidatesRecipes(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.Recipe)
	}{
		{"empty id", func(r *models.Recipe) { r.ID = "" }},
		{"zero prep time", func(r *models.Recipe) { r.PrepTime = 0 }},
		{"rating above five", func(r *models.Recipe) { r.Rating = 5.1 }},
		{"negative rating", func(r *models.Recipe) { r.Rating = -1 }},
		{"no servings", func(r *models.Recipe) { r.ServingSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe("1")
			tt.mutate(&r)
			_, err := New([]models.Recipe{r}, zap.NewNop())
			assert.ErrorIs(t, err, ErrInvalidRecipe)
		})
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]models.Recipe{validRecipe("1"), validRecipe("1")}, nil)
	assert.ErrorIs(t, err, ErrInvalidRecipe)
}

func TestNewNormalizesVeganToVegetarian(t *testing.T) {
	r := validRecipe("1")
	r.Vegan = true

	c, err := New([]models.Recipe{r}, zap.NewNop())
	require.NoError(t, err)

	got, err := c.Get("1")
	require.NoError(t, err)
	assert.True(t, got.Vegetarian)
}

func TestGet(t *testing.T) {
	c, err := New([]models.Recipe{validRecipe("1"), validRecipe("2")}, nil)
	require.NoError(t, err)

	r, err := c.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "2", r.ID)

	_, err = c.Get("42")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestAllKeepsOrderAndCopies(t *testing.T) {
	c, err := New([]models.Recipe{validRecipe("b"), validRecipe("a")}, nil)
	require.NoError(t, err)

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)

	all[0].Name = "changed"
	r, _ := c.Get("b")
	assert.Equal(t, "Recipe b", r.Name)
	assert.Equal(t, 2, c.Len())
}

func TestReturnedRecipesDoNotAliasCatalog(t *testing.T) {
	src := validRecipe("1")
	src.Allergens = []string{"peanuts"}
	src.MealTime = []models.MealTime{models.MealTimeDinner}
	src.Ingredients = []models.Ingredient{{Name: "Rice noodles"}}
	c, err := New([]models.Recipe{src}, nil)
	require.NoError(t, err)

	src.Allergens[0] = "changed at source"

	all := c.All()
	all[0].Allergens[0] = "changed"
	all[0].MealTime[0] = models.MealTimeBreakfast
	all[0].Ingredients[0].Name = "changed"

	got, err := c.Get("1")
	require.NoError(t, err)
	got.Allergens = append(got.Allergens[:0], "changed via get")

	r, err := c.Get("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"peanuts"}, r.Allergens)
	assert.Equal(t, []models.MealTime{models.MealTimeDinner}, r.MealTime)
	assert.Equal(t, "Rice noodles", r.Ingredients[0].Name)
}

func TestSeedReviews(t *testing.T) {
	r := validRecipe("1")
	r.Reviews = []models.Review{{ID: "rv", Rating: 5, Comment: "ok"}}
	c, err := New([]models.Recipe{r, validRecipe("2")}, nil)
	require.NoError(t, err)

	seeds := c.SeedReviews()
	assert.Len(t, seeds, 1)
	assert.Equal(t, "rv", seeds["1"][0].ID)
}
