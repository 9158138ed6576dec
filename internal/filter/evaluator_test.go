package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

func intPtr(v int) *int { return &v }

func ids(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

// threeRecipes is the R1/R2/R3 catalog used across the scenario tests.
func threeRecipes() []models.Recipe {
	return []models.Recipe{
		{
			ID: "R1", Name: "Green Smoothie Bowl", PrepTime: 10, Vegan: true, Vegetarian: true,
			MealTime:    []models.MealTime{models.MealTimeBreakfast},
			CuisineType: []string{"american"}, DishType: []string{"bowl"}, Allergens: []string{},
			Ingredients: []models.Ingredient{{Name: "Spinach"}, {Name: "Banana"}},
		},
		{
			ID: "R2", Name: "Walnut Pesto", PrepTime: 50, Vegetarian: true,
			MealTime:    []models.MealTime{models.MealTimeLunch, models.MealTimeDinner},
			CuisineType: []string{"italian"}, DishType: []string{"pasta"}, Allergens: []string{"nuts"},
			Ingredients: []models.Ingredient{{Name: "Walnuts"}, {Name: "Basil"}, {Name: "Parmesan cheese"}},
		},
		{
			ID: "R3", Name: "Chicken Stir Fry", PrepTime: 20,
			MealTime:    []models.MealTime{models.MealTimeDinner},
			CuisineType: []string{"chinese"}, DishType: []string{"stir-fry"}, Allergens: []string{},
			Ingredients: []models.Ingredient{{Name: "Chicken breast"}, {Name: "Soy sauce"}},
		},
	}
}

func TestFilterRecipesEmptyFiltersReturnsCatalogInOrder(t *testing.T) {
	catalog := threeRecipes()
	got := FilterRecipes(catalog, models.FilterOptions{})
	assert.Equal(t, []string{"R1", "R2", "R3"}, ids(got))
}

func TestFilterRecipesScenarios(t *testing.T) {
	tests := []struct {
		name    string
		filters models.FilterOptions
		want    []string
	}{
		{
			name:    "vegan under thirty minutes",
			filters: models.FilterOptions{Dietary: models.DietaryFilter{Vegan: true}, MaxPrepTime: intPtr(30)},
			want:    []string{"R1"},
		},
		{
			name:    "allergen exclusion",
			filters: models.FilterOptions{Allergens: []string{"nuts"}},
			want:    []string{"R1", "R3"},
		},
		{
			name:    "allergen exclusion ignores case",
			filters: models.FilterOptions{Allergens: []string{"Nuts"}},
			want:    []string{"R1", "R3"},
		},
		{
			name:    "meal time is OR within the field",
			filters: models.FilterOptions{MealTime: []models.MealTime{models.MealTimeBreakfast, models.MealTimeLunch}},
			want:    []string{"R1", "R2"},
		},
		{
			name:    "max prep time is inclusive",
			filters: models.FilterOptions{MaxPrepTime: intPtr(20)},
			want:    []string{"R1", "R3"},
		},
		{
			name:    "negative max prep time matches nothing",
			filters: models.FilterOptions{MaxPrepTime: intPtr(-5)},
			want:    []string{},
		},
		{
			name:    "cuisine membership",
			filters: models.FilterOptions{CuisineType: []string{"italian", "chinese"}},
			want:    []string{"R2", "R3"},
		},
		{
			name:    "dish type membership",
			filters: models.FilterOptions{DishType: []string{"bowl"}},
			want:    []string{"R1"},
		},
		{
			name:    "vegan and vegetarian together broaden",
			filters: models.FilterOptions{Dietary: models.DietaryFilter{Vegan: true, Vegetarian: true}},
			want:    []string{"R1", "R2"},
		},
		{
			name:    "vegetarian only",
			filters: models.FilterOptions{Dietary: models.DietaryFilter{Vegetarian: true}},
			want:    []string{"R1", "R2"},
		},
		{
			name:    "exclude ingredient by case-insensitive substring",
			filters: models.FilterOptions{ExcludeIngredients: []string{"CHEESE"}},
			want:    []string{"R1", "R3"},
		},
		{
			name:    "blank excluded ingredient is ignored",
			filters: models.FilterOptions{ExcludeIngredients: []string{"  "}},
			want:    []string{"R1", "R2", "R3"},
		},
		{
			name:    "include ingredient OR semantics",
			filters: models.FilterOptions{IncludeIngredients: []string{"banana", "soy"}},
			want:    []string{"R1", "R3"},
		},
		{
			name:    "unknown meal time matches nothing",
			filters: models.FilterOptions{MealTime: []models.MealTime{"brunch"}},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRecipes(threeRecipes(), tt.filters)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterRecipesDoesNotMutateInputs(t *testing.T) {
	catalog := threeRecipes()
	filters := models.FilterOptions{
		Allergens:   []string{"nuts"},
		SearchQuery: "chicken",
		MaxPrepTime: intPtr(60),
	}
	before := filters.Clone()

	FilterRecipes(catalog, filters)

	assert.Equal(t, before, filters)
	assert.Equal(t, threeRecipes(), catalog)
}

func TestFilterRecipesProperties(t *testing.T) {
	catalog := threeRecipes()

	for _, limit := range []int{0, 10, 15, 20, 50, 100} {
		for _, r := range FilterRecipes(catalog, models.FilterOptions{MaxPrepTime: intPtr(limit)}) {
			assert.LessOrEqual(t, r.PrepTime, limit)
		}
	}

	allergens := []string{"nuts"}
	for _, r := range FilterRecipes(catalog, models.FilterOptions{Allergens: allergens}) {
		assert.NotContains(t, r.Allergens, "nuts")
	}

	both := models.FilterOptions{Dietary: models.DietaryFilter{Vegan: true, Vegetarian: true}}
	for _, r := range FilterRecipes(catalog, both) {
		assert.True(t, r.Vegan || r.Vegetarian)
	}
}

func TestMatches(t *testing.T) {
	catalog := threeRecipes()
	assert.True(t, Matches(catalog[0], models.FilterOptions{Dietary: models.DietaryFilter{Vegan: true}}))
	assert.False(t, Matches(catalog[2], models.FilterOptions{Dietary: models.DietaryFilter{Vegan: true}}))
}
