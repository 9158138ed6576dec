package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

func searchCatalog() []models.Recipe {
	return []models.Recipe{
		{
			ID: "1", Name: "Tomato Soup", Description: "Great with pasta on the side",
			Ingredients: []models.Ingredient{{Name: "Tomatoes"}, {Name: "Onion"}},
			Tags:        []string{"comfort"}, CuisineType: []string{"american"}, DishType: []string{"soup"},
		},
		{
			ID: "2", Name: "Pesto Pasta Bake", Description: "Baked penne with basil pesto",
			Ingredients: []models.Ingredient{{Name: "Penne"}, {Name: "Basil"}},
			Tags:        []string{"family"}, CuisineType: []string{"italian"}, DishType: []string{"pasta"},
		},
		{
			ID: "3", Name: "Chicken Curry", Description: "Spicy and rich",
			Ingredients: []models.Ingredient{{Name: "Chicken thighs"}, {Name: "Coconut milk"}},
			Tags:        []string{"spicy"}, CuisineType: []string{"indian"}, DishType: []string{"curry"},
		},
	}
}

func TestSearchMatchesExactTerm(t *testing.T) {
	got := FilterRecipes(searchCatalog(), models.FilterOptions{SearchQuery: "pasta"})
	require.NotEmpty(t, got)
	assert.Equal(t, "2", got[0].ID, "name match ranks above description match")
	assert.Contains(t, ids(got), "1")
	assert.NotContains(t, ids(got), "3")
}

func TestSearchRejectsGibberish(t *testing.T) {
	got := FilterRecipes(searchCatalog(), models.FilterOptions{SearchQuery: "xyzzyqq"})
	assert.Empty(t, got)
}

func TestSearchToleratesTypos(t *testing.T) {
	got := FilterRecipes(searchCatalog(), models.FilterOptions{SearchQuery: "chiken cury"})
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestSearchMatchesPartialTerm(t *testing.T) {
	got := FilterRecipes(searchCatalog(), models.FilterOptions{SearchQuery: "coco"})
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)
}

func TestSearchWhitespaceQueryKeepsOrder(t *testing.T) {
	got := FilterRecipes(searchCatalog(), models.FilterOptions{SearchQuery: "   "})
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestSearchPunctuationOnlyQueryIsIgnored(t *testing.T) {
	got := Search(searchCatalog(), "!!!")
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestSearchRunsAfterStructuralFilters(t *testing.T) {
	got := FilterRecipes(searchCatalog(), models.FilterOptions{
		SearchQuery: "pasta",
		CuisineType: []string{"american"},
	})
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestRankScoresAreDescending(t *testing.T) {
	results := Rank(searchCatalog(), "pasta")
	require.Len(t, results, 2)
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestTermDistance(t *testing.T) {
	assert.Equal(t, 0.0, termDistance("past", "pasta"))
	assert.InDelta(t, 0.2, termDistance("psta", "pasta"), 0.001)
	assert.Greater(t, termDistance("xyzzyqq", "pasta"), MatchThreshold)
	assert.Greater(t, termDistance("soup", "sourdough"), MatchThreshold)
	assert.Equal(t, 1.0, termDistance("ham", "hat"))
	assert.Equal(t, 0.0, termDistance("ham", "graham"))
	assert.Less(t, termDistance("chiken", "chickens"), MatchThreshold)
}

func TestSearchShortTermsStayStrict(t *testing.T) {
	recipes := []models.Recipe{
		{ID: "a", Name: "Avocado Toast", Ingredients: []models.Ingredient{{Name: "Sourdough bread"}}},
		{ID: "b", Name: "Margherita Pizza", Tags: []string{"family"}},
		{ID: "c", Name: "Lentil Soup"},
	}

	assert.Equal(t, []string{"c"}, ids(Search(recipes, "soup")))
	assert.Empty(t, Search(recipes, "ham"))
	assert.Empty(t, Search(recipes, "pie"))
}
