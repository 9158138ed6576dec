package filter

import (
	"sort"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

// FavoriteCounter returns the displayed favorite count of a recipe.
type FavoriteCounter func(recipeID string) int

// SortRecipes orders recipes in place by option. The sort is stable, so
// recipes with equal keys keep their previous (relevance) order. Unknown
// options and SortNone leave the order untouched. An empty direction means desc.
func SortRecipes(recipes []models.Recipe, option models.SortOption, dir models.SortDirection, favorites FavoriteCounter) {
	var key func(r *models.Recipe) float64
	switch option {
	case models.SortRating:
		key = func(r *models.Recipe) float64 { return r.Rating }
	case models.SortPrepTime:
		key = func(r *models.Recipe) float64 { return float64(r.PrepTime) }
	case models.SortFavorites:
		if favorites == nil {
			return
		}
		counts := make(map[string]int, len(recipes))
		for _, r := range recipes {
			counts[r.ID] = favorites(r.ID)
		}
		key = func(r *models.Recipe) float64 { return float64(counts[r.ID]) }
	default:
		return
	}

	asc := dir == models.SortAsc
	sort.SliceStable(recipes, func(i, j int) bool {
		a, b := key(&recipes[i]), key(&recipes[j])
		if asc {
			return a < b
		}
		return a > b
	})
}

// Apply runs FilterRecipes and then sorts the result by the filters' sort option.
func Apply(recipes []models.Recipe, filters models.FilterOptions, favorites FavoriteCounter) []models.Recipe {
	out := FilterRecipes(recipes, filters)
	SortRecipes(out, filters.SortBy, filters.SortDirection, favorites)
	return out
}

// ToggleSort selects option on filters. Choosing the active option flips its
// direction; choosing a new one starts descending.
func ToggleSort(filters models.FilterOptions, option models.SortOption) models.FilterOptions {
	out := filters.Clone()
	if out.SortBy == option {
		if out.SortDirection == models.SortDesc || out.SortDirection == "" {
			out.SortDirection = models.SortAsc
		} else {
			out.SortDirection = models.SortDesc
		}
		return out
	}
	out.SortBy = option
	out.SortDirection = models.SortDesc
	return out
}
