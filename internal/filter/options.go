package filter

import (
	"sort"
	"strings"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

// PrepTimes are the max-prep-time choices offered by the filter sheet.
var PrepTimes = []int{15, 30, 45, 60}

// Options is the universe of selectable filter values for a catalog.
type Options struct {
	MealTimes    []string `json:"meal_times"`
	CuisineTypes []string `json:"cuisine_types"`
	DishTypes    []string `json:"dish_types"`
	Allergens    []string `json:"allergens"`
	Ingredients  []string `json:"ingredients"`
	PrepTimes    []int    `json:"prep_times"`
}

// GetFilterOptions collects the distinct meal times, cuisines, dish types,
// allergens and ingredient names in recipes, each sorted. Values are
// de-duplicated as stored; ingredient names are lowercased first.
func GetFilterOptions(recipes []models.Recipe) Options {
	mealTimes := map[string]struct{}{}
	cuisines := map[string]struct{}{}
	dishTypes := map[string]struct{}{}
	allergens := map[string]struct{}{}
	ingredients := map[string]struct{}{}

	for _, r := range recipes {
		for _, t := range r.MealTime {
			mealTimes[string(t)] = struct{}{}
		}
		addAll(cuisines, r.CuisineType)
		addAll(dishTypes, r.DishType)
		addAll(allergens, r.Allergens)
		for _, ing := range r.Ingredients {
			ingredients[strings.ToLower(ing.Name)] = struct{}{}
		}
	}

	return Options{
		MealTimes:    sortedKeys(mealTimes),
		CuisineTypes: sortedKeys(cuisines),
		DishTypes:    sortedKeys(dishTypes),
		Allergens:    sortedKeys(allergens),
		Ingredients:  sortedKeys(ingredients),
		PrepTimes:    append([]int{}, PrepTimes...),
	}
}

func addAll(set map[string]struct{}, values []string) {
	for _, v := range values {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
