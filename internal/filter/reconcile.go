package filter

import (
	"strings"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

// Baseline builds the filters implied by the user's profile alone: their
// allergies, excluded ingredients and, for vegan users, the vegan flag.
// The vegan flag is never forced to false.
func Baseline(prefs models.UserPreferences) models.FilterOptions {
	f := models.FilterOptions{
		Allergens:          copyOrNil(prefs.Allergies),
		ExcludeIngredients: copyOrNil(prefs.ExcludedIngredients),
	}
	if prefs.IsVegan {
		f.Dietary.Vegan = true
	}
	return f
}

// SyncProfile replaces the allergen and excluded-ingredient fields of filters
// with copies of the profile lists, leaving every other field untouched.
// Allergens added ad hoc that are not in the profile are dropped.
func SyncProfile(filters models.FilterOptions, prefs models.UserPreferences) models.FilterOptions {
	out := filters.Clone()
	out.Allergens = copyOrNil(prefs.Allergies)
	out.ExcludeIngredients = copyOrNil(prefs.ExcludedIngredients)
	return out
}

// ActiveFilterCount counts the facets the user chose by hand, leaving out
// values present only because of profile defaults.
func ActiveFilterCount(filters models.FilterOptions, prefs models.UserPreferences) int {
	count := len(filters.MealTime) + len(filters.CuisineType) + len(filters.DishType)

	for _, a := range filters.Allergens {
		if !prefs.HasAllergy(a) {
			count++
		}
	}

	count += len(filters.IncludeIngredients)
	for _, ing := range filters.ExcludeIngredients {
		if !prefs.HasExcludedIngredient(ing) {
			count++
		}
	}

	if filters.Dietary.Vegan && !prefs.IsVegan {
		count++
	}
	if filters.Dietary.Vegetarian {
		count++
	}
	if filters.MaxPrepTime != nil {
		count++
	}
	if filters.SortBy != "" && filters.SortBy != models.SortNone {
		count++
	}
	return count
}

// IsFilterActive reports whether any hand-chosen filter or a search query is
// in effect. Exclusions and allergens owned by the profile do not count, and
// a sort direction without a sort key is not a filter.
func IsFilterActive(filters models.FilterOptions, prefs models.UserPreferences) bool {
	if ActiveFilterCount(filters, prefs) > 0 {
		return true
	}
	return len(filters.MealTime) > 0 ||
		len(filters.CuisineType) > 0 ||
		len(filters.DishType) > 0 ||
		len(filters.IncludeIngredients) > 0 ||
		filters.MaxPrepTime != nil ||
		strings.TrimSpace(filters.SearchQuery) != ""
}

func copyOrNil(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return append([]string{}, s...)
}
