// Package filter implements recipe matching: the structural predicates, the
// fuzzy relevance pass, sorting, the filter option extractor and the
// reconciliation of profile-derived filters.
package filter

import (
	"strings"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

// predicate reports whether a recipe satisfies one criterion of f.
type predicate func(r *models.Recipe, f *models.FilterOptions) bool

// predicates run in order and short-circuit on the first failure.
var predicates = []predicate{
	matchMealTime,
	matchMaxPrepTime,
	matchCuisineType,
	matchDishType,
	matchAllergens,
	matchExcludedIngredients,
	matchDietary,
	matchIncludedIngredients,
}

// FilterRecipes returns the recipes that satisfy every structural criterion of
// filters, followed by the fuzzy relevance pass when a search query is set.
// Neither argument is modified. With empty filters the catalog order is kept.
func FilterRecipes(recipes []models.Recipe, filters models.FilterOptions) []models.Recipe {
	out := make([]models.Recipe, 0, len(recipes))
	for i := range recipes {
		if matches(&recipes[i], &filters) {
			out = append(out, recipes[i])
		}
	}

	if q := strings.TrimSpace(filters.SearchQuery); q != "" {
		out = Search(out, q)
	}
	return out
}

// Matches reports whether a single recipe passes the structural predicates of filters.
func Matches(r models.Recipe, filters models.FilterOptions) bool {
	return matches(&r, &filters)
}

func matches(r *models.Recipe, f *models.FilterOptions) bool {
	for _, p := range predicates {
		if !p(r, f) {
			return false
		}
	}
	return true
}

func matchMealTime(r *models.Recipe, f *models.FilterOptions) bool {
	if len(f.MealTime) == 0 {
		return true
	}
	return r.HasMealTime(f.MealTime)
}

// matchMaxPrepTime is inclusive; a negative limit matches nothing.
func matchMaxPrepTime(r *models.Recipe, f *models.FilterOptions) bool {
	if f.MaxPrepTime == nil {
		return true
	}
	limit := *f.MaxPrepTime
	if limit < 0 {
		return false
	}
	return r.PrepTime <= limit
}

func matchCuisineType(r *models.Recipe, f *models.FilterOptions) bool {
	if len(f.CuisineType) == 0 {
		return true
	}
	return intersects(r.CuisineType, f.CuisineType, false)
}

func matchDishType(r *models.Recipe, f *models.FilterOptions) bool {
	if len(f.DishType) == 0 {
		return true
	}
	return intersects(r.DishType, f.DishType, false)
}

// matchAllergens excludes any recipe carrying one of the filtered allergens.
// Allergens come from free-text profile entries, so comparison ignores case.
func matchAllergens(r *models.Recipe, f *models.FilterOptions) bool {
	if len(f.Allergens) == 0 {
		return true
	}
	return !intersects(r.Allergens, f.Allergens, true)
}

func matchExcludedIngredients(r *models.Recipe, f *models.FilterOptions) bool {
	terms := lowerTerms(f.ExcludeIngredients)
	if len(terms) == 0 {
		return true
	}
	return !hasIngredientLike(r, terms)
}

// matchDietary treats vegan+vegetarian together as an OR so vegetarian
// users also see vegan dishes.
func matchDietary(r *models.Recipe, f *models.FilterOptions) bool {
	d := f.Dietary
	switch {
	case d.Vegan && d.Vegetarian:
		return r.Vegan || r.Vegetarian
	case d.Vegan:
		return r.Vegan
	case d.Vegetarian:
		return r.Vegetarian
	default:
		return true
	}
}

func matchIncludedIngredients(r *models.Recipe, f *models.FilterOptions) bool {
	terms := lowerTerms(f.IncludeIngredients)
	if len(terms) == 0 {
		return true
	}
	return hasIngredientLike(r, terms)
}

// hasIngredientLike reports whether any ingredient name contains any of the
// lowercased terms.
func hasIngredientLike(r *models.Recipe, terms []string) bool {
	for _, ing := range r.Ingredients {
		name := strings.ToLower(ing.Name)
		for _, term := range terms {
			if strings.Contains(name, term) {
				return true
			}
		}
	}
	return false
}

func intersects(own, wanted []string, foldCase bool) bool {
	for _, a := range own {
		for _, b := range wanted {
			if a == b || (foldCase && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))) {
				return true
			}
		}
	}
	return false
}

// lowerTerms lowercases and trims terms, dropping blanks so an empty entry
// never matches every ingredient.
func lowerTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
