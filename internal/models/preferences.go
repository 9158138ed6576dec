package models

import "strings"

// UnitType is the measurement system used to display ingredient quantities.
type UnitType string

const (
	UnitMetric   UnitType = "metric"
	UnitImperial UnitType = "imperial"
)

// Valid reports whether u is a known unit system.
func (u UnitType) Valid() bool {
	return u == UnitMetric || u == UnitImperial
}

// UserPreferences is the persisted profile of the current user.
type UserPreferences struct {
	UnitType            UnitType `json:"unit_type"`
	Allergies           []string `json:"allergies"`
	ExcludedIngredients []string `json:"excluded_ingredients"`
	FavoriteRecipes     []string `json:"favorite_recipes"`
	IsVegan             bool     `json:"is_vegan"`
	UserName            string   `json:"user_name,omitempty"`
	ShowNutritionalInfo bool     `json:"show_nutritional_info"`
}

// DefaultUserPreferences returns the preferences used on first run.
func DefaultUserPreferences() UserPreferences {
	return UserPreferences{
		UnitType:            UnitMetric,
		Allergies:           []string{},
		ExcludedIngredients: []string{},
		FavoriteRecipes:     []string{},
	}
}

// Clone returns a deep copy of p.
func (p UserPreferences) Clone() UserPreferences {
	out := p
	out.Allergies = append([]string{}, p.Allergies...)
	out.ExcludedIngredients = append([]string{}, p.ExcludedIngredients...)
	out.FavoriteRecipes = append([]string{}, p.FavoriteRecipes...)
	return out
}

// HasAllergy reports whether allergen is one of the user's allergies,
// ignoring case and surrounding space as the evaluator does.
func (p UserPreferences) HasAllergy(allergen string) bool {
	return containsFold(p.Allergies, allergen)
}

// HasExcludedIngredient reports whether ingredient is in the user's excluded
// list, ignoring case and surrounding space.
func (p UserPreferences) HasExcludedIngredient(ingredient string) bool {
	return containsFold(p.ExcludedIngredients, ingredient)
}

// IsFavorite reports whether recipeID is one of the user's favorites.
func (p UserPreferences) IsFavorite(recipeID string) bool {
	return containsString(p.FavoriteRecipes, recipeID)
}

func containsFold(list []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, item := range list {
		if strings.EqualFold(strings.TrimSpace(item), v) {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
