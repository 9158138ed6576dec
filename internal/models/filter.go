package models

// SortOption selects the ordering applied after filtering.
type SortOption string

const (
	SortNone      SortOption = "none"
	SortRating    SortOption = "rating"
	SortFavorites SortOption = "favorites"
	SortPrepTime  SortOption = "prepTime"
)

// SortDirection is the direction of a SortOption.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// DietaryFilter holds the independent dietary flags. A false flag imposes no constraint.
type DietaryFilter struct {
	Vegan      bool `json:"vegan,omitempty"`
	Vegetarian bool `json:"vegetarian,omitempty"`
}

// FilterOptions describes the criteria a recipe must satisfy. Every field is
// optional and an empty field imposes no constraint.
type FilterOptions struct {
	MealTime           []MealTime    `json:"meal_time,omitempty"`
	MaxPrepTime        *int          `json:"max_prep_time,omitempty"`
	CuisineType        []string      `json:"cuisine_type,omitempty"`
	DishType           []string      `json:"dish_type,omitempty"`
	Allergens          []string      `json:"allergens,omitempty"`
	IncludeIngredients []string      `json:"include_ingredients,omitempty"`
	ExcludeIngredients []string      `json:"exclude_ingredients,omitempty"`
	Dietary            DietaryFilter `json:"dietary"`
	SearchQuery        string        `json:"search_query,omitempty"`
	SortBy             SortOption    `json:"sort_by,omitempty"`
	SortDirection      SortDirection `json:"sort_direction,omitempty"`
}

// Clone returns a deep copy so callers never share slices with the original.
func (f FilterOptions) Clone() FilterOptions {
	out := f
	out.MealTime = cloneSlice(f.MealTime)
	out.CuisineType = cloneSlice(f.CuisineType)
	out.DishType = cloneSlice(f.DishType)
	out.Allergens = cloneSlice(f.Allergens)
	out.IncludeIngredients = cloneSlice(f.IncludeIngredients)
	out.ExcludeIngredients = cloneSlice(f.ExcludeIngredients)
	if f.MaxPrepTime != nil {
		v := *f.MaxPrepTime
		out.MaxPrepTime = &v
	}
	return out
}

// IsEmpty reports whether no field is populated.
func (f FilterOptions) IsEmpty() bool {
	return len(f.MealTime) == 0 &&
		f.MaxPrepTime == nil &&
		len(f.CuisineType) == 0 &&
		len(f.DishType) == 0 &&
		len(f.Allergens) == 0 &&
		len(f.IncludeIngredients) == 0 &&
		len(f.ExcludeIngredients) == 0 &&
		!f.Dietary.Vegan && !f.Dietary.Vegetarian &&
		f.SearchQuery == "" &&
		(f.SortBy == "" || f.SortBy == SortNone)
}

// cloneSlice copies s, keeping nil as nil.
func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
