package models

// MealTime is the part of the day a recipe is suited for.
type MealTime string

const (
	MealTimeBreakfast MealTime = "breakfast"
	MealTimeLunch     MealTime = "lunch"
	MealTimeDinner    MealTime = "dinner"
	MealTimeSnack     MealTime = "snack"
	MealTimeDessert   MealTime = "dessert"
)

// Ingredient is a single line of a recipe's ingredient list.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// NutritionalInfo holds per-serving nutrition values.
type NutritionalInfo struct {
	Calories int      `json:"calories"`
	Fiber    float64  `json:"fiber"`
	Protein  *float64 `json:"protein,omitempty"`
	Carbs    *float64 `json:"carbs,omitempty"`
	Fat      *float64 `json:"fat,omitempty"`
}

// Recipe represents a recipe in the catalog. Recipes are read-only for the
// lifetime of a session.
type Recipe struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Image           string          `json:"image"`
	PrepTime        int             `json:"prep_time"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"review_count"`
	Reviews         []Review        `json:"reviews,omitempty"`
	ServingSize     int             `json:"serving_size"`
	Vegan           bool            `json:"vegan"`
	Vegetarian      bool            `json:"vegetarian"`
	MealTime        []MealTime      `json:"meal_time"`
	CuisineType     []string        `json:"cuisine_type"`
	DishType        []string        `json:"dish_type"`
	Allergens       []string        `json:"allergens"`
	NutritionalInfo NutritionalInfo `json:"nutritional_info"`
	Ingredients     []Ingredient    `json:"ingredients"`
	Instructions    []string        `json:"instructions"`
	Tags            []string        `json:"tags"`
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	out := r
	out.Reviews = cloneSlice(r.Reviews)
	out.MealTime = cloneSlice(r.MealTime)
	out.CuisineType = cloneSlice(r.CuisineType)
	out.DishType = cloneSlice(r.DishType)
	out.Allergens = cloneSlice(r.Allergens)
	out.Ingredients = cloneSlice(r.Ingredients)
	out.Instructions = cloneSlice(r.Instructions)
	out.Tags = cloneSlice(r.Tags)
	out.NutritionalInfo.Protein = clonePtr(r.NutritionalInfo.Protein)
	out.NutritionalInfo.Carbs = clonePtr(r.NutritionalInfo.Carbs)
	out.NutritionalInfo.Fat = clonePtr(r.NutritionalInfo.Fat)
	return out
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// HasMealTime reports whether the recipe is tagged with any of the given meal times.
func (r Recipe) HasMealTime(times []MealTime) bool {
	for _, own := range r.MealTime {
		for _, t := range times {
			if own == t {
				return true
			}
		}
	}
	return false
}
