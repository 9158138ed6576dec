package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}
	bytes, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, a)
}

// IngredientList stores a recipe's ingredients as a JSON array.
type IngredientList []Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}
	bytes, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, l)
}

// ReviewList stores seed reviews as a JSON array.
type ReviewList []Review

// Value implements the driver.Valuer interface
func (l ReviewList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (l *ReviewList) Scan(value interface{}) error {
	if value == nil {
		*l = ReviewList{}
		return nil
	}
	bytes, err := scanBytes(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(bytes, l)
}

func scanBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", value)
	}
}

// RecipeRecord is the relational row for a catalog recipe.
type RecipeRecord struct {
	ID           string           `gorm:"size:64;primaryKey" json:"id"`
	Position     int              `gorm:"not null;index" json:"position"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	Image        string           `gorm:"size:255" json:"image"`
	PrepTime     int              `gorm:"not null" json:"prep_time"`
	Rating       float64          `gorm:"type:float" json:"rating"`
	ReviewCount  int              `json:"review_count"`
	ServingSize  int              `gorm:"not null;default:1" json:"serving_size"`
	Vegan        bool             `json:"vegan"`
	Vegetarian   bool             `json:"vegetarian"`
	MealTime     JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"meal_time"`
	CuisineType  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"cuisine_type"`
	DishType     JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"dish_type"`
	Allergens    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergens"`
	Ingredients  IngredientList   `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Reviews      ReviewList       `gorm:"type:jsonb;not null;default:'[]'" json:"reviews"`
	Calories     int              `json:"calories"`
	Fiber        float64          `gorm:"type:float" json:"fiber"`
	Protein      *float64         `gorm:"type:float" json:"protein"`
	Carbs        *float64         `gorm:"type:float" json:"carbs"`
	Fat          *float64         `gorm:"type:float" json:"fat"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// TableName returns the table name for the RecipeRecord model
func (RecipeRecord) TableName() string {
	return "recipes"
}

// NewRecipeRecord converts a catalog recipe into its relational row.
func NewRecipeRecord(r Recipe, position int) RecipeRecord {
	mealTimes := make(JSONBStringArray, len(r.MealTime))
	for i, t := range r.MealTime {
		mealTimes[i] = string(t)
	}
	return RecipeRecord{
		ID:           r.ID,
		Position:     position,
		Name:         r.Name,
		Description:  r.Description,
		Image:        r.Image,
		PrepTime:     r.PrepTime,
		Rating:       r.Rating,
		ReviewCount:  r.ReviewCount,
		ServingSize:  r.ServingSize,
		Vegan:        r.Vegan,
		Vegetarian:   r.Vegetarian,
		MealTime:     mealTimes,
		CuisineType:  JSONBStringArray(r.CuisineType),
		DishType:     JSONBStringArray(r.DishType),
		Allergens:    JSONBStringArray(r.Allergens),
		Ingredients:  IngredientList(r.Ingredients),
		Instructions: JSONBStringArray(r.Instructions),
		Tags:         JSONBStringArray(r.Tags),
		Reviews:      ReviewList(r.Reviews),
		Calories:     r.NutritionalInfo.Calories,
		Fiber:        r.NutritionalInfo.Fiber,
		Protein:      r.NutritionalInfo.Protein,
		Carbs:        r.NutritionalInfo.Carbs,
		Fat:          r.NutritionalInfo.Fat,
	}
}

// ToRecipe converts the row back into a catalog recipe.
func (rec RecipeRecord) ToRecipe() Recipe {
	mealTimes := make([]MealTime, len(rec.MealTime))
	for i, t := range rec.MealTime {
		mealTimes[i] = MealTime(t)
	}
	return Recipe{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Image:       rec.Image,
		PrepTime:    rec.PrepTime,
		Rating:      rec.Rating,
		ReviewCount: rec.ReviewCount,
		Reviews:     []Review(rec.Reviews),
		ServingSize: rec.ServingSize,
		Vegan:       rec.Vegan,
		Vegetarian:  rec.Vegetarian,
		MealTime:    mealTimes,
		CuisineType: []string(rec.CuisineType),
		DishType:    []string(rec.DishType),
		Allergens:   []string(rec.Allergens),
		NutritionalInfo: NutritionalInfo{
			Calories: rec.Calories,
			Fiber:    rec.Fiber,
			Protein:  rec.Protein,
			Carbs:    rec.Carbs,
			Fat:      rec.Fat,
		},
		Ingredients:  []Ingredient(rec.Ingredients),
		Instructions: []string(rec.Instructions),
		Tags:         []string(rec.Tags),
	}
}

// KVEntry is a single key-value blob in the relational persistence backend.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;size:255;primaryKey"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the KVEntry model
func (KVEntry) TableName() string {
	return "kv_entries"
}
