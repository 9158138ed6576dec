package service

import (
	"context"

	"github.com/pageza/alchemorsel-discover/backend/internal/filter"
	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

// IPreferencesService defines the interface for user preference operations
type IPreferencesService interface {
	Load(ctx context.Context) error
	Loaded() bool
	Preferences() models.UserPreferences
	IsFavorite(recipeID string) bool
	SetUnitType(ctx context.Context, unit models.UnitType) (models.UserPreferences, error)
	AddAllergy(ctx context.Context, allergy string) (models.UserPreferences, error)
	RemoveAllergy(ctx context.Context, allergy string) (models.UserPreferences, error)
	AddExcludedIngredient(ctx context.Context, ingredient string) (models.UserPreferences, error)
	RemoveExcludedIngredient(ctx context.Context, ingredient string) (models.UserPreferences, error)
	ToggleFavorite(ctx context.Context, recipeID string) (models.UserPreferences, error)
	SetIsVegan(ctx context.Context, vegan bool) (models.UserPreferences, error)
	SetUserName(ctx context.Context, name string) (models.UserPreferences, error)
	ToggleNutritionalInfo(ctx context.Context) (models.UserPreferences, error)
	Reset(ctx context.Context) (models.UserPreferences, error)
}

// IReviewService defines the interface for review operations
type IReviewService interface {
	Load(ctx context.Context) error
	Loaded() bool
	AddReview(ctx context.Context, recipeID string, rating float64, comment string) (models.Review, error)
	Reviews(recipeID string) []models.Review
	AverageRating(recipeID string) float64
	Clear(ctx context.Context) error
}

// IFilterService defines the interface for the browsing session's filters
type IFilterService interface {
	Filters() models.FilterOptions
	State() FilterState
	SetFilters(f models.FilterOptions) FilterState
	SetSearchQuery(q string) FilterState
	SetFavoritesOnly(only bool) FilterState
	ToggleSort(option models.SortOption) FilterState
	Initialize() FilterState
	Sync() FilterState
	Clear() FilterState
	ActiveCount() int
	IsActive() bool
	Results() []models.Recipe
	Evaluate(f models.FilterOptions) []models.Recipe
	MatchCount(f models.FilterOptions) int
	FavoriteCount(recipeID string) int
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GetRecipe(id string) (RecipeDetail, error)
	ToggleFavorite(ctx context.Context, id string) (RecipeDetail, error)
	AddReview(ctx context.Context, id string, rating float64, comment string) (models.Review, error)
	Reviews(id string) ([]models.Review, float64, error)
	FilterOptions() filter.Options
}
