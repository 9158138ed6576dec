package service

import (
	"context"

	"github.com/pageza/alchemorsel-discover/backend/internal/catalog"
	"github.com/pageza/alchemorsel-discover/backend/internal/filter"
	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

// RecipeDetail is a catalog recipe decorated with the user's view of it.
type RecipeDetail struct {
	models.Recipe
	FavoriteCount int     `json:"favorite_count"`
	IsFavorite    bool    `json:"is_favorite"`
	AverageRating float64 `json:"average_rating"`
}

// RecipeService answers per-recipe questions against the catalog.
type RecipeService struct {
	catalog *catalog.Catalog
	prefs   *PreferencesService
	reviews *ReviewService
	filters *FilterService
	options filter.Options
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a RecipeService. Filter options are computed once
// since the catalog does not change during a session.
func NewRecipeService(cat *catalog.Catalog, prefs *PreferencesService, reviews *ReviewService, filters *FilterService) *RecipeService {
	return &RecipeService{
		catalog: cat,
		prefs:   prefs,
		reviews: reviews,
		filters: filters,
		options: filter.GetFilterOptions(cat.All()),
	}
}

// GetRecipe returns the recipe with id or catalog.ErrRecipeNotFound.
func (s *RecipeService) GetRecipe(id string) (RecipeDetail, error) {
	r, err := s.catalog.Get(id)
	if err != nil {
		return RecipeDetail{}, err
	}
	return s.detail(r), nil
}

// ToggleFavorite flips the favorite state of an existing recipe. The
// returned detail reflects the new state even when ErrPersistence is returned.
func (s *RecipeService) ToggleFavorite(ctx context.Context, id string) (RecipeDetail, error) {
	r, err := s.catalog.Get(id)
	if err != nil {
		return RecipeDetail{}, err
	}
	if _, err := s.prefs.ToggleFavorite(ctx, id); err != nil {
		return s.detail(r), err
	}
	return s.detail(r), nil
}

// AddReview adds a review to an existing recipe.
func (s *RecipeService) AddReview(ctx context.Context, id string, rating float64, comment string) (models.Review, error) {
	if _, err := s.catalog.Get(id); err != nil {
		return models.Review{}, err
	}
	return s.reviews.AddReview(ctx, id, rating, comment)
}

// Reviews returns the reviews of an existing recipe and their average rating.
func (s *RecipeService) Reviews(id string) ([]models.Review, float64, error) {
	if _, err := s.catalog.Get(id); err != nil {
		return nil, 0, err
	}
	return s.reviews.Reviews(id), s.reviews.AverageRating(id), nil
}

// FilterOptions returns the selectable filter values of the catalog.
func (s *RecipeService) FilterOptions() filter.Options {
	return s.options
}

func (s *RecipeService) detail(r models.Recipe) RecipeDetail {
	return RecipeDetail{
		Recipe:        r,
		FavoriteCount: s.filters.FavoriteCount(r.ID),
		IsFavorite:    s.prefs.IsFavorite(r.ID),
		AverageRating: s.reviews.AverageRating(r.ID),
	}
}
