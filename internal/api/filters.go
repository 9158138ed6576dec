package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
	"github.com/pageza/alchemorsel-discover/backend/internal/service"
)

type FilterHandler struct {
	filters service.IFilterService
	recipes service.IRecipeService
}

func NewFilterHandler(filters service.IFilterService, recipes service.IRecipeService) *FilterHandler {
	return &FilterHandler{
		filters: filters,
		recipes: recipes,
	}
}

func (h *FilterHandler) RegisterRoutes(router *gin.RouterGroup) {
	filters := router.Group("/filters")
	{
		filters.GET("", h.GetFilters)
		filters.PUT("", h.SetFilters)
		filters.GET("/options", h.GetOptions)
		filters.PUT("/search", h.SetSearchQuery)
		filters.PUT("/favorites-only", h.SetFavoritesOnly)
		filters.POST("/sort", h.ToggleSort)
		filters.POST("/clear", h.Clear)
		filters.POST("/preview", h.Preview)
	}
}

func (h *FilterHandler) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, h.filters.State())
}

// SetFilters replaces the session filters with the posted FilterOptions.
func (h *FilterHandler) SetFilters(c *gin.Context) {
	var f models.FilterOptions
	if err := c.ShouldBindJSON(&f); err != nil {
		badRequest(c, err)
		return
	}
	if err := validateFilterOptions(f); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.filters.SetFilters(f))
}

func (h *FilterHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": h.recipes.FilterOptions()})
}

type searchRequest struct {
	Query string `json:"query"`
}

func (h *FilterHandler) SetSearchQuery(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.filters.SetSearchQuery(req.Query))
}

type favoritesOnlyRequest struct {
	FavoritesOnly *bool `json:"favorites_only" binding:"required"`
}

func (h *FilterHandler) SetFavoritesOnly(c *gin.Context) {
	var req favoritesOnlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, h.filters.SetFavoritesOnly(*req.FavoritesOnly))
}

type sortRequest struct {
	SortBy models.SortOption `json:"sort_by" binding:"required"`
}

// ToggleSort selects a sort option, flipping the direction when it is already selected.
func (h *FilterHandler) ToggleSort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !validSortOption(req.SortBy) {
		badRequest(c, fmt.Errorf("unknown sort option %q", req.SortBy))
		return
	}
	c.JSON(http.StatusOK, h.filters.ToggleSort(req.SortBy))
}

func (h *FilterHandler) Clear(c *gin.Context) {
	c.JSON(http.StatusOK, h.filters.Clear())
}

// Preview counts the recipes the posted filters would match.
func (h *FilterHandler) Preview(c *gin.Context) {
	var f models.FilterOptions
	if err := c.ShouldBindJSON(&f); err != nil {
		badRequest(c, err)
		return
	}
	if err := validateFilterOptions(f); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": h.filters.MatchCount(f)})
}

func validSortOption(o models.SortOption) bool {
	switch o {
	case models.SortNone, models.SortRating, models.SortFavorites, models.SortPrepTime:
		return true
	}
	return false
}

func validateFilterOptions(f models.FilterOptions) error {
	for _, mt := range f.MealTime {
		switch mt {
		case models.MealTimeBreakfast, models.MealTimeLunch, models.MealTimeDinner, models.MealTimeSnack, models.MealTimeDessert:
		default:
			return fmt.Errorf("unknown meal time %q", mt)
		}
	}
	if f.SortBy != "" && !validSortOption(f.SortBy) {
		return fmt.Errorf("unknown sort option %q", f.SortBy)
	}
	switch f.SortDirection {
	case "", models.SortAsc, models.SortDesc:
	default:
		return fmt.Errorf("unknown sort direction %q", f.SortDirection)
	}
	return nil
}
