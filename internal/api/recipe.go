package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
	"github.com/pageza/alchemorsel-discover/backend/internal/service"
)

type RecipeHandler struct {
	recipes service.IRecipeService
	filters service.IFilterService
}

func NewRecipeHandler(recipes service.IRecipeService, filters service.IFilterService) *RecipeHandler {
	return &RecipeHandler{
		recipes: recipes,
		filters: filters,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("/search", h.SearchRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/:id/favorite", h.ToggleFavorite)
		recipes.GET("/:id/reviews", h.ListReviews)
		recipes.POST("/:id/reviews", h.AddReview)
	}
}

// ListRecipes returns the session's filtered, sorted results.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	results := h.filters.Results()
	state := h.filters.State()
	c.JSON(http.StatusOK, gin.H{
		"recipes":        results,
		"total":          len(results),
		"active_count":   state.ActiveCount,
		"favorites_only": state.FavoritesOnly,
	})
}

// SearchRecipes evaluates the posted filters without changing the session.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	var f models.FilterOptions
	if err := c.ShouldBindJSON(&f); err != nil {
		badRequest(c, err)
		return
	}
	if err := validateFilterOptions(f); err != nil {
		badRequest(c, err)
		return
	}

	results := h.filters.Evaluate(f)
	c.JSON(http.StatusOK, gin.H{
		"recipes": results,
		"total":   len(results),
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipe(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	recipe, err := h.recipes.ToggleFavorite(c.Request.Context(), c.Param("id"))
	respond(c, http.StatusOK, gin.H{"recipe": recipe}, err)
}

func (h *RecipeHandler) ListReviews(c *gin.Context) {
	reviews, avg, err := h.recipes.Reviews(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":        reviews,
		"average_rating": avg,
	})
}

type addReviewRequest struct {
	Rating  float64 `json:"rating" binding:"required"`
	Comment string  `json:"comment" binding:"required"`
}

func (h *RecipeHandler) AddReview(c *gin.Context) {
	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	review, err := h.recipes.AddReview(c.Request.Context(), c.Param("id"), req.Rating, req.Comment)
	respond(c, http.StatusCreated, gin.H{"review": review}, err)
}
