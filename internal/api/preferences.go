package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
	"github.com/pageza/alchemorsel-discover/backend/internal/service"
)

type PreferencesHandler struct {
	prefs service.IPreferencesService
}

func NewPreferencesHandler(prefs service.IPreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

func (h *PreferencesHandler) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/preferences")
	{
		prefs.GET("", h.GetPreferences)
		prefs.PUT("/unit-type", h.SetUnitType)
		prefs.PUT("/vegan", h.SetVegan)
		prefs.PUT("/user-name", h.SetUserName)
		prefs.POST("/allergies", h.AddAllergy)
		prefs.DELETE("/allergies/:name", h.RemoveAllergy)
		prefs.POST("/excluded-ingredients", h.AddExcludedIngredient)
		prefs.DELETE("/excluded-ingredients/:name", h.RemoveExcludedIngredient)
		prefs.POST("/nutritional-info/toggle", h.ToggleNutritionalInfo)
		prefs.POST("/reset", h.Reset)
	}
}

func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	if !h.prefs.Loaded() {
		fail(c, service.ErrNotLoaded)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": h.prefs.Preferences()})
}

type unitTypeRequest struct {
	UnitType models.UnitType `json:"unit_type" binding:"required"`
}

func (h *PreferencesHandler) SetUnitType(c *gin.Context) {
	var req unitTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	prefs, err := h.prefs.SetUnitType(c.Request.Context(), req.UnitType)
	h.write(c, prefs, err)
}

type veganRequest struct {
	IsVegan *bool `json:"is_vegan" binding:"required"`
}

func (h *PreferencesHandler) SetVegan(c *gin.Context) {
	var req veganRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	prefs, err := h.prefs.SetIsVegan(c.Request.Context(), *req.IsVegan)
	h.write(c, prefs, err)
}

type userNameRequest struct {
	UserName string `json:"user_name"`
}

func (h *PreferencesHandler) SetUserName(c *gin.Context) {
	var req userNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	prefs, err := h.prefs.SetUserName(c.Request.Context(), req.UserName)
	h.write(c, prefs, err)
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *PreferencesHandler) AddAllergy(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	prefs, err := h.prefs.AddAllergy(c.Request.Context(), req.Name)
	h.write(c, prefs, err)
}

func (h *PreferencesHandler) RemoveAllergy(c *gin.Context) {
	prefs, err := h.prefs.RemoveAllergy(c.Request.Context(), c.Param("name"))
	h.write(c, prefs, err)
}

func (h *PreferencesHandler) AddExcludedIngredient(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	prefs, err := h.prefs.AddExcludedIngredient(c.Request.Context(), req.Name)
	h.write(c, prefs, err)
}

func (h *PreferencesHandler) RemoveExcludedIngredient(c *gin.Context) {
	prefs, err := h.prefs.RemoveExcludedIngredient(c.Request.Context(), c.Param("name"))
	h.write(c, prefs, err)
}

func (h *PreferencesHandler) ToggleNutritionalInfo(c *gin.Context) {
	prefs, err := h.prefs.ToggleNutritionalInfo(c.Request.Context())
	h.write(c, prefs, err)
}

// Reset restores default preferences, clears reviews and rebuilds the filters.
func (h *PreferencesHandler) Reset(c *gin.Context) {
	prefs, err := h.prefs.Reset(c.Request.Context())
	h.write(c, prefs, err)
}

func (h *PreferencesHandler) write(c *gin.Context, prefs models.UserPreferences, err error) {
	respond(c, http.StatusOK, gin.H{"preferences": prefs}, err)
}
