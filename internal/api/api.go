package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/internal/events"
	"github.com/pageza/alchemorsel-discover/backend/internal/service"
)

// Services are the session services the handlers are built on.
type Services struct {
	Preferences service.IPreferencesService
	Filters     service.IFilterService
	Recipes     service.IRecipeService
	Bus         *events.Bus
}

// SetupAPI registers the health check and every /api/v1 route on router.
func SetupAPI(router *gin.Engine, svc Services, allowedOrigins []string, logger *zap.Logger) *gin.RouterGroup {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", HealthCheck)

		NewRecipeHandler(svc.Recipes, svc.Filters).RegisterRoutes(v1)
		NewFilterHandler(svc.Filters, svc.Recipes).RegisterRoutes(v1)
		NewPreferencesHandler(svc.Preferences).RegisterRoutes(v1)
		NewResultStream(svc.Filters, svc.Bus, allowedOrigins, logger).RegisterRoutes(v1)
	}
	return v1
}
