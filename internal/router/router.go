package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/config"
	"github.com/pageza/alchemorsel-discover/backend/internal/api"
	"github.com/pageza/alchemorsel-discover/backend/internal/middleware"
)

// SetupRouter configures the application routes. limiter may be nil.
func SetupRouter(cfg config.ServerConfig, svc api.Services, limiter *middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.ErrorHandler(),
	)
	if limiter != nil {
		router.Use(limiter.Middleware())
	}

	v1 := api.SetupAPI(router, svc, cfg.AllowedOrigins, logger)
	if limiter != nil {
		v1.GET("/rate-limit", limiter.StatusHandler())
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: "route not found"})
	})

	return router
}
