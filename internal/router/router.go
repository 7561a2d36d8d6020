package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/api"
	"github.com/pantrychef/backend/internal/middleware"
)

// Setup configures the application routes. The rate limiter is optional;
// passing nil leaves generation unthrottled (tests, environments without
// Redis).
func Setup(
	recipeHandler *api.RecipeHandler,
	llmHandler *api.LLMHandler,
	preferenceHandler *api.PreferenceHandler,
	healthHandler *api.HealthHandler,
	validator middleware.TokenValidator,
	generationLimiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CORS())

	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(validator))
	{
		recipeHandler.RegisterRoutes(v1)
		llmHandler.RegisterRoutes(v1, generationLimiter)
		preferenceHandler.RegisterRoutes(v1)
	}

	return router
}
