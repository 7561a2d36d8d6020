package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
	"github.com/pantrychef/backend/internal/types"
)

// LLMHandler handles AI generation requests.
type LLMHandler struct {
	service *service.RecipeService
}

// NewLLMHandler creates a new LLMHandler instance.
func NewLLMHandler(svc *service.RecipeService) *LLMHandler {
	return &LLMHandler{service: svc}
}

// RegisterRoutes registers the generation routes. The optional limiter
// throttles generation per user.
func (h *LLMHandler) RegisterRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	llm := router.Group("/llm")
	if limiter != nil {
		llm.Use(limiter.Middleware())
	}
	llm.POST("/generate", h.Generate)
}

// Generate returns a draft recipe plus avoidance warnings. The draft is
// not persisted; saving it is a separate create call.
func (h *LLMHandler) Generate(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft, warnings, err := h.service.GenerateRecipe(c.Request.Context(), ownerID, req.Ingredients)
	if err != nil {
		respondError(c, err)
		return
	}

	if warnings == nil {
		warnings = []types.IngredientWarning{}
	}
	c.JSON(http.StatusOK, types.GenerateRecipeResponse{
		Draft:    *draft,
		Warnings: warnings,
	})
}
