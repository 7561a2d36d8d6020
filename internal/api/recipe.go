package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
	"github.com/pantrychef/backend/internal/types"
)

// RecipeHandler handles recipe CRUD requests.
type RecipeHandler struct {
	service *service.RecipeService
	images  *service.ImageService
}

// NewRecipeHandler creates a new RecipeHandler instance. The image service
// may be nil when no object storage is configured; the upload route is
// simply not registered in that case.
func NewRecipeHandler(svc *service.RecipeService, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{service: svc, images: images}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
		if h.images != nil {
			recipes.PUT("/:id/image", h.UploadRecipeImage)
		}
	}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.service.CreateRecipe(c.Request.Context(), ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": types.NewRecipeResponse(recipe)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.service.GetRecipe(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": types.NewRecipeResponse(recipe)})
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	params, err := listParamsFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	recipes, pagination, err := h.service.ListRecipes(c.Request.Context(), ownerID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipes":    types.NewRecipeListResponse(recipes),
		"pagination": pagination,
	})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.service.UpdateRecipe(c.Request.Context(), id, ownerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": types.NewRecipeResponse(recipe)})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	deleted, err := h.service.DeleteRecipe(c.Request.Context(), id, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	// Ownership check before touching storage; a non-owner sees the same
	// 404 as a missing recipe.
	if _, err := h.service.GetRecipe(c.Request.Context(), id, ownerID); err != nil {
		respondError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	url, err := h.images.UploadRecipeImage(c.Request.Context(), id, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.service.AttachImage(c.Request.Context(), id, ownerID, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": types.NewRecipeResponse(recipe)})
}

func listParamsFromQuery(c *gin.Context) (types.ListRecipesParams, error) {
	verr := service.NewValidationError()
	params := types.ListRecipesParams{
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
		Source: c.Query("source"),
	}
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil {
			verr.Add("page", "page must be an integer")
		} else {
			params.Page = page
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			verr.Add("limit", "limit must be an integer")
		} else {
			params.Limit = limit
		}
	}
	if verr.HasErrors() {
		return params, verr
	}
	return params, nil
}
