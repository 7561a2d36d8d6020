package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/service"
	"github.com/pantrychef/backend/internal/types"
)

// PreferenceHandler handles the ingredient avoidance profile.
type PreferenceHandler struct {
	service *service.PreferenceService
}

// NewPreferenceHandler creates a new PreferenceHandler instance.
func NewPreferenceHandler(svc *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{service: svc}
}

// RegisterRoutes registers the preference routes.
func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup) {
	prefs := router.Group("/profile/preferences")
	{
		prefs.GET("", h.GetPreferences)
		prefs.POST("", h.CreatePreferences)
		prefs.PUT("", h.UpdatePreferences)
	}
}

func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": profile})
}

func (h *PreferenceHandler) CreatePreferences(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.CreateProfile(c.Request.Context(), ownerID, req.IngredientsToAvoid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"preferences": profile})
}

func (h *PreferenceHandler) UpdatePreferences(c *gin.Context) {
	ownerID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.PreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), ownerID, req.IngredientsToAvoid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": profile})
}
