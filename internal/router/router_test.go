package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/pantrychef/backend/internal/api"
	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/mocks"
	"github.com/pantrychef/backend/internal/repository"
	"github.com/pantrychef/backend/internal/service"
	"github.com/pantrychef/backend/internal/testhelpers"
)

func TestSetup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.OpenSQLite(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	recipeRepo := repository.NewGormRecipeRepository(db)
	prefRepo := repository.NewGormPreferenceRepository(db)
	recipeService := service.NewRecipeService(recipeRepo, prefRepo, new(mocks.MockRecipeGenerator), log)
	preferenceService := service.NewPreferenceService(prefRepo, log)

	engine := Setup(
		api.NewRecipeHandler(recipeService, nil),
		api.NewLLMHandler(recipeService),
		api.NewPreferenceHandler(preferenceService),
		api.NewHealthHandler(db, nil),
		middleware.NewJWTValidator("test-secret"),
		nil,
	)

	// Health is public.
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Everything under /api/v1 needs a token.
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/recipes", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
