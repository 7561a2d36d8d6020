package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/middleware"
	"github.com/pantrychef/backend/internal/mocks"
	"github.com/pantrychef/backend/internal/repository"
	"github.com/pantrychef/backend/internal/service"
	"github.com/pantrychef/backend/internal/testhelpers"
	"github.com/pantrychef/backend/internal/types"
)

const testJWTSecret = "test-jwt-secret"

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// setupTestRouter wires the full authenticated API against a fresh SQLite
// database and a mocked generator. Image upload stays unregistered; it
// needs object storage.
func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockRecipeGenerator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.OpenSQLite(t)
	log := testLogger()

	recipeRepo := repository.NewGormRecipeRepository(db)
	prefRepo := repository.NewGormPreferenceRepository(db)
	generator := new(mocks.MockRecipeGenerator)

	recipeService := service.NewRecipeService(recipeRepo, prefRepo, generator, log)
	preferenceService := service.NewPreferenceService(prefRepo, log)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(middleware.NewJWTValidator(testJWTSecret)))
	NewRecipeHandler(recipeService, nil).RegisterRoutes(v1)
	NewLLMHandler(recipeService).RegisterRoutes(v1, nil)
	NewPreferenceHandler(preferenceService).RegisterRoutes(v1)

	return router, generator
}

// mintTestToken signs a short-lived token for the given user.
func mintTestToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	claims := &types.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

// performRequest issues a JSON request against the router, attaching the
// bearer token when one is given.
func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		jsonData, _ := json.Marshal(body)
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
