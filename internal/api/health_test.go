package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pantrychef/backend/internal/testhelpers"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.OpenSQLite(t)

	router := gin.New()
	router.GET("/health", NewHealthHandler(db, nil).Health)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "ok", body["redis"])
}
