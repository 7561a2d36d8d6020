package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesLifecycle(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := mintTestToken(t, uuid.New())

	// No profile yet.
	w := performRequest(router, "GET", "/api/v1/profile/preferences", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, "POST", "/api/v1/profile/preferences", map[string]interface{}{
		"ingredients_to_avoid": []string{"Peanut", "shellfish"},
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code)

	prefs := decodeBody(t, w)["preferences"].(map[string]interface{})
	avoid := prefs["ingredients_to_avoid"].([]interface{})
	// Terms come back normalized.
	assert.Equal(t, []interface{}{"peanut", "shellfish"}, avoid)

	w = performRequest(router, "GET", "/api/v1/profile/preferences", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, "PUT", "/api/v1/profile/preferences", map[string]interface{}{
		"ingredients_to_avoid": []string{"egg"},
	}, token)
	assert.Equal(t, http.StatusOK, w.Code)
	prefs = decodeBody(t, w)["preferences"].(map[string]interface{})
	assert.Equal(t, []interface{}{"egg"}, prefs["ingredients_to_avoid"].([]interface{}))
}

func TestCreatePreferencesTwiceConflicts(t *testing.T) {
	router, _ := setupTestRouter(t)
	token := mintTestToken(t, uuid.New())

	w := performRequest(router, "POST", "/api/v1/profile/preferences", map[string]interface{}{
		"ingredients_to_avoid": []string{"peanut"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, "POST", "/api/v1/profile/preferences", map[string]interface{}{
		"ingredients_to_avoid": []string{"milk"},
	}, token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPreferencesAreScopedPerUser(t *testing.T) {
	router, _ := setupTestRouter(t)
	firstToken := mintTestToken(t, uuid.New())
	secondToken := mintTestToken(t, uuid.New())

	w := performRequest(router, "POST", "/api/v1/profile/preferences", map[string]interface{}{
		"ingredients_to_avoid": []string{"peanut"},
	}, firstToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, "GET", "/api/v1/profile/preferences", nil, secondToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
