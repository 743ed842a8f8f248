package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pagecanvas/canvas-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCreationsRouter(store CreationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCreationsHandler(store)

	router := gin.New()
	router.GET("/api/v1/creations", handler.List)
	router.GET("/api/v1/creations/:id", handler.Get)
	router.PATCH("/api/v1/creations/:id", handler.Rename)
	router.DELETE("/api/v1/creations/:id", handler.Delete)
	router.GET("/api/v1/creations/:id/export", handler.Export)
	return router
}

func seededStore(t *testing.T) *memoryStore {
	t.Helper()
	store := newMemoryStore()
	require.NoError(t, store.Create(&models.Creation{
		ID:    "creation-1",
		Name:  "Gallery",
		HTML:  "<html><body>gallery</body></html>",
		Model: "gemini-2.5-flash",
	}))
	return store
}

func TestListCreations(t *testing.T) {
	router := setupCreationsRouter(seededStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/creations", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Creations []models.Creation `json:"creations"`
		Count     int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Creations, 1)
	assert.Equal(t, "Gallery", body.Creations[0].Name)
}

func TestListCreationsRejectsBadLimit(t *testing.T) {
	router := setupCreationsRouter(seededStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/creations?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/creations?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCreation(t *testing.T) {
	router := setupCreationsRouter(seededStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/creations/creation-1", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var creation models.Creation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &creation))
	assert.Equal(t, "creation-1", creation.ID)
	assert.Equal(t, "<html><body>gallery</body></html>", creation.HTML)
}

func TestGetCreationNotFound(t *testing.T) {
	router := setupCreationsRouter(newMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/creations/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRenameCreation(t *testing.T) {
	store := seededStore(t)
	router := setupCreationsRouter(store)

	payload, _ := json.Marshal(gin.H{"name": "Vacation Photos"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/creations/creation-1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	stored, err := store.Get("", "creation-1")
	require.NoError(t, err)
	assert.Equal(t, "Vacation Photos", stored.Name)
}

func TestRenameCreationRequiresName(t *testing.T) {
	router := setupCreationsRouter(seededStore(t))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/creations/creation-1", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCreation(t *testing.T) {
	store := seededStore(t)
	router := setupCreationsRouter(store)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/creations/creation-1", nil))

	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := store.Get("", "creation-1")
	assert.Error(t, err)
}

func TestDeleteCreationNotFound(t *testing.T) {
	router := setupCreationsRouter(newMemoryStore())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/creations/missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportCreation(t *testing.T) {
	router := setupCreationsRouter(seededStore(t))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/creations/creation-1/export", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="creation-1.html"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Equal(t, "<html><body>gallery</body></html>", w.Body.String())
}
