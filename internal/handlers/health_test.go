package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"giftlist-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBasicHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	handler := NewHealthHandler(nil)
	router.GET("/health", handler.BasicHealth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	testutil.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, "healthy", resp["status"])
}

func TestDetailedHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("in-memory storage reports healthy without a database", func(t *testing.T) {
		router := gin.New()
		handler := NewHealthHandler(nil)
		router.GET("/health/detailed", handler.DetailedHealth)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/health/detailed", http.NoBody)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		testutil.ParseJSONResponse(t, w, &resp)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "in-memory", resp.Checks["database"])
		assert.NotEmpty(t, resp.Timestamp)
		assert.NotEmpty(t, resp.Uptime)
	})

	t.Run("reachable database reports healthy", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)

		router := gin.New()
		handler := NewHealthHandler(db)
		router.GET("/health/detailed", handler.DetailedHealth)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/health/detailed", http.NoBody)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp HealthResponse
		testutil.ParseJSONResponse(t, w, &resp)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "healthy", resp.Checks["database"])
	})
}
