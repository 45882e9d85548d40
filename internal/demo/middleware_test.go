package demo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(enabled bool) *gin.Engine {
	router := gin.New()
	router.Use(NewMiddleware(enabled).Handler())
	ok := func(c *gin.Context) { c.String(http.StatusOK, "OK") }
	router.GET("/api/books", ok)
	router.POST("/api/books", ok)
	router.PATCH("/api/books/1/status", ok)
	router.DELETE("/api/books/1", ok)
	router.OPTIONS("/api/books", ok)
	return router
}

func TestNewMiddleware(t *testing.T) {
	assert.True(t, NewMiddleware(true).IsEnabled())
	assert.False(t, NewMiddleware(false).IsEnabled())
}

func TestMiddleware_AllowsReads(t *testing.T) {
	router := newTestRouter(true)

	for _, method := range []string{http.MethodGet, http.MethodOptions} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, "/api/books", nil))
		assert.Equal(t, http.StatusOK, w.Code, method)
	}
}

func TestMiddleware_BlocksWrites(t *testing.T) {
	router := newTestRouter(true)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/books"},
		{http.MethodPatch, "/api/books/1/status"},
		{http.MethodDelete, "/api/books/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			require.Equal(t, http.StatusForbidden, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "demo_mode", body["code"])
			assert.Equal(t, true, body["demo_mode"])
		})
	}
}

func TestMiddleware_DisabledPassesEverything(t *testing.T) {
	router := newTestRouter(false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/books/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
