package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfiling(t *testing.T) {
	t.Run("labels the request with its route template", func(t *testing.T) {
		var route, method string
		router := gin.New()
		router.Use(Profiling(true))
		router.GET("/assets/:id", func(c *gin.Context) {
			route, _ = pprof.Label(c.Request.Context(), "route")
			method, _ = pprof.Label(c.Request.Context(), "method")
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/assets/9", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/assets/:id", route)
		assert.Equal(t, http.MethodGet, method)
	})

	t.Run("disabled adds no labels", func(t *testing.T) {
		var found bool
		router := gin.New()
		router.Use(Profiling(false))
		router.GET("/test", func(c *gin.Context) {
			_, found = pprof.Label(c.Request.Context(), "route")
		})

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.False(t, found)
	})
}
