package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/assetops/backend/internal/application/session"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name     string
		sess     *session.Session
		required string
		want     int
	}{
		{"exact grant", testSession("CLERK", "asset:read"), "asset:read", http.StatusOK},
		{"resource wildcard", testSession("CLERK", "asset:*"), "asset:delete", http.StatusOK},
		{"missing grant", testSession("CLERK", "asset:read"), "asset:delete", http.StatusForbidden},
		{"other resource", testSession("CLERK", "lease:*"), "asset:read", http.StatusForbidden},
		{"admin holds everything", testSession("ADMIN"), "tenant:delete", http.StatusOK},
		{"admin code is case-insensitive", testSession("admin"), "budget:update", http.StatusOK},
		{"no session", nil, "asset:read", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			if tt.sess != nil {
				router.Use(withSession(tt.sess))
			}
			router.GET("/test", RequirePermission(tt.required), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", decodeResponse(t, w).Error.Code)
			}
		})
	}
}

func TestRequireResource(t *testing.T) {
	router := gin.New()
	router.Use(withSession(testSession("CLERK", "asset:read", "asset:update")))
	guard := RequireResource("asset")
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	router.GET("/assets", guard, ok)
	router.POST("/assets", guard, ok)
	router.PUT("/assets/:id", guard, ok)
	router.DELETE("/assets/:id", guard, ok)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/assets", http.StatusOK},
		{http.MethodPost, "/assets", http.StatusForbidden},
		{http.MethodPut, "/assets/1", http.StatusOK},
		{http.MethodDelete, "/assets/1", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestMethodToAction(t *testing.T) {
	assert.Equal(t, "read", methodToAction(http.MethodGet))
	assert.Equal(t, "create", methodToAction(http.MethodPost))
	assert.Equal(t, "update", methodToAction(http.MethodPut))
	assert.Equal(t, "update", methodToAction(http.MethodPatch))
	assert.Equal(t, "delete", methodToAction(http.MethodDelete))
	assert.Equal(t, "read", methodToAction(http.MethodHead))
}
