package middleware

import (
	"net/http"

	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SwaggerProtection answers 404 for the documentation routes when they are
// disabled
func SwaggerProtection(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			abortWithError(c, http.StatusNotFound, dto.ErrCodeNotFound, "API documentation is not available")
			return
		}
		c.Next()
	}
}
