package middleware

import (
	"context"

	"github.com/assetops/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Profiling attaches route and method labels to the CPU samples taken while
// the request runs. It is a pass-through when profiling is disabled.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		telemetry.TagRequest(c.Request.Context(), c.FullPath(), c.Request.Method, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
