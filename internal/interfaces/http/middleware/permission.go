package middleware

import (
	"net/http"
	"strings"

	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequirePermission lets the request through when the session grants the
// resource:action code. Administrators hold *:* and always pass.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}
		if !sess.Can(permission) {
			logger.L(c.Request.Context()).Warn("Permission denied",
				zap.String("required", permission),
				zap.String("role", sess.UserRole),
				zap.String("method", c.Request.Method),
				zap.String("route", c.FullPath()),
			)
			abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden,
				"Access denied: missing permission "+permission)
			return
		}
		c.Next()
	}
}

// RequireResource checks resource:<action> with the action derived from the
// HTTP method
func RequireResource(resource string) gin.HandlerFunc {
	byAction := map[string]gin.HandlerFunc{}
	for _, action := range []string{identity.ActionRead, identity.ActionCreate, identity.ActionUpdate, identity.ActionDelete} {
		byAction[action] = RequirePermission(resource + ":" + action)
	}
	return func(c *gin.Context) {
		byAction[methodToAction(c.Request.Method)](c)
	}
}

// methodToAction converts HTTP method to permission action
func methodToAction(method string) string {
	switch strings.ToUpper(method) {
	case http.MethodPost:
		return identity.ActionCreate
	case http.MethodPut, http.MethodPatch:
		return identity.ActionUpdate
	case http.MethodDelete:
		return identity.ActionDelete
	default:
		return identity.ActionRead
	}
}
