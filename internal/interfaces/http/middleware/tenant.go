package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// TenantFinder loads a tenant by ID
type TenantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error)
}

// TenantGuardConfig holds configuration for the tenant guard
type TenantGuardConfig struct {
	Finder TenantFinder
	// CacheSize and CacheTTL bound the tenant status cache
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultTenantGuardConfig caches the status of up to 1024 tenants for 30s
func DefaultTenantGuardConfig(finder TenantFinder) TenantGuardConfig {
	return TenantGuardConfig{
		Finder:    finder,
		CacheSize: 1024,
		CacheTTL:  30 * time.Second,
	}
}

// TenantGuard rejects requests of suspended or deleted tenants. Tokens stay
// valid after a suspension, so the tenant status is checked per request
// through a short-lived cache. It runs after JWTAuth.
func TenantGuard(cfg TenantGuardConfig) gin.HandlerFunc {
	statuses := expirable.NewLRU[uuid.UUID, identity.TenantStatus](cfg.CacheSize, nil, cfg.CacheTTL)

	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			c.Next()
			return
		}

		status, cached := statuses.Get(sess.TenantID)
		if !cached {
			tenant, err := cfg.Finder.FindByID(c.Request.Context(), sess.TenantID)
			switch {
			case shared.IsNotFound(err):
				abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Tenant no longer exists")
				return
			case err != nil:
				logger.L(c.Request.Context()).Error("Failed to load tenant status", zap.Error(err))
				abortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
				return
			}
			status = tenant.Status
			statuses.Add(sess.TenantID, status)
		}

		if status == identity.TenantStatusSuspended {
			abortWithError(c, http.StatusForbidden, dto.ErrCodeTenantSuspended, "Tenant is suspended")
			return
		}
		c.Next()
	}
}
