package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	identityapp "github.com/assetops/backend/internal/application/identity"
	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/auth"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT keys
const (
	SessionKey    = "session"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Blacklist is optional; without it revoked tokens stay valid until expiry
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger
}

// JWTAuth validates the bearer access token and stores the caller's
// session.Session in both the gin context and the request context
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		token, ok := strings.CutPrefix(c.GetHeader(AuthHeaderKey), BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(token)
		if err != nil {
			log.Debug("Access token rejected", zap.Error(err), zap.String("path", c.Request.URL.Path))
			abortWithTokenError(c, err)
			return
		}

		ctx := c.Request.Context()
		if cfg.Blacklist != nil {
			if err := checkRevoked(ctx, cfg.Blacklist, claims); err != nil {
				if errors.Is(err, auth.ErrTokenBlacklisted) {
					abortWithTokenError(c, err)
					return
				}
				// A blacklist outage does not lock every user out
				log.Error("Failed to check token blacklist", zap.Error(err))
			}
		}

		sess, err := sessionFromClaims(token, claims)
		if err != nil {
			abortWithTokenError(c, auth.ErrInvalidClaims)
			return
		}

		ctx = session.WithSession(ctx, sess)
		reqLogger := logger.FromContextOr(ctx, log)
		ctx, reqLogger = logger.WithTenantID(ctx, reqLogger, sess.TenantID.String())
		ctx, _ = logger.WithUserID(ctx, reqLogger, sess.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Set(SessionKey, sess)

		c.Next()
	}
}

// checkRevoked returns auth.ErrTokenBlacklisted for a revoked token, or the
// blacklist's own error
func checkRevoked(ctx context.Context, blacklist auth.TokenBlacklist, claims *auth.Claims) error {
	if claims.ID != "" {
		revoked, err := blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			return err
		}
		if revoked {
			return auth.ErrTokenBlacklisted
		}
	}
	revoked, err := blacklist.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		return err
	}
	if revoked {
		return auth.ErrTokenBlacklisted
	}
	return nil
}

func sessionFromClaims(token string, claims *auth.Claims) (*session.Session, error) {
	tenantID, err := claims.GetTenantUUID()
	if err != nil {
		return nil, err
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, err
	}
	sess := &session.Session{
		Token:       token,
		TokenID:     claims.ID,
		TenantID:    tenantID,
		UserID:      userID,
		UserRole:    claims.Role,
		Email:       claims.Email,
		Permissions: claims.Permissions,
		IssuedAt:    claims.GetIssuedAtTime(),
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	if sess.Permissions == nil {
		sess.Permissions = []string{}
	}
	return sess, nil
}

func abortWithTokenError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if !errors.As(identityapp.MapTokenError(err), &domainErr) {
		abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Authentication required")
		return
	}
	abortWithError(c, http.StatusUnauthorized, domainErr.Code, domainErr.Message)
}

// GetSession returns the session stored by JWTAuth
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok && sess != nil
}
