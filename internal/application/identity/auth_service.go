package identity

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/auth"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

var errInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// AuthService signs users in and out and manages their tokens
type AuthService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	roleRepo   identity.RoleRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		config:     config,
		logger:     log,
	}
}

// Login authenticates by email and password. tenant_code is only needed when
// the email is registered in more than one tenant.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	log := logger.L(ctx).With(zap.String("email", input.Email))
	log.Info("Login attempt")

	user, tenant, err := s.findLoginUser(ctx, input)
	if err != nil {
		return nil, err
	}

	if !tenant.IsActive() {
		log.Warn("Login attempt for suspended tenant", zap.String("tenant_code", tenant.Code))
		return nil, shared.NewDomainError("TENANT_SUSPENDED", "Tenant is suspended")
	}
	if err := checkCanLogin(user); err != nil {
		log.Warn("Login attempt for blocked account", zap.String("status", string(user.Status)))
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			log.Error("Failed to update user after login failure", zap.Error(err))
		}
		if locked {
			log.Warn("Account locked after too many failed attempts", zap.Int("attempts", user.FailedAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}
		log.Warn("Invalid password attempt", zap.Int("failed_attempts", user.FailedAttempts))
		return nil, errInvalidCredentials
	}

	grant, err := s.grantFor(ctx, user)
	if err != nil {
		return nil, err
	}
	pair, err := s.jwtService.GenerateTokenPair(grant)
	if err != nil {
		log.Error("Failed to generate token pair", zap.Error(err))
		return nil, err
	}

	user.RecordLoginSuccess(input.IP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		// the tokens are already issued
		log.Error("Failed to update user after successful login", zap.Error(err))
	}

	log.Info("User logged in", zap.String("user_id", user.ID.String()), zap.String("tenant_id", user.TenantID.String()))
	return &LoginResult{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessTokenExpiresAt,
		TenantID:     user.TenantID,
		UserID:       user.ID,
		UserRole:     grant.Role,
		Email:        user.Email,
		User:         toUserDTO(user),
	}, nil
}

func (s *AuthService) findLoginUser(ctx context.Context, input LoginInput) (*identity.User, *identity.Tenant, error) {
	if input.TenantCode != "" {
		tenant, err := s.tenantRepo.FindByCode(ctx, input.TenantCode)
		if err != nil {
			if shared.IsNotFound(err) {
				return nil, nil, errInvalidCredentials
			}
			return nil, nil, err
		}
		user, err := s.userRepo.FindByEmail(ctx, tenant.ID, input.Email)
		if err != nil {
			if shared.IsNotFound(err) {
				return nil, nil, errInvalidCredentials
			}
			return nil, nil, err
		}
		return user, tenant, nil
	}

	users, err := s.userRepo.FindAllByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	switch len(users) {
	case 0:
		return nil, nil, errInvalidCredentials
	case 1:
	default:
		return nil, nil, shared.NewDomainError("TENANT_REQUIRED", "This email belongs to several tenants; provide tenant_code")
	}
	user := &users[0]
	tenant, err := s.tenantRepo.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, nil, err
	}
	return user, tenant, nil
}

func checkCanLogin(user *identity.User) error {
	switch {
	case user.IsLocked():
		return shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later or contact an administrator")
	case user.Status == identity.UserStatusDeactivated:
		return shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	case user.Status == identity.UserStatusPending:
		return shared.NewDomainError("ACCOUNT_PENDING", "Account is pending activation")
	}
	return nil
}

// Refresh exchanges a refresh token for a new pair, re-reading the user's
// roles and permissions.
func (s *AuthService) Refresh(ctx context.Context, input RefreshInput) (*LoginResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, MapTokenError(err)
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, MapTokenError(auth.ErrInvalidClaims)
	}
	revoked, err := s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, MapTokenError(auth.ErrTokenBlacklisted)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewDomainError("TOKEN_INVALID", "User no longer exists")
		}
		return nil, err
	}
	if err := checkCanLogin(user); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindByID(ctx, user.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, shared.NewDomainError("TENANT_SUSPENDED", "Tenant is suspended")
	}

	grant, err := s.grantFor(ctx, user)
	if err != nil {
		return nil, err
	}
	pair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, grant)
	if err != nil {
		return nil, MapTokenError(err)
	}

	logger.L(ctx).Info("Token refreshed", zap.String("user_id", user.ID.String()))
	return &LoginResult{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessTokenExpiresAt,
		TenantID:     user.TenantID,
		UserID:       user.ID,
		UserRole:     grant.Role,
		Email:        user.Email,
		User:         toUserDTO(user),
	}, nil
}

// Logout revokes the caller's access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context) error {
	sess, err := session.Require(ctx)
	if err != nil {
		return err
	}
	ttl := time.Until(sess.ExpiresAt)
	if sess.TokenID == "" || ttl <= 0 {
		return nil
	}
	if err := s.blacklist.Revoke(ctx, sess.TokenID, ttl); err != nil {
		return err
	}
	logger.L(ctx).Info("User logged out")
	return nil
}

// Me returns the current session with a fresh copy of the user
func (s *AuthService) Me(ctx context.Context) (*MeResult, error) {
	sess, err := session.Require(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByIDForTenant(ctx, sess.TenantID, sess.UserID)
	if err != nil {
		return nil, shared.MapNotFound(err, "User")
	}
	tenant, err := s.tenantRepo.FindByID(ctx, sess.TenantID)
	if err != nil {
		return nil, shared.MapNotFound(err, "Tenant")
	}

	perms := sess.Permissions
	if perms == nil {
		perms = []string{}
	}
	result := &MeResult{
		TenantID:    sess.TenantID,
		TenantCode:  tenant.Code,
		UserID:      sess.UserID,
		UserRole:    sess.UserRole,
		Email:       sess.Email,
		Permissions: perms,
		User:        toUserDTO(user),
	}
	if !sess.ExpiresAt.IsZero() {
		exp := sess.ExpiresAt
		result.ExpiresAt = &exp
	}
	return result, nil
}

// ChangePassword replaces the caller's password and invalidates every token
// issued to them before now.
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	sess, err := session.Require(ctx)
	if err != nil {
		return err
	}
	user, err := s.userRepo.FindByIDForTenant(ctx, sess.TenantID, sess.UserID)
	if err != nil {
		return shared.MapNotFound(err, "User")
	}
	if err := user.ChangePassword(input.OldPassword, input.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	if err := s.blacklist.RevokeUser(ctx, user.ID.String(), s.jwtService.RefreshTokenExpiration()); err != nil {
		logger.L(ctx).Error("Failed to invalidate tokens after password change", zap.Error(err))
		return err
	}
	logger.L(ctx).Info("User password changed")
	return nil
}

// grantFor builds the token identity: the role of the first assigned role
// and the union of permissions of the user's enabled roles.
func (s *AuthService) grantFor(ctx context.Context, user *identity.User) (auth.GenerateTokenInput, error) {
	grant := auth.GenerateTokenInput{
		TenantID:    user.TenantID,
		UserID:      user.ID,
		Email:       user.Email,
		RoleIDs:     user.RoleIDs,
		Permissions: []string{},
	}
	if len(user.RoleIDs) == 0 {
		return grant, nil
	}

	roles, err := s.roleRepo.FindByIDs(ctx, user.TenantID, user.RoleIDs)
	if err != nil {
		return grant, err
	}
	grant.Role = primaryRoleCode(user.RoleIDs, roles)
	grant.Permissions = collectPermissions(roles)
	return grant, nil
}

func primaryRoleCode(order []uuid.UUID, roles []identity.Role) string {
	if len(order) == 0 {
		return ""
	}
	for i := range roles {
		if roles[i].ID == order[0] {
			return roles[i].Code
		}
	}
	return ""
}

func collectPermissions(roles []identity.Role) []string {
	set := make(map[string]struct{})
	for _, role := range roles {
		if !role.IsEnabled {
			continue
		}
		for _, p := range role.Permissions {
			set[p.Code] = struct{}{}
		}
	}
	perms := make([]string, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	sort.Strings(perms)
	return perms
}

// MapTokenError converts a JWT validation error into a domain error
func MapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return shared.NewDomainError("TOKEN_REVOKED", "Token has been revoked")
	}
	return shared.NewDomainError("TOKEN_INVALID", "Invalid token")
}
