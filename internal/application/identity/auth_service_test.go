package identity

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/auth"
	"github.com/assetops/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	identity.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

const testPassword = "secret123"

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}

type authFixture struct {
	tenants   *MockTenantRepository
	users     *MockUserRepository
	roles     *MockRoleRepository
	jwt       *auth.JWTService
	blacklist *auth.InMemoryTokenBlacklist
	svc       *AuthService

	tenant *identity.Tenant
	user   *identity.User
	role   *identity.Role
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		tenants:   new(MockTenantRepository),
		users:     new(MockUserRepository),
		roles:     new(MockRoleRepository),
		blacklist: auth.NewInMemoryTokenBlacklist(),
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-at-least-32-chars",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "assetops-test",
			MaxRefreshCount:        5,
		}),
	}
	f.svc = NewAuthService(f.tenants, f.users, f.roles, f.jwt, f.blacklist, DefaultAuthServiceConfig(), zap.NewNop())

	var err error
	f.tenant, err = identity.NewTenant("ACME", "Acme Corp")
	require.NoError(t, err)
	f.role, err = identity.NewRole(f.tenant.ID, "auditor", "Auditor")
	require.NoError(t, err)
	require.NoError(t, f.role.SetPermissions([]string{"asset:read", "lease:read"}))
	f.user, err = identity.NewActiveUser(f.tenant.ID, "ops@acme.test", testPassword)
	require.NoError(t, err)
	require.NoError(t, f.user.SetRoles([]uuid.UUID{f.role.ID}))
	return f
}

func (f *authFixture) expectSingleTenantLookup() {
	f.users.On("FindAllByEmail", mock.Anything, "ops@acme.test").Return([]identity.User{*f.user}, nil)
	f.tenants.On("FindByID", mock.Anything, f.tenant.ID).Return(f.tenant, nil)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	f.expectSingleTenantLookup()
	f.roles.On("FindByIDs", mock.Anything, f.tenant.ID, []uuid.UUID{f.role.ID}).Return([]identity.Role{*f.role}, nil)
	f.users.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	res, err := f.svc.Login(context.Background(), LoginInput{Email: "ops@acme.test", Password: testPassword, IP: "10.0.0.1"})

	require.NoError(t, err)
	assert.Equal(t, f.tenant.ID, res.TenantID)
	assert.Equal(t, f.user.ID, res.UserID)
	assert.Equal(t, "AUDITOR", res.UserRole)
	assert.Equal(t, "ops@acme.test", res.Email)
	assert.NotEmpty(t, res.RefreshToken)

	claims, err := f.jwt.ValidateAccessToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{"asset:read", "lease:read"}, claims.Permissions)
	assert.Equal(t, "AUDITOR", claims.Role)
	f.users.AssertCalled(t, "Save", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
		return u.LastLoginIP == "10.0.0.1"
	}))
}

func TestAuthService_Login_WithTenantCode(t *testing.T) {
	f := newAuthFixture(t)
	f.tenants.On("FindByCode", mock.Anything, "acme").Return(f.tenant, nil)
	f.users.On("FindByEmail", mock.Anything, f.tenant.ID, "ops@acme.test").Return(f.user, nil)
	f.roles.On("FindByIDs", mock.Anything, f.tenant.ID, mock.Anything).Return([]identity.Role{*f.role}, nil)
	f.users.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Login(context.Background(), LoginInput{Email: "ops@acme.test", Password: testPassword, TenantCode: "acme"})
	require.NoError(t, err)
	f.users.AssertNotCalled(t, "FindAllByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Failures(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindAllByEmail", mock.Anything, "nobody@acme.test").Return([]identity.User{}, nil)

		_, err := f.svc.Login(context.Background(), LoginInput{Email: "nobody@acme.test", Password: testPassword})
		requireCode(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("email in several tenants", func(t *testing.T) {
		f := newAuthFixture(t)
		f.users.On("FindAllByEmail", mock.Anything, "ops@acme.test").Return([]identity.User{*f.user, *f.user}, nil)

		_, err := f.svc.Login(context.Background(), LoginInput{Email: "ops@acme.test", Password: testPassword})
		requireCode(t, err, "TENANT_REQUIRED")
	})

	t.Run("wrong password counts a failure", func(t *testing.T) {
		f := newAuthFixture(t)
		f.expectSingleTenantLookup()
		var saved *identity.User
		f.users.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*identity.User)
		}).Return(nil)

		_, err := f.svc.Login(context.Background(), LoginInput{Email: "ops@acme.test", Password: "wrong-pass1"})
		requireCode(t, err, "INVALID_CREDENTIALS")
		require.NotNil(t, saved)
		assert.Equal(t, 1, saved.FailedAttempts)
	})

	t.Run("fifth failure locks the account", func(t *testing.T) {
		f := newAuthFixture(t)
		f.user.FailedAttempts = 4
		f.expectSingleTenantLookup()
		f.users.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err := f.svc.Login(context.Background(), LoginInput{Email: "ops@acme.test", Password: "wrong-pass1"})
		requireCode(t, err, "ACCOUNT_LOCKED")
	})

	t.Run("locked account rejects even the right password", func(t *testing.T) {
		f := newAuthFixture(t)
		until := time.Now().Add(10 * time.Minute)
		f.user.Status = identity.UserStatusLocked
		f.user.LockedUntil = &until
		f.expectSingleTenantLookup()

		_, err := f.svc.Login(context.Background(), LoginInput{Email: "ops@acme.test", Password: testPassword})
		requireCode(t, err, "ACCOUNT_LOCKED")
	})

	t.Run("suspended tenant", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.tenant.Suspend())
		f.expectSingleTenantLookup()

		_, err := f.svc.Login(context.Background(), LoginInput{Email: "ops@acme.test", Password: testPassword})
		requireCode(t, err, "TENANT_SUSPENDED")
	})
}

func TestAuthService_Login_UserWithoutRoles(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.user.SetRoles(nil))
	f.expectSingleTenantLookup()
	f.users.On("Save", mock.Anything, mock.Anything).Return(nil)

	res, err := f.svc.Login(context.Background(), LoginInput{Email: "ops@acme.test", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "", res.UserRole)
	f.roles.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Refresh(t *testing.T) {
	f := newAuthFixture(t)
	pair, err := f.jwt.GenerateTokenPair(auth.GenerateTokenInput{TenantID: f.tenant.ID, UserID: f.user.ID, Email: f.user.Email})
	require.NoError(t, err)
	f.users.On("FindByID", mock.Anything, f.user.ID).Return(f.user, nil)
	f.tenants.On("FindByID", mock.Anything, f.tenant.ID).Return(f.tenant, nil)
	f.roles.On("FindByIDs", mock.Anything, f.tenant.ID, mock.Anything).Return([]identity.Role{*f.role}, nil)

	res, err := f.svc.Refresh(context.Background(), RefreshInput{RefreshToken: pair.RefreshToken})

	require.NoError(t, err)
	assert.Equal(t, "AUDITOR", res.UserRole)
	claims, err := f.jwt.ValidateAccessToken(res.Token)
	require.NoError(t, err)
	assert.Contains(t, claims.Permissions, "lease:read")
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	pair, err := f.jwt.GenerateTokenPair(auth.GenerateTokenInput{TenantID: f.tenant.ID, UserID: f.user.ID})
	require.NoError(t, err)

	_, err = f.svc.Refresh(context.Background(), RefreshInput{RefreshToken: pair.AccessToken})
	requireCode(t, err, "TOKEN_INVALID")
}

func sessionCtx(tenantID, userID uuid.UUID) context.Context {
	return session.WithSession(context.Background(), &session.Session{
		TenantID:  tenantID,
		UserID:    userID,
		UserRole:  "ADMIN",
		Email:     "ops@acme.test",
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})
}

func TestAuthService_Logout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := sessionCtx(f.tenant.ID, f.user.ID)

	require.NoError(t, f.svc.Logout(ctx))

	revoked, err := f.blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	assert.ErrorIs(t, f.svc.Logout(context.Background()), shared.ErrUnauthorized)
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := sessionCtx(f.tenant.ID, f.user.ID)
	f.users.On("FindByIDForTenant", mock.Anything, f.tenant.ID, f.user.ID).Return(f.user, nil)
	f.users.On("Save", mock.Anything, f.user).Return(nil)

	err := f.svc.ChangePassword(ctx, ChangePasswordInput{OldPassword: "bad-pass1", NewPassword: "newsecret9"})
	requireCode(t, err, "INVALID_PASSWORD")

	require.NoError(t, f.svc.ChangePassword(ctx, ChangePasswordInput{OldPassword: testPassword, NewPassword: "newsecret9"}))
	assert.True(t, f.user.VerifyPassword("newsecret9"))

	revoked, err := f.blacklist.IsUserRevoked(ctx, f.user.ID.String(), time.Now().Add(-2*time.Second))
	require.NoError(t, err)
	assert.True(t, revoked, "tokens issued before the change are rejected")
}

func TestAuthService_Me(t *testing.T) {
	f := newAuthFixture(t)
	ctx := sessionCtx(f.tenant.ID, f.user.ID)
	f.users.On("FindByIDForTenant", mock.Anything, f.tenant.ID, f.user.ID).Return(f.user, nil)
	f.tenants.On("FindByID", mock.Anything, f.tenant.ID).Return(f.tenant, nil)

	me, err := f.svc.Me(ctx)

	require.NoError(t, err)
	assert.Equal(t, "ACME", me.TenantCode)
	assert.Equal(t, "ADMIN", me.UserRole)
	assert.NotNil(t, me.Permissions)
	assert.NotNil(t, me.ExpiresAt)
	assert.Equal(t, f.user.ID, me.User.ID)
}
