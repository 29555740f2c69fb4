package asset

import (
	"context"
	"testing"
	"time"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/partner"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// mockCrud implements shared.CrudRepository for any entity type
type mockCrud[T any] struct {
	mock.Mock
}

func (m *mockCrud[T]) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *mockCrud[T]) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]T), args.Error(1)
}

func (m *mockCrud[T]) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCrud[T]) Save(ctx context.Context, entity *T) error {
	return m.Called(ctx, entity).Error(0)
}

func (m *mockCrud[T]) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

type mockCodeRepo[T any] struct {
	mockCrud[T]
}

func (m *mockCodeRepo[T]) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
}

type MockCategoryRepository = mockCodeRepo[asset.Category]
type MockLocationRepository = mockCodeRepo[asset.Location]
type MockCostCentreRepository = mockCodeRepo[asset.CostCentre]
type MockWipAssetRepository = mockCodeRepo[asset.WipAsset]
type MockPartnerRepository = mockCodeRepo[partner.Partner]

type MockDepartmentRepository struct {
	mockCodeRepo[identity.Department]
}

func (m *MockDepartmentRepository) CountChildren(ctx context.Context, tenantID, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mockCrud[identity.User]
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.User, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAllByEmail(ctx context.Context, email string) ([]identity.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context, tenantID, roleID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, roleID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAssetRepository struct {
	mockCrud[asset.Asset]
}

func (m *MockAssetRepository) ExistsByTag(ctx context.Context, tenantID uuid.UUID, tag string) (bool, error) {
	args := m.Called(ctx, tenantID, tag)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssetRepository) CountByCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAssetRepository) FindDepreciable(ctx context.Context, tenantID uuid.UUID) ([]asset.Asset, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]asset.Asset), args.Error(1)
}

type MockComponentRepository struct {
	mockCrud[asset.Component]
}

func (m *MockComponentRepository) FindByAsset(ctx context.Context, tenantID, assetID uuid.UUID) ([]asset.Component, error) {
	args := m.Called(ctx, tenantID, assetID)
	return args.Get(0).([]asset.Component), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

// fakeTxScope runs the callback against the non-transactional mocks
type fakeTxScope struct {
	assets *MockAssetRepository
	wips   *MockWipAssetRepository
}

func (f *fakeTxScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(f)
}

func (f *fakeTxScope) AssetRepo() asset.AssetRepository       { return f.assets }
func (f *fakeTxScope) WipAssetRepo() asset.WipAssetRepository { return f.wips }

var (
	testTenantID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testUserID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func sessionCtx(t *testing.T) context.Context {
	t.Helper()
	return session.WithSession(context.Background(), &session.Session{
		Token:     "token",
		TenantID:  testTenantID,
		UserID:    testUserID,
		UserRole:  identity.AdminRoleCode,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})
}

func newCategory(t *testing.T) *asset.Category {
	t.Helper()
	c, err := asset.NewCategory(testTenantID, "IT", "IT equipment", 36)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
