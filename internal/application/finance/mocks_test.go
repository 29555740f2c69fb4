package finance

import (
	"context"
	"testing"
	"time"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

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

type MockBudgetRepository = mockCodeRepo[finance.Budget]
type MockCostCentreRepository = mockCodeRepo[asset.CostCentre]
type MockCategoryRepository = mockCodeRepo[asset.Category]

type MockForexRateRepository struct {
	mockCrud[finance.ForexRate]
}

func (m *MockForexRateRepository) FindLatest(ctx context.Context, tenantID uuid.UUID, base, quote valueobject.Currency, on time.Time) (*finance.ForexRate, error) {
	args := m.Called(ctx, tenantID, base, quote, on)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.ForexRate), args.Error(1)
}

func (m *MockForexRateRepository) Exists(ctx context.Context, tenantID uuid.UUID, base, quote valueobject.Currency, effective time.Time) (bool, error) {
	args := m.Called(ctx, tenantID, base, quote, effective)
	return args.Bool(0), args.Error(1)
}

type MockDepreciationRepository struct {
	mockCrud[finance.DepreciationRecord]
}

func (m *MockDepreciationRepository) ExistsForPeriod(ctx context.Context, tenantID, assetID uuid.UUID, period string) (bool, error) {
	args := m.Called(ctx, tenantID, assetID, period)
	return args.Bool(0), args.Error(1)
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

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type fakeTxScope struct {
	assets  *MockAssetRepository
	records *MockDepreciationRepository
}

func (f *fakeTxScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(f)
}

func (f *fakeTxScope) AssetRepo() asset.AssetRepository                 { return f.assets }
func (f *fakeTxScope) DepreciationRepo() finance.DepreciationRepository { return f.records }

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
		UserRole:  "ADMIN",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	})
}
