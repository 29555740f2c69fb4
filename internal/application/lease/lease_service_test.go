package lease

import (
	"context"
	"testing"
	"time"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/lease"
	"github.com/assetops/backend/internal/domain/partner"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

type MockContractRepository struct {
	mockCrud[lease.Contract]
}

func (m *MockContractRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, number string) (bool, error) {
	args := m.Called(ctx, tenantID, number)
	return args.Bool(0), args.Error(1)
}

type MockLeaseRepository struct {
	mockCrud[lease.Lease]
}

func (m *MockLeaseRepository) CountByContract(ctx context.Context, tenantID, contractID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, contractID)
	return args.Get(0).(int64), args.Error(1)
}

type MockPartnerRepository struct {
	mockCrud[partner.Partner]
}

func (m *MockPartnerRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
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

var (
	tenantID = uuid.New()
	userID   = uuid.New()
)

func newCtx() context.Context {
	return session.WithSession(context.Background(), &session.Session{
		TenantID:  tenantID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Hour),
	})
}

func day(y int, m time.Month, d int) valueobject.Date {
	return valueobject.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, code, de.Code)
}

type leaseFixture struct {
	leases    *MockLeaseRepository
	contracts *MockContractRepository
	assets    *MockAssetRepository
	partners  *MockPartnerRepository
	publisher *MockEventPublisher
	svc       *LeaseService
}

func newLeaseFixture() *leaseFixture {
	f := &leaseFixture{
		leases:    new(MockLeaseRepository),
		contracts: new(MockContractRepository),
		assets:    new(MockAssetRepository),
		partners:  new(MockPartnerRepository),
		publisher: new(MockEventPublisher),
	}
	f.svc = NewLeaseService(f.leases, f.contracts, f.assets, f.partners, f.publisher)
	return f
}

func quarterlyInput(assetID, partnerID uuid.UUID) LeaseInput {
	return LeaseInput{
		AssetID:       assetID,
		PartnerID:     partnerID,
		StartDate:     day(2026, 1, 1),
		EndDate:       day(2026, 12, 31),
		PaymentAmount: decimal.NewFromInt(1000),
		Frequency:     "quarterly",
		DiscountRate:  decimal.RequireFromString("0.08"),
	}
}

func TestLeaseService_Create(t *testing.T) {
	ctx := newCtx()
	assetID, partnerID := uuid.New(), uuid.New()

	t.Run("values the schedule", func(t *testing.T) {
		f := newLeaseFixture()
		f.assets.On("FindByIDForTenant", ctx, tenantID, assetID).Return(&asset.Asset{}, nil)
		f.partners.On("FindByIDForTenant", ctx, tenantID, partnerID).Return(&partner.Partner{}, nil)
		f.leases.On("Save", ctx, mock.AnythingOfType("*lease.Lease")).Return(nil)

		dto, err := f.svc.Create(ctx, quarterlyInput(assetID, partnerID))
		require.NoError(t, err)
		assert.Equal(t, "lessee", dto.Direction)
		assert.Equal(t, "active", dto.Status)
		assert.Equal(t, "4000", dto.TotalPayments.String())
		// 1000 * (1 + 1/1.02 + 1/1.02^2 + 1/1.02^3)
		assert.Equal(t, "3883.88", dto.PresentValue.StringFixed(2))
	})

	t.Run("unknown asset", func(t *testing.T) {
		f := newLeaseFixture()
		f.assets.On("FindByIDForTenant", ctx, tenantID, assetID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Create(ctx, quarterlyInput(assetID, partnerID))
		requireCode(t, err, "INVALID_REFERENCE")
	})

	t.Run("end before start", func(t *testing.T) {
		f := newLeaseFixture()
		input := quarterlyInput(assetID, partnerID)
		input.EndDate = day(2025, 12, 1)
		_, err := f.svc.Create(ctx, input)
		requireCode(t, err, "INVALID_TERM")
	})
}

func TestLeaseService_ScheduleAndTerminate(t *testing.T) {
	ctx := newCtx()
	f := newLeaseFixture()
	l, err := lease.NewLease(tenantID, uuid.New(), uuid.New(), lease.DirectionLessor, lease.Terms{
		StartDate: day(2026, 1, 31).Time,
		EndDate:   day(2026, 6, 30).Time,
		Payment:   decimal.NewFromInt(250),
		Frequency: lease.FrequencyMonthly,
		Currency:  "EUR",
	})
	require.NoError(t, err)
	f.leases.On("FindByIDForTenant", ctx, tenantID, l.ID).Return(l, nil)

	schedule, err := f.svc.Schedule(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", schedule.Currency)
	assert.Len(t, schedule.Rows, 6)
	assert.Equal(t, "1500", schedule.PresentValue.String())
	assert.Equal(t, "1500", schedule.Rows[5].RunningTotal.String())

	_, err = f.svc.Terminate(ctx, l.ID, TerminateInput{Date: day(2026, 8, 1)})
	requireCode(t, err, "INVALID_TERMINATION_DATE")

	f.leases.On("Save", ctx, l).Return(nil)
	f.publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == lease.EventTypeLeaseTerminated
	})).Return(nil)

	dto, err := f.svc.Terminate(ctx, l.ID, TerminateInput{Date: day(2026, 3, 15)})
	require.NoError(t, err)
	assert.Equal(t, "terminated", dto.Status)
	assert.Equal(t, day(2026, 3, 15), dto.EndDate)
	f.publisher.AssertExpectations(t)

	_, err = f.svc.Terminate(ctx, l.ID, TerminateInput{Date: day(2026, 3, 20)})
	requireCode(t, err, "INVALID_STATE")
}

func TestContractService(t *testing.T) {
	ctx := newCtx()
	partnerID := uuid.New()

	t.Run("create and activate", func(t *testing.T) {
		contracts := new(MockContractRepository)
		partners := new(MockPartnerRepository)
		svc := NewContractService(contracts, new(MockLeaseRepository), partners)
		contracts.On("ExistsByNumber", ctx, tenantID, "C-2026-01").Return(false, nil)
		partners.On("FindByIDForTenant", ctx, tenantID, partnerID).Return(&partner.Partner{}, nil)
		var saved *lease.Contract
		contracts.On("Save", ctx, mock.AnythingOfType("*lease.Contract")).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*lease.Contract)
		}).Return(nil)

		dto, err := svc.Create(ctx, CreateContractInput{
			Number:    "c-2026-01",
			Title:     "Fleet lease",
			PartnerID: partnerID,
			StartDate: day(2026, 1, 1),
			EndDate:   day(2028, 12, 31),
			Value:     decimal.NewFromInt(90000),
		})
		require.NoError(t, err)
		assert.Equal(t, "draft", dto.Status)

		contracts.On("FindByIDForTenant", ctx, tenantID, saved.ID).Return(saved, nil)
		dto, err = svc.Update(ctx, saved.ID, UpdateContractInput{
			Title:     "Fleet lease",
			StartDate: day(2026, 1, 1),
			EndDate:   day(2028, 12, 31),
			Value:     decimal.NewFromInt(90000),
			Status:    "active",
		})
		require.NoError(t, err)
		assert.Equal(t, "active", dto.Status)

		_, err = svc.Update(ctx, saved.ID, UpdateContractInput{
			Title:     "Fleet lease",
			StartDate: day(2026, 1, 1),
			EndDate:   day(2028, 12, 31),
			Status:    "draft",
		})
		requireCode(t, err, "INVALID_STATE")
	})

	t.Run("delete in use", func(t *testing.T) {
		contracts := new(MockContractRepository)
		leases := new(MockLeaseRepository)
		svc := NewContractService(contracts, leases, new(MockPartnerRepository))
		c, err := lease.NewContract(tenantID, "C1", "T", partnerID, day(2026, 1, 1).Time, day(2026, 2, 1).Time, decimal.Zero, "USD")
		require.NoError(t, err)
		contracts.On("FindByIDForTenant", ctx, tenantID, c.ID).Return(c, nil)
		leases.On("CountByContract", ctx, tenantID, c.ID).Return(int64(2), nil)

		requireCode(t, svc.Delete(ctx, c.ID), "CONTRACT_IN_USE")
	})
}
