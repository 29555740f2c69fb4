package partner

import (
	"context"
	"testing"
	"time"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/partner"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPartnerRepository is a mock implementation of partner.Repository
type MockPartnerRepository struct {
	mock.Mock
}

func (m *MockPartnerRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Partner, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Partner, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Partner), args.Error(1)
}

func (m *MockPartnerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPartnerRepository) Save(ctx context.Context, p *partner.Partner) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPartnerRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockPartnerRepository) ExistsByCode(ctx context.Context, tenantID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, tenantID, code)
	return args.Bool(0), args.Error(1)
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

func TestPartnerService_Create(t *testing.T) {
	ctx := newCtx()

	t.Run("creates supplier with normalised fields", func(t *testing.T) {
		repo := new(MockPartnerRepository)
		svc := NewPartnerService(repo)
		repo.On("ExistsByCode", ctx, tenantID, "SUP-01").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Partner")).Return(nil)

		dto, err := svc.Create(ctx, PartnerInput{
			Code:  " sup-01 ",
			Name:  "Acme Leasing",
			Type:  "supplier",
			Email: "Billing@Acme.Example",
		})
		require.NoError(t, err)
		assert.Equal(t, "SUP-01", dto.Code)
		assert.Equal(t, "supplier", dto.Type)
		assert.Equal(t, "billing@acme.example", dto.Email)
		assert.True(t, dto.Active)
		repo.AssertExpectations(t)
	})

	t.Run("defaults type to other", func(t *testing.T) {
		repo := new(MockPartnerRepository)
		svc := NewPartnerService(repo)
		repo.On("ExistsByCode", ctx, tenantID, "P2").Return(false, nil)
		repo.On("Save", ctx, mock.Anything).Return(nil)

		dto, err := svc.Create(ctx, PartnerInput{Code: "p2", Name: "Someone"})
		require.NoError(t, err)
		assert.Equal(t, "other", dto.Type)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		repo := new(MockPartnerRepository)
		svc := NewPartnerService(repo)
		repo.On("ExistsByCode", ctx, tenantID, "SUP-01").Return(true, nil)

		_, err := svc.Create(ctx, PartnerInput{Code: "SUP-01", Name: "Acme"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		svc := NewPartnerService(new(MockPartnerRepository))
		_, err := svc.Create(ctx, PartnerInput{Code: "X1", Name: "X", Type: "vendor"})
		require.Error(t, err)
	})
}

func TestPartnerService_Update(t *testing.T) {
	ctx := newCtx()
	repo := new(MockPartnerRepository)
	svc := NewPartnerService(repo)
	p, err := partner.NewPartner(tenantID, "L1", "Lessor One", partner.TypeLessor)
	require.NoError(t, err)

	repo.On("FindByIDForTenant", ctx, tenantID, p.ID).Return(p, nil)
	repo.On("Save", ctx, p).Return(nil)

	inactive := false
	dto, err := svc.Update(ctx, p.ID, PartnerInput{Name: "Lessor One Ltd", Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "lessor", dto.Type)
	assert.False(t, dto.Active)
	assert.Equal(t, "Lessor One Ltd", dto.Name)

	missing := uuid.New()
	repo.On("FindByIDForTenant", ctx, tenantID, missing).Return(nil, shared.ErrNotFound)
	_, err = svc.Get(ctx, missing)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
