package notification

import (
	"context"
	"testing"
	"time"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/finance"
	"github.com/assetops/backend/internal/domain/notification"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID, at time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, userID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Get(0).(int64), args.Error(1)
}

var (
	testTenantID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testUserID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func sessionCtx(t *testing.T) context.Context {
	t.Helper()
	return session.WithSession(context.Background(), &session.Session{TenantID: testTenantID, UserID: testUserID})
}

func TestEventHandler_AssetCreated(t *testing.T) {
	repo := new(MockNotificationRepository)
	h := NewEventHandler(repo, nil)
	assetID := uuid.New()
	event := &asset.AssetCreatedEvent{
		BaseDomainEvent: shared.NewActorDomainEvent(asset.EventTypeAssetCreated, asset.AggregateTypeAsset, assetID, testTenantID, &testUserID),
		Tag:             "A-100",
		Name:            "Forklift",
	}

	var saved *notification.Notification
	repo.On("Save", mock.Anything, mock.AnythingOfType("*notification.Notification")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*notification.Notification) }).
		Return(nil)

	require.NoError(t, h.Handle(context.Background(), event))
	require.NotNil(t, saved)
	assert.Equal(t, testTenantID, saved.TenantID)
	assert.Equal(t, testUserID, saved.UserID)
	assert.Equal(t, "Asset created", saved.Title)
	assert.Contains(t, saved.Body, "A-100")
	assert.Equal(t, "asset", saved.EntityType)
	assert.Equal(t, assetID, *saved.EntityID)
	assert.False(t, saved.IsRead())
}

func TestEventHandler_DepreciationRunWithoutPostings(t *testing.T) {
	repo := new(MockNotificationRepository)
	h := NewEventHandler(repo, nil)
	event := finance.NewDepreciationRunCompletedEvent(testTenantID, testUserID, finance.RunResult{Period: "2026-02", Skipped: 4})

	var saved *notification.Notification
	repo.On("Save", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*notification.Notification) }).
		Return(nil)

	require.NoError(t, h.Handle(context.Background(), event))
	assert.Equal(t, notification.LevelWarning, saved.Level)
	assert.Equal(t, "Period 2026-02: 0 records posted, 4 assets skipped.", saved.Body)
	assert.Nil(t, saved.EntityID)
}

func TestEventHandler_SkipsSystemEvents(t *testing.T) {
	repo := new(MockNotificationRepository)
	h := NewEventHandler(repo, nil)
	event := &asset.AssetCreatedEvent{
		BaseDomainEvent: shared.NewActorDomainEvent(asset.EventTypeAssetCreated, asset.AggregateTypeAsset, uuid.New(), testTenantID, nil),
	}

	require.NoError(t, h.Handle(context.Background(), event))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEventHandler_CoversEveryEventType(t *testing.T) {
	h := NewEventHandler(new(MockNotificationRepository), nil)
	assert.Len(t, h.EventTypes(), 7)
}

func TestNotificationService_ListScopesToCaller(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)
	matchFilter := mock.MatchedBy(func(f shared.Filter) bool {
		return f.Filters[FilterUserID] == testUserID && f.Filters[FilterUnreadOnly] == true
	})

	n, err := notification.New(testTenantID, testUserID, notification.LevelInfo, "Hello", "")
	require.NoError(t, err)
	repo.On("FindAllForTenant", mock.Anything, testTenantID, matchFilter).Return([]notification.Notification{*n}, nil)
	repo.On("CountForTenant", mock.Anything, testTenantID, matchFilter).Return(int64(1), nil)

	page, err := svc.List(sessionCtx(t), shared.DefaultFilter(), true)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Hello", page.Items[0].Title)
	assert.False(t, page.Items[0].Read)
}

func TestNotificationService_MarkRead(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)
	mine, _ := notification.New(testTenantID, testUserID, notification.LevelInfo, "Mine", "")
	theirs, _ := notification.New(testTenantID, uuid.New(), notification.LevelInfo, "Theirs", "")

	repo.On("FindByIDForTenant", mock.Anything, testTenantID, mine.ID).Return(mine, nil)
	repo.On("FindByIDForTenant", mock.Anything, testTenantID, theirs.ID).Return(theirs, nil)
	repo.On("Save", mock.Anything, mine).Return(nil).Once()

	dto, err := svc.MarkRead(sessionCtx(t), mine.ID)
	require.NoError(t, err)
	assert.True(t, dto.Read)

	_, err = svc.MarkRead(sessionCtx(t), mine.ID)
	require.NoError(t, err, "already read is a no-op")

	_, err = svc.MarkRead(sessionCtx(t), theirs.ID)
	assert.True(t, shared.IsNotFound(err))
	repo.AssertExpectations(t)
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)
	repo.On("MarkAllRead", mock.Anything, testTenantID, testUserID, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	res, err := svc.MarkAllRead(sessionCtx(t))
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Updated)
}
