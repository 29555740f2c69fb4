package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/assetops/backend/internal/application/session"
	"github.com/assetops/backend/internal/domain/shared"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB_MonitorsPings(t *testing.T) {
	mockDB := NewMockDB(t)
	mockDB.Mock.ExpectPing().WillReturnError(errors.New("down"))

	assert.Error(t, mockDB.SqlDB.PingContext(context.Background()))
	mockDB.ExpectationsWereMet(t)
}

func TestNewSQLiteDB_MigratesEveryTable(t *testing.T) {
	db := NewSQLiteDB(t)
	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model), "%T has no table", model)
	}
}

func TestSessions(t *testing.T) {
	admin := AdminSession()
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, TestTenantID(), admin.TenantID)

	clerk := NewSession("CLERK", "asset:read")
	assert.True(t, clerk.Can("asset:read"))
	assert.False(t, clerk.Can("asset:delete"))

	got, err := session.Require(SessionContext(clerk))
	require.NoError(t, err)
	assert.Equal(t, clerk, got)
}

func TestWithSession(t *testing.T) {
	engine := gin.New()
	sess := NewSession("CLERK")
	engine.GET("/me", WithSession(sess), func(c *gin.Context) {
		got, err := session.Require(c.Request.Context())
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"success": true, "msg": "ok", "data": got.UserID})
	})

	env := AssertSuccessResponse(t, Perform(t, engine, http.MethodGet, "/me", nil, nil))
	assert.Equal(t, sess.UserID, DataAs[uuid.UUID](t, env))
}

func TestNewTestUUID(t *testing.T) {
	assert.Equal(t, NewTestUUID("a"), NewTestUUID("a"))
	assert.NotEqual(t, NewTestUUID("a"), NewTestUUID("b"))
	assert.NotEqual(t, TestTenantID(), TestUserID())
}

func TestRunHTTPTestCases(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false, "msg": "bad",
				"error": gin.H{"code": "BAD_REQUEST", "message": "bad"},
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "msg": "ok", "data": body})
	})

	RunHTTPTestCases(t, engine, []HTTPTestCase{
		{
			Name:           "echoes the body",
			Method:         http.MethodPost,
			Path:           "/echo",
			Body:           map[string]any{"name": "Forklift"},
			ExpectedStatus: http.StatusOK,
			Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				env := AssertSuccessResponse(t, w)
				assert.Equal(t, "Forklift", DataAs[map[string]string](t, env)["name"])
			},
		},
		{
			Name:           "rejects a missing body",
			Method:         http.MethodPost,
			Path:           "/echo",
			ExpectedStatus: http.StatusBadRequest,
			ExpectedCode:   "BAD_REQUEST",
		},
	})
}

func TestEventRecorder(t *testing.T) {
	rec := NewEventRecorder("AssetDisposed")
	assert.Equal(t, []string{"AssetDisposed"}, rec.EventTypes())

	event := &shared.BaseDomainEvent{ID: uuid.New(), Type: "AssetDisposed"}
	require.NoError(t, rec.Publish(context.Background(), event))
	require.NoError(t, rec.Handle(context.Background(), event))
	assert.Equal(t, []string{"AssetDisposed", "AssetDisposed"}, rec.Types())
	assert.Len(t, rec.Events(), 2)

	rec.SetError(errors.New("boom"))
	assert.Error(t, rec.Publish(context.Background(), event))

	rec.Reset()
	assert.Empty(t, rec.Events())
	assert.NoError(t, rec.Publish(context.Background(), event))
}
