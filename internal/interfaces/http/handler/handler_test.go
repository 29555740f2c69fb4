package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	assetapp "github.com/assetops/backend/internal/application/asset"
	"github.com/assetops/backend/internal/application/finance"
	identityapp "github.com/assetops/backend/internal/application/identity"
	"github.com/assetops/backend/internal/application/link"
	notificationapp "github.com/assetops/backend/internal/application/notification"
	"github.com/assetops/backend/internal/domain/asset"
	"github.com/assetops/backend/internal/domain/identity"
	"github.com/assetops/backend/internal/domain/notification"
	"github.com/assetops/backend/internal/infrastructure/metrics"
	"github.com/assetops/backend/internal/infrastructure/persistence"
	"github.com/assetops/backend/internal/infrastructure/qrcode"
	"github.com/assetops/backend/internal/infrastructure/storage"
	"github.com/assetops/backend/internal/interfaces/http/dto"
	"github.com/assetops/backend/internal/interfaces/http/middleware"
	"github.com/assetops/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testBaseURL = "https://go.acme.test"

type fixture struct {
	t         *testing.T
	db        *gorm.DB
	engine    *gin.Engine
	events    *testutil.EventRecorder
	shortURLs *link.ShortURLService
	notes     notification.Repository
}

// newFixture serves the handlers over real services and an in-memory
// database, as the administrator of the test tenant
func newFixture(t *testing.T) *fixture {
	db := testutil.NewSQLiteDB(t)
	events := testutil.NewEventRecorder()

	categories := persistence.NewGormCategoryRepository(db)
	locations := persistence.NewGormLocationRepository(db)
	centres := persistence.NewGormCostCentreRepository(db)
	assets := persistence.NewGormAssetRepository(db)
	components := persistence.NewGormComponentRepository(db)
	departments := persistence.NewGormDepartmentRepository(db)
	users := persistence.NewGormUserRepository(db)
	roles := persistence.NewGormRoleRepository(db)
	partners := persistence.NewGormPartnerRepository(db)
	rates := persistence.NewGormForexRateRepository(db)
	shortURLRepo := persistence.NewGormShortURLRepository(db)
	notes := persistence.NewGormNotificationRepository(db)

	shortURLs := link.NewShortURLService(shortURLRepo, assets, nil, link.Config{BaseURL: testBaseURL})
	t.Cleanup(shortURLs.Wait)
	inlineQR := link.NewQRService(shortURLRepo, qrcode.NewEncoder(), nil, testBaseURL, time.Minute)
	storedQR := link.NewQRService(shortURLRepo, qrcode.NewEncoder(), storage.NewMemoryObjectStorage(), testBaseURL, time.Minute)

	categoryH := NewCategoryHandler(assetapp.NewCategoryService(categories, assets))
	assetH := NewAssetHandler(assetapp.NewAssetService(assets, categories, components, assetapp.References{
		Locations:   locations,
		CostCentres: centres,
		Departments: departments,
		Users:       users,
		Partners:    partners,
	}, events))
	forexH := NewForexHandler(finance.NewForexService(rates))
	roleH := NewRoleHandler(identityapp.NewRoleService(roles, users))
	shortURLH := NewShortURLHandler(shortURLs, inlineQR)
	storedQRH := NewShortURLHandler(shortURLs, storedQR)
	redirectH := NewRedirectHandler(shortURLs)
	notificationH := NewNotificationHandler(notificationapp.NewNotificationService(notes))

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/s/:code", redirectH.Resolve)

	api := engine.Group("/api/v1", testutil.WithSession(testutil.AdminSession()))
	crud := func(prefix string, h interface {
		Create(*gin.Context)
		Get(*gin.Context)
		List(*gin.Context)
		Update(*gin.Context)
		Delete(*gin.Context)
	}) *gin.RouterGroup {
		g := api.Group(prefix)
		g.GET("", h.List)
		g.POST("", h.Create)
		g.GET("/:id", h.Get)
		g.PUT("/:id", h.Update)
		g.DELETE("/:id", h.Delete)
		return g
	}

	crud("/category", categoryH)
	a := crud("/assets", assetH)
	a.POST("/:id/dispose", assetH.Dispose)
	a.GET("/:id/components", assetH.Components)
	a.POST("/:id/components", assetH.AddComponent)
	a.DELETE("/:id/components/:componentId", assetH.RemoveComponent)
	fx := crud("/forex-rates", forexH)
	fx.GET("/convert", forexH.Convert)
	api.GET("/tenant/permissions", roleH.Permissions)
	s := crud("/short-urls", shortURLH)
	s.GET("/:id/qr", shortURLH.QR)
	api.POST("/qr-codes", shortURLH.Generate)
	api.POST("/stored/qr-codes", storedQRH.Generate)
	n := api.Group("/notifications")
	n.GET("", notificationH.List)
	n.GET("/unread-count", notificationH.UnreadCount)
	n.POST("/read-all", notificationH.MarkAllRead)
	n.POST("/:id/read", notificationH.MarkRead)

	return &fixture{t: t, db: db, engine: engine, events: events, shortURLs: shortURLs, notes: notes}
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	f.t.Helper()
	return testutil.Perform(f.t, f.engine, method, path, body, nil)
}

func (f *fixture) create(path string, body any) map[string]any {
	f.t.Helper()
	w := f.do(http.MethodPost, path, body)
	require.Equal(f.t, http.StatusCreated, w.Code, w.Body.String())
	return testutil.DataAs[map[string]any](f.t, testutil.AssertSuccessResponse(f.t, w))
}

func TestCategoryHandler_CRUD(t *testing.T) {
	f := newFixture(t)

	created := f.create("/api/v1/category", map[string]any{
		"code": " it-eq ", "name": "IT equipment",
		"depreciation_method": "straight_line", "useful_life_months": 36,
	})
	assert.Equal(t, "IT-EQ", created["code"])
	id := created["id"].(string)

	testutil.RunHTTPTestCases(t, f.engine, []testutil.HTTPTestCase{
		{
			Name:           "duplicate code",
			Method:         http.MethodPost,
			Path:           "/api/v1/category",
			Body:           map[string]any{"code": "IT-EQ", "name": "Again"},
			ExpectedStatus: http.StatusConflict,
			ExpectedCode:   dto.ErrCodeAlreadyExists,
		},
		{
			Name:           "missing name",
			Method:         http.MethodPost,
			Path:           "/api/v1/category",
			Body:           map[string]any{"code": "FURN"},
			ExpectedStatus: http.StatusBadRequest,
			ExpectedCode:   dto.ErrCodeValidation,
		},
		{
			Name:           "list with meta",
			Path:           "/api/v1/category?search=equip",
			ExpectedStatus: http.StatusOK,
			Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				env := testutil.AssertSuccessResponse(t, w)
				require.NotNil(t, env.Meta)
				assert.Equal(t, int64(1), env.Meta.Total)
				assert.Equal(t, 1, env.Meta.TotalPages)
				assert.Len(t, testutil.DataAs[[]assetapp.CategoryDTO](t, env), 1)
			},
		},
		{
			Name:           "empty page is an empty array",
			Path:           "/api/v1/category?search=nothing-matches",
			ExpectedStatus: http.StatusOK,
			Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				env := testutil.AssertSuccessResponse(t, w)
				assert.JSONEq(t, `[]`, string(env.Data))
				assert.Equal(t, int64(0), env.Meta.Total)
			},
		},
		{
			Name:           "update",
			Method:         http.MethodPut,
			Path:           "/api/v1/category/" + id,
			Body:           map[string]any{"name": "Computers"},
			ExpectedStatus: http.StatusOK,
			Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				got := testutil.DataAs[assetapp.CategoryDTO](t, testutil.AssertSuccessResponse(t, w))
				assert.Equal(t, "Computers", got.Name)
				assert.Equal(t, "IT-EQ", got.Code)
			},
		},
		{
			Name:           "malformed id",
			Path:           "/api/v1/category/not-a-uuid",
			ExpectedStatus: http.StatusBadRequest,
			ExpectedCode:   dto.ErrCodeBadRequest,
		},
		{
			Name:           "delete",
			Method:         http.MethodDelete,
			Path:           "/api/v1/category/" + id,
			ExpectedStatus: http.StatusOK,
			Validate: func(t *testing.T, w *httptest.ResponseRecorder) {
				env := testutil.AssertSuccessResponse(t, w)
				assert.Equal(t, "null", string(env.Data))
			},
		},
		{
			Name:           "deleted category is gone",
			Path:           "/api/v1/category/" + id,
			ExpectedStatus: http.StatusNotFound,
			ExpectedCode:   dto.ErrCodeNotFound,
		},
	})
}

func TestAssetHandler_Lifecycle(t *testing.T) {
	f := newFixture(t)
	category := f.create("/api/v1/category", map[string]any{
		"code": "VEH", "name": "Vehicles", "depreciation_method": "straight_line", "useful_life_months": 60,
	})

	created := f.create("/api/v1/assets", map[string]any{
		"tag": "VAN-001", "name": "Delivery van", "category_id": category["id"],
		"acquisition_date": "2026-01-15", "acquisition_cost": "30000", "currency": "USD",
	})
	id := created["id"].(string)
	assert.Equal(t, "VAN-001", created["tag"])
	assert.Contains(t, f.events.Types(), asset.EventTypeAssetCreated)

	list := f.do(http.MethodGet, fmt.Sprintf("/api/v1/assets?category_id=%s&order_by=tag&order_dir=asc", category["id"]), nil)
	require.Equal(t, http.StatusOK, list.Code, list.Body.String())
	assert.Equal(t, int64(1), testutil.AssertSuccessResponse(t, list).Meta.Total)

	component := f.create("/api/v1/assets/"+id+"/components", map[string]any{"name": "Roof rack", "cost": "450"})
	components := f.do(http.MethodGet, "/api/v1/assets/"+id+"/components", nil)
	assert.Len(t, testutil.DataAs[[]assetapp.ComponentDTO](t, testutil.AssertSuccessResponse(t, components)), 1)
	removed := f.do(http.MethodDelete, "/api/v1/assets/"+id+"/components/"+component["id"].(string), nil)
	assert.Equal(t, http.StatusOK, removed.Code, removed.Body.String())
	components = f.do(http.MethodGet, "/api/v1/assets/"+id+"/components", nil)
	assert.JSONEq(t, `[]`, string(testutil.AssertSuccessResponse(t, components).Data))

	// dispose without a body disposes today
	disposed := f.do(http.MethodPost, "/api/v1/assets/"+id+"/dispose", nil)
	require.Equal(t, http.StatusOK, disposed.Code, disposed.Body.String())
	got := testutil.DataAs[assetapp.AssetDTO](t, testutil.AssertSuccessResponse(t, disposed))
	assert.Equal(t, "disposed", got.Status)
	require.NotNil(t, got.DisposalDate)
	assert.Contains(t, f.events.Types(), asset.EventTypeAssetDisposed)

	again := f.do(http.MethodPost, "/api/v1/assets/"+id+"/dispose", map[string]any{"reason": "twice"})
	assert.Equal(t, http.StatusUnprocessableEntity, again.Code, again.Body.String())

	unknown := f.do(http.MethodPost, "/api/v1/assets", map[string]any{
		"tag": "VAN-002", "name": "Van", "category_id": uuid.NewString(),
		"acquisition_date": "2026-01-15", "acquisition_cost": "100",
	})
	assert.Equal(t, http.StatusNotFound, unknown.Code, unknown.Body.String())
}

func TestForexHandler_Convert(t *testing.T) {
	f := newFixture(t)
	f.create("/api/v1/forex-rates", map[string]any{
		"base_currency": "USD", "quote_currency": "EUR", "rate": "0.9", "effective_date": "2026-01-01",
	})

	w := f.do(http.MethodGet, "/api/v1/forex-rates/convert?from=EUR&to=USD&amount=90&date=2026-02-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	conv := testutil.DataAs[finance.ConversionDTO](t, testutil.AssertSuccessResponse(t, w))
	assert.True(t, conv.Inverse)
	assert.True(t, conv.Result.Equal(decimal.NewFromInt(100)), conv.Result.String())

	bad := f.do(http.MethodGet, "/api/v1/forex-rates/convert?from=EUR&to=USD&amount=lots", nil)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	env := testutil.AssertErrorResponse(t, bad, dto.ErrCodeBadRequest)
	assert.Equal(t, "amount must be a decimal number", env.Msg)

	missing := f.do(http.MethodGet, "/api/v1/forex-rates/convert?amount=1", nil)
	testutil.AssertErrorResponse(t, missing, dto.ErrCodeValidation)
}

func TestRoleHandler_PermissionCatalog(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/tenant/permissions?search=asset", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := testutil.AssertSuccessResponse(t, w)
	require.NotNil(t, env.Meta)
	// asset:* and wip_asset:*
	assert.Equal(t, int64(8), env.Meta.Total)
	rows := testutil.DataAs[[]map[string]any](t, env)
	for _, row := range rows {
		assert.Contains(t, row["code"], "asset")
	}

	all := f.do(http.MethodGet, "/api/v1/tenant/permissions", nil)
	allEnv := testutil.AssertSuccessResponse(t, all)
	assert.Equal(t, int64(len(identity.Resources)*4), allEnv.Meta.Total)
	assert.Equal(t, 10, allEnv.Meta.PageSize)
}

func TestShortURLHandler_Redirect(t *testing.T) {
	f := newFixture(t)
	created := f.create("/api/v1/short-urls", map[string]any{"code": "van-1", "target_url": "https://assets.acme.test/vans/1"})
	id := created["id"].(string)
	assert.Equal(t, testBaseURL+"/s/van-1", created["public_url"])

	redirects := metrics.LinkResolutions.WithLabelValues(metrics.ResultRedirect)
	before := promtestutil.ToFloat64(redirects)
	w := f.do(http.MethodGet, "/s/van-1", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://assets.acme.test/vans/1", w.Header().Get("Location"))
	assert.Equal(t, before+1, promtestutil.ToFloat64(redirects))

	f.shortURLs.Wait()
	got := f.do(http.MethodGet, "/api/v1/short-urls/"+id, nil)
	assert.Equal(t, int64(1), testutil.DataAs[link.ShortURLDTO](t, testutil.AssertSuccessResponse(t, got)).Clicks)

	notFound := metrics.LinkResolutions.WithLabelValues(metrics.ResultNotFound)
	beforeNotFound := promtestutil.ToFloat64(notFound)
	unknown := f.do(http.MethodGet, "/s/unknown1", nil)
	assert.Equal(t, http.StatusNotFound, unknown.Code)
	testutil.AssertErrorResponse(t, unknown, dto.ErrCodeNotFound)
	assert.Equal(t, beforeNotFound+1, promtestutil.ToFloat64(notFound))

	inactive := false
	updated := f.do(http.MethodPut, "/api/v1/short-urls/"+id, map[string]any{
		"target_url": "https://assets.acme.test/vans/1", "active": &inactive,
	})
	require.Equal(t, http.StatusOK, updated.Code, updated.Body.String())

	gone := metrics.LinkResolutions.WithLabelValues(metrics.ResultGone)
	beforeGone := promtestutil.ToFloat64(gone)
	w = f.do(http.MethodGet, "/s/van-1", nil)
	assert.Equal(t, http.StatusGone, w.Code)
	testutil.AssertErrorResponse(t, w, dto.ErrCodeGone)
	assert.Equal(t, beforeGone+1, promtestutil.ToFloat64(gone))
}

func TestShortURLHandler_QR(t *testing.T) {
	f := newFixture(t)
	created := f.create("/api/v1/short-urls", map[string]any{"target_url": "https://assets.acme.test/desks/7"})
	id := created["id"].(string)

	w := f.do(http.MethodGet, "/api/v1/short-urls/"+id+"/qr?size=128", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))

	tooBig := f.do(http.MethodGet, "/api/v1/short-urls/"+id+"/qr?size=5000", nil)
	assert.Equal(t, http.StatusBadRequest, tooBig.Code)

	stored := f.do(http.MethodPost, "/api/v1/stored/qr-codes", map[string]any{"text": "DESK-7"})
	require.Equal(t, http.StatusCreated, stored.Code, stored.Body.String())
	result := testutil.DataAs[link.QRResult](t, testutil.AssertSuccessResponse(t, stored))
	assert.NotEmpty(t, result.URL)
	assert.NotEmpty(t, result.Key)

	inline := f.do(http.MethodPost, "/api/v1/qr-codes", map[string]any{"text": "DESK-7"})
	assert.Equal(t, http.StatusOK, inline.Code)
	assert.Equal(t, "image/png", inline.Header().Get("Content-Type"))
}

func TestNotificationHandler(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := testutil.TestUserID()
	var ids []uuid.UUID
	for _, title := range []string{"Asset disposed", "Budget approved"} {
		n, err := notification.New(testutil.TestTenantID(), user, notification.LevelInfo, title, "")
		require.NoError(t, err)
		require.NoError(t, f.notes.Save(ctx, n))
		ids = append(ids, n.ID)
	}
	other, err := notification.New(testutil.TestTenantID(), uuid.New(), notification.LevelInfo, "Not mine", "")
	require.NoError(t, err)
	require.NoError(t, f.notes.Save(ctx, other))

	list := f.do(http.MethodGet, "/api/v1/notifications", nil)
	require.Equal(t, http.StatusOK, list.Code, list.Body.String())
	assert.Equal(t, int64(2), testutil.AssertSuccessResponse(t, list).Meta.Total)

	count := f.do(http.MethodGet, "/api/v1/notifications/unread-count", nil)
	assert.Equal(t, CountData{Count: 2}, testutil.DataAs[CountData](t, testutil.AssertSuccessResponse(t, count)))

	read := f.do(http.MethodPost, "/api/v1/notifications/"+ids[0].String()+"/read", nil)
	require.Equal(t, http.StatusOK, read.Code, read.Body.String())
	assert.True(t, testutil.DataAs[notificationapp.NotificationDTO](t, testutil.AssertSuccessResponse(t, read)).Read)

	notMine := f.do(http.MethodPost, "/api/v1/notifications/"+other.ID.String()+"/read", nil)
	assert.Equal(t, http.StatusNotFound, notMine.Code)

	unread := f.do(http.MethodGet, "/api/v1/notifications?unread_only=true", nil)
	assert.Equal(t, int64(1), testutil.AssertSuccessResponse(t, unread).Meta.Total)

	all := f.do(http.MethodPost, "/api/v1/notifications/read-all", nil)
	assert.Equal(t, int64(1), testutil.DataAs[notificationapp.ReadAllResult](t, testutil.AssertSuccessResponse(t, all)).Updated)

	bad := f.do(http.MethodGet, "/api/v1/notifications?unread_only=maybe", nil)
	testutil.AssertErrorResponse(t, bad, dto.ErrCodeBadRequest)
}

func TestSystemHandler_Health(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	t.Run("all dependencies up", func(t *testing.T) {
		h := NewSystemHandler("assetops", "1.2.3", map[string]HealthCheck{"database": sqlDB.PingContext})
		engine := gin.New()
		engine.GET("/health", h.Health)

		w := testutil.Perform(t, engine, http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		report := testutil.DataAs[HealthResponse](t, testutil.AssertSuccessResponse(t, w))
		assert.Equal(t, "ok", report.Status)
		assert.Equal(t, "1.2.3", report.Version)
		assert.Equal(t, map[string]string{"database": "up"}, report.Checks)
	})

	t.Run("a failing dependency degrades the service", func(t *testing.T) {
		mockDB := testutil.NewMockDB(t)
		mockDB.Mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		h := NewSystemHandler("assetops", "1.2.3", map[string]HealthCheck{
			"database": mockDB.SqlDB.PingContext,
			"redis":    func(context.Context) error { return nil },
		})
		engine := gin.New()
		engine.GET("/health", h.Health)

		w := testutil.Perform(t, engine, http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		env := testutil.AssertErrorResponse(t, w, dto.ErrCodeUnavailable)
		report := testutil.DataAs[HealthResponse](t, env)
		assert.Equal(t, "degraded", report.Status)
		assert.Equal(t, map[string]string{"database": "down", "redis": "up"}, report.Checks)
		mockDB.ExpectationsWereMet(t)
	})
}
