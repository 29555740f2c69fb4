package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/assetops/backend/internal/infrastructure/auth"
	"github.com/assetops/backend/internal/infrastructure/config"
	"github.com/assetops/backend/internal/interfaces/http/handler"
	"github.com/assetops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	var order []string
	r.Use(func(c *gin.Context) { order = append(order, "api") })
	r.Register(NewDomainGroup("test", "/test").
		Use(func(c *gin.Context) { order = append(order, "group") }).
		GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") }))
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v2/test/ping", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, []string{"api", "group"}, order)

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/test/ping", "").Code)
}

type stubCRUD struct{}

func (stubCRUD) Create(c *gin.Context) { c.String(http.StatusCreated, "create") }
func (stubCRUD) Get(c *gin.Context)    { c.String(http.StatusOK, "get "+c.Param("id")) }
func (stubCRUD) List(c *gin.Context)   { c.String(http.StatusOK, "list") }
func (stubCRUD) Update(c *gin.Context) { c.String(http.StatusOK, "update "+c.Param("id")) }
func (stubCRUD) Delete(c *gin.Context) { c.String(http.StatusOK, "delete "+c.Param("id")) }

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("assets", "/assets")
		assert.Equal(t, "assets", g.Name())
		assert.Equal(t, "/assets", g.Prefix())
	})

	t.Run("CRUD registers the five entity routes behind the guard", func(t *testing.T) {
		engine := gin.New()
		guarded := 0
		g := NewDomainGroup("items", "/items").CRUD(func(c *gin.Context) { guarded++ }, stubCRUD{})
		g.RegisterRoutes(engine.Group("/api/v1"))

		cases := []struct {
			method string
			path   string
			status int
			body   string
		}{
			{http.MethodGet, "/api/v1/items", http.StatusOK, "list"},
			{http.MethodPost, "/api/v1/items", http.StatusCreated, "create"},
			{http.MethodGet, "/api/v1/items/7", http.StatusOK, "get 7"},
			{http.MethodPut, "/api/v1/items/7", http.StatusOK, "update 7"},
			{http.MethodDelete, "/api/v1/items/7", http.StatusOK, "delete 7"},
		}
		for _, tc := range cases {
			w := serve(engine, tc.method, tc.path, "")
			assert.Equal(t, tc.status, w.Code, tc.method+" "+tc.path)
			assert.Equal(t, tc.body, w.Body.String())
		}
		assert.Equal(t, len(cases), guarded)
	})

	t.Run("subgroups inherit the parent prefix and middleware", func(t *testing.T) {
		engine := gin.New()
		parent := NewDomainGroup("tenant", "/tenant").Use(func(c *gin.Context) { c.Header("X-Parent", "1") })
		parent.Group("roles", "/roles").PATCH("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		parent.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodPatch, "/api/v1/tenant/roles/1", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "1", w.Header().Get("X-Parent"))
	})
}

func testHandlers() Handlers {
	return Handlers{
		System:       handler.NewSystemHandler("assetops", "test", nil),
		Auth:         &handler.AuthHandler{},
		Tenant:       &handler.TenantHandler{},
		Role:         &handler.RoleHandler{},
		User:         &handler.UserHandler{},
		Department:   &handler.DepartmentHandler{},
		Category:     &handler.CategoryHandler{},
		Location:     &handler.LocationHandler{},
		CostCentre:   &handler.CostCentreHandler{},
		Asset:        &handler.AssetHandler{},
		WipAsset:     &handler.WipAssetHandler{},
		Budget:       &handler.BudgetHandler{},
		Forex:        &handler.ForexHandler{},
		Depreciation: &handler.DepreciationHandler{},
		Partner:      &handler.PartnerHandler{},
		Contract:     &handler.ContractHandler{},
		Lease:        &handler.LeaseHandler{},
		ShortURL:     &handler.ShortURLHandler{},
		Redirect:     &handler.RedirectHandler{},
		Report:       &handler.ReportTemplateHandler{},
		Notification: &handler.NotificationHandler{},
	}
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "router-test-secret-at-least-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "assetops-test",
		MaxRefreshCount:        3,
	})
}

func newTestEngine(t *testing.T, cfg Config) *gin.Engine {
	t.Helper()
	engine, err := New(cfg, testHandlers())
	require.NoError(t, err)
	return engine
}

func TestNew_Routes(t *testing.T) {
	engine := newTestEngine(t, Config{
		ServiceName: "assetops",
		JWT:         middleware.JWTMiddlewareConfig{JWTService: testJWTService()},
		CORS:        middleware.DefaultCORSConfig(),
	})

	registered := map[string]bool{}
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /health",
		"GET /metrics",
		"GET /swagger/*any",
		"GET /s/:code",
		"POST /api/v1/user/auth",
		"POST /api/v1/user/auth/refresh",
		"POST /api/v1/user/auth/logout",
		"GET /api/v1/user/auth/me",
		"PUT /api/v1/user/auth/password",
		"GET /api/v1/tenant",
		"POST /api/v1/tenant/:id/suspend",
		"GET /api/v1/tenant/permissions",
		"PUT /api/v1/tenant/roles/:id/permissions",
		"PUT /api/v1/users/:id/roles",
		"POST /api/v1/users/:id/deactivate",
		"DELETE /api/v1/department/departments/:id",
		"GET /api/v1/category",
		"PUT /api/v1/locations/:id",
		"POST /api/v1/cost-centres",
		"POST /api/v1/assets/:id/dispose",
		"POST /api/v1/assets/:id/transfer",
		"GET /api/v1/assets/:id/components",
		"DELETE /api/v1/assets/:id/components/:componentId",
		"POST /api/v1/wip-assets/:id/costs",
		"POST /api/v1/wip-assets/:id/capitalize",
		"POST /api/v1/budgets/:id/approve",
		"POST /api/v1/budgets/:id/close",
		"GET /api/v1/forex-rates/convert",
		"POST /api/v1/depreciation/run",
		"GET /api/v1/depreciation/schedule/:assetId",
		"GET /api/v1/partners/:id",
		"PUT /api/v1/contracts/:id",
		"GET /api/v1/leases/:id/schedule",
		"POST /api/v1/leases/:id/terminate",
		"GET /api/v1/short-urls/:id/qr",
		"POST /api/v1/qr-codes",
		"POST /api/v1/report-templates/:id/render",
		"GET /api/v1/notifications",
		"GET /api/v1/notifications/unread-count",
		"POST /api/v1/notifications/read-all",
		"POST /api/v1/notifications/:id/read",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestNew_PublicRoutes(t *testing.T) {
	engine := newTestEngine(t, Config{
		JWT:  middleware.JWTMiddlewareConfig{JWTService: testJWTService()},
		CORS: middleware.DefaultCORSConfig(),
	})

	health := serve(engine, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, health.Header().Get(middleware.RequestIDHeader))

	metrics := serve(engine, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.True(t, strings.Contains(metrics.Body.String(), "assetops_"))

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/swagger/index.html", "").Code)
}

func TestNew_ProtectedRoutesNeedToken(t *testing.T) {
	engine := newTestEngine(t, Config{
		JWT:  middleware.JWTMiddlewareConfig{JWTService: testJWTService()},
		CORS: middleware.DefaultCORSConfig(),
	})

	for _, path := range []string{"/api/v1/assets", "/api/v1/user/auth/me", "/api/v1/notifications"} {
		w := serve(engine, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	assert.Equal(t, http.StatusUnauthorized, serve(engine, http.MethodGet, "/api/v1/assets", "not-a-token").Code)
}

func TestNew_PermissionGuards(t *testing.T) {
	jwtService := testJWTService()
	engine := newTestEngine(t, Config{
		JWT:  middleware.JWTMiddlewareConfig{JWTService: jwtService},
		CORS: middleware.DefaultCORSConfig(),
	})

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID:    uuid.New(),
		UserID:      uuid.New(),
		Email:       "clerk@acme.test",
		Role:        "CLERK",
		Permissions: []string{"asset:read"},
	})
	require.NoError(t, err)
	id := uuid.NewString()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/assets"},
		{http.MethodPost, "/api/v1/assets/" + id + "/dispose"},
		{http.MethodDelete, "/api/v1/assets/" + id + "/components/" + id},
		{http.MethodPost, "/api/v1/depreciation/run"},
		{http.MethodGet, "/api/v1/tenant"},
		{http.MethodGet, "/api/v1/tenant/permissions"},
		{http.MethodPost, "/api/v1/qr-codes"},
	}
	for _, tc := range cases {
		w := serve(engine, tc.method, tc.path, pair.AccessToken)
		assert.Equal(t, http.StatusForbidden, w.Code, tc.method+" "+tc.path)
	}
}

func TestNew_AuthRateLimit(t *testing.T) {
	engine := newTestEngine(t, Config{
		JWT:         middleware.JWTMiddlewareConfig{JWTService: testJWTService()},
		CORS:        middleware.DefaultCORSConfig(),
		AuthLimiter: middleware.NewRateLimiter(1, time.Minute),
	})

	// the first login fails validation, the second is throttled
	first := serve(engine, http.MethodPost, "/api/v1/user/auth", "")
	assert.Equal(t, http.StatusBadRequest, first.Code)
	second := serve(engine, http.MethodPost, "/api/v1/user/auth", "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
