package router

import (
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/assetops/backend/internal/infrastructure/metrics"
	"github.com/assetops/backend/internal/interfaces/http/handler"
	"github.com/assetops/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Handlers holds one handler per console page
type Handlers struct {
	System       *handler.SystemHandler
	Auth         *handler.AuthHandler
	Tenant       *handler.TenantHandler
	Role         *handler.RoleHandler
	User         *handler.UserHandler
	Department   *handler.DepartmentHandler
	Category     *handler.CategoryHandler
	Location     *handler.LocationHandler
	CostCentre   *handler.CostCentreHandler
	Asset        *handler.AssetHandler
	WipAsset     *handler.WipAssetHandler
	Budget       *handler.BudgetHandler
	Forex        *handler.ForexHandler
	Depreciation *handler.DepreciationHandler
	Partner      *handler.PartnerHandler
	Contract     *handler.ContractHandler
	Lease        *handler.LeaseHandler
	ShortURL     *handler.ShortURLHandler
	Redirect     *handler.RedirectHandler
	Report       *handler.ReportTemplateHandler
	Notification *handler.NotificationHandler
}

// Config holds the middleware settings of the HTTP engine
type Config struct {
	ServiceName  string
	APIVersion   string
	Logger       *zap.Logger
	JWT          middleware.JWTMiddlewareConfig
	TenantFinder middleware.TenantFinder
	CORS         middleware.CORSConfig
	MaxBodySize  int64
	// AuthLimiter throttles login and refresh per client IP; nil disables it
	AuthLimiter *middleware.RateLimiter
	// APILimiter throttles authenticated routes per user; nil disables it
	APILimiter       *middleware.RateLimiter
	TrustedProxies   []string
	TracingEnabled   bool
	ProfilingEnabled bool
	SwaggerEnabled   bool
	Meter            metric.Meter
}

// New builds the gin engine with the global middleware chain, the public
// routes and every /api route
func New(cfg Config, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	httpMetrics, err := middleware.HTTPMetrics(middleware.HTTPMetricsConfig{Meter: cfg.Meter})
	if err != nil {
		return nil, err
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(cfg.CORS),
	)
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}
	engine.Use(
		middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled),
		middleware.SpanErrorMarker(),
		httpMetrics,
		middleware.Profiling(cfg.ProfilingEnabled),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.SwaggerEnabled), ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/s/:code", h.Redirect.Resolve)

	opts := []RouterOption{}
	if cfg.APIVersion != "" {
		opts = append(opts, WithAPIVersion(cfg.APIVersion))
	}
	r := NewRouter(engine, opts...)
	r.Register(publicAuthRoutes(cfg, h))
	r.Register(protectedRoutes(cfg, h))
	r.Setup()

	return engine, nil
}

func publicAuthRoutes(cfg Config, h Handlers) *DomainGroup {
	login := NewDomainGroup("login", "/user/auth")
	if cfg.AuthLimiter != nil {
		login.Use(middleware.RateLimit(cfg.AuthLimiter, middleware.KeyByClientIP))
	}
	login.POST("", h.Auth.Login)
	login.POST("/refresh", h.Auth.Refresh)
	return login
}

func protectedRoutes(cfg Config, h Handlers) *DomainGroup {
	api := NewDomainGroup("api", "")
	api.Use(middleware.JWTAuth(cfg.JWT), middleware.SpanSession())
	if cfg.TenantFinder != nil {
		api.Use(middleware.TenantGuard(middleware.DefaultTenantGuardConfig(cfg.TenantFinder)))
	}
	if cfg.APILimiter != nil {
		api.Use(middleware.RateLimit(cfg.APILimiter, middleware.KeyBySession))
	}

	can := middleware.RequirePermission
	resource := middleware.RequireResource

	api.Group("auth", "/user/auth").
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.Me).
		PUT("/password", h.Auth.ChangePassword)

	tenants := api.Group("tenants", "/tenant")
	tenants.GET("/permissions", can("role:read"), h.Role.Permissions)
	tenants.Group("roles", "/roles").
		CRUD(resource("role"), h.Role).
		PUT("/:id/permissions", can("role:update"), h.Role.SetPermissions)
	tenants.CRUD(resource("tenant"), h.Tenant).
		POST("/:id/activate", can("tenant:update"), h.Tenant.Activate).
		POST("/:id/suspend", can("tenant:update"), h.Tenant.Suspend)

	api.Group("users", "/users").
		CRUD(resource("user"), h.User).
		PUT("/:id/roles", can("user:update"), h.User.SetRoles).
		POST("/:id/activate", can("user:update"), h.User.Activate).
		POST("/:id/deactivate", can("user:update"), h.User.Deactivate)

	api.Group("departments", "/department/departments").CRUD(resource("department"), h.Department)
	api.Group("categories", "/category").CRUD(resource("category"), h.Category)
	api.Group("locations", "/locations").CRUD(resource("location"), h.Location)
	api.Group("cost-centres", "/cost-centres").CRUD(resource("cost_centre"), h.CostCentre)

	api.Group("assets", "/assets").
		CRUD(resource("asset"), h.Asset).
		POST("/:id/dispose", can("asset:update"), h.Asset.Dispose).
		POST("/:id/transfer", can("asset:update"), h.Asset.Transfer).
		GET("/:id/components", can("asset:read"), h.Asset.Components).
		POST("/:id/components", can("asset:update"), h.Asset.AddComponent).
		DELETE("/:id/components/:componentId", can("asset:update"), h.Asset.RemoveComponent)

	api.Group("wip-assets", "/wip-assets").
		CRUD(resource("wip_asset"), h.WipAsset).
		POST("/:id/costs", can("wip_asset:update"), h.WipAsset.AddCost).
		POST("/:id/capitalize", can("wip_asset:update"), can("asset:create"), h.WipAsset.Capitalize)

	api.Group("budgets", "/budgets").
		CRUD(resource("budget"), h.Budget).
		POST("/:id/approve", can("budget:update"), h.Budget.Approve).
		POST("/:id/close", can("budget:update"), h.Budget.Close)

	api.Group("forex-rates", "/forex-rates").
		GET("/convert", can("forex_rate:read"), h.Forex.Convert).
		CRUD(resource("forex_rate"), h.Forex)

	api.Group("depreciation", "/depreciation").
		GET("", can("depreciation:read"), h.Depreciation.List).
		GET("/:id", can("depreciation:read"), h.Depreciation.Get).
		POST("/run", can("depreciation:create"), h.Depreciation.Run).
		GET("/schedule/:assetId", can("depreciation:read"), h.Depreciation.Schedule)

	api.Group("partners", "/partners").CRUD(resource("partner"), h.Partner)
	api.Group("contracts", "/contracts").CRUD(resource("contract"), h.Contract)

	api.Group("leases", "/leases").
		CRUD(resource("lease"), h.Lease).
		GET("/:id/schedule", can("lease:read"), h.Lease.Schedule).
		POST("/:id/terminate", can("lease:update"), h.Lease.Terminate)

	api.Group("short-urls", "/short-urls").
		CRUD(resource("short_url"), h.ShortURL).
		GET("/:id/qr", can("short_url:read"), h.ShortURL.QR)
	api.Group("qr-codes", "/qr-codes").
		POST("", can("qr_code:create"), h.ShortURL.Generate)

	api.Group("report-templates", "/report-templates").
		CRUD(resource("report_template"), h.Report).
		POST("/:id/render", can("report_template:read"), h.Report.Render)

	api.Group("notifications", "/notifications").
		GET("", can("notification:read"), h.Notification.List).
		GET("/unread-count", can("notification:read"), h.Notification.UnreadCount).
		POST("/read-all", can("notification:update"), h.Notification.MarkAllRead).
		POST("/:id/read", can("notification:update"), h.Notification.MarkRead)

	return api
}
