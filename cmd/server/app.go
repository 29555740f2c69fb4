package main

import (
	"context"
	"errors"
	"fmt"

	assetapp "github.com/assetops/backend/internal/application/asset"
	financeapp "github.com/assetops/backend/internal/application/finance"
	identityapp "github.com/assetops/backend/internal/application/identity"
	leaseapp "github.com/assetops/backend/internal/application/lease"
	linkapp "github.com/assetops/backend/internal/application/link"
	notificationapp "github.com/assetops/backend/internal/application/notification"
	partnerapp "github.com/assetops/backend/internal/application/partner"
	reportapp "github.com/assetops/backend/internal/application/report"
	"github.com/assetops/backend/internal/domain/report"
	"github.com/assetops/backend/internal/infrastructure/auth"
	"github.com/assetops/backend/internal/infrastructure/cache"
	"github.com/assetops/backend/internal/infrastructure/config"
	"github.com/assetops/backend/internal/infrastructure/event"
	"github.com/assetops/backend/internal/infrastructure/logger"
	"github.com/assetops/backend/internal/infrastructure/persistence"
	"github.com/assetops/backend/internal/infrastructure/persistence/models"
	"github.com/assetops/backend/internal/infrastructure/printing"
	"github.com/assetops/backend/internal/infrastructure/qrcode"
	"github.com/assetops/backend/internal/infrastructure/storage"
	"github.com/assetops/backend/internal/infrastructure/telemetry"
	"github.com/assetops/backend/internal/interfaces/http/handler"
	"github.com/assetops/backend/internal/interfaces/http/middleware"
	"github.com/assetops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/assetops/backend"

// app owns every long-lived resource of the server process
type app struct {
	engine  *gin.Engine
	db      *persistence.Database
	redis   *redis.Client
	bus     *event.InMemoryEventBus
	printer *printing.ChromedpRenderer
	links   *linkapp.ShortURLService
	cancel  context.CancelFunc
}

func newApp(ctx context.Context, cfg *config.Config, providers *telemetry.Providers, log *zap.Logger) (*app, error) {
	a := &app{}
	ok := false
	defer func() {
		if !ok {
			_ = a.Close(context.Background())
		}
	}()

	bgCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	meter := providers.Meter.Meter(instrumentationName)

	// Database
	gormLogger := logger.NewGormLogger(log, logger.GormConfig{
		Level:         cfg.Log.Level,
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
	})
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		return nil, err
	}
	a.db = db
	dbSystem := "postgresql"
	if cfg.Database.Driver == config.DriverSQLite {
		dbSystem = "sqlite"
		// postgres schemas are owned by cmd/migrate
		if err := db.DB.AutoMigrate(models.All()...); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}
	if err := telemetry.InstrumentDB(db.DB, telemetry.DBConfig{
		System:             dbSystem,
		TraceEnabled:       cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:         cfg.Telemetry.DBLogFullSQL,
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, meter, log); err != nil {
		return nil, err
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Redis backs the token blacklist and the second link cache tier
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	linkCache := cache.NewLRULinkCache(cfg.ShortLink.LRUSize, cfg.ShortLink.CacheTTL)
	var resolvedCache linkapp.Cache = linkCache
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.redis = client
		blacklist = auth.NewRedisTokenBlacklist(client)

		invalidator := cache.NewRedisLinkInvalidator(client, log)
		tiered := cache.NewTieredLinkCache(linkCache,
			cache.NewRedisLinkCache(client, cfg.ShortLink.CacheTTL, cache.WithRedisLogger(log)),
			cache.WithInvalidator(invalidator),
			cache.WithTieredLogger(log),
		)
		resolvedCache = tiered
		go func() {
			if err := invalidator.Subscribe(bgCtx, tiered.InvalidateLocal); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("Link invalidation subscription failed", zap.Error(err))
			}
		}()
		log.Info("Redis connected", zap.String("host", cfg.Redis.Host))
	}

	// Exports and QR images go to S3 when storage is enabled
	var qrStorage linkapp.ObjectStorage
	var reportStorage reportapp.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3ObjectStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			return nil, err
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		qrStorage, reportStorage = s3, s3
	}

	a.printer = printing.NewChromedpRenderer(printing.ChromedpConfig{
		ExecPath:       cfg.Printing.ChromePath,
		NoSandbox:      true,
		DefaultTimeout: cfg.Printing.Timeout,
		Logger:         log,
	})

	// Events
	a.bus = event.NewInMemoryEventBus(log)
	if err := a.bus.Start(ctx); err != nil {
		return nil, err
	}

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	deptRepo := persistence.NewGormDepartmentRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	locationRepo := persistence.NewGormLocationRepository(db.DB)
	costCentreRepo := persistence.NewGormCostCentreRepository(db.DB)
	assetRepo := persistence.NewGormAssetRepository(db.DB)
	componentRepo := persistence.NewGormComponentRepository(db.DB)
	wipRepo := persistence.NewGormWipAssetRepository(db.DB)
	budgetRepo := persistence.NewGormBudgetRepository(db.DB)
	rateRepo := persistence.NewGormForexRateRepository(db.DB)
	depreciationRepo := persistence.NewGormDepreciationRepository(db.DB)
	partnerRepo := persistence.NewGormPartnerRepository(db.DB)
	contractRepo := persistence.NewGormContractRepository(db.DB)
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	shortURLRepo := persistence.NewGormShortURLRepository(db.DB)
	templateRepo := persistence.NewGormReportTemplateRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Event handlers
	assetMetrics, err := telemetry.NewAssetMetrics(meter)
	if err != nil {
		return nil, err
	}
	notifier := notificationapp.NewEventHandler(notificationRepo, log)
	a.bus.Subscribe(assetMetrics)
	a.bus.Subscribe(notifier)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(tenantRepo, userRepo, roleRepo, jwtService, blacklist,
		identityapp.DefaultAuthServiceConfig(), log)
	tenantService := identityapp.NewTenantService(tenantRepo, roleRepo, userRepo, persistence.NewGormIdentityTransactionScope(db.DB))
	roleService := identityapp.NewRoleService(roleRepo, userRepo)
	userService := identityapp.NewUserService(userRepo, roleRepo, deptRepo)
	departmentService := identityapp.NewDepartmentService(deptRepo)

	categoryService := assetapp.NewCategoryService(categoryRepo, assetRepo)
	locationService := assetapp.NewLocationService(locationRepo)
	costCentreService := assetapp.NewCostCentreService(costCentreRepo, deptRepo, userRepo)
	assetService := assetapp.NewAssetService(assetRepo, categoryRepo, componentRepo, assetapp.References{
		Locations:   locationRepo,
		CostCentres: costCentreRepo,
		Departments: deptRepo,
		Users:       userRepo,
		Partners:    partnerRepo,
	}, a.bus)
	wipService := assetapp.NewWipAssetService(wipRepo, assetRepo, categoryRepo, locationRepo,
		persistence.NewGormAssetTransactionScope(db.DB), a.bus)

	budgetService := financeapp.NewBudgetService(budgetRepo, costCentreRepo, categoryRepo, a.bus)
	forexService := financeapp.NewForexService(rateRepo)
	depreciationService := financeapp.NewDepreciationService(depreciationRepo, assetRepo,
		persistence.NewGormDepreciationTransactionScope(db.DB), a.bus)

	partnerService := partnerapp.NewPartnerService(partnerRepo)
	contractService := leaseapp.NewContractService(contractRepo, leaseRepo, partnerRepo)
	leaseService := leaseapp.NewLeaseService(leaseRepo, contractRepo, assetRepo, partnerRepo, a.bus)

	a.links = linkapp.NewShortURLService(shortURLRepo, assetRepo, resolvedCache, linkapp.Config{
		BaseURL:    cfg.ShortLink.BaseURL,
		CodeLength: cfg.ShortLink.CodeLength,
	})
	qrService := linkapp.NewQRService(shortURLRepo, qrcode.NewEncoder(), qrStorage,
		cfg.ShortLink.BaseURL, cfg.Storage.PresignExpiry)

	templateService := reportapp.NewTemplateService(templateRepo, map[report.Entity]reportapp.RowSource{
		report.EntityAssets:       reportapp.ListSource(assetService.List),
		report.EntityLeases:       reportapp.ListSource(leaseService.List),
		report.EntityDepreciation: reportapp.ListSource(depreciationService.List),
		report.EntityBudgets:      reportapp.ListSource(budgetService.List),
	}, a.printer, reportStorage, cfg.Storage.PresignExpiry)

	notificationService := notificationapp.NewNotificationService(notificationRepo)

	// HTTP
	checks := map[string]handler.HealthCheck{"database": a.pingDatabase}
	if a.redis != nil {
		checks["redis"] = func(ctx context.Context) error { return a.redis.Ping(ctx).Err() }
	}

	routerCfg := router.Config{
		ServiceName: cfg.Telemetry.ServiceName,
		APIVersion:  "v1",
		Logger:      log,
		JWT: middleware.JWTMiddlewareConfig{
			JWTService: jwtService,
			Blacklist:  blacklist,
			Logger:     log,
		},
		TenantFinder:     tenantRepo,
		CORS:             corsConfig(cfg.HTTP),
		MaxBodySize:      cfg.HTTP.MaxBodySize,
		TrustedProxies:   cfg.HTTP.TrustedProxies,
		TracingEnabled:   cfg.Telemetry.Enabled,
		ProfilingEnabled: providers.Profiler.IsEnabled(),
		SwaggerEnabled:   cfg.Swagger.Enabled,
		Meter:            meter,
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		routerCfg.AuthLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	}
	if cfg.HTTP.RateLimitEnabled {
		routerCfg.APILimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	a.engine, err = router.New(routerCfg, router.Handlers{
		System:       handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, checks),
		Auth:         handler.NewAuthHandler(authService),
		Tenant:       handler.NewTenantHandler(tenantService),
		Role:         handler.NewRoleHandler(roleService),
		User:         handler.NewUserHandler(userService),
		Department:   handler.NewDepartmentHandler(departmentService),
		Category:     handler.NewCategoryHandler(categoryService),
		Location:     handler.NewLocationHandler(locationService),
		CostCentre:   handler.NewCostCentreHandler(costCentreService),
		Asset:        handler.NewAssetHandler(assetService),
		WipAsset:     handler.NewWipAssetHandler(wipService),
		Budget:       handler.NewBudgetHandler(budgetService),
		Forex:        handler.NewForexHandler(forexService),
		Depreciation: handler.NewDepreciationHandler(depreciationService),
		Partner:      handler.NewPartnerHandler(partnerService),
		Contract:     handler.NewContractHandler(contractService),
		Lease:        handler.NewLeaseHandler(leaseService),
		ShortURL:     handler.NewShortURLHandler(a.links, qrService),
		Redirect:     handler.NewRedirectHandler(a.links),
		Report:       handler.NewReportTemplateHandler(templateService),
		Notification: handler.NewNotificationHandler(notificationService),
	})
	if err != nil {
		return nil, err
	}

	ok = true
	return a, nil
}

func (a *app) pingDatabase(ctx context.Context) error {
	sqlDB, err := a.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.CORSAllowOrigins
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	return cors
}

// Close stops background work, waits for pending click counts and closes
// the connections, in reverse start order
func (a *app) Close(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.links != nil {
		a.links.Wait()
	}
	var errs []error
	if a.bus != nil {
		errs = append(errs, a.bus.Stop(ctx))
	}
	if a.printer != nil {
		errs = append(errs, a.printer.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}
