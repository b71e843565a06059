package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/sellaids/backend/internal/application/catalog"
	"github.com/sellaids/backend/internal/application/identity"
	notificationapp "github.com/sellaids/backend/internal/application/notification"
	reviewapp "github.com/sellaids/backend/internal/application/review"
	settingapp "github.com/sellaids/backend/internal/application/setting"
	supportapp "github.com/sellaids/backend/internal/application/support"
	vendorapp "github.com/sellaids/backend/internal/application/vendor"
	"github.com/sellaids/backend/internal/infrastructure/auth"
	"github.com/sellaids/backend/internal/infrastructure/config"
	"github.com/sellaids/backend/internal/infrastructure/event"
	"github.com/sellaids/backend/internal/infrastructure/export"
	"github.com/sellaids/backend/internal/infrastructure/logger"
	"github.com/sellaids/backend/internal/infrastructure/persistence"
	"github.com/sellaids/backend/internal/infrastructure/sms"
	"github.com/sellaids/backend/internal/infrastructure/storage"
	"github.com/sellaids/backend/internal/infrastructure/telemetry"
	"github.com/sellaids/backend/internal/interfaces/http/handler"
	"github.com/sellaids/backend/internal/interfaces/http/middleware"
	"github.com/sellaids/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/sellaids/backend/docs"
)

const version = "1.0.0"

//	@title			Sellaids Marketplace API
//	@version		1.0
//	@description	Preloved luxury marketplace: vendor onboarding, listings, reviews and support.

//	@contact.name	Sellaids Support
//	@contact.email	support@sellaids.com

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		logger.Sync(log)
	}()

	log.Info("Starting Sellaids backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log)
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, version, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	var gormOpts []logger.GormLoggerOption
	if cfg.Telemetry.DBSlowQueryThresh > 0 {
		gormOpts = append(gormOpts, logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh))
	}
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), gormOpts...)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	if err := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry, cfg.Database.Driver), log).Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, telemetry.DBMetricsConfigFrom(cfg.Telemetry, cfg.Database.Driver), log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	ticketRepo := persistence.NewGormTicketRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	registrationStore := persistence.NewGormRegistrationStore(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := newTokenBlacklist(cfg.Redis, log)

	imageStorage := newImageStorage(ctx, cfg.Storage, log)
	smsClient := sms.NewClient(cfg.SMS, log)

	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch())

	// Services
	settingService := settingapp.NewSettingService(settingRepo, log)
	authService := identity.NewAuthService(userRepo, vendorRepo, jwtService, blacklist, log)
	vendorService := vendorapp.NewVendorService(vendorRepo, userRepo, productRepo, ticketRepo, registrationStore, authService, eventBus, log)
	productService := catalogapp.NewProductService(productRepo, vendorRepo, imageStorage, eventBus, cfg.Storage.PresignExpiry, log)
	ticketService := supportapp.NewTicketService(ticketRepo, vendorRepo, eventBus, log)
	reviewService := reviewapp.NewReviewService(reviewRepo, productRepo, export.NewReviewExporter(nil), eventBus, log)
	notificationService := notificationapp.NewNotificationService(notificationRepo, smsClient, log)

	// Event subscribers
	feed := notificationapp.NewFeedHandler(notificationRepo, settingService, log)
	eventBus.Subscribe(feed, feed.EventTypes()...)
	smsNotifier := notificationapp.NewSMSNotifier(smsClient, settingService, vendorRepo, productRepo, log)
	eventBus.Subscribe(smsNotifier, smsNotifier.EventTypes()...)

	var httpMetrics *telemetry.HTTPMetrics
	if meterProvider.IsEnabled() {
		meter := telemetry.Meter(meterProvider)
		marketplaceMetrics, err := telemetry.NewMarketplaceMetrics(meter)
		if err != nil {
			log.Fatal("Failed to create marketplace metrics", zap.Error(err))
		}
		eventBus.Subscribe(marketplaceMetrics, marketplaceMetrics.EventTypes()...)
		if httpMetrics, err = telemetry.NewHTTPMetrics(meter); err != nil {
			log.Fatal("Failed to create HTTP metrics", zap.Error(err))
		}
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	created, err := authService.BootstrapAdmin(ctx, identity.BootstrapAdminInput{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
	})
	if err != nil {
		log.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}
	if created {
		log.Info("Admin account created", zap.String("email", cfg.Admin.Email))
	}

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	var globalLimiter, loginLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		globalLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		go globalLimiter.Run(ctx)
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		go loginLimiter.Run(ctx)
	}

	engine, err := router.NewEngine(router.EngineConfig{
		Logger: log,
		HTTP:   cfg.HTTP,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		},
		HTTPMetrics: httpMetrics,
		RateLimiter: globalLimiter,
		Profiling:   profiler.IsEnabled(),
	})
	if err != nil {
		log.Fatal("Failed to configure HTTP engine", zap.Error(err))
	}

	router.Mount(engine, router.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		Vendor:         handler.NewVendorHandler(vendorService),
		Product:        handler.NewProductHandler(productService),
		Ticket:         handler.NewTicketHandler(ticketService),
		Review:         handler.NewReviewHandler(reviewService),
		Notification:   handler.NewNotificationHandler(notificationService),
		Setting:        handler.NewSettingHandler(settingService),
		Health:         handler.NewHealthHandler(db),
		Static:         handler.NewStaticHandler(cfg.HTTP.StaticDir),
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		LoginLimiter:   loginLimiter,
		Swagger: middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		},
		Logger: log,
	}, router.WithAPIVersion("v1"))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus did not drain", zap.Error(err))
	}
	if closer, ok := blacklist.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn("Error closing token blacklist", zap.Error(err))
		}
	}
	if dbMetrics != nil {
		if err := dbMetrics.Stop(); err != nil {
			log.Warn("Error stopping database metrics", zap.Error(err))
		}
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Error shutting down logger provider", zap.Error(err))
	}
}

// newTokenBlacklist uses Redis when enabled and reachable, otherwise the
// in-memory blacklist of this process.
func newTokenBlacklist(cfg config.RedisConfig, log *zap.Logger) auth.TokenBlacklist {
	if !cfg.Enabled {
		log.Info("Redis disabled, using in-memory token blacklist")
		return auth.NewInMemoryTokenBlacklist()
	}
	blacklist, err := auth.NewRedisTokenBlacklist(cfg)
	if err != nil {
		log.Warn("Redis unavailable, falling back to in-memory token blacklist", zap.Error(err))
		return auth.NewInMemoryTokenBlacklist()
	}
	log.Info("Redis token blacklist connected", zap.String("addr", cfg.Addr()))
	return blacklist
}

// newImageStorage uses S3 when storage is enabled, otherwise a stub that
// only builds URLs.
func newImageStorage(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) catalogapp.ImageStorage {
	if !cfg.Enabled {
		log.Info("Object storage disabled, upload URLs are not signed")
		return storage.NewStubObjectStorage(cfg.PublicBaseURL)
	}
	s3, err := storage.NewS3ObjectStorage(&cfg,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.PresignExpiry),
	)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	if err := s3.EnsureBucket(ctx); err != nil {
		log.Warn("Bucket check failed", zap.String("bucket", s3.GetBucket()), zap.Error(err))
	}
	return s3
}
