package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildingcarbon/backend/internal/application/waterfall"
	"github.com/buildingcarbon/backend/internal/infrastructure/cache"
	"github.com/buildingcarbon/backend/internal/infrastructure/config"
	"github.com/buildingcarbon/backend/internal/infrastructure/logger"
	"github.com/buildingcarbon/backend/internal/infrastructure/narrative"
	"github.com/buildingcarbon/backend/internal/infrastructure/opendata"
	"github.com/buildingcarbon/backend/internal/infrastructure/persistence"
	"github.com/buildingcarbon/backend/internal/infrastructure/retry"
	"github.com/buildingcarbon/backend/internal/infrastructure/storage"
	"github.com/buildingcarbon/backend/internal/infrastructure/telemetry"
	"github.com/buildingcarbon/backend/internal/interfaces/http/handler"
	"github.com/buildingcarbon/backend/internal/interfaces/http/middleware"
	"github.com/buildingcarbon/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
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
		_ = log.Sync()
	}()
	zap.ReplaceGlobals(log)

	log.Info("Starting building carbon backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	coveredRepo := persistence.NewGormCoveredBuildingRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)
	metricsRepo := persistence.NewGormMetricsRepository(db.DB)

	// Open-data source clients share one HTTP client and app token
	sourceClient := opendata.NewClient(cfg.Sources.CallTimeout, cfg.Sources.AppToken, log)
	benchmarking := opendata.NewBenchmarkingClient(sourceClient, cfg.Sources.BenchmarkingURL, log)
	taxLots := opendata.NewTaxLotClient(sourceClient, cfg.Sources.TaxLotURL, log)
	geocoder := opendata.NewGeoSearchClient(sourceClient, cfg.Sources.GeocodeURL, log)

	policy := retry.Policy{
		MaxAttempts: uint64(cfg.Retry.MaxAttempts),
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
	}

	// Optional pipeline stages
	var narrativeGen waterfall.NarrativeGenerator
	if cfg.Narrative.Enabled {
		gen, err := narrative.NewGenerator(context.Background(), cfg.Narrative, log)
		if err != nil {
			log.Fatal("Failed to initialize narrative generator", zap.Error(err))
		}
		narrativeGen = gen
		log.Info("Narrative generation enabled", zap.String("model", cfg.Narrative.Model))
	}

	var archive waterfall.AuditArchiver
	if cfg.Storage.Enabled {
		s3Archive, err := storage.NewS3AuditArchive(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize audit archive", zap.Error(err))
		}
		archive = s3Archive
		log.Info("Audit archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	// Resolution pipeline
	identityResolver := waterfall.NewIdentityResolver(coveredRepo, taxLots, geocoder, policy, log)
	usageFetcher := waterfall.NewUsageFetcher(benchmarking, taxLots, policy, log)
	auditRetriever := waterfall.NewAuditRetriever(auditRepo, policy, log)
	orchestrator := waterfall.NewOrchestrator(
		identityResolver,
		usageFetcher,
		auditRetriever,
		metricsRepo,
		narrativeGen,
		archive,
		log,
	)

	// Resolution status cache (falls back to in-memory when Redis is absent)
	resolutionCache := cache.NewResolutionCache(cfg.Redis, log)
	defer func() {
		if err := resolutionCache.Close(); err != nil {
			log.Error("Error closing resolution cache", zap.Error(err))
		}
	}()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))
	engine.Use(middleware.Timeout(cfg.HTTP.WriteTimeout))

	// Health check outside the versioned API group
	healthHandler := handler.NewHealthHandler(db)
	engine.GET("/health", healthHandler.Health)

	buildingHandler := handler.NewBuildingHandler(orchestrator, metricsRepo, resolutionCache, log)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(buildingHandler)
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
