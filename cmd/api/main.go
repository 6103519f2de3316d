package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livemenu-backend/config"
	"livemenu-backend/internal/delivery/http/middleware"
	v1 "livemenu-backend/internal/delivery/http/v1"
	"livemenu-backend/internal/domain"
	"livemenu-backend/internal/infrastructure/cache"
	"livemenu-backend/internal/repository/memory"
	pgrepo "livemenu-backend/internal/repository/postgres"
	"livemenu-backend/internal/usecase"
	"livemenu-backend/pkg/logger"
	"livemenu-backend/pkg/storage"
	"livemenu-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

const serviceName = "livemenu-api"

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Document store: in-process for mock mode, Postgres otherwise
	var docStore domain.DocumentStore
	closeStore := func() {}
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pgxPool, err := pgrepo.NewPgxPool(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		if err := pgrepo.Migrate(ctx, pgxPool); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate document table")
		}
		log.Info().Msg("Successfully connected to PostgreSQL via pgx")

		pgStore := pgrepo.NewDocumentStore(pgxPool, cfg.NotifyChannel, cfg.SubscriptionRetry)
		docStore = pgStore
		closeStore = func() {
			pgStore.Close()
			pgxPool.Close()
		}
	default:
		log.Warn().Msg("Running with the in-memory document store (mock mode)")
		docStore = memory.NewDocumentStore()
	}

	// Caches: sessions expire with their cookie; memCache holds schema and stats responses
	sessionCache := cache.NewMemoryCache(cfg.SessionTTL, time.Hour)
	memCache := cache.NewMemoryCache(cfg.CacheSchemaTTL, time.Hour)
	preferences := cache.NewFileCache(cfg.PreferencesFile)
	if err := preferences.Load(); err != nil {
		log.Warn().Err(err).Msg("Failed to load preferences, starting empty")
	}

	// --- Modules Initialization ---
	registry := domain.NewRegistry()
	inventory := usecase.NewInventoryStore()

	menuUC := usecase.NewMenuUsecase(registry, inventory, docStore, sessionCache, memCache, cfg)
	go menuUC.Run(ctx)
	menuUC.Start(ctx)

	mutationUC := usecase.NewMutationUsecase(registry, docStore, inventory, cfg)
	preferenceUC := usecase.NewPreferenceUsecase(preferences)

	// Menu publisher (R2), optional
	var exporter usecase.MenuExporter
	if cfg.PublisherEnabled() {
		r2Storage, err := storage.NewR2Storage(
			ctx,
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		exporter = r2Storage
	} else {
		log.Info().Msg("R2 not configured, menu publishing disabled")
	}
	publishUC := usecase.NewPublishUsecase(registry, inventory, exporter, cfg)

	menuHandler := v1.NewMenuHandler(menuUC, preferenceUC)
	preferenceHandler := v1.NewPreferenceHandler(preferenceUC)
	adminMenuHandler := v1.NewAdminMenuHandler(mutationUC, publishUC)
	healthHandler := v1.NewHealthHandler(inventory)

	// Stats Module (inventory summaries, cached per inventory version)
	statsUC := usecase.NewStatsUsecase(registry, inventory, memCache)
	adminStatsHandler := v1.NewAdminStatsHandler(statsUC)

	// Set up Router
	mux := http.NewServeMux()

	// Public menu: identity is optional, staff see admin-only fields
	session := middleware.SessionMiddleware(cfg.SessionTTL)
	public := func(h http.HandlerFunc) http.Handler {
		return session(middleware.IdentityMiddleware(h))
	}

	mux.Handle("GET /api/v1/categories", public(menuHandler.GetCategories))
	mux.Handle("GET /api/v1/schema/{category}", public(menuHandler.GetSchema))
	mux.Handle("GET /api/v1/menu", public(menuHandler.GetMenu))
	mux.Handle("POST /api/v1/menu/category", public(menuHandler.SelectCategory))
	mux.Handle("POST /api/v1/menu/search", public(menuHandler.Search))
	mux.Handle("POST /api/v1/menu/type", public(menuHandler.SetTypeFilter))
	mux.Handle("POST /api/v1/menu/facet", public(menuHandler.SelectFacet))
	mux.Handle("POST /api/v1/menu/sort", public(menuHandler.SetSort))
	mux.Handle("POST /api/v1/menu/more", public(menuHandler.More))
	mux.Handle("GET /api/v1/menu/items/{category}/{id}", public(menuHandler.GetItem))
	mux.Handle("GET /api/v1/preferences/view-mode", public(preferenceHandler.GetViewMode))
	mux.Handle("PUT /api/v1/preferences/view-mode", public(preferenceHandler.SetViewMode))

	// Admin (Protected)
	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	mux.Handle("POST /api/v1/admin/items/{category}", adminMiddleware(adminMenuHandler.CreateItem))
	mux.Handle("PUT /api/v1/admin/items/{category}/{id}", adminMiddleware(adminMenuHandler.UpdateItem))
	mux.Handle("DELETE /api/v1/admin/items/{category}/{id}", adminMiddleware(adminMenuHandler.DeleteItem))
	mux.Handle("GET /api/v1/admin/menu/publish", adminMiddleware(adminMenuHandler.Preview))
	mux.Handle("POST /api/v1/admin/menu/publish", adminMiddleware(adminMenuHandler.Publish))
	mux.Handle("DELETE /api/v1/admin/menu/publish", adminMiddleware(adminMenuHandler.Unpublish))

	// Admin Stats Routes
	mux.Handle("GET /api/v1/admin/stats/kpis", adminMiddleware(adminStatsHandler.GetInventoryKPIs))
	mux.Handle("GET /api/v1/admin/stats/inventory/low-stock", adminMiddleware(adminStatsHandler.GetLowStock))
	mux.Handle("GET /api/v1/admin/stats/inventory/sold-out", adminMiddleware(adminStatsHandler.GetSoldOut))
	mux.Handle("GET /api/v1/admin/stats/recent", adminMiddleware(adminStatsHandler.GetRecentlyUpdated))

	// Health Check
	mux.Handle("GET /api/v1/health", healthHandler)
	mux.Handle("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	rateLimiter := middleware.NewRateLimiter(
		ctx,
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute, // cleanup period
		cfg.RateLimitClientTTL,
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, "v1", cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Subscriptions first, then the store they read from
	menuUC.Stop()
	closeStore()
	rateLimiter.Shutdown()
	cancel()

	if err := preferences.Save(); err != nil {
		log.Error().Err(err).Msg("Failed to persist preferences")
	}

	logger.ServiceStop(serviceName)
}
