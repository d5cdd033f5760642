// Package main is the entrypoint for the Cardapio API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kiranshivaraju/cardapio/internal/api"
	"github.com/kiranshivaraju/cardapio/internal/api/handler"
	mw "github.com/kiranshivaraju/cardapio/internal/api/middleware"
	"github.com/kiranshivaraju/cardapio/internal/apikey"
	"github.com/kiranshivaraju/cardapio/internal/cache"
	"github.com/kiranshivaraju/cardapio/internal/config"
	"github.com/kiranshivaraju/cardapio/internal/content"
	"github.com/kiranshivaraju/cardapio/internal/identity"
	"github.com/kiranshivaraju/cardapio/internal/metrics"
	"github.com/kiranshivaraju/cardapio/internal/objectstore"
	"github.com/kiranshivaraju/cardapio/internal/public"
	"github.com/kiranshivaraju/cardapio/internal/store"
	"github.com/kiranshivaraju/cardapio/internal/tenant"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config, failing fast on invalid values
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded",
		"env", cfg.Server.Env,
		"uploads_enabled", cfg.Storage.UploadsEnabled(),
	)

	verifier, err := identity.NewVerifier(cfg.Auth)
	if err != nil {
		return fmt.Errorf("create identity verifier: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Run migrations
	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 4. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 5. Object storage for image uploads
	var objects objectstore.Store
	if cfg.Storage.UploadsEnabled() {
		s3Store, err := objectstore.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("create object store: %w", err)
		}
		objects = s3Store
		slog.Info("object storage configured", "bucket", cfg.Storage.Bucket)
	}

	// 6. Build router with dependencies
	router := newRouter(cfg, store.NewPostgresStore(pool), redisCache, verifier, objects, metrics.New())

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newRouter wires services and handlers. Uploads answer 501 when objects is nil.
func newRouter(
	cfg *config.Config,
	st store.Store,
	ca cache.Cache,
	verifier identity.Verifier,
	objects objectstore.Store,
	m *metrics.Metrics,
) http.Handler {
	tenants := tenant.NewResolver(st, m)
	contentSvc := content.NewService(tenants, st, ca)
	menus := public.NewResolver(st, ca, cfg.Menu.CacheTTL, m)
	keys := apikey.NewService(tenants, st)

	deps := api.Dependencies{
		Auth:            mw.NewAuth(verifier, keys),
		AdminRateLimit:  mw.NewRateLimit(ca, "admin", cfg.Server.RateLimit),
		PublicRateLimit: mw.NewRateLimit(ca, "public", cfg.Server.RateLimit),
		Metrics:         m,

		HealthHandler:  handler.NewHealthHandler(st, ca),
		MetricsHandler: m.Handler(),

		PublicMenu:     handler.NewPublicMenuHandler(menus),
		MenuTemplates:  handler.NewMenuTemplatesHandler(),
		AdminTemplates: handler.NewAdminTemplatesHandler(),

		ListCategories:    handler.NewListCategoriesHandler(contentSvc),
		CreateCategory:    handler.NewCreateCategoryHandler(contentSvc),
		DeleteCategory:    handler.NewDeleteCategoryHandler(contentSvc),
		SetCategoryActive: handler.NewSetCategoryActiveHandler(contentSvc),

		ListItems:     handler.NewListItemsHandler(contentSvc),
		CreateItem:    handler.NewCreateItemHandler(contentSvc),
		UpdateItem:    handler.NewUpdateItemHandler(contentSvc),
		DeleteItem:    handler.NewDeleteItemHandler(contentSvc),
		SetItemActive: handler.NewSetItemActiveHandler(contentSvc),

		GetSettings:         handler.NewGetSettingsHandler(contentSvc),
		UpdateInfo:          handler.NewUpdateInfoHandler(contentSvc),
		UpdateMenuTemplate:  handler.NewUpdateMenuTemplateHandler(contentSvc),
		UpdateAdminTemplate: handler.NewUpdateAdminTemplateHandler(contentSvc),
		Dashboard:           handler.NewDashboardHandler(contentSvc),

		QRCode: handler.NewQRCodeHandler(contentSvc, cfg.Server.PublicBaseURL),

		CreateKey: handler.NewCreateKeyHandler(keys),
		ListKeys:  handler.NewListKeysHandler(keys),
		RevokeKey: handler.NewRevokeKeyHandler(keys),
	}
	if objects != nil {
		deps.Upload = handler.NewUploadHandler(objects, cfg.Storage.MaxUploadBytes, m)
	}

	return api.NewRouter(deps)
}
