package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/omarsadiq/tailorware-backend/api/controllers"
	"github.com/omarsadiq/tailorware-backend/api/routes"
	"github.com/omarsadiq/tailorware-backend/internal/audit"
	"github.com/omarsadiq/tailorware-backend/internal/auth"
	"github.com/omarsadiq/tailorware-backend/internal/customers"
	"github.com/omarsadiq/tailorware-backend/internal/fabrics"
	"github.com/omarsadiq/tailorware-backend/internal/inventory"
	"github.com/omarsadiq/tailorware-backend/internal/measurements"
	"github.com/omarsadiq/tailorware-backend/internal/orders"
	"github.com/omarsadiq/tailorware-backend/internal/suppliers"
	"github.com/omarsadiq/tailorware-backend/internal/tailors"
	"github.com/omarsadiq/tailorware-backend/internal/users"
	"github.com/omarsadiq/tailorware-backend/pkg/auth/session"
	"github.com/omarsadiq/tailorware-backend/pkg/config"
	"github.com/omarsadiq/tailorware-backend/pkg/db"
	"github.com/omarsadiq/tailorware-backend/pkg/logger"
	"github.com/omarsadiq/tailorware-backend/pkg/metrics"
	"github.com/omarsadiq/tailorware-backend/pkg/migrate"
	"github.com/omarsadiq/tailorware-backend/pkg/redis"
	"github.com/omarsadiq/tailorware-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap object storage", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	auditSvc, err := audit.NewService(audit.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create audit service", err)
		os.Exit(1)
	}

	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(gormDB),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	customersRepo := customers.NewRepository(gormDB)
	customersSvc, err := customers.NewService(customersRepo, dbClient, auditSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create customers service", err)
		os.Exit(1)
	}

	measurementsSvc, err := measurements.NewService(
		measurements.NewRepository(gormDB),
		customersRepo,
		orders.NewRepository(gormDB),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create measurements service", err)
		os.Exit(1)
	}

	tailorsRepo := tailors.NewRepository(gormDB)
	ordersSvc, err := orders.NewService(
		orders.NewRepository(gormDB),
		dbClient,
		auditSvc,
		customersRepo,
		tailorsRepo,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	suppliersRepo := suppliers.NewRepository(gormDB)
	fabricsSvc, err := fabrics.NewService(fabrics.ServiceParams{
		Repo:       fabrics.NewRepository(gormDB),
		Tx:         dbClient,
		Store:      gcsClient,
		Suppliers:  suppliersRepo,
		Bucket:     gcsClient.DefaultBucket(),
		UploadTTL:  cfg.GCS.UploadURLExpiry,
		ReadTTL:    cfg.GCS.DownloadURLExpiry,
		MaxImageMB: cfg.Images.MaxUploadMB,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create fabrics service", err)
		os.Exit(1)
	}

	inventorySvc, err := inventory.NewService(inventory.NewRepository(gormDB), dbClient, auditSvc)
	if err != nil {
		logg.Error(context.Background(), "failed to create inventory service", err)
		os.Exit(1)
	}

	suppliersSvc, err := suppliers.NewService(suppliersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create suppliers service", err)
		os.Exit(1)
	}

	tailorsSvc, err := tailors.NewService(tailorsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create tailors service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Dependencies{
		Config:         cfg,
		Logger:         logg,
		Redis:          redisClient,
		SessionManager: sessionManager,
		HTTPMetrics:    httpMetrics,
		Registry:       registry,
		ReadyChecks: map[string]controllers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
			"storage":  gcsClient,
		},
	}, routes.Services{
		Auth:         authSvc,
		Customers:    customersSvc,
		Measurements: measurementsSvc,
		Orders:       ordersSvc,
		Fabrics:      fabricsSvc,
		Inventory:    inventorySvc,
		Suppliers:    suppliersSvc,
		Tailors:      tailorsSvc,
		Audit:        auditSvc,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}
