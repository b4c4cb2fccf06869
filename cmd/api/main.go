package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/douglasalbuquerque/vision-api/api/routes"
	"github.com/douglasalbuquerque/vision-api/internal/catalog"
	"github.com/douglasalbuquerque/vision-api/internal/customers"
	"github.com/douglasalbuquerque/vision-api/internal/matching"
	"github.com/douglasalbuquerque/vision-api/internal/orders"
	"github.com/douglasalbuquerque/vision-api/internal/parts"
	"github.com/douglasalbuquerque/vision-api/internal/pricing"
	"github.com/douglasalbuquerque/vision-api/internal/stores"
	"github.com/douglasalbuquerque/vision-api/pkg/config"
	"github.com/douglasalbuquerque/vision-api/pkg/db"
	"github.com/douglasalbuquerque/vision-api/pkg/instance"
	"github.com/douglasalbuquerque/vision-api/pkg/logger"
	"github.com/douglasalbuquerque/vision-api/pkg/metrics"
	"github.com/douglasalbuquerque/vision-api/pkg/migrate"
	"github.com/douglasalbuquerque/vision-api/pkg/redis"
	"github.com/douglasalbuquerque/vision-api/pkg/security"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"
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
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		_ = dbClient.Close()
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			_ = dbClient.Close()
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "redis not configured, failed-auth throttling disabled")
	}

	verifier, err := security.NewCredentialVerifier(cfg.Auth)
	if err != nil {
		logg.Error(ctx, "invalid auth configuration", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	catalogMetrics := metrics.NewCatalogMetrics(reg)

	store := catalog.NewRepository(dbClient.DB())
	pricingService, err := pricing.NewService(store, catalogMetrics)
	exitOnErr(ctx, logg, "pricing service", err)
	matchingService, err := matching.NewService(store, catalogMetrics)
	exitOnErr(ctx, logg, "matching service", err)
	storeService, err := stores.NewService(stores.NewRepository(dbClient.DB()))
	exitOnErr(ctx, logg, "store service", err)
	partsService, err := parts.NewService(parts.NewRepository(dbClient.DB()), dbClient)
	exitOnErr(ctx, logg, "parts service", err)
	customerService, err := customers.NewService(customers.NewRepository(dbClient.DB()))
	exitOnErr(ctx, logg, "customer service", err)
	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()))
	exitOnErr(ctx, logg, "orders service", err)

	addr := ":" + cfg.App.Port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"driver":   dbClient.Dialect(),
		"instance": instance.GetID(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, verifier, reg, metrics.NewHTTPMetrics(reg),
			pricingService, matchingService, storeService, partsService, customerService, ordersService),
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	exitCode := 0
	select {
	case err := <-serveErr:
		if err != nil {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			exitCode = 1
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	shutdownErr = multierr.Append(shutdownErr, dbClient.Close())
	if redisClient != nil {
		shutdownErr = multierr.Append(shutdownErr, redisClient.Close())
	}
	if shutdownErr != nil {
		for _, e := range multierr.Errors(shutdownErr) {
			logg.Error(logCtx, "error during shutdown", e)
		}
		exitCode = 1
	}
	logg.Info(logCtx, "api server stopped")
	os.Exit(exitCode)
}

func exitOnErr(ctx context.Context, logg *logger.Logger, component string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(ctx, "component", component), "failed to build component", err)
	os.Exit(1)
}
