package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/routes"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/admins"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/checkout"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/collections"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/contact"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/customers"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders/edit"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders/listing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/pricing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/reviews"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/config"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/metrics"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/migrate"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/outbox"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/redis"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/security"
)

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc, err := buildServices(cfg, logg, dbClient, redisClient, registry)
	if err != nil {
		logg.Error(ctx, "failed to build services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, dbClient, redisClient, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(context.Background(), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}

func buildServices(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, redisClient *redis.Client, reg prometheus.Registerer) (routes.Services, error) {
	loc, err := cfg.App.Location()
	if err != nil {
		return routes.Services{}, err
	}

	emitter := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	customerSvc, err := customers.NewService(customers.NewRepository(dbClient.DB()), dbClient, emitter)
	if err != nil {
		return routes.Services{}, err
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	numbers := orders.NewNumberAllocator(ordersRepo, redisClient, cfg.Orders.IDBase, cfg.Orders.IDPrefix, logg)
	orderSvc, err := orders.NewService(ordersRepo, dbClient, customerSvc, numbers, emitter, metrics.NewOrderMetrics(reg), logg)
	if err != nil {
		return routes.Services{}, err
	}

	editSvc, err := edit.NewService(orderSvc, customerSvc, logg)
	if err != nil {
		return routes.Services{}, err
	}

	listingSvc, err := listing.NewService(ordersRepo, redisClient, listing.Options{
		PageSize: cfg.Orders.ListLimit,
		Cooldown: cfg.Orders.LoadMoreCooldown,
		Location: loc,
	}, logg)
	if err != nil {
		return routes.Services{}, err
	}

	clientStore, err := checkout.NewClientStore(redisClient, cfg.Orders.ClientSessionTTL)
	if err != nil {
		return routes.Services{}, err
	}
	checkoutSvc, err := checkout.NewService(orderSvc, clientStore, pricing.NewCalculator(nil), logg)
	if err != nil {
		return routes.Services{}, err
	}

	collectionSvc, err := collections.NewService(collections.NewRepository(dbClient.DB()))
	if err != nil {
		return routes.Services{}, err
	}

	reviewSvc, err := reviews.NewService(reviews.NewRepository(dbClient.DB()), dbClient, emitter, loc)
	if err != nil {
		return routes.Services{}, err
	}

	contactSvc, err := contact.NewService(contact.NewRepository(dbClient.DB()), dbClient, emitter)
	if err != nil {
		return routes.Services{}, err
	}

	adminSvc, err := admins.NewService(cfg.Admin, cfg.JWT, security.NewHasher(cfg.Password), logg)
	if err != nil {
		return routes.Services{}, err
	}

	return routes.Services{
		Orders:      orderSvc,
		Customers:   customerSvc,
		Edit:        editSvc,
		Listing:     listingSvc,
		Checkout:    checkoutSvc,
		Collections: collectionSvc,
		Reviews:     reviewSvc,
		Contact:     contactSvc,
		Admins:      adminSvc,
	}, nil
}
