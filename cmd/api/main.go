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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/sneakhead/sneakhead-backend/api/routes"
	"github.com/sneakhead/sneakhead-backend/internal/accounts"
	"github.com/sneakhead/sneakhead-backend/internal/activity"
	cartsvc "github.com/sneakhead/sneakhead-backend/internal/cart"
	"github.com/sneakhead/sneakhead-backend/internal/catalog"
	checkoutsvc "github.com/sneakhead/sneakhead-backend/internal/checkout"
	"github.com/sneakhead/sneakhead-backend/internal/docstore"
	giftcardsvc "github.com/sneakhead/sneakhead-backend/internal/giftcards"
	"github.com/sneakhead/sneakhead-backend/internal/lockmanager"
	wishlistsvc "github.com/sneakhead/sneakhead-backend/internal/wishlist"
	"github.com/sneakhead/sneakhead-backend/pkg/config"
	"github.com/sneakhead/sneakhead-backend/pkg/logger"
	"github.com/sneakhead/sneakhead-backend/pkg/metrics"
	"github.com/sneakhead/sneakhead-backend/pkg/session"
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

	location, err := cfg.Time.Location()
	if err != nil {
		logg.Error(context.Background(), "failed to resolve time zone", err)
		os.Exit(1)
	}

	store, err := docstore.New(cfg.Store.DataDir)
	if err != nil {
		logg.Error(context.Background(), "failed to open document store", err)
		os.Exit(1)
	}
	locks := lockmanager.New()

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	workflowMetrics := metrics.NewWorkflowMetrics(registry)

	accountsSvc, err := accounts.NewService(accounts.ServiceParams{
		Store:         store,
		Locks:         locks,
		HashPasswords: true,
		Password:      cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create accounts service", err)
		os.Exit(1)
	}

	activitySvc, err := activity.NewService(activity.ServiceParams{
		Store:    store,
		Locks:    locks,
		Location: location,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create activity service", err)
		os.Exit(1)
	}

	catalogSvc, err := catalog.NewService(catalog.ServiceParams{Store: store, Locks: locks})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Store:    store,
		Locks:    locks,
		Catalog:  catalogSvc,
		Activity: activitySvc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{Store: store, Locks: locks})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	wishlistService, err := wishlistsvc.NewService(wishlistsvc.ServiceParams{
		Store:   store,
		Locks:   locks,
		Catalog: catalogSvc,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create wishlist service", err)
		os.Exit(1)
	}

	giftCardService, err := giftcardsvc.NewService(giftcardsvc.ServiceParams{
		Store:    store,
		Locks:    locks,
		Location: location,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create gift card service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(cfg, logg, sessions, httpMetrics, workflowMetrics, routes.Services{
		Accounts:  accountsSvc,
		Activity:  activitySvc,
		Catalog:   catalogSvc,
		Cart:      cartService,
		Checkout:  checkoutService,
		Wishlist:  wishlistService,
		GiftCards: giftCardService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}

	apiServer := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	metricsServer := &http.Server{
		Addr:    ":" + cfg.Metrics.Port,
		Handler: metricsMux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCtx := logg.WithFields(ctx, map[string]any{
		"env":          cfg.App.Env,
		"addr":         apiServer.Addr,
		"metrics_addr": metricsServer.Addr,
		"data_dir":     cfg.Store.DataDir,
	})
	logg.Info(logCtx, "starting api server")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		apiErr := apiServer.Shutdown(shutdownCtx)
		metricsErr := metricsServer.Shutdown(shutdownCtx)
		if apiErr != nil {
			return apiErr
		}
		return metricsErr
	})

	if err := group.Wait(); err != nil {
		logg.Error(logCtx, "server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(logCtx, "server stopped")
}
