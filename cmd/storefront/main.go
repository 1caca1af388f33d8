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
	"go.uber.org/multierr"

	"github.com/kiarashop/storefront/api/controllers"
	"github.com/kiarashop/storefront/api/routes"
	"github.com/kiarashop/storefront/internal/auth"
	"github.com/kiarashop/storefront/internal/cart"
	"github.com/kiarashop/storefront/internal/catalog"
	"github.com/kiarashop/storefront/internal/orders"
	"github.com/kiarashop/storefront/internal/reviews"
	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/config"
	"github.com/kiarashop/storefront/pkg/kv"
	"github.com/kiarashop/storefront/pkg/logger"
	"github.com/kiarashop/storefront/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	storage, err := openStorage(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to open local storage", err)
		os.Exit(1)
	}

	sess := session.NewStore(storage, logg)
	if err := sess.Restore(context.Background()); err != nil {
		logg.Warn(context.Background(), "could not restore session, starting as guest")
	}

	cartStore := cart.NewStore(storage, logg)
	cartStore.SwitchPartition(context.Background(), sess.Current().PartitionKey())

	registry := prometheus.NewRegistry()
	requestMetrics := metrics.NewRequestMetrics(registry)

	client := backend.New(cfg.Backend, sess, requestMetrics)

	catalogService := catalog.NewService(client)
	authService := auth.NewService(client, sess, cartStore, logg)
	orderService := orders.NewService(client, sess)
	gateway := orders.NewGateway(client, cartStore, sess, logg)
	reviewService := reviews.NewService(client, sess)
	flowHolder := controllers.NewFlowHolder(cartStore, sess)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Backend.APIRoot(),
		"driver":  cfg.Store.Driver,
	})
	logg.Info(ctx, "starting storefront")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Metrics:  requestMetrics,
			Registry: registry,
			Session:  sess,
			Cart:     cartStore,
			Flow:     flowHolder,
			Catalog:  catalogService,
			Auth:     authService,
			Orders:   orderService,
			Gateway:  gateway,
			Reviews:  reviewService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "storefront stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop:
		logg.Info(ctx, "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, storage.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}

func openStorage(cfg *config.Config, logg *logger.Logger) (kv.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		return kv.NewRedis(context.Background(), cfg.Redis, logg)
	default:
		return kv.NewSQLite(context.Background(), cfg.Store, logg)
	}
}
