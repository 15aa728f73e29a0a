package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/slabworks/cardstand/internal/bootstrap"
	"github.com/slabworks/cardstand/internal/catalog"
	"github.com/slabworks/cardstand/internal/checkout"
	"github.com/slabworks/cardstand/internal/clock"
	"github.com/slabworks/cardstand/internal/config"
	"github.com/slabworks/cardstand/internal/database"
	"github.com/slabworks/cardstand/internal/eventlog"
	"github.com/slabworks/cardstand/internal/fulfillment"
	"github.com/slabworks/cardstand/internal/handler"
	"github.com/slabworks/cardstand/internal/notify"
	"github.com/slabworks/cardstand/internal/payment"
	"github.com/slabworks/cardstand/internal/scheduler"
	"github.com/slabworks/cardstand/internal/server"
	"github.com/slabworks/cardstand/internal/storage"
	"github.com/slabworks/cardstand/internal/worker"
)

const (
	// shutdownTimeout bounds graceful shutdown, including notification drain.
	shutdownTimeout = 30 * time.Second

	// Connection pool lifetimes
	poolMaxIdleTime = 5 * time.Minute
	poolMaxLifetime = 30 * time.Minute

	// Background job pool sizing. Sweeps are cheap; two workers keep the
	// release sweep and event log cleanup from queueing behind each other.
	workerCount     = 2
	workerQueueSize = 16

	// eventLogCleanupInterval is how often old logged events are purged.
	eventLogCleanupInterval = 24 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	handler.InitValidator()

	ctx := context.Background()

	// Database
	connString := cfg.GetDBConnString()
	if err := database.Migrate(ctx, connString); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(ctx, connString, database.DefaultMaxConnections, poolMaxIdleTime, poolMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)

	// Event system
	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system setup failed", "error", err)
		os.Exit(1)
	}

	eventLogService := eventlog.NewService(repos.EventLog)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:        eventBus,
		EventLogService: eventLogService,
	}); err != nil {
		slog.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	// Object storage for card images, optional
	var store storage.Store
	if cfg.StorageEndpoint != "" {
		store, err = storage.NewMinioStore(ctx, storage.Config{
			Endpoint:  cfg.StorageEndpoint,
			AccessKey: cfg.StorageAccessKey,
			SecretKey: cfg.StorageSecretKey,
			Bucket:    cfg.StorageBucket,
			UseSSL:    cfg.StorageUseSSL,
		})
		if err != nil {
			slog.Error("Object storage setup failed", "error", err)
			os.Exit(1)
		}
		store = storage.WithURLCache(store)
	} else {
		slog.Warn("STORAGE_ENDPOINT not set, card images disabled")
	}

	// Transactional email, optional
	var notifier notify.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewEmailNotifier(notify.Config{
			Host:          cfg.SMTPHost,
			Port:          cfg.SMTPPort,
			Username:      cfg.SMTPUser,
			Password:      cfg.SMTPPassword,
			FromAddress:   cfg.FromAddress,
			OperatorEmail: cfg.OperatorEmail,
			Currency:      cfg.Currency,
		})
	} else {
		slog.Warn("SMTP_HOST not set, order confirmation email disabled")
	}

	// Services
	clk := clock.NewSystem()
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	catalogService := catalog.NewService(repos.Catalog, store, publisher, clk)
	checkoutService := checkout.NewService(repos.Catalog, gateway, publisher, clk, checkout.Config{
		ReservationWindow: cfg.ReservationWindow,
		Currency:          cfg.Currency,
		SuccessURL:        cfg.CheckoutSuccessURL,
		CancelURL:         cfg.CheckoutCancelURL,
	})
	fulfillmentService := fulfillment.NewService(gateway, repos.Catalog, repos.Order, notifier, publisher)

	// Background jobs: reservation sweep and event log cleanup
	pool := worker.NewPool(workerCount, workerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.ReconcileInterval, worker.NewReleaseExpiredJob(catalogService))
	sched.Schedule(eventLogCleanupInterval, eventlog.NewCleanupJob(eventLogService, eventlog.DefaultRetentionDays))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, catalogService, checkoutService, fulfillmentService, repos.Order)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	// Wait for shutdown signal or server failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-serverErr:
		slog.Error("Server stopped unexpectedly", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		FulfillmentService: fulfillmentService,
	})
}
