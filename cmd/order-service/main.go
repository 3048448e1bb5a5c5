package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/RodolfoDevApp/eventshop-orders-go/internal/api"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/application"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/config"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/domain"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/infrastructure/cache"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/infrastructure/db"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/infrastructure/memory"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/infrastructure/messaging"
	outboxinfra "github.com/RodolfoDevApp/eventshop-orders-go/internal/infrastructure/outbox"
	"github.com/RodolfoDevApp/eventshop-orders-go/internal/observability"
)

type repositories struct {
	inventory domain.InventoryRepository
	orders    domain.OrderRepository
	payments  domain.PaymentRepository
	outbox    domain.OutboxRepository
}

func main() {
	cfg := config.Load()
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the log bridge reads the global provider, so logging goes first
	shutdownLogging, err := observability.SetupLogging(ctx, cfg)
	if err != nil {
		log.Printf("failed to setup OpenTelemetry logging: %v", err)
	}
	logger, err := observability.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg)
	if err != nil {
		logger.Error("failed to setup OpenTelemetry tracing", zap.Error(err))
	}
	tracer := otel.Tracer(config.ServiceName)

	logger.Info("starting order service",
		zap.String("port", cfg.HttpPort),
		zap.String("store", cfg.Store),
		zap.Bool("messaging", cfg.MessagingEnabled()))

	repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer closeStore()

	availabilityCache, closeCache, err := openCache(cfg)
	if err != nil {
		logger.Fatal("failed to open cache", zap.Error(err))
	}
	defer closeCache()

	// Outbox writer + dispatcher + scheduler
	var outboxWriter application.OutboxWriter = application.NopOutbox{}
	var buses messaging.EventBuses
	var scheduler *outboxinfra.Scheduler
	if cfg.MessagingEnabled() {
		buses = messaging.NewEventBuses(cfg.RabbitUri)
		outboxWriter = observability.NewOutbox(application.NewOutboxWriter(repos.outbox), logger)

		dispatcher := outboxinfra.NewDispatcher(
			repos.outbox,
			buses.Publish,
			logger,
			cfg.OutboxMaxRetry,
			cfg.OutboxBatchSize,
		)
		scheduler = outboxinfra.NewScheduler(dispatcher, time.Duration(cfg.OutboxIntervalSec)*time.Second)
		scheduler.Start(ctx)
	}

	// Application services
	store := application.NewInventoryStore(repos.inventory, availabilityCache)
	reservations := application.NewReservationService(store, outboxWriter)
	orders := application.NewOrderService(repos.orders, reservations, outboxWriter, application.OrderServiceOptions{
		ReleaseOnCancel: cfg.ReleaseOnCancel,
	})
	payments := application.NewPaymentService(
		repos.orders,
		repos.payments,
		application.CoinFlipDecider{},
		outboxWriter,
		cfg.PaymentMethods,
	)

	if cfg.SeedInventory {
		if err := store.Seed(ctx, application.DefaultInventory()); err != nil {
			logger.Fatal("failed to seed inventory", zap.Error(err))
		}
	}

	if cfg.MessagingEnabled() {
		productCreatedHandler := application.NewProductCreatedHandler(store, outboxWriter, logger)
		if err := messaging.RegisterCatalogSubscriptions(ctx, buses.CatalogConsumer, productCreatedHandler); err != nil {
			logger.Fatal("failed to start catalog subscriptions", zap.Error(err))
		}
	}

	// HTTP API
	apiServer := api.NewServer(
		observability.NewInventory(reservations, logger, tracer),
		observability.NewOrders(orders, logger, tracer),
		observability.NewPayments(payments, logger, tracer),
		logger,
	)
	httpSrv := &http.Server{
		Addr:              ":" + cfg.HttpPort,
		Handler:           apiServer.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP listening", zap.String("addr", httpSrv.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("shutting down order service", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", zap.Error(err))
	}

	cancel()
	if scheduler != nil {
		select {
		case <-scheduler.Done():
		case <-shutdownCtx.Done():
		}
	}

	if err := observability.JoinShutdown(shutdownTracing, shutdownLogging)(shutdownCtx); err != nil {
		logger.Error("failed to shutdown OpenTelemetry", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (repositories, func(), error) {
	if cfg.Store != config.StorePostgres {
		return repositories{
			inventory: memory.NewInventoryRepository(),
			orders:    memory.NewOrderRepository(),
			payments:  memory.NewPaymentRepository(),
			outbox:    memory.NewOutboxRepository(),
		}, func() {}, nil
	}

	conn, err := db.Open(ctx, cfg.PgDsn)
	if err != nil {
		return repositories{}, nil, err
	}
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return repositories{}, nil, err
	}
	return pgRepositories(conn), func() { conn.Close() }, nil
}

func pgRepositories(conn *sql.DB) repositories {
	return repositories{
		inventory: db.NewPgInventoryRepository(conn),
		orders:    db.NewPgOrderRepository(conn),
		payments:  db.NewPgPaymentRepository(conn),
		outbox:    db.NewPgOutboxRepository(conn),
	}
}

func openCache(cfg config.Config) (domain.AvailabilityCache, func(), error) {
	if cfg.RedisUrl == "" {
		return cache.NewMemoryCache(cfg.CacheTTL), func() {}, nil
	}
	rc, err := cache.NewRedisCache(cfg.RedisUrl, cfg.CacheTTL)
	if err != nil {
		return nil, nil, err
	}
	return rc, func() { _ = rc.Close() }, nil
}
