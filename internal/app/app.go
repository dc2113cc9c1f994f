package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookstocknook/storefront/internal/auth"
	"github.com/bookstocknook/storefront/internal/cart"
	"github.com/bookstocknook/storefront/internal/cart/repository"
	memoryrepo "github.com/bookstocknook/storefront/internal/cart/repository/memory"
	redisrepo "github.com/bookstocknook/storefront/internal/cart/repository/redis"
	catalogmemory "github.com/bookstocknook/storefront/internal/catalog/memory"
	"github.com/bookstocknook/storefront/internal/catalog/seed"
	"github.com/bookstocknook/storefront/internal/config"
	"github.com/bookstocknook/storefront/internal/event"
	handler "github.com/bookstocknook/storefront/internal/handler/http"
	"github.com/bookstocknook/storefront/internal/hints"
	"github.com/bookstocknook/storefront/internal/notify"
	"github.com/bookstocknook/storefront/pkg/health"
	pkgkafka "github.com/bookstocknook/storefront/pkg/kafka"
	"github.com/bookstocknook/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront server.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	queue          *notify.Queue
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
//
// Unreachable infrastructure never aborts startup: without Redis the cart
// runs in-memory only, and without Kafka brokers no events are published.
// The storefront's single hard dependency is its own embedded catalog.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.TracingEndpoint,
		SampleRate:     1.0,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Load the embedded catalog.
	books, err := seed.Books()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalogEngine := catalogmemory.New(books)
	logger.Info("catalog loaded", slog.Int("books", len(books)))

	// Cart persistence: Redis when reachable, in-memory otherwise.
	var cartRepo repository.Repository
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, cart will not survive restarts",
			slog.String("addr", cfg.RedisAddr),
			slog.String("error", err.Error()),
		)
		_ = rdb.Close()
		rdb = nil
		cartRepo = memoryrepo.NewRepository()
	} else {
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		cartRepo = redisrepo.NewRepository(rdb, cfg.CartTTL())
	}

	// Kafka domain events, optional.
	var producer *pkgkafka.Producer
	var eventProducer *event.Producer
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaBrokers[0] != "" {
		kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		producer = pkgkafka.NewProducer(kafkaCfg, logger)
		eventProducer = event.NewProducer(producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("no kafka brokers configured, event publishing disabled")
	}

	// Notification side channel: bounded queue draining into the feed ring
	// and the log.
	feed := notify.NewFeed(cfg.NotifyFeedSize)
	queue := notify.NewQueue(cfg.NotifyQueueSize, logger, feed, notify.NewLogSink(logger))

	// The cart store hydrates from whatever repository we ended up with.
	var storeEvents cart.EventPublisher
	if eventProducer != nil {
		storeEvents = eventProducer
	}
	store := cart.NewStore(ctx, cartRepo, queue, storeEvents, logger)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry())
	hintsClient := hints.NewClient(cfg.HintsServiceURL, cfg.HintsTimeout(), logger)

	// Health checks. Liveness is unconditional; readiness tracks the
	// optional backends that are actually configured.
	healthHandler := health.NewHandler()
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	if producer != nil {
		healthHandler.Register("kafka", func(ctx context.Context) error {
			return producer.Ping(ctx)
		})
	}

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:        catalogEngine,
		Cart:           store,
		JWT:            jwtManager,
		Hints:          hintsClient,
		Feed:           feed,
		Notifier:       queue,
		Events:         eventProducer,
		Health:         healthHandler,
		Logger:         logger,
		Environment:    cfg.Environment,
		SimulatedDelay: cfg.SimulatedDelay(),
		HintsRateRPS:   cfg.HintsRateLimitRPS,
		HintsRateBurst: cfg.HintsRateLimitBurst,
		CORSOrigins:    cfg.CORSAllowedOrigins,
		PprofCIDRs:     cfg.PprofAllowedCIDRs,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		queue:          queue,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Deliver whatever notifications are still buffered.
	a.queue.Close()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
