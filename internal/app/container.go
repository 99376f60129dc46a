// Package app wires the callback service together.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/tribunal/internal/adjournment/application/handlers"
	"github.com/felixgeelhaar/tribunal/internal/adjournment/application/services"
	"github.com/felixgeelhaar/tribunal/internal/adjournment/domain"
	"github.com/felixgeelhaar/tribunal/internal/callback"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	docdomain "github.com/felixgeelhaar/tribunal/internal/documents/domain"
	docinfra "github.com/felixgeelhaar/tribunal/internal/documents/infrastructure"
	hearingsApp "github.com/felixgeelhaar/tribunal/internal/hearings/application"
	hearingsDomain "github.com/felixgeelhaar/tribunal/internal/hearings/domain"
	hearingsInfra "github.com/felixgeelhaar/tribunal/internal/hearings/infrastructure"
	refdomain "github.com/felixgeelhaar/tribunal/internal/referencedata/domain"
	refcache "github.com/felixgeelhaar/tribunal/internal/referencedata/infrastructure/cache"
	refpersistence "github.com/felixgeelhaar/tribunal/internal/referencedata/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/tribunal/internal/shared/application"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/tribunal/pkg/config"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.PrometheusMetrics
	Health  *observability.HealthRegistry
	Clock   caserecord.Clock

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis, nil when no REDIS_URL is configured or it is unreachable.
	RedisClient *redis.Client

	ReferenceData refdomain.Store
	Generator     docdomain.Generator
	OutboxRepo    outbox.Repository
	UnitOfWork    sharedApplication.UnitOfWork

	EventPublisher  eventbus.Publisher
	OutboxProcessor *outbox.Processor
	Scheduler       hearingsDomain.Scheduler

	Dispatcher *callback.Dispatcher
}

// NewContainer connects to the configured backends and builds the callback
// pipeline. Local mode runs on SQLite with the in-process bus and needs no
// external services.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewPrometheusMetrics("tribunal"),
		Health:  observability.NewHealthRegistry(),
		Clock:   caserecord.SystemClock{Location: cfg.Location()},
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	c.initRedis(ctx)

	var store refdomain.Store = refpersistence.NewSQLStore(c.DBConn)
	if c.RedisClient != nil {
		store = refcache.NewRedisStore(store, c.RedisClient, cfg.ReferenceCacheTTL, logger, c.Metrics)
	}
	c.ReferenceData = store

	c.initGenerator()

	outboxRepo, err := NewRepositoryFactory(c.DBConn).OutboxRepository()
	if err != nil {
		c.Close()
		return nil, err
	}
	c.OutboxRepo = outboxRepo
	c.UnitOfWork = database.NewUnitOfWork(c.DBConn)
	c.Scheduler = hearingsApp.NewOutboxScheduler(c.OutboxRepo, c.UnitOfWork, logger, c.Metrics)

	if err := c.initPublisher(); err != nil {
		c.Close()
		return nil, err
	}
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval:     cfg.OutboxPollInterval,
		BatchSize:        cfg.OutboxBatchSize,
		MaxRetries:       cfg.OutboxMaxRetries,
		RetryBackoffBase: outbox.DefaultProcessorConfig().RetryBackoffBase,
		RetryBackoffMax:  outbox.DefaultProcessorConfig().RetryBackoffMax,
		RetentionDays:    cfg.OutboxRetentionDays,
		CleanupInterval:  cfg.OutboxCleanupInterval,
	}, logger, c.Metrics)

	policy, err := callback.ParseWarningPolicy(cfg.WarningPolicy)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Dispatcher = callback.NewDispatcher(c.callbackHandlers(),
		callback.WithWarningPolicy(policy),
		callback.WithLogger(logger),
		callback.WithMetrics(c.Metrics),
	)

	return c, nil
}

// OpenDatabase connects to the configured backend. Local mode always uses
// SQLite; otherwise the driver is detected from DATABASE_URL.
func OpenDatabase(ctx context.Context, cfg *config.Config) (database.Connection, error) {
	dbCfg := database.Config{
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		MaxConns:   cfg.DatabaseMaxConns,
	}
	if cfg.LocalMode {
		dbCfg.Driver = database.DriverSQLite
	}

	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	conn, err := OpenDatabase(ctx, c.Config)
	if err != nil {
		return err
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	c.Logger.Info("connected to database", "driver", c.DBDriver, "local_mode", c.Config.LocalMode)

	if c.Config.LocalMode {
		if _, err := migrations.Run(ctx, conn, c.Logger); err != nil {
			_ = conn.Close()
			return fmt.Errorf("failed to migrate local database: %w", err)
		}
	}

	c.Health.Register("database", observability.PingChecker("database", true, conn.Ping))
	return nil
}

// initRedis connects the reference-data cache. Redis is optional outside
// production; failures there only disable caching.
func (c *Container) initRedis(ctx context.Context) {
	if c.Config.RedisURL == "" {
		return
	}
	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		c.Logger.Warn("invalid Redis URL, reference data will not be cached", "error", err)
		return
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("Redis not available, reference data will not be cached", "error", err)
		_ = client.Close()
		return
	}
	c.RedisClient = client
	c.Health.Register("redis", observability.PingChecker("redis", false, func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	c.Logger.Info("connected to Redis")
}

func (c *Container) initGenerator() {
	if c.Config.DocGenURL == "" {
		c.Logger.Warn("DOCGEN_URL not set, using stub document generator")
		c.Generator = docinfra.NewStubGenerator("")
		return
	}
	gen := docinfra.NewHTTPGenerator(docinfra.HTTPConfig{
		BaseURL:          c.Config.DocGenURL,
		Timeout:          c.Config.DocGenTimeout,
		BreakerFailures:  c.Config.DocGenBreakerFailures,
		BreakerOpenDelay: c.Config.DocGenBreakerOpenDelay,
	}, c.Logger)
	c.Generator = gen
	c.Health.Register("docgen", observability.PingChecker("docgen", false, gen.Ping))
}

// initPublisher picks RabbitMQ when configured. Local mode, and development
// without a broker, deliver events in-process to the audit consumer.
func (c *Container) initPublisher() error {
	if c.Config.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
		if err == nil {
			c.EventPublisher = publisher
			c.Health.Register("rabbitmq", observability.PingChecker("rabbitmq", true, publisher.Ping))
			return nil
		}
		if !c.Config.IsDevelopment() && !c.Config.LocalMode {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, delivering events in-process", "error", err)
	}

	bus := eventbus.NewInProcessEventBus(c.Logger)
	bus.RegisterConsumer(hearingsInfra.NewAuditConsumer(c.Logger))
	c.EventPublisher = bus
	return nil
}

func (c *Container) callbackHandlers() []callback.Handler {
	adj := c.Config.Adjournment
	constraints := domain.DefaultFieldConstraints()

	resolver := services.NewResolver(c.ReferenceData, domain.DurationPolicy{
		MinutesPerSession: adj.MinutesPerSession,
		FloorMinutes:      adj.MinDurationMinutes,
		StandardMinutes:   adj.StandardDurationMinutes,
	})
	preview := services.NewPreviewService(c.Generator, services.NoticeConfig{
		ShowIssueDate:   adj.ShowIssueDate,
		DraftTemplateID: adj.DraftTemplateID,
		FinalTemplateID: adj.FinalTemplateID,
	}, c.Logger, c.Metrics)

	return handlers.All(
		handlers.NewAboutToStartHandler(),
		handlers.NewMidEventHandler(c.Clock, constraints),
		handlers.NewAboutToSubmitHandler(c.Clock, constraints, resolver, preview, c.Scheduler, c.Logger),
		handlers.NewSubmittedHandler(),
	)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil {
		c.OutboxProcessor.Stop()
	}

	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Info("database connection closed", "driver", c.DBDriver)
		}
	}
}
