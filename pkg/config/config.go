package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/convert"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	Timezone  string

	// HTTP
	HTTPAddr     string
	RateLimitRPS int

	// Database. LocalMode is enabled when no DATABASE_URL is set.
	DatabaseURL      string
	DatabaseDriver   string
	DatabaseMaxConns int
	SQLitePath       string
	LocalMode        bool

	// Redis
	RedisURL          string
	ReferenceCacheTTL time.Duration

	// RabbitMQ
	RabbitMQURL string

	// Outbox
	OutboxPollInterval     time.Duration
	OutboxBatchSize        int
	OutboxMaxRetries       int
	OutboxRetentionDays    int
	OutboxCleanupInterval  time.Duration
	OutboxProcessorEnabled bool

	// Worker
	WorkerHealthAddr string

	// Document generation
	DocGenURL              string
	DocGenTimeout          time.Duration
	DocGenBreakerFailures  uint32
	DocGenBreakerOpenDelay time.Duration

	// Callbacks
	WarningPolicy string

	Adjournment AdjournmentConfig
}

// AdjournmentConfig carries the rule constants of the adjournment workflow.
type AdjournmentConfig struct {
	MinutesPerSession       int
	MinDurationMinutes      int
	StandardDurationMinutes int
	ShowIssueDate           bool
	DraftTemplateID         string
	FinalTemplateID         string
}

// DefaultAdjournmentConfig returns the rule constants used when nothing is configured.
func DefaultAdjournmentConfig() AdjournmentConfig {
	return AdjournmentConfig{
		MinutesPerSession:       165,
		MinDurationMinutes:      30,
		StandardDurationMinutes: 60,
		ShowIssueDate:           true,
		DraftTemplateID:         "TB-SCS-GNO-ENG-adjournment-draft.docx",
		FinalTemplateID:         "TB-SCS-GNO-ENG-adjournment.docx",
	}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	defaults := DefaultAdjournmentConfig()
	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		Timezone:  getEnv("TIMEZONE", "Europe/London"),

		HTTPAddr:     getEnv("HTTP_ADDR", "0.0.0.0:8080"),
		RateLimitRPS: getIntEnv("RATE_LIMIT_RPS", 50),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseMaxConns: getIntEnv("DB_MAX_CONNS", 10),
		SQLitePath:       getEnv("SQLITE_PATH", "tribunal.db"),

		RedisURL:          getEnv("REDIS_URL", ""),
		ReferenceCacheTTL: getDurationEnv("REFERENCE_CACHE_TTL", 10*time.Minute),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		OutboxPollInterval:     getDurationEnv("OUTBOX_POLL_INTERVAL", 100*time.Millisecond),
		OutboxBatchSize:        getIntEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:       getIntEnv("OUTBOX_MAX_RETRIES", 5),
		OutboxRetentionDays:    getIntEnv("OUTBOX_RETENTION_DAYS", 14),
		OutboxCleanupInterval:  getDurationEnv("OUTBOX_CLEANUP_INTERVAL", 24*time.Hour),
		OutboxProcessorEnabled: getBoolEnv("OUTBOX_PROCESSOR_ENABLED", true),

		WorkerHealthAddr: getEnv("WORKER_HEALTH_ADDR", "0.0.0.0:8081"),

		DocGenURL:              getEnv("DOCGEN_URL", ""),
		DocGenTimeout:          getDurationEnv("DOCGEN_TIMEOUT", 10*time.Second),
		DocGenBreakerFailures:  convert.IntToUint32Clamped(getIntEnv("DOCGEN_BREAKER_FAILURES", 5)),
		DocGenBreakerOpenDelay: getDurationEnv("DOCGEN_BREAKER_OPEN_DELAY", 30*time.Second),

		WarningPolicy: getEnv("CALLBACK_WARNING_POLICY", "manual"),

		Adjournment: AdjournmentConfig{
			MinutesPerSession:       getIntEnv("ADJOURN_MINUTES_PER_SESSION", defaults.MinutesPerSession),
			MinDurationMinutes:      getIntEnv("ADJOURN_MIN_DURATION_MINUTES", defaults.MinDurationMinutes),
			StandardDurationMinutes: getIntEnv("ADJOURN_STANDARD_DURATION_MINUTES", defaults.StandardDurationMinutes),
			ShowIssueDate:           getBoolEnv("ADJOURN_SHOW_ISSUE_DATE", defaults.ShowIssueDate),
			DraftTemplateID:         getEnv("ADJOURN_DRAFT_TEMPLATE_ID", defaults.DraftTemplateID),
			FinalTemplateID:         getEnv("ADJOURN_FINAL_TEMPLATE_ID", defaults.FinalTemplateID),
		},
	}

	cfg.LocalMode = cfg.DatabaseURL == ""
	cfg.DatabaseDriver = "postgres"
	if cfg.LocalMode {
		cfg.DatabaseDriver = "sqlite"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	switch c.WarningPolicy {
	case "manual", "always", "never":
	default:
		return fmt.Errorf("config: invalid CALLBACK_WARNING_POLICY %q", c.WarningPolicy)
	}
	if c.Adjournment.MinutesPerSession <= 0 {
		return fmt.Errorf("config: ADJOURN_MINUTES_PER_SESSION must be positive")
	}
	if c.Adjournment.MinDurationMinutes < 0 || c.Adjournment.StandardDurationMinutes <= 0 {
		return fmt.Errorf("config: adjournment durations must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
