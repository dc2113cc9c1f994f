package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/bookstocknook/storefront/pkg/config"
)

// Config holds all configuration for the storefront server.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Redis (cart persistence). The storefront degrades to in-memory
	// persistence when Redis is unreachable at startup.
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart snapshot TTL in hours (default: 30 days, matching a browser's
	// local storage lifetime expectations).
	CartTTLHours int `env:"CART_TTL_HOURS" envDefault:"720"`

	// Kafka domain events. Empty brokers disables publishing.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"" envSeparator:","`

	// Demo session tokens
	JWTSecret      string `env:"JWT_SECRET" envDefault:"demo-secret-not-for-production"`
	JWTExpiryHours int    `env:"JWT_EXPIRY_HOURS" envDefault:"24"`

	// AI hint service
	HintsServiceURL     string `env:"HINTS_SERVICE_URL" envDefault:"http://localhost:9400"`
	HintsTimeoutSeconds int    `env:"HINTS_TIMEOUT_SECONDS" envDefault:"10"`
	HintsRateLimitRPS   int    `env:"HINTS_RATE_LIMIT_RPS" envDefault:"1"`
	HintsRateLimitBurst int    `env:"HINTS_RATE_LIMIT_BURST" envDefault:"5"`

	// Notification feed ring size and outbound queue depth
	NotifyFeedSize  int `env:"NOTIFY_FEED_SIZE" envDefault:"50"`
	NotifyQueueSize int `env:"NOTIFY_QUEUE_SIZE" envDefault:"256"`

	// Simulated processing delay for the dummy checkout and auth flows.
	SimulatedDelayMS int `env:"SIMULATED_DELAY_MS" envDefault:"1500"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// pprof is only reachable from these CIDRs.
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:","`

	// Tracing
	TracingEnabled  bool   `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint string `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// Validate checks invariants the env tags cannot express. Called by the
// loader after parsing.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.CartTTLHours < 1 {
		return fmt.Errorf("invalid cart TTL: %d hours", c.CartTTLHours)
	}
	if c.Environment != "development" && c.JWTSecret == "demo-secret-not-for-production" {
		return fmt.Errorf("JWT_SECRET must be changed from default value in %s environment", c.Environment)
	}
	return nil
}

// CartTTL returns the cart snapshot TTL as a duration.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// JWTExpiry returns the demo token lifetime as a duration.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

// HintsTimeout returns the hint service request timeout as a duration.
func (c *Config) HintsTimeout() time.Duration {
	return time.Duration(c.HintsTimeoutSeconds) * time.Second
}

// SimulatedDelay returns the dummy processing delay as a duration.
func (c *Config) SimulatedDelay() time.Duration {
	return time.Duration(c.SimulatedDelayMS) * time.Millisecond
}
