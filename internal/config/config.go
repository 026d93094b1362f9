package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration derived from environment variables.
type Config struct {
	HTTPPort                 string
	LogLevel                 string
	DatabaseURL              string
	RedisURL                 string
	NATSURL                  string
	NATSSubjectPrefix        string
	RateLimitRPS             int
	IdempotencyTTL           time.Duration
	IdempotencySweepInterval time.Duration
	ShutdownTimeout          time.Duration
}

// IdempotencyEnabled reports whether a database is configured to back Idempotency-Key replay.
func (c *Config) IdempotencyEnabled() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

// Load reads environment variables using viper and returns a typed config.
// DATABASE_URL, REDIS_URL and NATS_URL are optional; leaving one empty disables
// the feature it backs.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	bindEnv(v, "port", "PORT", "PAYMENT_PORT")
	bindEnv(v, "log_level", "LOG_LEVEL", "PAYMENT_LOG_LEVEL")
	bindEnv(v, "database_url", "DATABASE_URL", "PAYMENT_DATABASE_URL")
	bindEnv(v, "redis_url", "REDIS_URL", "PAYMENT_REDIS_URL")
	bindEnv(v, "nats_url", "NATS_URL", "PAYMENT_NATS_URL")
	bindEnv(v, "nats_subject_prefix", "NATS_SUBJECT_PREFIX", "PAYMENT_NATS_SUBJECT_PREFIX")
	bindEnv(v, "rate_limit_rps", "RATE_LIMIT_RPS", "PAYMENT_RATE_LIMIT_RPS")
	bindEnv(v, "idempotency_ttl", "IDEMPOTENCY_TTL", "PAYMENT_IDEMPOTENCY_TTL")
	bindEnv(v, "idempotency_sweep_interval", "IDEMPOTENCY_SWEEP_INTERVAL", "PAYMENT_IDEMPOTENCY_SWEEP_INTERVAL")
	bindEnv(v, "shutdown_timeout", "SHUTDOWN_TIMEOUT", "PAYMENT_SHUTDOWN_TIMEOUT")

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("nats_url", "")
	v.SetDefault("nats_subject_prefix", "instructions")
	v.SetDefault("rate_limit_rps", 50)
	v.SetDefault("idempotency_ttl", "24h")
	v.SetDefault("idempotency_sweep_interval", "1h")
	v.SetDefault("shutdown_timeout", "30s")

	ttl, err := time.ParseDuration(v.GetString("idempotency_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
	}
	sweepInterval, err := time.ParseDuration(v.GetString("idempotency_sweep_interval"))
	if err != nil {
		return nil, fmt.Errorf("invalid IDEMPOTENCY_SWEEP_INTERVAL: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(v.GetString("shutdown_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}

	cfg := &Config{
		HTTPPort:                 v.GetString("port"),
		LogLevel:                 v.GetString("log_level"),
		DatabaseURL:              strings.TrimSpace(v.GetString("database_url")),
		RedisURL:                 strings.TrimSpace(v.GetString("redis_url")),
		NATSURL:                  strings.TrimSpace(v.GetString("nats_url")),
		NATSSubjectPrefix:        v.GetString("nats_subject_prefix"),
		RateLimitRPS:             max(v.GetInt("rate_limit_rps"), 1),
		IdempotencyTTL:           ttl,
		IdempotencySweepInterval: sweepInterval,
		ShutdownTimeout:          shutdownTimeout,
	}

	if cfg.IdempotencyTTL <= 0 {
		return nil, fmt.Errorf("IDEMPOTENCY_TTL must be positive")
	}
	if cfg.IdempotencySweepInterval <= 0 {
		return nil, fmt.Errorf("IDEMPOTENCY_SWEEP_INTERVAL must be positive")
	}
	if strings.TrimSpace(cfg.HTTPPort) == "" {
		return nil, fmt.Errorf("PORT is required")
	}

	return cfg, nil
}

func bindEnv(v *viper.Viper, key string, names ...string) {
	args := append([]string{key}, names...)
	_ = v.BindEnv(args...)
}
