/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/friendsincode/roundtable/internal/models"
)

// Database backend selection.
type DatabaseBackend string

const (
	DatabasePostgres DatabaseBackend = "postgres"
	DatabaseMySQL    DatabaseBackend = "mysql"
	DatabaseSQLite   DatabaseBackend = "sqlite"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	BaseURL     string // Public base URL for self-service links
	DBBackend   DatabaseBackend
	DBDSN       string

	JWTSigningKey string
	InviteTTL     time.Duration

	MetricsBind string
	NATSURL     string

	// Redis cache for busy-interval snapshots
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheEnabled  bool

	// Search defaults, overridable per request
	DayStart                  string
	DayLengthThresholdMinutes int
	MaxResults                int
	TypicalCapacity           int
	SearchTimeout             time.Duration

	// Tracing configuration
	TracingEnabled    bool
	OTLPEndpoint      string
	TracingSampleRate float64
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ROUNDTABLE_ENV", "development"),
		BaseURL:     getEnv("ROUNDTABLE_BASE_URL", ""),
		DBBackend:   DatabaseBackend(getEnv("ROUNDTABLE_DB_BACKEND", string(DatabaseSQLite))),
		DBDSN:       getEnv("ROUNDTABLE_DB_DSN", "roundtable.db"),

		JWTSigningKey: getEnv("ROUNDTABLE_JWT_SIGNING_KEY", ""),
		InviteTTL:     time.Duration(getEnvInt("ROUNDTABLE_INVITE_TTL_HOURS", 168)) * time.Hour,

		MetricsBind: getEnv("ROUNDTABLE_METRICS_BIND", "127.0.0.1:9000"),
		NATSURL:     getEnv("ROUNDTABLE_NATS_URL", ""),

		RedisAddr:     getEnv("ROUNDTABLE_REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("ROUNDTABLE_REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("ROUNDTABLE_REDIS_DB", 0),
		CacheEnabled:  getEnvBool("ROUNDTABLE_CACHE_ENABLED", false),

		DayStart:                  getEnv("ROUNDTABLE_DAY_START", models.DefaultDayStart),
		DayLengthThresholdMinutes: getEnvInt("ROUNDTABLE_DAY_THRESHOLD_MINUTES", models.DefaultDayThresholdMins),
		MaxResults:                getEnvInt("ROUNDTABLE_MAX_RESULTS", models.DefaultMaxResults),
		TypicalCapacity:           getEnvInt("ROUNDTABLE_TYPICAL_CAPACITY", models.DefaultTypicalCapacity),
		SearchTimeout:             time.Duration(getEnvInt("ROUNDTABLE_SEARCH_TIMEOUT_SECONDS", 30)) * time.Second,

		TracingEnabled:    getEnvBool("ROUNDTABLE_TRACING_ENABLED", false),
		OTLPEndpoint:      getEnv("ROUNDTABLE_OTLP_ENDPOINT", "localhost:4317"),
		TracingSampleRate: getEnvFloat("ROUNDTABLE_TRACING_SAMPLE_RATE", 1.0),
	}

	if cfg.DBBackend != DatabasePostgres && cfg.DBBackend != DatabaseMySQL && cfg.DBBackend != DatabaseSQLite {
		return nil, fmt.Errorf("unsupported database backend %q", cfg.DBBackend)
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("ROUNDTABLE_DB_DSN must be provided")
	}

	if strings.EqualFold(cfg.Environment, "production") && cfg.JWTSigningKey == "" {
		return nil, fmt.Errorf("ROUNDTABLE_JWT_SIGNING_KEY must be provided in production")
	}

	return cfg, nil
}

// SearchDefaults builds the default search configuration with the
// process-level overrides applied.
func (c *Config) SearchDefaults() models.SearchConfig {
	cfg := models.DefaultSearchConfig()
	cfg.DayStart = c.DayStart
	cfg.DayLengthThresholdMinutes = c.DayLengthThresholdMinutes
	cfg.MaxResults = c.MaxResults
	cfg.TypicalCapacity = c.TypicalCapacity
	return cfg
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "true" || v == "1" || v == "yes" {
			return true
		}
		if v == "false" || v == "0" || v == "no" {
			return false
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}
