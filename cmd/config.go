package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/jobs"
	"logistics/internal/pkg/errs"
)

// Storage backends a ledger can run on.
const (
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

// DefaultLedgerID addresses the slot when LEDGER_ID is not set, so a
// restarted service finds the trip it stored before.
const DefaultLedgerID = "7d1f6f0e-3c55-4c8e-9b0e-5a1d2c7b9e41"

var defaultCORSOrigins = []string{
	"https://hack-meridian-chi.vercel.app",
	"http://localhost:3000",
	"http://127.0.0.1:5500",
}

// Config holds the settings read by LoadConfig.
type Config struct {
	HTTPPort string
	Storage  string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LedgerID     kernel.UUID
	LedgerRPCURL string

	CORSOrigins       []string
	LogLevel          slog.Level
	StatusJobSchedule string
	RPCRateLimitRPS   float64
}

// LoadConfig reads the configuration from the environment. Every invalid
// value is reported, not only the first one.
func LoadConfig() (Config, error) {
	cfg := Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		Storage:           strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            getEnv("DB_NAME", "logistics"),
		DBSslMode:         getEnv("DB_SSLMODE", "disable"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		LedgerRPCURL:      os.Getenv("LEDGER_RPC_URL"),
		CORSOrigins:       splitCSV(os.Getenv("CORS_ORIGINS")),
		StatusJobSchedule: getEnv("STATUS_JOB_SCHEDULE", jobs.DefaultTripStatusSchedule),
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = append([]string(nil), defaultCORSOrigins...)
	}

	var problems []error

	if err := validatePort("HTTP_PORT", cfg.HTTPPort); err != nil {
		problems = append(problems, err)
	}

	switch cfg.Storage {
	case StoragePostgres:
		if err := validatePort("DB_PORT", cfg.DBPort); err != nil {
			problems = append(problems, err)
		}
	case StorageRedis, StorageMemory:
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("STORAGE",
			fmt.Errorf("%q is not one of postgres, redis, memory", cfg.Storage)))
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	switch {
	case err != nil:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("REDIS_DB", err))
	case redisDB < 0 || redisDB > 15:
		problems = append(problems, errs.NewValueIsOutOfRangeError("REDIS_DB", redisDB, 0, 15))
	default:
		cfg.RedisDB = redisDB
	}

	cfg.LedgerID, err = kernel.UUIDFromString(getEnv("LEDGER_ID", DefaultLedgerID))
	if err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LEDGER_ID", err))
	}

	if cfg.LedgerRPCURL != "" {
		if u, parseErr := url.Parse(cfg.LedgerRPCURL); parseErr != nil || !u.IsAbs() {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LEDGER_RPC_URL",
				fmt.Errorf("%q is not an absolute URL", cfg.LedgerRPCURL)))
		}
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err))
	}

	rps, err := strconv.ParseFloat(getEnv("RPC_RATE_LIMIT_RPS", "20"), 64)
	switch {
	case err != nil:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("RPC_RATE_LIMIT_RPS", err))
	case rps < 0:
		problems = append(problems, errs.NewValueIsOutOfRangeError("RPC_RATE_LIMIT_RPS", rps, 0, "unbounded"))
	default:
		cfg.RPCRateLimitRPS = rps
	}

	if len(problems) > 0 {
		return Config{}, errors.Join(problems...)
	}
	return cfg, nil
}

// PostgresDSN builds the lib/pq connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// RemoteLedger reports whether the gateway forwards to a ledger endpoint
// instead of owning the storage.
func (c Config) RemoteLedger() bool {
	return c.LedgerRPCURL != ""
}

// RPCRateLimitBurst lets a client spend two seconds worth of calls at once.
func (c Config) RPCRateLimitBurst() int {
	if c.RPCRateLimitRPS <= 0 {
		return 0
	}
	return max(1, int(2*c.RPCRateLimitRPS))
}

func validatePort(name, value string) error {
	port, err := strconv.Atoi(value)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if port < 1 || port > 65535 {
		return errs.NewValueIsOutOfRangeError(name, port, 1, 65535)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma separated list, dropping blank entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
