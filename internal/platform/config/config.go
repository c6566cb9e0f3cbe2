package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/money_transfer_service/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers understood by STORAGE_DRIVER.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	StorageDriver  string
	Port           string
	IsProduction   bool
	MigrationsPath string

	// Ledger policy
	TransferFeeRate     decimal.Decimal
	TransferDailyLimit  int64
	WithdrawDailyLimit  int64
	AccountNumberPrefix string
	LockTimeout         time.Duration

	// HTTP edge
	RateLimit          string
	RateLimitRedisURL  string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("TRANSFER_FEE_RATE", "0.01")
	v.SetDefault("TRANSFER_DAILY_LIMIT", 3000000)
	v.SetDefault("WITHDRAW_DAILY_LIMIT", 1000000)
	v.SetDefault("ACCOUNT_NUMBER_PREFIX", "110")
	v.SetDefault("LOCK_TIMEOUT", "5s")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("RATE_LIMIT_REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// Actual environment variables override both .env values and defaults.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		StorageDriver:       strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		TransferDailyLimit:  v.GetInt64("TRANSFER_DAILY_LIMIT"),
		WithdrawDailyLimit:  v.GetInt64("WITHDRAW_DAILY_LIMIT"),
		AccountNumberPrefix: v.GetString("ACCOUNT_NUMBER_PREFIX"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		RateLimitRedisURL:   v.GetString("RATE_LIMIT_REDIS_URL"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		slog.Warn("PORT environment variable not set, using default", slog.String("port", cfg.Port))
	}

	feeRate, err := decimal.NewFromString(v.GetString("TRANSFER_FEE_RATE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRANSFER_FEE_RATE %q: %w", v.GetString("TRANSFER_FEE_RATE"), err)
	}
	cfg.TransferFeeRate = feeRate

	lockTimeout, err := time.ParseDuration(v.GetString("LOCK_TIMEOUT"))
	if err != nil || lockTimeout <= 0 {
		return nil, fmt.Errorf("invalid LOCK_TIMEOUT %q: must be a positive duration", v.GetString("LOCK_TIMEOUT"))
	}
	cfg.LockTimeout = lockTimeout

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StorageDriverPostgres)
		}
	case StorageDriverMemory:
		slog.Warn("Using in-memory storage; data is lost on restart")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", cfg.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	if err := cfg.LedgerPolicy().Validate(); err != nil {
		return nil, fmt.Errorf("invalid ledger policy: %w", err)
	}

	return cfg, nil
}

// LedgerPolicy returns the money rules the ledger engine runs with.
func (c *Config) LedgerPolicy() domain.LedgerPolicy {
	return domain.LedgerPolicy{
		FeeRate:             c.TransferFeeRate,
		DailyTransferLimit:  domain.Money(c.TransferDailyLimit),
		DailyWithdrawLimit:  domain.Money(c.WithdrawDailyLimit),
		AccountNumberPrefix: c.AccountNumberPrefix,
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
