package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"activation/internal/adapters/out/fivesim"
	"activation/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	ProviderBaseURL      string
	ProviderBuyTimeout   time.Duration
	ProviderCheckTimeout time.Duration

	// AdminToken protects order creation and deletion; empty disables the check.
	AdminToken string
	// PublicBaseURL is the origin activation links are built on.
	PublicBaseURL string

	LogLevel      slog.Level
	StatsSchedule string
}

// LoadConfig reads envFile when it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "7000")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "orders.db")
	v.SetDefault("PROVIDER_BASE_URL", fivesim.DefaultBaseURL)
	v.SetDefault("PROVIDER_BUY_TIMEOUT", fivesim.DefaultBuyTimeout)
	v.SetDefault("PROVIDER_CHECK_TIMEOUT", fivesim.DefaultCheckTimeout)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STATS_SCHEDULE", jobs.DefaultOrderStatsSchedule)

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	cfg := Config{
		HTTPPort:             v.GetString("HTTP_PORT"),
		DBDriver:             v.GetString("DB_DRIVER"),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBName:               v.GetString("DB_NAME"),
		DBSslMode:            v.GetString("DB_SSLMODE"),
		SQLitePath:           v.GetString("SQLITE_PATH"),
		ProviderBaseURL:      v.GetString("PROVIDER_BASE_URL"),
		ProviderBuyTimeout:   v.GetDuration("PROVIDER_BUY_TIMEOUT"),
		ProviderCheckTimeout: v.GetDuration("PROVIDER_CHECK_TIMEOUT"),
		AdminToken:           v.GetString("ADMIN_TOKEN"),
		PublicBaseURL:        v.GetString("PUBLIC_BASE_URL"),
		LogLevel:             level,
		StatsSchedule:        v.GetString("STATS_SCHEDULE"),
	}

	if cfg.ProviderBuyTimeout <= 0 || cfg.ProviderCheckTimeout <= 0 {
		return Config{}, errors.New("provider timeouts must be positive")
	}
	return cfg, nil
}
