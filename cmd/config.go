package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"restaurant/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	GoEnv    string
	HTTPPort string
	LogLevel string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	SQLitePath string

	// RedisAddr selects the distributed locker; empty keeps locks in-process.
	RedisAddr string
	LockTTL   time.Duration
	LockWait  time.Duration

	WarningRecipient string
	CloseWindow      time.Duration
	CloseSchedule    string
	CloseTimeout     time.Duration

	KnowledgeBasePath string
}

// LoadConfig reads .env.<GO_ENV> (default development), then .env, then the
// process environment. Missing files are fine; variables already set in the
// environment win.
func LoadConfig() (Config, error) {
	env := getEnv("GO_ENV", "development")
	loaded := make([]string, 0, 2)
	for _, file := range []string{".env." + env, ".env"} {
		if err := godotenv.Load(file); err == nil {
			loaded = append(loaded, file)
		}
	}
	if len(loaded) > 0 {
		slog.Info("Loaded configuration files", "files", loaded)
	}

	return ConfigFromEnv()
}

// ConfigFromEnv builds and validates a Config from the process environment.
func ConfigFromEnv() (Config, error) {
	var errList []error
	duration := func(key, def string) time.Duration {
		d, err := time.ParseDuration(getEnv(key, def))
		if err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", key, err))
		}
		return d
	}

	cfg := Config{
		GoEnv:    getEnv("GO_ENV", "development"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "restaurant"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "restaurant.db"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		LockTTL:   duration("LOCK_TTL", "30s"),
		LockWait:  duration("LOCK_WAIT", "5s"),

		WarningRecipient: getEnv("WARNING_RECIPIENT", "filer"),
		CloseWindow:      duration("CLOSE_WINDOW", "24h"),
		CloseSchedule:    getEnv("CLOSE_SCHEDULE", "0 */5 * * * *"),
		CloseTimeout:     duration("CLOSE_TIMEOUT", "1m"),

		KnowledgeBasePath: getEnv("KNOWLEDGE_BASE_PATH", "knowledge_base.txt"),
	}
	if len(errList) > 0 {
		return Config{}, errors.Join(errList...)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail late, at first use.
func (c Config) Validate() error {
	var errList []error

	switch c.DBDriver {
	case DriverPostgres:
		if c.DBHost == "" || c.DBName == "" {
			errList = append(errList, errors.New("DB_HOST and DB_NAME are required for postgres"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errList = append(errList, errors.New("SQLITE_PATH is required for sqlite"))
		}
	case DriverMemory:
	default:
		errList = append(errList, fmt.Errorf("DB_DRIVER %q is not one of postgres, sqlite, memory", c.DBDriver))
	}

	if _, err := services.ParseWarningRecipient(c.WarningRecipient); err != nil {
		errList = append(errList, fmt.Errorf("WARNING_RECIPIENT: %w", err))
	}
	if _, err := c.SlogLevel(); err != nil {
		errList = append(errList, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if _, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	).Parse(c.CloseSchedule); err != nil {
		errList = append(errList, fmt.Errorf("CLOSE_SCHEDULE: %w", err))
	}

	for key, d := range map[string]time.Duration{
		"LOCK_TTL":      c.LockTTL,
		"LOCK_WAIT":     c.LockWait,
		"CLOSE_WINDOW":  c.CloseWindow,
		"CLOSE_TIMEOUT": c.CloseTimeout,
	} {
		if d <= 0 {
			errList = append(errList, fmt.Errorf("%s must be positive, got %s", key, d))
		}
	}

	return errors.Join(errList...)
}

// PostgresDSN is the keyword/value connection string for the postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl, err
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
