package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/redislock"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/keylock"

	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenStorage connects the configured driver, migrates the schema and returns
// the unit of work factory plus a func that releases the connection.
func OpenStorage(cfg Config, logger *slog.Logger) (ports.UnitOfWorkFactory, func(), error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case DriverMemory:
		logger.Warn("Using in-memory storage; data is lost on restart")
		return memory.NewStore(), func() {}, nil
	case DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case DriverPostgres:
		dialector = pgdriver.Open(cfg.PostgresDSN())
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.DBDriver)
	}

	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if cfg.DBDriver == DriverSQLite {
		// One writer at a time; parallel transactions would fail with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err = postgres.Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	logger.Info("Connected to database", "driver", cfg.DBDriver)
	return postgres.NewGormUnitOfWorkFactory(db), func() { _ = sqlDB.Close() }, nil
}

// OpenLocker returns the Redis locker when REDIS_ADDR is set and the
// in-process one otherwise.
func OpenLocker(ctx context.Context, cfg Config, logger *slog.Logger) (ports.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		logger.Info("Using in-process entity locks")
		return keylock.New(), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	logger.Info("Using redis entity locks", "addr", cfg.RedisAddr)
	return redislock.NewLocker(rdb, cfg.LockTTL), func() { _ = rdb.Close() }, nil
}
