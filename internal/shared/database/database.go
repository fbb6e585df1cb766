package database

import (
	"context"
	"fmt"
	"time"

	"aerobook/internal/shared/config"
	applogger "aerobook/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connection pool sizing. Seat-map reads dominate the workload, the write
// path holds row locks only for the duration of one booking transaction.
const (
	pgMaxIdleConns    = 10
	pgMaxOpenConns    = 100
	pgConnMaxLifetime = time.Hour

	redisPoolSize     = 10
	redisMinIdleConns = 5

	connectTimeout = 5 * time.Second
)

// DB bundles the two stores the service runs on: PostgreSQL for durable
// state and Redis for seat-map caching and rate limiting.
type DB struct {
	PostgreSQL *gorm.DB
	Redis      *redis.Client

	log *applogger.Logger
}

// InitDB connects both stores and runs schema migrations. Either store
// failing to come up is fatal for the caller.
func InitDB(cfg *config.Config) (*DB, error) {
	log := applogger.GetDefault()

	pg, err := openPostgres(cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}
	if err := Migrate(pg); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	log.Info("postgres connected", "host", cfg.Database.Host, "database", cfg.Database.Name)

	rdb, err := openRedis(cfg)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	log.Info("redis connected", "addr", cfg.Redis.Addr)

	return &DB{PostgreSQL: pg, Redis: rdb, log: log}, nil
}

func openPostgres(cfg *config.Config) (*gorm.DB, error) {
	gormLogLevel := logger.Silent
	if cfg.IsDevelopment() {
		gormLogLevel = logger.Info
	}

	// TranslateError is required: the booking-code retry and the duplicate
	// payment guard both match on gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		Logger:                                   logger.Default.LogMode(gormLogLevel),
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
		PrepareStmt:                              true,
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(pgMaxIdleConns)
	sqlDB.SetMaxOpenConns(pgMaxOpenConns)
	sqlDB.SetConnMaxLifetime(pgConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func openRedis(cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     redisPoolSize,
		MinIdleConns: redisMinIdleConns,
		DialTimeout:  connectTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping: %w", err)
	}
	return rdb, nil
}

// Close releases both connection pools, reporting every failure rather than
// stopping at the first.
func (db *DB) Close() error {
	var errs []error

	if db.PostgreSQL != nil {
		if sqlDB, err := db.PostgreSQL.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("postgres: %w", err))
			}
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("closing stores: %v", errs)
	}
	if db.log != nil {
		db.log.Info("database connections closed")
	}
	return nil
}

// HealthCheck pings both stores; used by the readiness endpoint.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.PostgreSQL != nil {
		sqlDB, err := db.PostgreSQL.DB()
		if err != nil {
			return fmt.Errorf("postgres health check failed: %w", err)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres ping failed: %w", err)
		}
	}
	if db.Redis != nil {
		if err := db.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}
	return nil
}

// GetRedisClient returns the Redis client.
func (db *DB) GetRedisClient() *redis.Client {
	return db.Redis
}

// GetPostgreSQL returns the PostgreSQL GORM instance.
func (db *DB) GetPostgreSQL() *gorm.DB {
	return db.PostgreSQL
}
