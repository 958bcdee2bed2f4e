package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/config"
	"blog-backend/pkg/logger"
)

// PostgresDB wraps a pgx connection pool.
type PostgresDB struct {
	Pool   *pgxpool.Pool
	config config.DatabaseConfig
}

func NewPostgresDB(cfg config.DatabaseConfig) (*PostgresDB, error) {
	db := &PostgresDB{config: cfg}
	if err := db.connectWithRetry(); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *PostgresDB) connectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		db.config.Host,
		db.config.Port,
		db.config.User,
		db.config.Password,
		db.config.Name,
		db.config.SSLMode,
	)
}

func backoffDelay(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}

func (db *PostgresDB) connectWithRetry() error {
	var lastErr error

	for attempt := 1; attempt <= db.config.MaxRetries; attempt++ {
		poolConfig, err := pgxpool.ParseConfig(db.connectionString())
		if err != nil {
			return fmt.Errorf("parse pool config: %w", err)
		}

		poolConfig.MaxConns = int32(db.config.MaxConns)
		poolConfig.MinConns = int32(db.config.MinConns)
		poolConfig.MaxConnLifetime = db.config.MaxConnLifetime
		poolConfig.MaxConnIdleTime = db.config.MaxConnIdleTime

		ctx, cancel := context.WithTimeout(context.Background(), db.config.ConnectTimeout)
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			if pingErr := pool.Ping(ctx); pingErr != nil {
				pool.Close()
				err = pingErr
			}
		}
		cancel()

		if err == nil {
			db.Pool = pool
			logger.Info().
				Str("host", db.config.Host).
				Str("database", db.config.Name).
				Msg("connected to postgres")
			return nil
		}

		lastErr = err
		if attempt == db.config.MaxRetries {
			break
		}

		backoff := backoffDelay(attempt)
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("postgres connection failed, retrying")
		time.Sleep(backoff)
	}

	return fmt.Errorf("connect to postgres after %d attempts: %w", db.config.MaxRetries, lastErr)
}

func (db *PostgresDB) HealthCheck(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		logger.Info().Msg("postgres connection pool closed")
	}
}
