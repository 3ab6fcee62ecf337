// Package postgres provides a PostgreSQL slot store built on bun.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// PoolConfig tunes the database/sql connection pool. Zero values keep the
// driver defaults.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Open connects to databaseURL through pgx and wraps the pool in bun.
func Open(databaseURL string, pool PoolConfig) (*bun.DB, error) {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}
	if pool.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return bun.NewDB(sqlDB, pgdialect.New()), nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS weekly_slots (
		id           UUID PRIMARY KEY,
		day_of_week  SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
		start_minute INTEGER NOT NULL CHECK (start_minute >= 0 AND start_minute < 1440),
		end_minute   INTEGER NOT NULL CHECK (end_minute > start_minute AND end_minute <= 1440),
		capacity     INTEGER NOT NULL CHECK (capacity > 0),
		is_active    BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_weekly_slots_day ON weekly_slots (day_of_week, start_minute)`,
}

// migrate creates the schema if missing.
func migrate(ctx context.Context, db bun.IDB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
