// Package store opens the configured slot repository.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/javiermolinar/rota/internal/config"
	"github.com/javiermolinar/rota/internal/slot"
	"github.com/javiermolinar/rota/internal/store/postgres"
	"github.com/javiermolinar/rota/internal/store/sqlite"
)

// Open returns the repository selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (slot.Repository, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("db path is empty")
		}
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		repo, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("initializing database: %w", err)
		}
		return repo, nil

	case config.DriverPostgres:
		repo, err := postgres.Connect(ctx, cfg.DatabaseURL, postgres.PoolConfig{MaxOpenConns: 4})
		if err != nil {
			return nil, fmt.Errorf("initializing database: %w", err)
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

var (
	_ slot.Repository = (*sqlite.Store)(nil)
	_ slot.Repository = (*postgres.Store)(nil)
)
