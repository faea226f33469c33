// Package repository selects the storage backend configured for the process.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"coffeeshop/internal/config"
	"coffeeshop/internal/domain/repositories"
	"coffeeshop/internal/repository/postgres"
	"coffeeshop/internal/repository/sqlite"
)

// Store bundles the repositories of one storage backend
type Store struct {
	Drinks    repositories.DrinkRepository
	TxManager repositories.TransactionManager
	closeFn   func()
}

// Close releases the underlying pool or database handle
func (s *Store) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// Open connects to the backend named by cfg.DatabaseDriver
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Info("database connected",
			"driver", cfg.DatabaseDriver,
			"max_conns", postgres.MaxConns,
			"min_conns", postgres.MinConns,
		)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: postgres.NewTableNames(cfg.TablePrefix),
			Logger: logger,
		}
		return &Store{
			Drinks:    postgres.NewDrinkRepository(repoConfig),
			TxManager: postgres.NewTransactionManager(pool, logger),
			closeFn:   pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.OpenDB(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("database connected", "driver", cfg.DatabaseDriver, "path", cfg.SQLitePath)

		return &Store{
			Drinks:    sqlite.NewDrinkRepository(db, cfg.TablePrefix, logger),
			TxManager: sqlite.NewTransactionManager(db, logger),
			closeFn:   func() { _ = db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}
