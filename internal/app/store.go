package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/gpuspecs-backend/internal/adapter/postgres"
	pggpuspec "github.com/heartmarshall/gpuspecs-backend/internal/adapter/postgres/gpuspec"
	"github.com/heartmarshall/gpuspecs-backend/internal/adapter/sqlite"
	litegpuspec "github.com/heartmarshall/gpuspecs-backend/internal/adapter/sqlite/gpuspec"
	"github.com/heartmarshall/gpuspecs-backend/internal/config"
	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
	"github.com/heartmarshall/gpuspecs-backend/migrations"
)

// SpecStore is the GPU specification repository shared by the commands.
// Both SQL adapters implement it.
type SpecStore interface {
	BulkInsert(ctx context.Context, specs []domain.GPUSpec) (int, error)
	ListFirst(ctx context.Context, limit, offset int) ([]domain.GPUSpec, error)
	GetByURLName(ctx context.Context, urlName string) (*domain.GPUSpec, error)
	Count(ctx context.Context) (int, error)
}

// Compile-time interface assertions.
var (
	_ SpecStore = (*pggpuspec.Repo)(nil)
	_ SpecStore = (*litegpuspec.Repo)(nil)
)

// OpenStore connects to the configured driver and returns its repository with
// a function releasing the connection.
//
// PostgreSQL schemas are managed by cmd/migrate. The embedded sqlite file is
// migrated on open.
func OpenStore(ctx context.Context, log *slog.Logger, cfg config.DatabaseConfig) (SpecStore, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		txm := postgres.NewTxManager(pool)
		return pggpuspec.New(pool, txm), pool.Close, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}

		provider, err := migrations.NewProvider(migrations.DriverSQLite, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		results, err := provider.Up(ctx)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		if len(results) > 0 {
			log.Info("sqlite schema migrated", slog.Int("applied", len(results)))
		}

		return litegpuspec.New(db), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
