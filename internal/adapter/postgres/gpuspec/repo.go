// Package gpuspec implements the GPU specification repository using PostgreSQL.
// Records are append-only: the importer bulk-inserts them and the catalog
// service reads them back in insertion order.
package gpuspec

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/gpuspecs-backend/internal/adapter/gpurow"
	postgres "github.com/heartmarshall/gpuspecs-backend/internal/adapter/postgres"
	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
)

const entity = "gpu_spec"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides GPU specification persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.DB
	txm *postgres.TxManager
}

// New creates a new GPU specification repository.
func New(db postgres.DB, txm *postgres.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// BulkInsert inserts specs with a single pgx.Batch inside one transaction.
// Either every record is stored or none is. Returns the number of inserted rows.
func (r *Repo) BulkInsert(ctx context.Context, specs []domain.GPUSpec) (int, error) {
	if len(specs) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, s := range specs {
		row, err := gpurow.FromDomain(s)
		if err != nil {
			return 0, err
		}

		query, args, err := psql.Insert(gpurow.Table).
			Columns(gpurow.Columns...).
			Values(row.Values()...).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert for %s %s: %w", entity, s.ID, err)
		}
		batch.Queue(query, args...)
	}

	var inserted int
	err := r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := r.sendBatchExec(txCtx, batch)
		if err != nil {
			return postgres.MapError(err, entity, fmt.Sprintf("batch of %d", len(specs)))
		}
		inserted = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// sendBatchExec sends a pgx.Batch and counts affected rows from Exec results.
func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListFirst returns up to limit records in insertion order, skipping offset.
func (r *Repo) ListFirst(ctx context.Context, limit, offset int) ([]domain.GPUSpec, error) {
	if limit <= 0 {
		return []domain.GPUSpec{}, nil
	}

	query, args, err := psql.Select(gpurow.Columns...).
		From(gpurow.Table).
		OrderBy(gpurow.OrderColumn).
		Limit(uint64(limit)).
		Offset(uint64(max(offset, 0))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []gpurow.Row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, "list")
	}

	return gpurow.ToDomainList(rows)
}

// GetByURLName returns the earliest stored record whose slug is urlName.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) GetByURLName(ctx context.Context, urlName string) (*domain.GPUSpec, error) {
	query, args, err := psql.Select(gpurow.Columns...).
		From(gpurow.Table).
		Where(sq.Eq{"url_name": urlName}).
		OrderBy(gpurow.OrderColumn).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var rows []gpurow.Row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, entity, urlName)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", entity, urlName, domain.ErrNotFound)
	}

	spec, err := gpurow.ToDomain(rows[0])
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From(gpurow.Table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, entity, "count")
	}
	return n, nil
}
