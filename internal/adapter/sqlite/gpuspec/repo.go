// Package gpuspec implements the GPU specification repository on the
// embedded SQLite store.
package gpuspec

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/heartmarshall/gpuspecs-backend/internal/adapter/gpurow"
	"github.com/heartmarshall/gpuspecs-backend/internal/adapter/sqlite"
	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
)

const entity = "gpu_spec"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Repo provides GPU specification persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new GPU specification repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// BulkInsert inserts specs in one transaction: either all rows are stored or none.
func (r *Repo) BulkInsert(ctx context.Context, specs []domain.GPUSpec) (int, error) {
	if len(specs) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var inserted int
	for _, s := range specs {
		row, err := gpurow.FromDomain(s)
		if err != nil {
			return 0, err
		}

		query, args, err := builder.Insert(gpurow.Table).
			Columns(gpurow.Columns...).
			Values(textArgs(row.Values())...).
			ToSql()
		if err != nil {
			return 0, fmt.Errorf("build insert for %s %s: %w", entity, s.ID, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, sqlite.MapError(err, entity, s.ID.String())
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return inserted, nil
}

// textArgs stores JSON columns as TEXT rather than BLOB.
func textArgs(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			out[i] = string(b)
			continue
		}
		out[i] = v
	}
	return out
}

// ListFirst returns up to limit records in insertion order, skipping offset.
func (r *Repo) ListFirst(ctx context.Context, limit, offset int) ([]domain.GPUSpec, error) {
	if limit <= 0 {
		return []domain.GPUSpec{}, nil
	}

	query, args, err := builder.Select(gpurow.Columns...).
		From(gpurow.Table).
		OrderBy(gpurow.OrderColumn).
		Limit(uint64(limit)).
		Offset(uint64(max(offset, 0))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []gpurow.Row
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, sqlite.MapError(err, entity, "list")
	}

	return gpurow.ToDomainList(rows)
}

// GetByURLName returns the earliest stored record whose slug is urlName.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) GetByURLName(ctx context.Context, urlName string) (*domain.GPUSpec, error) {
	query, args, err := builder.Select(gpurow.Columns...).
		From(gpurow.Table).
		Where(sq.Eq{"url_name": urlName}).
		OrderBy(gpurow.OrderColumn).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	var rows []gpurow.Row
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, sqlite.MapError(err, entity, urlName)
	}
	if len(rows) == 0 {
		return nil, sqlite.MapError(sql.ErrNoRows, entity, urlName)
	}

	spec, err := gpurow.ToDomain(rows[0])
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := builder.Select("COUNT(*)").From(gpurow.Table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, sqlite.MapError(err, entity, "count")
	}
	return n, nil
}
