package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedSpec inserts a GPU spec with the given name and empty nested groups.
// Returns the stored domain.GPUSpec.
func SeedSpec(t *testing.T, pool *pgxpool.Pool, name string) domain.GPUSpec {
	t.Helper()

	spec := domain.GPUSpec{
		ID:        uuid.New(),
		URL:       "https://example.com/gpu/" + uniqueSuffix(),
		Name:      name,
		Currency:  domain.DefaultCurrency,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO gpu_specs (id, url, name, url_name, currency, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		spec.ID, spec.URL, spec.Name, spec.URLName(), spec.Currency, spec.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSpec insert: %v", err)
	}

	return spec
}
