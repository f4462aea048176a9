// Package importer loads GPU specification records from a JSON export,
// normalizes them and stores them with one batch insert.
package importer

import (
	"context"

	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
)

// GPUSpecBulkRepo defines the batch repository contract consumed by the importer.
// Implemented by the postgres and sqlite gpuspec repositories.
type GPUSpecBulkRepo interface {
	BulkInsert(ctx context.Context, specs []domain.GPUSpec) (int, error)
}
