// Package gpucatalog assembles GPU specification views for the presentation
// layer: benchmark tables with translated descriptions and "vs next"
// comparison links.
package gpucatalog

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
)

type specRepo interface {
	ListFirst(ctx context.Context, limit, offset int) ([]domain.GPUSpec, error)
	GetByURLName(ctx context.Context, urlName string) (*domain.GPUSpec, error)
}

type translator interface {
	TestDescription(ctx context.Context, testName, lang string) string
}

// Service implements read-side catalog operations.
type Service struct {
	log         *slog.Logger
	specs       specRepo
	translator  translator
	defaultLang string
}

// NewService creates a new gpucatalog service. An empty defaultLang means DefaultLanguage.
func NewService(logger *slog.Logger, specs specRepo, tr translator, defaultLang string) *Service {
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}
	return &Service{
		log:         logger.With("service", "gpucatalog"),
		specs:       specs,
		translator:  tr,
		defaultLang: defaultLang,
	}
}
