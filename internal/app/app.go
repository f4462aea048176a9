package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/gpuspecs-backend/internal/adapter/provider/translate"
	"github.com/heartmarshall/gpuspecs-backend/internal/config"
	"github.com/heartmarshall/gpuspecs-backend/internal/service/gpucatalog"
)

// Translator resolves benchmark test descriptions.
type Translator interface {
	TestDescription(ctx context.Context, testName, lang string) string
}

// NewTranslator loads the description catalog named by cfg. Without a
// catalog path every description is empty.
func NewTranslator(log *slog.Logger, cfg config.TranslationConfig) (Translator, error) {
	if cfg.CatalogPath == "" {
		log.Info("translation catalog not configured, descriptions disabled")
		return translate.Empty(cfg.DefaultLanguage), nil
	}

	catalog, err := translate.Load(cfg.CatalogPath, cfg.DefaultLanguage)
	if err != nil {
		return nil, err
	}
	log.Info("translation catalog loaded",
		slog.String("path", cfg.CatalogPath),
		slog.Int("tests", catalog.Len()),
	)
	return catalog, nil
}

// Catalog is the read side of the application: the store plus the service
// producing derived views over it.
type Catalog struct {
	Store   SpecStore
	Service *gpucatalog.Service
	close   func()
}

// Close releases the store connection.
func (c *Catalog) Close() {
	if c.close != nil {
		c.close()
	}
}

// OpenCatalog wires the configured store and translator into a catalog
// service.
func OpenCatalog(ctx context.Context, log *slog.Logger, cfg *config.Config) (*Catalog, error) {
	tr, err := NewTranslator(log, cfg.Translation)
	if err != nil {
		return nil, fmt.Errorf("translator: %w", err)
	}

	store, closeStore, err := OpenStore(ctx, log, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Catalog{
		Store:   store,
		Service: gpucatalog.NewService(log, store, tr, cfg.Translation.DefaultLanguage),
		close:   closeStore,
	}, nil
}
