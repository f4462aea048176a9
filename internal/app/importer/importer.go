package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
	"github.com/heartmarshall/gpuspecs-backend/pkg/ctxutil"
)

// ErrParse is returned when the source is not a JSON array of objects or a
// record field has the wrong shape.
var ErrParse = errors.New("parse error")

// Result summarizes one import run.
type Result struct {
	Parsed      int
	Inserted    int
	Coerced     int
	IgnoredKeys int
	DryRun      bool
	Duration    time.Duration
}

// Importer reads a JSON export of GPU specifications and stores it.
type Importer struct {
	log  *slog.Logger
	repo GPUSpecBulkRepo
	cfg  Config
	now  func() time.Time
}

// NewImporter creates a new Importer.
func NewImporter(log *slog.Logger, repo GPUSpecBulkRepo, cfg Config) *Importer {
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = domain.DefaultCurrency
	}
	return &Importer{
		log:  log.With("service", "importer"),
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

// ImportFrom imports the file at path and returns the number of records created.
// In dry-run mode nothing is written and the number of records that would be
// created is returned.
func (i *Importer) ImportFrom(ctx context.Context, path string) (int, error) {
	res, err := i.Run(ctx, path)
	if err != nil {
		return 0, err
	}
	if res.DryRun {
		return res.Parsed, nil
	}
	return res.Inserted, nil
}

// Run imports the file at path and reports the full result.
func (i *Importer) Run(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	if _, ok := ctxutil.RunIDFromCtx(ctx); !ok {
		ctx = ctxutil.WithRunID(ctx, uuid.New())
	}
	log := i.log.With(ctxutil.LogAttrs(ctx)...)

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open source %s: %w", path, err)
	}
	defer f.Close()

	specs, res, err := i.parse(ctx, f)
	if err != nil {
		return Result{}, fmt.Errorf("import %s: %w", path, err)
	}
	res.DryRun = i.cfg.DryRun

	log.Info("source parsed",
		slog.String("path", path),
		slog.Int("records", res.Parsed),
		slog.Int("coerced", res.Coerced),
		slog.Int("ignored_keys", res.IgnoredKeys),
	)

	if i.cfg.DryRun || len(specs) == 0 {
		res.Duration = time.Since(start)
		log.Info("import skipped store", slog.Bool("dry_run", i.cfg.DryRun), slog.Int("records", res.Parsed))
		return res, nil
	}

	inserted, err := i.repo.BulkInsert(ctx, specs)
	if err != nil {
		return Result{}, fmt.Errorf("bulk insert: %w", err)
	}
	res.Inserted = inserted
	res.Duration = time.Since(start)

	log.Info("import completed",
		slog.Int("inserted", res.Inserted),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

// parse decodes and normalizes every record in r.
func (i *Importer) parse(ctx context.Context, r io.Reader) ([]domain.GPUSpec, Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Result{}, fmt.Errorf("read source: %w", err)
	}

	var records domain.List
	if err := json.Unmarshal(bytes.TrimSpace(data), &records); err != nil {
		return nil, Result{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if records == nil {
		return nil, Result{}, fmt.Errorf("%w: expected a JSON array of objects", ErrParse)
	}

	createdAt := i.now().UTC()
	specs := make([]domain.GPUSpec, 0, len(records))
	var res Result

	for idx, raw := range records {
		obj, ok := raw.(domain.Object)
		if !ok {
			return nil, Result{}, fmt.Errorf("%w: record %d is not an object", ErrParse, idx)
		}

		spec, coerced, ignored, err := i.normalize(ctx, obj)
		if err != nil {
			return nil, Result{}, fmt.Errorf("%w: record %d: %v", ErrParse, idx, err)
		}
		spec.CreatedAt = createdAt

		specs = append(specs, spec)
		res.Coerced += coerced
		res.IgnoredKeys += ignored
	}
	res.Parsed = len(specs)

	return specs, res, nil
}

// normalize builds a record from one source object. Nested groups start empty,
// numeric fields that cannot be parsed become 0 and unknown keys are skipped.
func (i *Importer) normalize(ctx context.Context, obj domain.Object) (domain.GPUSpec, int, int, error) {
	spec := domain.GPUSpec{
		ID:                                  uuid.New(),
		GeneralInfo:                         []domain.Object{},
		TechnicalSpecs:                      []domain.Object{},
		CompatibilityDimensionsRequirements: []domain.Object{},
		Memory:                              []domain.Object{},
		VideoOutputsPorts:                   []domain.Object{},
		Technologies:                        []domain.Object{},
		APISupport:                          []domain.Object{},
		Tests:                               []domain.Object{},
		FPS:                                 []domain.Object{},
		RelativePerformance:                 []domain.Object{},
		EquivalentGPU:                       []domain.Object{},
		SimilarGPU:                          domain.List{},
		RecProcessor:                        domain.List{},
		Presets:                             []domain.Object{},
		Games:                               []domain.Game{},
	}

	var coerced, ignored int
	for _, f := range obj {
		name := fieldName(f.Key)
		set, ok := fieldSetters[name]
		if !ok {
			ignored++
			i.log.DebugContext(ctx, "unknown source key ignored", slog.String("key", f.Key))
			continue
		}

		c, err := set(&spec, f.Value)
		if err != nil {
			return domain.GPUSpec{}, 0, 0, fmt.Errorf("field %q: %w", f.Key, err)
		}
		if c {
			coerced++
		}
	}

	if spec.Currency == "" {
		spec.Currency = i.cfg.DefaultCurrency
	}

	return spec, coerced, ignored, nil
}
