// Command catalog prints derived views of stored GPU specifications as JSON.
// It reads through the same service the web layer uses and is meant for
// checking an import.
//
// Usage:
//
//	catalog [--config=path] [--lang=en] first
//	catalog [--config=path] [--lang=en] show <url_name>
//
// Exit codes: 0 = success, 1 = error, 2 = record not found.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/gpuspecs-backend/internal/app"
	"github.com/heartmarshall/gpuspecs-backend/internal/config"
	"github.com/heartmarshall/gpuspecs-backend/internal/domain"
	"github.com/heartmarshall/gpuspecs-backend/internal/service/gpucatalog"
	"github.com/heartmarshall/gpuspecs-backend/pkg/ctxutil"
)

func main() {
	configFlag := flag.String("config", "", "path to application YAML config file")
	langFlag := flag.String("lang", "", "language of benchmark descriptions")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: catalog [--config=path] [--lang=en] first | show <url_name>")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	var (
		cfg *config.Config
		err error
	)
	if *configFlag != "" {
		cfg, err = config.LoadFile(*configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if *langFlag != "" {
		ctx = ctxutil.WithLang(ctx, *langFlag)
	}

	cat, err := app.OpenCatalog(ctx, logger, cfg)
	if err != nil {
		logger.Error("open catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cat.Close()

	var out any
	switch flag.Arg(0) {
	case "first":
		out, err = firstInstances(ctx, cat.Service)
	case "show":
		if flag.NArg() != 2 {
			flag.Usage()
			cat.Close()
			os.Exit(1)
		}
		out, err = show(ctx, cat.Service, flag.Arg(1))
	default:
		flag.Usage()
		cat.Close()
		os.Exit(1)
	}
	if err != nil {
		logger.Error(flag.Arg(0)+" failed", slog.String("error", err.Error()))
		cat.Close()
		if errors.Is(err, domain.ErrNotFound) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("write output", slog.String("error", err.Error()))
	}
}

type linkView struct {
	Name    string `json:"name"`
	URLName string `json:"url_name"`
	Compare string `json:"compare_url_name,omitempty"`
}

func firstInstances(ctx context.Context, svc *gpucatalog.Service) ([]linkView, error) {
	links, err := svc.FirstInstances(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]linkView, 0, len(links))
	for _, l := range links {
		views = append(views, linkView{
			Name:    l.Spec.Name,
			URLName: l.Spec.URLName(),
			Compare: l.CompareURLName(),
		})
	}
	return views, nil
}

type specView struct {
	Name         string                     `json:"name"`
	Generation   string                     `json:"generation"`
	Price        string                     `json:"price"`
	Year         int                        `json:"year"`
	Architecture string                     `json:"architecture"`
	MemorySize   string                     `json:"memory_size"`
	MemoryType   string                     `json:"memory_type"`
	CUDACores    string                     `json:"cuda_cores"`
	TDP          string                     `json:"thermal_design_power"`
	FPS          map[string]string          `json:"fps"`
	Image        string                     `json:"image"`
	Brand        string                     `json:"brand_image"`
	Benchmarks   []domain.BenchmarkScore    `json:"benchmarks"`
	Similar      []domain.SimilarGPUProcess `json:"similar"`
	Games        []string                   `json:"games"`
	Features     []string                   `json:"game_features"`
}

func show(ctx context.Context, svc *gpucatalog.Service, urlName string) (specView, error) {
	spec, err := svc.GetByURLName(ctx, urlName)
	if err != nil {
		return specView{}, err
	}
	return specView{
		Name:         spec.Name,
		Generation:   spec.Generation(),
		Price:        fmt.Sprintf("%v %s", spec.Price, spec.Currency),
		Year:         spec.Year,
		Architecture: spec.Architecture(),
		MemorySize:   spec.MemorySize(),
		MemoryType:   spec.MemoryType(),
		CUDACores:    spec.CUDACores(),
		TDP:          spec.ThermalDesignPower(),
		FPS: map[string]string{
			"full_hd": spec.FullHD(),
			"1440p":   spec.R1440p(),
			"4k":      spec.R4K(),
		},
		Image:      spec.GPUImageName(),
		Brand:      spec.BrandImage(),
		Benchmarks: svc.BenchmarkPerformance(ctx, *spec, ""),
		Similar:    spec.SimilarGPUProcesses(),
		Games:      spec.AllGames(),
		Features:   spec.GameFeatures(),
	}, nil
}
