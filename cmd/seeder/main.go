// Command seeder imports a JSON export of GPU specifications into the
// configured store in one all-or-nothing batch. It is intended to be run
// offline, not as part of the web application.
//
// Flags:
//
//	--file           path to the JSON export (overrides seeder config)
//	--dry-run        parse and normalize the export without writing to DB
//	--seeder-config  path to seeder YAML config file
//	--config         path to application YAML config file (default: CONFIG_PATH)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/gpuspecs-backend/internal/app"
	"github.com/heartmarshall/gpuspecs-backend/internal/app/importer"
	"github.com/heartmarshall/gpuspecs-backend/internal/config"
	"github.com/heartmarshall/gpuspecs-backend/pkg/ctxutil"
)

func main() {
	fileFlag := flag.String("file", "", "path to the JSON export")
	dryRunFlag := flag.Bool("dry-run", false, "parse the export without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	configFlag := flag.String("config", "", "path to application YAML config file")
	flag.Parse()

	appCfg, err := loadAppConfig(*configFlag)
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)
	logger.Info("starting seeder", slog.String("version", app.BuildVersion()))

	seederCfg, err := importer.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *fileFlag != "" {
		seederCfg.SourcePath = *fileFlag
	}
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if seederCfg.SourcePath == "" {
		logger.Error("no source file: pass --file or set SEEDER_SOURCE_PATH")
		os.Exit(1)
	}

	// 30-minute context timeout.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = ctxutil.WithRunID(ctx, uuid.New())

	store, closeStore, err := app.OpenStore(ctx, logger, appCfg.Database)
	if err != nil {
		logger.Error("open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	imp := importer.NewImporter(logger, store, *seederCfg)
	n, err := imp.ImportFrom(ctx, seederCfg.SourcePath)
	if err != nil {
		logger.Error("import failed",
			slog.String("file", seederCfg.SourcePath),
			slog.String("error", err.Error()),
		)
		closeStore()
		os.Exit(1)
	}

	logger.Info("import completed",
		slog.String("file", seederCfg.SourcePath),
		slog.Int("records", n),
		slog.Bool("dry_run", seederCfg.DryRun),
	)
}

func loadAppConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
