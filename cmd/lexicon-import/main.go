// Command lexicon-import merges a JSON dictionary file into the configured
// record store. The file is a list of {"soussou": ..., "francais": ...}
// records; existing records with the same Soussou text are updated in place,
// new ones are appended and invalid ones are skipped.
//
// Flags:
//
//	--file     path to the JSON dictionary to import (required)
//	--dry-run  validate the file without writing to the store
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

	"github.com/heartmarshall/nene-backend/internal/adapter/jsonfile"
	"github.com/heartmarshall/nene-backend/internal/app"
	"github.com/heartmarshall/nene-backend/internal/config"
	"github.com/heartmarshall/nene-backend/internal/service/lexicon"
)

func main() {
	fileFlag := flag.String("file", "", "path to the JSON dictionary to import")
	dryRunFlag := flag.Bool("dry-run", false, "validate the file without writing to the store")
	flag.Parse()

	if *fileFlag == "" {
		log.Fatal("--file is required")
	}

	// The import never calls a model; the echo provider keeps validation
	// from demanding an API key.
	if err := os.Setenv("LLM_PROVIDER", config.ProviderEcho); err != nil {
		log.Fatalf("set LLM_PROVIDER: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// The import file has the same layout as the JSON record store.
	if _, err := os.Stat(*fileFlag); err != nil {
		logger.Error("open import file", slog.String("error", err.Error()))
		os.Exit(1)
	}
	incoming, err := jsonfile.NewStore(logger, *fileFlag).Load(ctx)
	if err != nil {
		logger.Error("read import file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *dryRunFlag {
		var invalid int
		for _, rec := range incoming {
			if rec.Validate() != nil {
				invalid++
			}
		}
		logger.Info("dry-run: no store writes",
			slog.Int("records", len(incoming)),
			slog.Int("invalid", invalid),
		)
		return
	}

	store, closeStore, err := app.OpenStore(ctx, logger, cfg)
	if err != nil {
		logger.Error("open record store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	svc := lexicon.NewService(ctx, logger, store, nil, nil)

	res, err := svc.Import(ctx, incoming)
	if err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}

	logger.Info("import completed",
		slog.String("driver", cfg.Storage.Driver),
		slog.Int("added", res.Added),
		slog.Int("updated", res.Updated),
		slog.Int("skipped", res.Skipped),
	)
}
