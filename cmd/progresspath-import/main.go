// progresspath-import bulk-loads progressions from a JSON file into the
// local store, for users migrating hand-authored ladders.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/MBottaz/progress-path-workouts/internal/config"
	"github.com/MBottaz/progress-path-workouts/internal/models"
	"github.com/MBottaz/progress-path-workouts/internal/persist"
	"github.com/MBottaz/progress-path-workouts/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	filePath := flag.String("file", "", "path to a JSON file containing an array of progressions (required)")
	dryRun := flag.Bool("dry-run", false, "validate and report without writing")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: progresspath-import -config config.yaml -file progressions.json [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		log.Error("failed to read import file", "error", err)
		os.Exit(1)
	}
	var progressions []models.Progression
	if err := json.Unmarshal(data, &progressions); err != nil {
		log.Error("import file is not a JSON array of progressions", "error", err)
		os.Exit(1)
	}
	if len(progressions) == 0 {
		log.Info("nothing to import")
		return
	}

	if err := persist.RunMigrations(cfg.Storage.DataDir, cfg.Storage.MigrationsDir); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	cache, err := persist.OpenCache(cfg.Storage.DataDir)
	if err != nil {
		log.Error("failed to open cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	ctx := context.Background()
	adapter := persist.NewAdapter(cache, persist.GitHubRemote, log)
	st, err := store.Open(ctx, adapter, log)
	if err != nil {
		log.Error("failed to open workout store", "error", err)
		os.Exit(1)
	}

	if *dryRun {
		log.Info("DRY RUN mode, nothing will be written")
	}

	var imported, skipped int
	for _, p := range progressions {
		if *dryRun {
			if err := p.Validate(); err != nil {
				log.Warn("would skip progression", "name", p.Name, "error", err)
				skipped++
			} else {
				imported++
			}
			continue
		}

		created, err := st.AddProgression(ctx, p)
		if err != nil {
			var ve *models.ValidationError
			if errors.As(err, &ve) {
				log.Warn("skipping progression", "name", p.Name, "error", err)
				skipped++
				continue
			}
			log.Error("import failed", "name", p.Name, "error", err)
			os.Exit(1)
		}
		log.Info("imported progression", "id", created.ID, "name", created.Name, "levels", len(created.Exercises))
		imported++
	}

	log.Info("import complete", "imported", imported, "skipped", skipped)
}
