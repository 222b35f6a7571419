// Command seedseo creates or overwrites the SEO metadata of the public pages.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/expertgati/movers-web/internal/platform/config"
	"github.com/expertgati/movers-web/internal/platform/database"
	"github.com/expertgati/movers-web/internal/platform/logger"
	"github.com/expertgati/movers-web/internal/seo"
)

func main() {
	file := flag.String("file", "", "YAML file with a pages list; the built-in metadata is used when empty")
	flag.Parse()

	if err := run(*file); err != nil {
		fmt.Fprintf(os.Stderr, "seedseo: %v\n", err)
		os.Exit(1)
	}
}

func run(file string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bundles := seo.DefaultBundles()
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		if bundles, err = seo.LoadBundles(f); err != nil {
			return err
		}
	}

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	repo := seo.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return err
	}
	result, err := repo.UpsertMany(context.Background(), bundles)
	if err != nil {
		return err
	}

	log.Info("seo metadata seeded", zap.Int("pages", len(bundles)),
		zap.Int("created", result.Created), zap.Int("updated", result.Updated))
	fmt.Printf("Processed %d pages\n  Created: %d\n  Updated: %d\n", len(bundles), result.Created, result.Updated)
	return nil
}
