package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Apurer/pet-registry/internal/app"
	"github.com/Apurer/pet-registry/internal/platform/migrations"
	platformobservability "github.com/Apurer/pet-registry/internal/platform/observability"
	platformpostgres "github.com/Apurer/pet-registry/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	instruments, shutdown, err := platformobservability.Init(ctx, "pet-registry-migrate")
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()
	logger := instruments.Logger

	cfg, err := app.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Error("failed to connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := migrations.Run(db); err != nil {
		logger.Error("schema migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := migrations.SeedBreeds(ctx, db, migrations.DefaultBreeds); err != nil {
		logger.Error("breed seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("schema migrated and breed catalog seeded", slog.Int("breeds", len(migrations.DefaultBreeds)))
}
