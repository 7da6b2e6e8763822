package app

import (
	"context"

	"github.com/tempo-importer/tempo-importer/internal/config"
	"github.com/tempo-importer/tempo-importer/internal/db"
	"github.com/tempo-importer/tempo-importer/internal/logger"
)

// ExecuteImportCommand is the entry point for `cmd import`: it connects to
// the configured database, ingests directory as a new Import, and returns
// once the fetch task is durably enqueued — the rest of the pipeline runs
// under `cmd serve`.
func ExecuteImportCommand(ctx context.Context, cfg *config.Config, directory string) {
	pool, err := db.New(ctx, cfg.DB)
	if err != nil {
		logger.Fatalf(ctx, "Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if _, err := ImportDirectory(ctx, pool, cfg, directory); err != nil {
		logger.Fatalf(ctx, "Failed to start import: %v", err)
	}
}

// ExecuteServeCommand is the entry point for `cmd serve`: it connects to
// the configured database, registers every stage handler (internal/pipeline)
// against a worker pool sized from cfg.Tasks.Workers, and blocks draining
// the queue until ctx is canceled, per spec.md §4.8/§5.
func ExecuteServeCommand(ctx context.Context, cfg *config.Config) {
	pool, err := db.New(ctx, cfg.DB)
	if err != nil {
		logger.Fatalf(ctx, "Failed to connect to database: %v", err)
	}
	defer pool.Close()

	svc := buildScheduler(pool, cfg)

	logger.InfoKV(ctx, "worker pool starting", "workers", cfg.Tasks.Workers)

	svc.Run(ctx)

	logger.Info(ctx, "worker pool stopped")
}
