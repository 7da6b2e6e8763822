package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/tempo-importer/tempo-importer/internal/config"
	"github.com/tempo-importer/tempo-importer/internal/constants"
	"github.com/tempo-importer/tempo-importer/internal/extractor"
	"github.com/tempo-importer/tempo-importer/internal/importstate"
	"github.com/tempo-importer/tempo-importer/internal/logger"
	"github.com/tempo-importer/tempo-importer/internal/pipeline"
	"github.com/tempo-importer/tempo-importer/internal/trackfile"
)

// audioExtensions lists the file extensions intake recognizes as track
// files, per internal/constants' on-disk tag format mapping.
//
//nolint:gochecknoglobals // Immutable lookup set built once at init.
var audioExtensions = map[string]bool{
	constants.ExtensionFLAC: true,
	constants.ExtensionMP3:  true,
	constants.ExtensionMP4:  true,
	constants.ExtensionAPE:  true,
}

// ErrNoTrackFiles is returned when a directory passed to ImportDirectory
// contains no recognized audio files.
var ErrNoTrackFiles = fmt.Errorf("app: no track files found in directory")

// ImportDirectory starts a fresh Import for directory's track files, per
// spec.md §4.6/§4.9: opens every recognized audio file, builds the source
// release/track consensus, persists a new Import row with empty candidate
// arrays, and enqueues the `fetch` task that drives the rest of the stage
// graph — all inside one transaction. It returns the new Import's id.
func ImportDirectory(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, directory string) (uuid.UUID, error) {
	paths, err := trackFilePaths(directory)
	if err != nil {
		return uuid.Nil, err
	}

	if len(paths) == 0 {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrNoTrackFiles, directory)
	}

	separators := cfg.Separators()

	// The progress bar is shown at info level and more verbose levels; at warn
	// level and above it is disabled.
	var bar *progressbar.ProgressBar
	if logger.Level() <= zap.InfoLevel {
		bar = progressbar.Default(int64(len(paths)), "Reading tags")
	}

	handles := make([]*trackfile.Handle, 0, len(paths))
	var totalBytes uint64

	for _, path := range paths {
		handle, err := trackfile.Open(path, separators)
		if err != nil {
			return uuid.Nil, err
		}

		handles = append(handles, handle)

		if info, statErr := os.Stat(path); statErr == nil {
			totalBytes += uint64(info.Size())
		}

		if bar != nil {
			_ = bar.Add(1) //nolint:errcheck // Progress display is best-effort.
		}
	}

	sourceRelease, sourceTracks := extractor.ExtractFolder(ctx, handles)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("app: begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // No-op once Commit succeeds.

	imp, err := importstate.Begin(ctx, tx, directory, sourceRelease, sourceTracks)
	if err != nil {
		return uuid.Nil, err
	}

	if _, err := pipeline.EnqueueFetch(ctx, tx, imp.ID); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("app: commit import: %w", err)
	}

	logger.InfoKV(ctx, "import started", "import_id", imp.ID, "directory", directory,
		"tracks", len(sourceTracks), "size", humanize.Bytes(totalBytes))

	return imp.ID, nil
}

// trackFilePaths lists directory's immediate audio files, sorted for
// deterministic disc/track ordering across runs — the original source
// folder is one release, not a tree of releases, so the walk does not
// recurse into subdirectories.
func trackFilePaths(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("app: read directory %s: %w", directory, err)
	}

	var paths []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		paths = append(paths, filepath.Join(directory, entry.Name()))
	}

	sort.Strings(paths)

	return paths, nil
}
