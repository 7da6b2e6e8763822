package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/cover"
	"github.com/tempo-importer/tempo-importer/internal/importstate"
	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/musicbrainz"
	"github.com/tempo-importer/tempo-importer/internal/scheduler"
)

// ImportStore is the seam every stage handler loads and saves the Import
// aggregate through. pgxImportStore is the production implementation,
// backed by internal/importstate; tests substitute an in-memory fake so a
// handler can be exercised without a live Postgres connection.
type ImportStore interface {
	Load(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Import, error)
	Save(ctx context.Context, tx pgx.Tx, imp *model.Import) error
}

type pgxImportStore struct{}

func (pgxImportStore) Load(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Import, error) {
	return importstate.Load(ctx, tx, id)
}

func (pgxImportStore) Save(ctx context.Context, tx pgx.Tx, imp *model.Import) error {
	return importstate.Save(ctx, tx, imp)
}

// TaskQueue is the seam every stage handler enqueues follow-on tasks and
// checks sibling-task completion through. pgxTaskQueue is the production
// implementation, backed by internal/scheduler.
type TaskQueue interface {
	Enqueue(
		ctx context.Context, tx pgx.Tx, name scheduler.TaskName, payload any, dependsOn []int64, duration time.Duration,
	) (int64, error)

	// HasUnfinished reports whether any task named name other than excludeID,
	// belonging to importID, has not yet ended.
	HasUnfinished(ctx context.Context, tx pgx.Tx, name scheduler.TaskName, excludeID int64, importID uuid.UUID) (bool, error)
}

type pgxTaskQueue struct{}

func (pgxTaskQueue) Enqueue(
	ctx context.Context, tx pgx.Tx, name scheduler.TaskName, payload any, dependsOn []int64, duration time.Duration,
) (int64, error) {
	return scheduler.Enqueue(ctx, tx, name, payload, dependsOn, duration)
}

func (pgxTaskQueue) HasUnfinished(
	ctx context.Context, tx pgx.Tx, name scheduler.TaskName, excludeID int64, importID uuid.UUID,
) (bool, error) {
	var remaining bool

	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tasks
			WHERE name = $1 AND id != $2 AND ended_at IS NULL
			  AND payload ->> 'import_id' = $3
		)`,
		name, excludeID, importID.String(),
	).Scan(&remaining)

	return remaining, err
}

// CatalogClient is the seam the fetch and fetch-release stages search and
// expand catalog releases through. *musicbrainz.Client satisfies it
// unmodified; mocks/ holds a go.uber.org/mock mock of it.
type CatalogClient interface {
	Search(ctx context.Context, release model.InternalRelease) ([]musicbrainz.ReleaseSummary, error)
	Fetch(ctx context.Context, releaseID string) (musicbrainz.Expansion, error)
}

// CoverClient is the seam the fetch-covers stage searches cover providers
// through. *cover.Client satisfies it unmodified; mocks/ holds a
// go.uber.org/mock mock of it.
type CoverClient interface {
	Search(ctx context.Context, providerNames []string, release cover.Release) []model.CoverCandidate
}

// Repository is the seam populate and apply-track persist catalog rows
// through. persistence.Repository satisfies it unmodified; tests substitute
// an in-memory fake that records inserted rows instead of hitting Postgres.
type Repository interface {
	InsertArtist(ctx context.Context, tx pgx.Tx, artist model.Artist) error
	InsertArtistCredit(ctx context.Context, tx pgx.Tx, credit model.ArtistCredit) error
	InsertRelease(ctx context.Context, tx pgx.Tx, release model.Release) error
	InsertMedium(ctx context.Context, tx pgx.Tx, medium model.Medium) error
	InsertTrack(ctx context.Context, tx pgx.Tx, track model.Track) error
	InsertGenre(ctx context.Context, tx pgx.Tx, genre model.Genre) error
	InsertImage(ctx context.Context, tx pgx.Tx, image model.Image) error
	InsertArtistCreditRelease(ctx context.Context, tx pgx.Tx, link model.ArtistCreditRelease) error
	InsertArtistCreditTrack(ctx context.Context, tx pgx.Tx, link model.ArtistCreditTrack) error
	InsertArtistTrackRelation(ctx context.Context, tx pgx.Tx, rel model.ArtistTrackRelation) error
	InsertGenreTrack(ctx context.Context, tx pgx.Tx, link model.GenreTrack) error
	InsertGenreRelease(ctx context.Context, tx pgx.Tx, link model.GenreRelease) error
	InsertImageRelease(ctx context.Context, tx pgx.Tx, link model.ImageRelease) error
}
