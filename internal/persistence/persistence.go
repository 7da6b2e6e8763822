// Package persistence writes catalog entities (component J) with the
// conflict policy of spec.md §4.10: skip-on-conflict for every table,
// except Image which is additionally deduplicated by content hash. One
// repository method per table, mirroring the "repository struct wraps a
// handle, one method per table" shape of
// other_examples' track-studio-orchestrator SongRepository, adapted from
// database/sql to pgx.Tx for native jsonb/array column support.
package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

// uniqueViolationCode is Postgres's SQLSTATE for a unique-constraint conflict.
const uniqueViolationCode = "23505"

// swallowUniqueViolation maps a driver error to nil when it is a unique
// constraint conflict, per spec.md §4.10: "Any RecordNotInserted from the
// driver is swallowed; any other error rolls back." pgx has no distinct
// RecordNotInserted type; a 23505 from a conflict target not covered by the
// statement's own ON CONFLICT clause (Image's second, content-hash-based
// uniqueness rule) is this driver's equivalent.
func swallowUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return nil
	}

	return err
}

// Repository writes catalog rows inside a caller-supplied transaction. It
// holds no state of its own; callers construct one per transaction (cheap —
// it's a zero-size wrapper) or share a single zero-value Repository{}.
type Repository struct{}

// InsertArtist upserts one Artist row, skipping on id conflict.
func (Repository) InsertArtist(ctx context.Context, tx pgx.Tx, artist model.Artist) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO artists (id, name, sort_name, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		artist.ID, artist.Name, artist.SortName, artist.Description)

	return swallowUniqueViolation(err)
}

// InsertArtistCredit upserts one ArtistCredit row, skipping on id conflict.
func (Repository) InsertArtistCredit(ctx context.Context, tx pgx.Tx, credit model.ArtistCredit) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO artist_credits (id, artist_id, join_phrase)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`,
		credit.ID, credit.ArtistID, credit.JoinPhrase)

	return swallowUniqueViolation(err)
}

// InsertRelease upserts one Release row, skipping on id conflict.
func (Repository) InsertRelease(ctx context.Context, tx pgx.Tx, release model.Release) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO releases (
			id, title, release_group_id, release_type, asin, country, label,
			catalog_number, status, year, month, day,
			original_year, original_month, original_day, script, path
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17
		)
		ON CONFLICT (id) DO NOTHING`,
		release.ID, release.Title, release.ReleaseGroupID, release.ReleaseType, release.ASIN,
		release.Country, release.Label, release.CatalogNumber, release.Status,
		release.Year, release.Month, release.Day,
		release.OriginalYear, release.OriginalMonth, release.OriginalDay,
		release.Script, release.Path)

	return swallowUniqueViolation(err)
}

// InsertMedium upserts one Medium row, skipping on id conflict.
func (Repository) InsertMedium(ctx context.Context, tx pgx.Tx, medium model.Medium) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO mediums (id, release_id, position, tracks, track_offset, format)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		medium.ID, medium.ReleaseID, medium.Position, medium.Tracks, medium.TrackOffset, medium.Format)

	return swallowUniqueViolation(err)
}

// InsertTrack upserts one Track row, skipping on id conflict.
func (Repository) InsertTrack(ctx context.Context, tx pgx.Tx, track model.Track) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO tracks (id, medium_id, title, length_ms, number, recording_id, format, path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		track.ID, track.MediumID, track.Title, track.LengthMS, track.Number,
		track.RecordingID, track.Format, track.Path)

	return swallowUniqueViolation(err)
}

// InsertGenre upserts one Genre row, skipping on id conflict.
func (Repository) InsertGenre(ctx context.Context, tx pgx.Tx, genre model.Genre) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO genres (id, name, disambiguation)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING`,
		genre.ID, genre.Name, genre.Disambiguation)

	return swallowUniqueViolation(err)
}

// InsertImage upserts one Image row. Per spec.md §4.10, this table has two
// independent conflict targets: the path-hash id, and (content_hash, role).
// The statement's own ON CONFLICT clause arbitrates the id; a conflict on
// the second constraint instead surfaces as a raw 23505, swallowed the same
// way.
func (Repository) InsertImage(ctx context.Context, tx pgx.Tx, image model.Image) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO images (id, content_hash, role, format, description, width, height, size, path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING`,
		image.ID, image.ContentHash, image.Role, image.Format, image.Description,
		image.Width, image.Height, image.Size, image.Path)

	return swallowUniqueViolation(err)
}

// InsertArtistCreditRelease links an ArtistCredit to a Release, skipping on
// conflict of the full composite key.
func (Repository) InsertArtistCreditRelease(ctx context.Context, tx pgx.Tx, link model.ArtistCreditRelease) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO artist_credit_releases (artist_credit_id, release_id)
		VALUES ($1, $2)
		ON CONFLICT (artist_credit_id, release_id) DO NOTHING`,
		link.ArtistCreditID, link.ReleaseID)

	return swallowUniqueViolation(err)
}

// InsertArtistCreditTrack links an ArtistCredit to a Track, skipping on
// conflict of the full composite key.
func (Repository) InsertArtistCreditTrack(ctx context.Context, tx pgx.Tx, link model.ArtistCreditTrack) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO artist_credit_tracks (artist_credit_id, track_id)
		VALUES ($1, $2)
		ON CONFLICT (artist_credit_id, track_id) DO NOTHING`,
		link.ArtistCreditID, link.TrackID)

	return swallowUniqueViolation(err)
}

// InsertArtistTrackRelation records one artist's role on one track,
// skipping on conflict of the full composite key.
func (Repository) InsertArtistTrackRelation(ctx context.Context, tx pgx.Tx, rel model.ArtistTrackRelation) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO artist_track_relations (artist_id, track_id, relation_type, relation_value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (artist_id, track_id, relation_type) DO NOTHING`,
		rel.ArtistID, rel.TrackID, rel.RelationType, rel.RelationValue)

	return swallowUniqueViolation(err)
}

// InsertGenreTrack links a Genre to a Track with its vote count, skipping on
// conflict of the full composite key.
func (Repository) InsertGenreTrack(ctx context.Context, tx pgx.Tx, link model.GenreTrack) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO genre_tracks (genre_id, track_id, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (genre_id, track_id) DO NOTHING`,
		link.GenreID, link.TrackID, link.Count)

	return swallowUniqueViolation(err)
}

// InsertGenreRelease links a Genre to a Release, skipping on conflict of the
// full composite key.
func (Repository) InsertGenreRelease(ctx context.Context, tx pgx.Tx, link model.GenreRelease) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO genre_releases (genre_id, release_id)
		VALUES ($1, $2)
		ON CONFLICT (genre_id, release_id) DO NOTHING`,
		link.GenreID, link.ReleaseID)

	return swallowUniqueViolation(err)
}

// InsertImageRelease links an Image to the Release it is cover art for,
// skipping on conflict of the full composite key.
func (Repository) InsertImageRelease(ctx context.Context, tx pgx.Tx, link model.ImageRelease) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO image_releases (image_id, release_id)
		VALUES ($1, $2)
		ON CONFLICT (image_id, release_id) DO NOTHING`,
		link.ImageID, link.ReleaseID)

	return swallowUniqueViolation(err)
}
