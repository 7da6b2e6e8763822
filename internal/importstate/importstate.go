// Package importstate persists the Import aggregate (component G): the
// single serializable record of one import job's source data, accumulated
// catalog candidates, ranking results, and current selections. Stage
// handlers (internal/pipeline) load a fresh copy inside their transaction,
// mutate it in memory, and save it back before committing.
package importstate

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

// ErrNotFound is returned by Load when no import with the given id exists.
var ErrNotFound = errors.New("importstate: import not found")

// Begin creates a new Import row with source data populated and every
// candidate array empty, per spec's import lifecycle: "created ... with
// source data populated and all candidate arrays empty".
func Begin(
	ctx context.Context,
	tx pgx.Tx,
	directory string,
	sourceRelease model.InternalRelease,
	sourceTracks []model.InternalTrack,
) (*model.Import, error) {
	imp := &model.Import{
		ID:             uuid.New(),
		Directory:      directory,
		SourceRelease:  sourceRelease,
		SourceTracks:   sourceTracks,
		ReleaseMatches: map[uuid.UUID]model.ReleaseMatch{},
		StartedAt:      time.Now().UTC(),
	}

	if err := insert(ctx, tx, imp); err != nil {
		return nil, err
	}

	return imp, nil
}

func insert(ctx context.Context, tx pgx.Tx, imp *model.Import) error {
	cols, err := marshalColumns(imp)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO imports (
			id, directory, source_release, source_tracks,
			artists, artist_credits, releases, mediums, tracks,
			artist_track_relations, artist_credit_releases, artist_credit_tracks,
			genres, genre_tracks, genre_releases, covers,
			release_matches, cover_ratings,
			selected_release, selected_cover,
			started_at, ended_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8, $9,
			$10, $11, $12,
			$13, $14, $15, $16,
			$17, $18,
			$19, $20,
			$21, $22
		)`,
		imp.ID, imp.Directory, cols.sourceRelease, cols.sourceTracks,
		cols.artists, cols.artistCredits, cols.releases, cols.mediums, cols.tracks,
		cols.artistTrackRelations, cols.artistCreditReleases, cols.artistCreditTracks,
		cols.genres, cols.genreTracks, cols.genreReleases, cols.covers,
		cols.releaseMatches, cols.coverRatings,
		imp.SelectedRelease, imp.SelectedCover,
		imp.StartedAt, imp.EndedAt,
	)

	return err
}

// Load reads the Import with the given id, or ErrNotFound if none exists.
func Load(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Import, error) {
	row := tx.QueryRow(ctx, `
		SELECT
			id, directory, source_release, source_tracks,
			artists, artist_credits, releases, mediums, tracks,
			artist_track_relations, artist_credit_releases, artist_credit_tracks,
			genres, genre_tracks, genre_releases, covers,
			release_matches, cover_ratings,
			selected_release, selected_cover,
			started_at, ended_at
		FROM imports WHERE id = $1`, id)

	var (
		imp  model.Import
		cols marshaledColumns
	)

	err := row.Scan(
		&imp.ID, &imp.Directory, &cols.sourceRelease, &cols.sourceTracks,
		&cols.artists, &cols.artistCredits, &cols.releases, &cols.mediums, &cols.tracks,
		&cols.artistTrackRelations, &cols.artistCreditReleases, &cols.artistCreditTracks,
		&cols.genres, &cols.genreTracks, &cols.genreReleases, &cols.covers,
		&cols.releaseMatches, &cols.coverRatings,
		&imp.SelectedRelease, &imp.SelectedCover,
		&imp.StartedAt, &imp.EndedAt,
	)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}

	if err := cols.unmarshalInto(&imp); err != nil {
		return nil, err
	}

	return &imp, nil
}

// Save writes every field of imp back to its row. Stage handlers call this
// once per mutation, inside the same transaction the mutation was computed
// under, so a crash mid-stage leaves the prior, fully-consistent row in
// place for re-lease.
func Save(ctx context.Context, tx pgx.Tx, imp *model.Import) error {
	cols, err := marshalColumns(imp)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE imports SET
			directory = $2,
			source_release = $3, source_tracks = $4,
			artists = $5, artist_credits = $6, releases = $7, mediums = $8, tracks = $9,
			artist_track_relations = $10, artist_credit_releases = $11, artist_credit_tracks = $12,
			genres = $13, genre_tracks = $14, genre_releases = $15, covers = $16,
			release_matches = $17, cover_ratings = $18,
			selected_release = $19, selected_cover = $20,
			started_at = $21, ended_at = $22
		WHERE id = $1`,
		imp.ID, imp.Directory,
		cols.sourceRelease, cols.sourceTracks,
		cols.artists, cols.artistCredits, cols.releases, cols.mediums, cols.tracks,
		cols.artistTrackRelations, cols.artistCreditReleases, cols.artistCreditTracks,
		cols.genres, cols.genreTracks, cols.genreReleases, cols.covers,
		cols.releaseMatches, cols.coverRatings,
		imp.SelectedRelease, imp.SelectedCover,
		imp.StartedAt, imp.EndedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// marshaledColumns holds the jsonb encoding of every array/map field of
// Import, shared between insert, Load, and Save so the (un)marshal list
// only needs to be kept in one place.
type marshaledColumns struct {
	sourceRelease        json.RawMessage
	sourceTracks         json.RawMessage
	artists              json.RawMessage
	artistCredits        json.RawMessage
	releases             json.RawMessage
	mediums              json.RawMessage
	tracks               json.RawMessage
	artistTrackRelations json.RawMessage
	artistCreditReleases json.RawMessage
	artistCreditTracks   json.RawMessage
	genres               json.RawMessage
	genreTracks          json.RawMessage
	genreReleases        json.RawMessage
	covers               json.RawMessage
	releaseMatches       json.RawMessage
	coverRatings         json.RawMessage
}

func marshalColumns(imp *model.Import) (marshaledColumns, error) {
	var (
		cols marshaledColumns
		err  error
	)

	fields := []struct {
		dst *json.RawMessage
		src any
	}{
		{&cols.sourceRelease, imp.SourceRelease},
		{&cols.sourceTracks, imp.SourceTracks},
		{&cols.artists, imp.Artists},
		{&cols.artistCredits, imp.ArtistCredits},
		{&cols.releases, imp.Releases},
		{&cols.mediums, imp.Mediums},
		{&cols.tracks, imp.Tracks},
		{&cols.artistTrackRelations, imp.ArtistTrackRelations},
		{&cols.artistCreditReleases, imp.ArtistCreditReleases},
		{&cols.artistCreditTracks, imp.ArtistCreditTracks},
		{&cols.genres, imp.Genres},
		{&cols.genreTracks, imp.GenreTracks},
		{&cols.genreReleases, imp.GenreReleases},
		{&cols.covers, imp.Covers},
		{&cols.releaseMatches, imp.ReleaseMatches},
		{&cols.coverRatings, imp.CoverRatings},
	}

	for _, f := range fields {
		*f.dst, err = json.Marshal(f.src)
		if err != nil {
			return marshaledColumns{}, err
		}
	}

	return cols, nil
}

func (cols marshaledColumns) unmarshalInto(imp *model.Import) error {
	targets := []struct {
		src json.RawMessage
		dst any
	}{
		{cols.sourceRelease, &imp.SourceRelease},
		{cols.sourceTracks, &imp.SourceTracks},
		{cols.artists, &imp.Artists},
		{cols.artistCredits, &imp.ArtistCredits},
		{cols.releases, &imp.Releases},
		{cols.mediums, &imp.Mediums},
		{cols.tracks, &imp.Tracks},
		{cols.artistTrackRelations, &imp.ArtistTrackRelations},
		{cols.artistCreditReleases, &imp.ArtistCreditReleases},
		{cols.artistCreditTracks, &imp.ArtistCreditTracks},
		{cols.genres, &imp.Genres},
		{cols.genreTracks, &imp.GenreTracks},
		{cols.genreReleases, &imp.GenreReleases},
		{cols.covers, &imp.Covers},
		{cols.releaseMatches, &imp.ReleaseMatches},
		{cols.coverRatings, &imp.CoverRatings},
	}

	for _, t := range targets {
		if len(t.src) == 0 {
			continue
		}

		if err := json.Unmarshal(t.src, t.dst); err != nil {
			return err
		}
	}

	return nil
}
