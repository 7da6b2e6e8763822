package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/musicbrainz"
	"github.com/tempo-importer/tempo-importer/internal/scheduler"
)

// FetchRelease implements the `fetch-release` stage, per spec.md §4.9: fetch
// one candidate release's full document and fold its expanded entities into
// the Import's accumulated arrays, deduplicating by id against whatever an
// earlier (or retried) fetch-release already appended.
func (d *Deps) FetchRelease(ctx context.Context, tx pgx.Tx, task scheduler.Task) error {
	var payload fetchReleasePayload
	if err := task.DecodePayload(&payload); err != nil {
		return err
	}

	imp, err := d.Store.Load(ctx, tx, payload.ImportID)
	if err != nil {
		return err
	}

	expansion, err := d.Catalog.Fetch(ctx, payload.ReleaseID)
	if err != nil {
		return err
	}

	mergeExpansion(imp, expansion)

	return d.Store.Save(ctx, tx, imp)
}

// mergeExpansion appends expansion's entities into imp's accumulated arrays,
// skipping any whose id is already present so a re-leased or overlapping
// fetch-release task never duplicates a row.
func mergeExpansion(imp *model.Import, expansion musicbrainz.Expansion) {
	seenArtists := idSet(imp.Artists, func(a model.Artist) uuid.UUID { return a.ID })
	for _, a := range expansion.Artists {
		if seenArtists[a.ID] {
			continue
		}

		seenArtists[a.ID] = true
		imp.Artists = append(imp.Artists, a)
	}

	seenCredits := stringIDSet(imp.ArtistCredits, func(c model.ArtistCredit) string { return c.ID })
	for _, c := range expansion.ArtistCredits {
		if seenCredits[c.ID] {
			continue
		}

		seenCredits[c.ID] = true
		imp.ArtistCredits = append(imp.ArtistCredits, c)
	}

	if !releaseIDSeen(imp.Releases, expansion.Release.ID) {
		imp.Releases = append(imp.Releases, expansion.Release)
	}

	seenMediums := idSet(imp.Mediums, func(m model.Medium) uuid.UUID { return m.ID })
	for _, m := range expansion.Mediums {
		if seenMediums[m.ID] {
			continue
		}

		seenMediums[m.ID] = true
		imp.Mediums = append(imp.Mediums, m)
	}

	seenTracks := idSet(imp.Tracks, func(t model.Track) uuid.UUID { return t.ID })
	for _, t := range expansion.Tracks {
		if seenTracks[t.ID] {
			continue
		}

		seenTracks[t.ID] = true
		imp.Tracks = append(imp.Tracks, t)
	}

	imp.ArtistTrackRelations = append(imp.ArtistTrackRelations, expansion.ArtistTrackRelations...)
	imp.ArtistCreditReleases = append(imp.ArtistCreditReleases, expansion.ArtistCreditReleases...)
	imp.ArtistCreditTracks = append(imp.ArtistCreditTracks, expansion.ArtistCreditTracks...)

	seenGenres := stringIDSet(imp.Genres, func(g model.Genre) string { return g.ID })
	for _, g := range expansion.Genres {
		if seenGenres[g.ID] {
			continue
		}

		seenGenres[g.ID] = true
		imp.Genres = append(imp.Genres, g)
	}

	imp.GenreTracks = append(imp.GenreTracks, expansion.GenreTracks...)
	imp.GenreReleases = append(imp.GenreReleases, expansion.GenreReleases...)
}

func idSet[T any](items []T, id func(T) uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		set[id(item)] = true
	}

	return set
}

func stringIDSet[T any](items []T, id func(T) string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[id(item)] = true
	}

	return set
}

func releaseIDSeen(releases []model.Release, id uuid.UUID) bool {
	for _, r := range releases {
		if r.ID == id {
			return true
		}
	}

	return false
}
