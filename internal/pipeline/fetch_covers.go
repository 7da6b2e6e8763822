package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/cover"
	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/scheduler"
)

// FetchCovers implements the `fetch-covers` stage, per spec.md §4.9: search
// every configured cover provider for the selected release and accumulate
// whatever candidates come back. Per §4.5, a failing provider never fails
// this stage; cover.Client.Search already swallows provider errors.
func (d *Deps) FetchCovers(ctx context.Context, tx pgx.Tx, task scheduler.Task) error {
	var payload importPayload
	if err := task.DecodePayload(&payload); err != nil {
		return err
	}

	imp, err := d.Store.Load(ctx, tx, payload.ImportID)
	if err != nil {
		return err
	}

	if imp.SelectedRelease == nil {
		return d.Store.Save(ctx, tx, imp)
	}

	release := releaseByID(imp.Releases, *imp.SelectedRelease)

	coverRelease := cover.Release{
		ID:             release.ID,
		ReleaseGroupID: release.ReleaseGroupID,
		Title:          release.Title,
		Country:        release.Country,
		Artists:        artistNames(imp, creditIDsForRelease(imp, release.ID)),
	}

	candidates := d.Covers.Search(ctx, d.Config.Library.Art.Providers, coverRelease)
	imp.Covers = append(imp.Covers, candidates...)

	return d.Store.Save(ctx, tx, imp)
}

func releaseByID(releases []model.Release, id uuid.UUID) model.Release {
	for _, r := range releases {
		if r.ID == id {
			return r
		}
	}

	return model.Release{}
}

// artistNames resolves a set of artist-credit ids to their plain artist
// names (no join phrases), for cover.Release.Artists.
func artistNames(imp *model.Import, creditIDs []string) []string {
	var names []string

	for _, id := range creditIDs {
		credit, ok := creditByID(imp.ArtistCredits, id)
		if !ok {
			continue
		}

		artist, ok := artistByID(imp.Artists, credit.ArtistID)
		if !ok {
			continue
		}

		names = append(names, artist.Name)
	}

	return names
}
