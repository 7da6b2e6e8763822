package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/cover"
	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/scheduler"
)

// imageRoleFront is the Image.Role value for a release's front cover, the
// only role this importer ever writes.
const imageRoleFront = "front"

// Populate implements the `populate` stage, per spec.md §4.9: render the
// release's root folder, persist every release-level catalog row, render
// and persist the selected cover if any, then enqueue one apply-track task
// per track in the winning release's optimal assignment.
func (d *Deps) Populate(ctx context.Context, tx pgx.Tx, task scheduler.Task) error {
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

	releaseIndex := releaseIndexByID(imp.Releases, *imp.SelectedRelease)
	if releaseIndex < 0 {
		return d.Store.Save(ctx, tx, imp)
	}

	release := imp.Releases[releaseIndex]
	mediums := mediumsForRelease(imp.Mediums, release.ID)
	tags := releaseTags(imp, release, mediums)

	releaseRoot, err := renderPath(d.Config.Library.ReleaseName, tags)
	if err != nil {
		return err
	}

	releaseRoot = filepath.Join(d.Config.Library.Path, releaseRoot)

	if err := os.MkdirAll(releaseRoot, 0o755); err != nil { //nolint:gosec // Library tree is trusted, not web-exposed.
		return fmt.Errorf("pipeline: create release root %s: %w", releaseRoot, err)
	}

	release.Path = releaseRoot
	imp.Releases[releaseIndex] = release

	if err := d.persistReleaseEntities(ctx, tx, imp, release, mediums); err != nil {
		return err
	}

	coverPath, err := d.persistSelectedCover(ctx, tx, imp, release, releaseRoot)
	if err != nil {
		return err
	}

	if err := d.enqueueApplyTracks(ctx, tx, task.ID, imp, release, coverPath); err != nil {
		return err
	}

	return d.Store.Save(ctx, tx, imp)
}

func releaseIndexByID(releases []model.Release, id uuid.UUID) int {
	for i, r := range releases {
		if r.ID == id {
			return i
		}
	}

	return -1
}

func (d *Deps) persistReleaseEntities(
	ctx context.Context, tx pgx.Tx, imp *model.Import, release model.Release, mediums []model.Medium,
) error {
	if err := d.Repo.InsertRelease(ctx, tx, release); err != nil {
		return err
	}

	for _, creditID := range creditIDsForRelease(imp, release.ID) {
		credit, ok := creditByID(imp.ArtistCredits, creditID)
		if !ok {
			continue
		}

		artist, ok := artistByID(imp.Artists, credit.ArtistID)
		if ok {
			if err := d.Repo.InsertArtist(ctx, tx, artist); err != nil {
				return err
			}
		}

		if err := d.Repo.InsertArtistCredit(ctx, tx, credit); err != nil {
			return err
		}

		if err := d.Repo.InsertArtistCreditRelease(ctx, tx,
			model.ArtistCreditRelease{ArtistCreditID: credit.ID, ReleaseID: release.ID}); err != nil {
			return err
		}
	}

	for _, medium := range mediums {
		if err := d.Repo.InsertMedium(ctx, tx, medium); err != nil {
			return err
		}
	}

	if err := d.persistUnmatchedTracks(ctx, tx, imp, release, mediums); err != nil {
		return err
	}

	for _, link := range imp.GenreReleases {
		if link.ReleaseID != release.ID {
			continue
		}

		genre, ok := genreByID(imp.Genres, link.GenreID)
		if ok {
			if err := d.Repo.InsertGenre(ctx, tx, genre); err != nil {
				return err
			}
		}

		if err := d.Repo.InsertGenreRelease(ctx, tx, link); err != nil {
			return err
		}
	}

	return nil
}

// persistUnmatchedTracks inserts a row (format="", path="") for every track
// of the selected release that the assignment left unpaired with a source
// file, per spec.md §8's S3 scenario: a candidate track apply-track never
// runs for still gets a row, just without a written file. Matched tracks are
// not inserted here: apply-track inserts their rows later with the real
// format/path once it runs.
func (d *Deps) persistUnmatchedTracks(
	ctx context.Context, tx pgx.Tx, imp *model.Import, release model.Release, mediums []model.Medium,
) error {
	match := imp.ReleaseMatches[release.ID]

	for _, track := range unmatchedTracks(tracksForMediums(imp.Tracks, mediums), match) {
		if err := d.Repo.InsertTrack(ctx, tx, track); err != nil {
			return err
		}
	}

	return nil
}

// unmatchedTracks returns tracks that are not a value anywhere in
// match.Assignment, preserving tracks' order.
func unmatchedTracks(tracks []model.Track, match model.ReleaseMatch) []model.Track {
	matched := make(map[uuid.UUID]bool, len(match.Assignment))
	for _, trackID := range match.Assignment {
		matched[trackID] = true
	}

	var unmatched []model.Track

	for _, track := range tracks {
		if !matched[track.ID] {
			unmatched = append(unmatched, track)
		}
	}

	return unmatched
}

// persistSelectedCover renders the selected cover candidate (if any) to the
// release root and persists its Image/ImageRelease rows, returning the
// absolute path written so apply-track can embed the same bytes.
func (d *Deps) persistSelectedCover(
	ctx context.Context, tx pgx.Tx, imp *model.Import, release model.Release, releaseRoot string,
) (string, error) {
	if imp.SelectedCover == nil || *imp.SelectedCover >= len(imp.Covers) {
		return "", nil
	}

	candidate := imp.Covers[*imp.SelectedCover]
	art := d.Config.Library.Art

	data, err := cover.GetCover(ctx, d.HTTPClient, candidate, art.Width, art.Height, art.Format)
	if err != nil {
		return "", err
	}

	imageName, err := renderPath(art.ImageName, releaseTags(imp, release, mediumsForRelease(imp.Mediums, release.ID)))
	if err != nil {
		return "", err
	}

	imagePath := filepath.Join(releaseRoot, imageName+"."+art.Format)

	if err := os.WriteFile(imagePath, data, 0o644); err != nil { //nolint:gosec // Library tree is trusted, not web-exposed.
		return "", fmt.Errorf("pipeline: write cover %s: %w", imagePath, err)
	}

	image := model.Image{
		ID:          model.NewImageID(imagePath),
		ContentHash: model.NewImageContentHash(data),
		Role:        imageRoleFront,
		Format:      art.Format,
		Width:       art.Width,
		Height:      art.Height,
		Size:        len(data),
		Path:        imagePath,
	}

	if err := d.Repo.InsertImage(ctx, tx, image); err != nil {
		return "", err
	}

	if err := d.Repo.InsertImageRelease(ctx, tx, model.ImageRelease{ImageID: image.ID, ReleaseID: release.ID}); err != nil {
		return "", err
	}

	return imagePath, nil
}

func (d *Deps) enqueueApplyTracks(
	ctx context.Context, tx pgx.Tx, populateTaskID int64, imp *model.Import, release model.Release, coverPath string,
) error {
	match, ok := imp.ReleaseMatches[release.ID]
	if !ok {
		return nil
	}

	var coverPathPtr *string
	if coverPath != "" {
		coverPathPtr = &coverPath
	}

	for source, trackID := range match.Assignment {
		_, err := d.Queue.Enqueue(ctx, tx, scheduler.TaskApplyTrack,
			applyTrackPayload{
				ImportID:  imp.ID,
				ReleaseID: release.ID,
				TrackID:   trackID,
				Source:    source,
				CoverPath: coverPathPtr,
			},
			[]int64{populateTaskID}, scheduler.DefaultLeaseDuration)
		if err != nil {
			return err
		}
	}

	return nil
}

func genreByID(genres []model.Genre, id string) (model.Genre, bool) {
	for _, g := range genres {
		if g.ID == id {
			return g, true
		}
	}

	return model.Genre{}, false
}
