package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/scheduler"
	"github.com/tempo-importer/tempo-importer/internal/tagcodec"
	"github.com/tempo-importer/tempo-importer/internal/tagkey"
	"github.com/tempo-importer/tempo-importer/internal/trackfile"
)

// ApplyTrack implements the `apply-track` stage, per spec.md §4.9: write the
// combined tag set to a copy of the matched source file at its rendered
// destination path, embed the selected cover if one was chosen, persist the
// track's catalog rows, and — once every apply-track task for this import
// has run — close out the Import by setting EndedAt.
func (d *Deps) ApplyTrack(ctx context.Context, tx pgx.Tx, task scheduler.Task) error {
	var payload applyTrackPayload
	if err := task.DecodePayload(&payload); err != nil {
		return err
	}

	imp, err := d.Store.Load(ctx, tx, payload.ImportID)
	if err != nil {
		return err
	}

	if payload.Source < 0 || payload.Source >= len(imp.SourceTracks) {
		return fmt.Errorf("pipeline: apply-track source index %d out of range", payload.Source)
	}

	sourceTrack := imp.SourceTracks[payload.Source]

	release := releaseByID(imp.Releases, payload.ReleaseID)
	mediums := mediumsForRelease(imp.Mediums, release.ID)

	track, ok := trackByID(imp.Tracks, payload.TrackID)
	if !ok {
		return fmt.Errorf("pipeline: apply-track: track %s not found", payload.TrackID)
	}

	tags := combinedTags(imp, release, mediums, track)

	destName, err := renderPath(d.Config.Library.TrackName, tags)
	if err != nil {
		return err
	}

	separators := d.separators()

	source, err := trackfile.Open(sourceTrack.Path, separators)
	if err != nil {
		return err
	}

	destPath := filepath.Join(release.Path, destName+formatExtension(source.Format()))

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil { //nolint:gosec // Library tree is trusted, not web-exposed.
		return fmt.Errorf("pipeline: create track directory for %s: %w", destPath, err)
	}

	dest, err := source.DuplicateTo(destPath, separators)
	if err != nil {
		return err
	}

	if d.Config.Library.Tagging.Clear {
		dest.Clear()
	}

	if err := dest.Apply(tags); err != nil {
		return err
	}

	if payload.CoverPath != nil {
		picture, err := loadCoverPicture(*payload.CoverPath)
		if err != nil {
			return err
		}

		dest.SetPictures([]tagkey.Picture{picture})
	}

	if err := dest.Write(); err != nil {
		return err
	}

	track.Path = destPath
	track.Format = dest.Format().String()

	if err := d.persistTrackEntities(ctx, tx, imp, track); err != nil {
		return err
	}

	last, err := isLastApplyTrack(ctx, d.Queue, tx, payload.ImportID, task.ID)
	if err != nil {
		return err
	}

	if last {
		endedAt := time.Now().UTC()
		imp.EndedAt = &endedAt
	}

	return d.Store.Save(ctx, tx, imp)
}

func trackByID(tracks []model.Track, id uuid.UUID) (model.Track, bool) {
	for _, t := range tracks {
		if t.ID == id {
			return t, true
		}
	}

	return model.Track{}, false
}

func (d *Deps) persistTrackEntities(ctx context.Context, tx pgx.Tx, imp *model.Import, track model.Track) error {
	if err := d.Repo.InsertTrack(ctx, tx, track); err != nil {
		return err
	}

	for _, creditID := range creditIDsForTrack(imp, track.ID) {
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

		if err := d.Repo.InsertArtistCreditTrack(ctx, tx,
			model.ArtistCreditTrack{ArtistCreditID: credit.ID, TrackID: track.ID}); err != nil {
			return err
		}
	}

	for _, rel := range imp.ArtistTrackRelations {
		if rel.TrackID != track.ID {
			continue
		}

		artist, ok := artistByID(imp.Artists, rel.ArtistID)
		if ok {
			if err := d.Repo.InsertArtist(ctx, tx, artist); err != nil {
				return err
			}
		}

		if err := d.Repo.InsertArtistTrackRelation(ctx, tx, rel); err != nil {
			return err
		}
	}

	for _, link := range imp.GenreTracks {
		if link.TrackID != track.ID {
			continue
		}

		genre, ok := genreByID(imp.Genres, link.GenreID)
		if ok {
			if err := d.Repo.InsertGenre(ctx, tx, genre); err != nil {
				return err
			}
		}

		if err := d.Repo.InsertGenreTrack(ctx, tx, link); err != nil {
			return err
		}
	}

	return nil
}

// isLastApplyTrack reports whether every other apply-track task belonging to
// importID has already ended, per spec.md §4.9: "the last apply-track to
// complete sets Import.EndedAt". The running task itself is still open at
// this point (the scheduler completes it after the handler returns), so it
// is excluded from the check by id.
func isLastApplyTrack(ctx context.Context, queue TaskQueue, tx pgx.Tx, importID uuid.UUID, runningTaskID int64) (bool, error) {
	remaining, err := queue.HasUnfinished(ctx, tx, scheduler.TaskApplyTrack, runningTaskID, importID)
	if err != nil {
		return false, err
	}

	return !remaining, nil
}

func loadCoverPicture(path string) (tagkey.Picture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is produced by populate within the managed library tree.
	if err != nil {
		return tagkey.Picture{}, fmt.Errorf("pipeline: read cover %s: %w", path, err)
	}

	return tagkey.Picture{
		MIMEType: mimeTypeForExt(filepath.Ext(path)),
		Type:     tagkey.PictureTypeCoverFront,
		Data:     data,
	}, nil
}

func mimeTypeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// formatExtension maps a detected tag container format to the file
// extension apply-track writes its destination copy with.
func formatExtension(format tagcodec.Format) string {
	switch format {
	case tagcodec.FormatFLAC:
		return ".flac"
	case tagcodec.FormatMP3:
		return ".mp3"
	case tagcodec.FormatMP4:
		return ".m4a"
	case tagcodec.FormatAPE:
		return ".ape"
	default:
		return ""
	}
}
