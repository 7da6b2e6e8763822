package pipeline

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/ranker"
	"github.com/tempo-importer/tempo-importer/internal/scheduler"
)

// RankReleases implements the `rank-releases` stage, per spec.md §4.9: score
// every accumulated candidate release against the source, record every
// match, and select the lowest-scoring release.
func (d *Deps) RankReleases(ctx context.Context, tx pgx.Tx, task scheduler.Task) error {
	var payload importPayload
	if err := task.DecodePayload(&payload); err != nil {
		return err
	}

	imp, err := d.Store.Load(ctx, tx, payload.ImportID)
	if err != nil {
		return err
	}

	for _, release := range imp.Releases {
		candidate := ranker.CandidateRelease{
			Release: release,
			Mediums: mediumsForRelease(imp.Mediums, release.ID),
		}
		candidate.Tracks = tracksForMediums(imp.Tracks, candidate.Mediums)

		match := ranker.MatchRelease(imp.SourceRelease, imp.SourceTracks, candidate)
		imp.ReleaseMatches[release.ID] = match
	}

	if id, ok := lowestScoringRelease(imp.ReleaseMatches); ok {
		imp.SelectedRelease = &id
	}

	return d.Store.Save(ctx, tx, imp)
}

// lowestScoringRelease picks the release with the smallest match score, per
// spec.md §4.9: MatchRelease's score is a diff cost, so lower is better.
func lowestScoringRelease(matches map[uuid.UUID]model.ReleaseMatch) (uuid.UUID, bool) {
	var (
		bestID    uuid.UUID
		haveBest  bool
		bestScore int
	)

	for id, match := range matches {
		if !haveBest || match.Score < bestScore {
			bestID = id
			bestScore = match.Score
			haveBest = true
		}
	}

	return bestID, haveBest
}

func mediumsForRelease(mediums []model.Medium, releaseID uuid.UUID) []model.Medium {
	var matched []model.Medium

	for _, m := range mediums {
		if m.ReleaseID == releaseID {
			matched = append(matched, m)
		}
	}

	return matched
}

func tracksForMediums(tracks []model.Track, mediums []model.Medium) []model.Track {
	mediumIDs := make(map[uuid.UUID]bool, len(mediums))
	for _, m := range mediums {
		mediumIDs[m.ID] = true
	}

	var matched []model.Track

	for _, t := range tracks {
		if mediumIDs[t.MediumID] {
			matched = append(matched, t)
		}
	}

	return matched
}
