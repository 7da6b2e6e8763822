package pipeline

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tempo-importer/tempo-importer/internal/ranker"
	"github.com/tempo-importer/tempo-importer/internal/scheduler"
)

// RankCovers implements the `rank-covers` stage, per spec.md §4.9: rate
// every accumulated cover candidate against the selected release and pick
// the best-rated one, or none if no candidate was found.
func (d *Deps) RankCovers(ctx context.Context, tx pgx.Tx, task scheduler.Task) error {
	var payload importPayload
	if err := task.DecodePayload(&payload); err != nil {
		return err
	}

	imp, err := d.Store.Load(ctx, tx, payload.ImportID)
	if err != nil {
		return err
	}

	if imp.SelectedRelease == nil || len(imp.Covers) == 0 {
		return d.Store.Save(ctx, tx, imp)
	}

	release := releaseByID(imp.Releases, *imp.SelectedRelease)
	artists := artistNames(imp, creditIDsForRelease(imp, release.ID))
	joinedArtists := strings.Join(artists, ", ")

	providers := d.Config.Library.Art.Providers
	weights := d.coverWeights()

	imp.CoverRatings = make([]float64, len(imp.Covers))

	for i, candidate := range imp.Covers {
		providerIndex := providerIndexOf(providers, candidate.Provider)
		imp.CoverRatings[i] = ranker.RateCover(candidate, providerIndex, len(providers), release.Title, joinedArtists, weights)
	}

	if best, ok := highestRatedIndex(imp.CoverRatings); ok {
		imp.SelectedCover = &best
	}

	return d.Store.Save(ctx, tx, imp)
}

func providerIndexOf(providers []string, name string) int {
	for i, p := range providers {
		if p == name {
			return i
		}
	}

	return len(providers)
}

// highestRatedIndex picks the argmax rating, per spec.md §4.9: RateCover's
// rating is a similarity score, so higher is better.
func highestRatedIndex(ratings []float64) (int, bool) {
	best := -1
	bestRating := 0.0

	for i, rating := range ratings {
		if best == -1 || rating > bestRating {
			best = i
			bestRating = rating
		}
	}

	return best, best >= 0
}
