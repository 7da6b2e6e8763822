package ranker

import (
	"github.com/tempo-importer/tempo-importer/internal/cover"
	"github.com/tempo-importer/tempo-importer/internal/model"
)

// coverArtArchiveLevDistance is the hard-clamped lev_distance for Cover Art
// Archive candidates, per spec.md §4.6.2: it often has accurate but
// trivially-matching strings, which would otherwise dominate every ranking.
const coverArtArchiveLevDistance = 0.9

// CoverWeights configures §4.6.2's final cover score. Unlike the release
// diff weights, these are user-configurable (library.art.{provider,match,size}_relevance).
type CoverWeights struct {
	Provider float64
	Match    float64
	Size     float64
}

// RateCover scores one cover candidate against the release it was matched
// to, per spec.md §4.6.2. providerIndex/providerCount locate the candidate's
// provider within the configured preference order.
func RateCover(
	candidate model.CoverCandidate,
	providerIndex, providerCount int,
	releaseTitle, joinedArtists string,
	weights CoverWeights,
) float64 {
	levDistance := coverLevDistance(candidate, releaseTitle, joinedArtists)

	providerRankNorm := 0.0
	if providerCount > 0 {
		providerRankNorm = float64(providerIndex) / float64(providerCount)
	}

	sizeNorm := float64(candidate.Width*candidate.Height) / 25_000_000.0

	return providerRankNorm*weights.Provider + levDistance*weights.Match + sizeNorm*weights.Size
}

func coverLevDistance(candidate model.CoverCandidate, releaseTitle, joinedArtists string) float64 {
	if candidate.Provider == cover.ProviderCoverArtArchive {
		return coverArtArchiveLevDistance
	}

	titleDist := levenshtein(candidate.Title, releaseTitle)
	artistDist := levenshtein(candidate.Artist, joinedArtists)

	denom := float64(max(len(candidate.Title), len(releaseTitle)) + max(len(candidate.Artist), len(joinedArtists)))
	if denom == 0 {
		return 1
	}

	return 1 - float64(titleDist+artistDist)/denom
}
