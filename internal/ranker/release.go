// Package ranker implements release matching and cover selection (component
// F): a weighted string/numeric diff between the source release and each
// catalog candidate, the optimal track assignment that diff feeds into, and
// the cover-rating formula of spec.md §4.6.2.
package ranker

import (
	"github.com/google/uuid"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

// Weights for §4.6.1's release-level diff. Published constants, not
// user-configurable (unlike the cover-rating weights in §4.6.2).
const (
	weightTitle       = 1000
	weightMedia       = 10
	weightDiscs       = 100
	weightTracks      = 1000
	weightCountry     = 5
	weightLabel       = 5
	weightReleaseType = 50
	weightYear        = 100
	weightMonth       = 50
	weightDay         = 10
	weightTrackTitle  = 5000
	weightTrackLength = 300
	weightTrackDisc   = 100
	weightTrackNumber = 200
)

// CandidateRelease is the catalog-side view of a release ranked against
// Import.SourceRelease: the release row plus the mediums and tracks fetched
// for it.
type CandidateRelease struct {
	Release model.Release
	Mediums []model.Medium
	Tracks  []model.Track
}

// discs reports the number of mediums, the candidate-side equivalent of
// InternalRelease.Discs.
func (c CandidateRelease) discs() int {
	return len(c.Mediums)
}

// tracks sums each medium's track count, the candidate-side equivalent of
// InternalRelease.Tracks.
func (c CandidateRelease) tracks() int {
	total := 0
	for _, m := range c.Mediums {
		total += m.Tracks
	}

	return total
}

// media returns the first medium's format as the release's consensus media
// type, the candidate-side equivalent of InternalRelease.Media. A release
// with mixed media (e.g. CD + vinyl) is represented by its first medium;
// spec.md's source model only ever extracts one media string per import.
func (c CandidateRelease) media() string {
	if len(c.Mediums) == 0 {
		return ""
	}

	return c.Mediums[0].Format
}

// discOf returns the disc number (medium position) of track, or zero if the
// track's medium isn't in this candidate.
func (c CandidateRelease) discOf(track model.Track) int {
	for _, m := range c.Mediums {
		if m.ID == track.MediumID {
			return m.Position
		}
	}

	return 0
}

// releaseDiff computes §4.6.1's release-level weighted diff between the
// source release and a catalog candidate. A missing field on either side
// contributes zero.
func releaseDiff(source model.InternalRelease, candidate CandidateRelease) int64 {
	var total int64

	total += int64(levenshtein(source.Title, candidate.Release.Title)) * weightTitle
	total += stringPtrDiff(source.Media, candidate.media(), weightMedia)
	total += intPtrDiff(source.Discs, candidate.discs(), weightDiscs)
	total += int64(absDiffInt(source.Tracks, candidate.tracks())) * weightTracks
	total += stringPtrDiff(source.Country, candidate.Release.Country, weightCountry)
	total += stringPtrDiff(source.Label, candidate.Release.Label, weightLabel)
	total += stringPtrDiff(source.ReleaseType, candidate.Release.ReleaseType, weightReleaseType)
	total += intPtrPtrDiff(source.Year, candidate.Release.Year, weightYear)
	total += intPtrPtrDiff(source.Month, candidate.Release.Month, weightMonth)
	total += intPtrPtrDiff(source.Day, candidate.Release.Day, weightDay)
	total += intPtrPtrDiff(source.OriginalYear, candidate.Release.OriginalYear, weightYear)
	total += intPtrPtrDiff(source.OriginalMonth, candidate.Release.OriginalMonth, weightMonth)
	total += intPtrPtrDiff(source.OriginalDay, candidate.Release.OriginalDay, weightDay)

	return total
}

// trackDiff computes §4.6.1's track-level weighted diff between one source
// track and one candidate track (plus the candidate's derived disc number).
func trackDiff(source model.InternalTrack, candidate model.Track, candidateDisc int) int64 {
	var total int64

	total += int64(levenshtein(source.Title, candidate.Title)) * weightTrackTitle
	total += intPtrDiff(source.Length, candidate.LengthMS, weightTrackLength)
	total += intPtrDiff(source.Disc, candidateDisc, weightTrackDisc)
	total += intPtrDiff(source.Number, candidate.Number, weightTrackNumber)

	return total
}

// MatchRelease scores candidate against the source release and tracks, per
// spec.md §4.6.1: the release-level diff plus the optimal track-to-track
// assignment cost (Kuhn–Munkres minimum, rectangular matrices padded to
// square on whichever side is short, discarding padded assignments). Lower scores are
// better; the assignment maps each source track index to the candidate
// track id it was matched to.
func MatchRelease(
	source model.InternalRelease,
	sourceTracks []model.InternalTrack,
	candidate CandidateRelease,
) model.ReleaseMatch {
	assignmentCost, assignment := matchTracks(sourceTracks, candidate.Tracks, candidate)

	return model.ReleaseMatch{
		Score:      int(releaseDiff(source, candidate)) + int(assignmentCost),
		Assignment: assignment,
	}
}

func matchTracks(
	sourceTracks []model.InternalTrack,
	candidateTracks []model.Track,
	candidate CandidateRelease,
) (int64, map[int]uuid.UUID) {
	rows := len(sourceTracks)
	cols := len(candidateTracks)

	assignment := make(map[int]uuid.UUID, rows)

	if rows == 0 || cols == 0 {
		return 0, assignment
	}

	cost := make([][]int64, rows)
	for i, source := range sourceTracks {
		cost[i] = make([]int64, cols)

		for j, candidateTrack := range candidateTracks {
			cost[i][j] = trackDiff(source, candidateTrack, candidate.discOf(candidateTrack))
		}
	}

	padded := padSquare(cost, rows, cols)

	_, colForRow := kuhnMunkresMin(padded)

	var total int64

	for i, j := range colForRow {
		if i >= rows || j >= cols {
			continue // discard padded rows/columns, per spec.md §4.6.1
		}

		total += cost[i][j]
		assignment[i] = candidateTracks[j].ID
	}

	return total, assignment
}

func stringPtrDiff(source *string, candidate string, weight int64) int64 {
	if source == nil || candidate == "" {
		return 0
	}

	return int64(levenshtein(*source, candidate)) * weight
}

func intPtrDiff(source *int, candidate int, weight int64) int64 {
	if source == nil {
		return 0
	}

	return int64(absDiffInt(*source, candidate)) * weight
}

func intPtrPtrDiff(source, candidate *int, weight int64) int64 {
	if source == nil || candidate == nil {
		return 0
	}

	return int64(absDiffInt(*source, *candidate)) * weight
}

func absDiffInt(a, b int) int {
	if a > b {
		return a - b
	}

	return b - a
}
