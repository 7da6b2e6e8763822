package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/musicbrainz"
	"github.com/tempo-importer/tempo-importer/internal/tagcodec"
)

func TestMergeExpansionDedupesAgainstExistingEntities(t *testing.T) {
	t.Parallel()

	artist := model.Artist{ID: uuid.New(), Name: "The Beatles"}
	release := model.Release{ID: uuid.New(), Title: "Abbey Road"}

	imp := &model.Import{
		Artists:  []model.Artist{artist},
		Releases: []model.Release{release},
	}

	mergeExpansion(imp, musicbrainz.Expansion{
		Artists: []model.Artist{artist, {ID: uuid.New(), Name: "George Martin"}},
		Release: release,
	})

	assert.Len(t, imp.Artists, 2)
	assert.Len(t, imp.Releases, 1)
}

func TestMediumsForReleaseFiltersByReleaseID(t *testing.T) {
	t.Parallel()

	releaseID := uuid.New()
	other := uuid.New()

	mediums := []model.Medium{
		{ID: uuid.New(), ReleaseID: releaseID},
		{ID: uuid.New(), ReleaseID: other},
	}

	matched := mediumsForRelease(mediums, releaseID)

	assert.Len(t, matched, 1)
	assert.Equal(t, releaseID, matched[0].ReleaseID)
}

func TestTracksForMediumsFiltersByMediumSet(t *testing.T) {
	t.Parallel()

	mediumA := model.Medium{ID: uuid.New()}
	mediumB := model.Medium{ID: uuid.New()}

	tracks := []model.Track{
		{ID: uuid.New(), MediumID: mediumA.ID},
		{ID: uuid.New(), MediumID: uuid.New()},
	}

	matched := tracksForMediums(tracks, []model.Medium{mediumA, mediumB})

	assert.Len(t, matched, 1)
	assert.Equal(t, mediumA.ID, matched[0].MediumID)
}

func TestProviderIndexOfFindsConfiguredRank(t *testing.T) {
	t.Parallel()

	providers := []string{"cover_art_archive", "itunes", "deezer"}

	assert.Equal(t, 1, providerIndexOf(providers, "itunes"))
	assert.Equal(t, len(providers), providerIndexOf(providers, "unknown"))
}

func TestReleaseByIDAndReleaseIndexByID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	releases := []model.Release{{ID: uuid.New()}, {ID: id, Title: "Found"}}

	assert.Equal(t, "Found", releaseByID(releases, id).Title)
	assert.Equal(t, 1, releaseIndexByID(releases, id))
	assert.Equal(t, -1, releaseIndexByID(releases, uuid.New()))
}

func TestFormatExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".flac", formatExtension(tagcodec.FormatFLAC))
	assert.Equal(t, ".mp3", formatExtension(tagcodec.FormatMP3))
	assert.Equal(t, ".m4a", formatExtension(tagcodec.FormatMP4))
	assert.Equal(t, ".ape", formatExtension(tagcodec.FormatAPE))
	assert.Equal(t, "", formatExtension(tagcodec.FormatUnknown))
}

func TestMimeTypeForExt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "image/png", mimeTypeForExt(".png"))
	assert.Equal(t, "image/jpeg", mimeTypeForExt(".jpg"))
}

func TestUnmatchedTracksExcludesAssignmentValues(t *testing.T) {
	t.Parallel()

	matchedID := uuid.New()
	extraID := uuid.New()

	tracks := []model.Track{
		{ID: matchedID, Number: 1},
		{ID: extraID, Number: 2},
	}

	match := model.ReleaseMatch{Assignment: map[int]uuid.UUID{0: matchedID}}

	unmatched := unmatchedTracks(tracks, match)

	assert.Len(t, unmatched, 1)
	assert.Equal(t, extraID, unmatched[0].ID)
}

func TestUnmatchedTracksAllMatchedReturnsEmpty(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	tracks := []model.Track{{ID: id}}
	match := model.ReleaseMatch{Assignment: map[int]uuid.UUID{0: id}}

	assert.Empty(t, unmatchedTracks(tracks, match))
}
