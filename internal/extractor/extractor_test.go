package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// fakeTrack is an in-memory tagReader for extractor tests.
type fakeTrack struct {
	tags map[tagkey.Key][]string
	path string
}

func (f *fakeTrack) GetTag(key tagkey.Key) []string {
	return f.tags[key]
}

func (f *fakeTrack) Path() string {
	return f.path
}

func track(tags map[tagkey.Key][]string) *fakeTrack {
	return &fakeTrack{tags: tags}
}

func toReaders(tracks ...*fakeTrack) []tagReader {
	readers := make([]tagReader, len(tracks))
	for i, t := range tracks {
		readers[i] = t
	}

	return readers
}

func TestExtractReleaseMajorityAgreement(t *testing.T) {
	t.Parallel()

	handles := toReaders(
		track(map[tagkey.Key][]string{
			tagkey.Album:       {"Test Album"},
			tagkey.AlbumArtist: {"The Artist"},
			tagkey.ReleaseYear: {"2024"},
		}),
		track(map[tagkey.Key][]string{
			tagkey.Album:       {"Test Album"},
			tagkey.AlbumArtist: {"The Artist"},
			tagkey.ReleaseYear: {"2024"},
		}),
	)

	release := ExtractRelease(context.Background(), handles)

	assert.Equal(t, "Test Album", release.Title)
	assert.Equal(t, []string{"The Artist"}, release.Artists)
	requireNotNilInt(t, release.Year, 2024)
}

func TestExtractReleaseDisagreementPicksFirst(t *testing.T) {
	t.Parallel()

	handles := toReaders(
		track(map[tagkey.Key][]string{tagkey.Album: {"First Seen Title"}}),
		track(map[tagkey.Key][]string{tagkey.Album: {"Different Title"}}),
	)

	release := ExtractRelease(context.Background(), handles)
	assert.Equal(t, "First Seen Title", release.Title)
}

func TestExtractReleaseMissingTitleFallsBackToUnknown(t *testing.T) {
	t.Parallel()

	release := ExtractRelease(context.Background(), toReaders(track(nil)))
	assert.Equal(t, model.UnknownTitle, release.Title)
	assert.Empty(t, release.Artists)
}

func TestExtractReleaseArtistsPrefersAlbumArtist(t *testing.T) {
	t.Parallel()

	handles := toReaders(
		track(map[tagkey.Key][]string{
			tagkey.AlbumArtist: {"Album Artist"},
			tagkey.Artist:      {"Track Artist"},
		}),
	)

	release := ExtractRelease(context.Background(), handles)
	assert.Equal(t, []string{"Album Artist"}, release.Artists)
}

func TestExtractReleaseArtistsFallsBackToArtistUnionArtists(t *testing.T) {
	t.Parallel()

	handles := toReaders(
		track(map[tagkey.Key][]string{
			tagkey.Artist:  {"Solo Artist"},
			tagkey.Artists: {"Solo Artist", "Featured Artist"},
		}),
	)

	release := ExtractRelease(context.Background(), handles)
	assert.ElementsMatch(t, []string{"Solo Artist", "Featured Artist"}, release.Artists)
}

func TestExtractTrackMissingTitleFallsBackToUnknown(t *testing.T) {
	t.Parallel()

	trackModel := ExtractTrack(context.Background(), track(nil))
	assert.Equal(t, model.UnknownTitle, trackModel.Title)
	assert.Empty(t, trackModel.Artists)
}

func TestExtractTrackParsesNumericFields(t *testing.T) {
	t.Parallel()

	trackModel := ExtractTrack(context.Background(), track(map[tagkey.Key][]string{
		tagkey.TrackTitle:  {"A Track"},
		tagkey.TrackNumber: {"7"},
		tagkey.DiscNumber:  {"1"},
		tagkey.Duration:    {"215000"},
	}))

	requireNotNilInt(t, trackModel.Number, 7)
	requireNotNilInt(t, trackModel.Disc, 1)
	requireNotNilInt(t, trackModel.Length, 215000)
}

func TestExtractTrackNonNumericFieldIsOmitted(t *testing.T) {
	t.Parallel()

	trackModel := ExtractTrack(context.Background(), track(map[tagkey.Key][]string{
		tagkey.TrackNumber: {"not a number"},
	}))

	assert.Nil(t, trackModel.Number)
}

func requireNotNilInt(t *testing.T, got *int, want int) {
	t.Helper()

	if got == nil {
		t.Fatalf("expected %d, got nil", want)
		return
	}

	assert.Equal(t, want, *got)
}
