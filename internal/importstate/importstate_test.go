package importstate

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

func sampleImport(t *testing.T) *model.Import {
	t.Helper()

	releaseID := uuid.New()
	trackID := uuid.New()

	return &model.Import{
		ID:        uuid.New(),
		Directory: "/music/incoming/abbey road",
		SourceRelease: model.InternalRelease{
			Title:  "Abbey Road",
			Tracks: 17,
		},
		SourceTracks: []model.InternalTrack{
			{Title: "Come Together"},
			{Title: "Something"},
		},
		Releases: []model.Release{{ID: releaseID, Title: "Abbey Road"}},
		Tracks:   []model.Track{{ID: trackID, Title: "Come Together"}},
		Covers: []model.CoverCandidate{
			{Provider: "itunes", Urls: []string{"https://example.com/cover.jpg"}, Width: 600, Height: 600},
		},
		ReleaseMatches: map[uuid.UUID]model.ReleaseMatch{
			releaseID: {Score: 42, Assignment: map[int]uuid.UUID{0: trackID}},
		},
		CoverRatings: []float64{0.87},
	}
}

func TestMarshalColumnsRoundTripsThroughUnmarshal(t *testing.T) {
	t.Parallel()

	original := sampleImport(t)

	cols, err := marshalColumns(original)
	require.NoError(t, err)

	var restored model.Import
	require.NoError(t, cols.unmarshalInto(&restored))

	assert.Equal(t, original.SourceRelease, restored.SourceRelease)
	assert.Equal(t, original.SourceTracks, restored.SourceTracks)
	assert.Equal(t, original.Releases, restored.Releases)
	assert.Equal(t, original.Tracks, restored.Tracks)
	assert.Equal(t, original.Covers, restored.Covers)
	assert.Equal(t, original.ReleaseMatches, restored.ReleaseMatches)
	assert.Equal(t, original.CoverRatings, restored.CoverRatings)
}

func TestUnmarshalIntoLeavesZeroValueOnEmptyColumn(t *testing.T) {
	t.Parallel()

	cols := marshaledColumns{}

	var restored model.Import
	require.NoError(t, cols.unmarshalInto(&restored))

	assert.Nil(t, restored.Releases)
	assert.Nil(t, restored.ReleaseMatches)
}

func TestReleaseMatchesSurviveUUIDMapKeyEncoding(t *testing.T) {
	t.Parallel()

	releaseID := uuid.New()
	trackID := uuid.New()

	imp := &model.Import{
		ReleaseMatches: map[uuid.UUID]model.ReleaseMatch{
			releaseID: {Score: 7, Assignment: map[int]uuid.UUID{0: trackID, 1: trackID}},
		},
	}

	cols, err := marshalColumns(imp)
	require.NoError(t, err)

	var restored model.Import
	require.NoError(t, cols.unmarshalInto(&restored))

	require.Contains(t, restored.ReleaseMatches, releaseID)
	assert.Equal(t, 7, restored.ReleaseMatches[releaseID].Score)
	assert.Equal(t, trackID, restored.ReleaseMatches[releaseID].Assignment[0])
	assert.Equal(t, trackID, restored.ReleaseMatches[releaseID].Assignment[1])
}
