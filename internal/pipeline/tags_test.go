package pipeline

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

func sampleTaggedImport() (*model.Import, model.Release, []model.Medium, model.Track) {
	artistID := uuid.New()
	creditID := model.NewArtistCreditID(artistID, "")
	releaseID := uuid.New()
	mediumID := uuid.New()
	trackID := uuid.New()

	imp := &model.Import{
		Artists:       []model.Artist{{ID: artistID, Name: "The Beatles"}},
		ArtistCredits: []model.ArtistCredit{{ID: creditID, ArtistID: artistID}},
		Releases:      []model.Release{{ID: releaseID, Title: "Abbey Road"}},
		Mediums:       []model.Medium{{ID: mediumID, ReleaseID: releaseID, Position: 1, Tracks: 17}},
		Tracks: []model.Track{
			{ID: trackID, MediumID: mediumID, Title: "Come Together", Number: 1, LengthMS: 259000},
		},
		ArtistCreditReleases: []model.ArtistCreditRelease{{ArtistCreditID: creditID, ReleaseID: releaseID}},
		ArtistCreditTracks:   []model.ArtistCreditTrack{{ArtistCreditID: creditID, TrackID: trackID}},
		ArtistTrackRelations: []model.ArtistTrackRelation{
			{ArtistID: artistID, TrackID: trackID, RelationType: model.RelationProducer},
		},
	}

	return imp, imp.Releases[0], imp.Mediums, imp.Tracks[0]
}

func TestReleaseTagsBuildsAlbumAndArtist(t *testing.T) {
	t.Parallel()

	imp, release, mediums, _ := sampleTaggedImport()

	tags := releaseTags(imp, release, mediums)

	assert.Equal(t, []string{"Abbey Road"}, tags[tagkey.Album])
	assert.Equal(t, []string{"The Beatles"}, tags[tagkey.AlbumArtist])
	assert.Equal(t, []string{"1"}, tags[tagkey.TotalDiscs])
}

func TestCombinedTagsAddsTrackAndRoleFields(t *testing.T) {
	t.Parallel()

	imp, release, mediums, track := sampleTaggedImport()

	tags := combinedTags(imp, release, mediums, track)

	assert.Equal(t, []string{"Come Together"}, tags[tagkey.TrackTitle])
	assert.Equal(t, []string{"1"}, tags[tagkey.TrackNumber])
	assert.Equal(t, []string{"259"}, tags[tagkey.Duration])
	assert.Equal(t, []string{"The Beatles"}, tags[tagkey.Artist])
	assert.Equal(t, []string{"The Beatles"}, tags[tagkey.Producer])
}

func TestJoinArtistCreditsAppliesJoinPhrase(t *testing.T) {
	t.Parallel()

	artistA := model.Artist{ID: uuid.New(), Name: "Artist A"}
	artistB := model.Artist{ID: uuid.New(), Name: "Artist B"}
	creditA := model.ArtistCredit{ID: model.NewArtistCreditID(artistA.ID, " & "), ArtistID: artistA.ID, JoinPhrase: " & "}
	creditB := model.ArtistCredit{ID: model.NewArtistCreditID(artistB.ID, ""), ArtistID: artistB.ID}

	imp := &model.Import{
		Artists:       []model.Artist{artistA, artistB},
		ArtistCredits: []model.ArtistCredit{creditA, creditB},
	}

	joined := joinArtistCredits(imp, []string{creditA.ID, creditB.ID})

	assert.Equal(t, "Artist A & Artist B", joined)
}

func TestGenreNamesForTrackOrdersByVoteCount(t *testing.T) {
	t.Parallel()

	trackID := uuid.New()
	rock := model.Genre{ID: "rock", Name: "Rock"}
	pop := model.Genre{ID: "pop", Name: "Pop"}

	imp := &model.Import{
		Genres: []model.Genre{rock, pop},
		GenreTracks: []model.GenreTrack{
			{GenreID: pop.ID, TrackID: trackID, Count: 3},
			{GenreID: rock.ID, TrackID: trackID, Count: 10},
		},
	}

	names := genreNamesForTrack(imp, trackID)

	assert.Equal(t, []string{"Rock", "Pop"}, names)
}
