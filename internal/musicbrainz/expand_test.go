package musicbrainz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

func TestExpandBuildsArtistCreditReleaseAndMedium(t *testing.T) {
	t.Parallel()

	release := mbRelease{
		ID:    "11111111-1111-1111-1111-111111111111",
		Title: "Bar",
		ArtistCredit: []mbArtistCredit{
			{Name: "Foo", JoinPhrase: "", Artist: mbArtist{ID: "22222222-2222-2222-2222-222222222222", Name: "Foo", SortName: "Foo"}},
		},
		ReleaseGroup: &mbReleaseGroup{ID: "33333333-3333-3333-3333-333333333333", PrimaryType: "Album", FirstReleaseDate: "1999-05"},
		Date:         "2005-06-07",
		Media: []mbMedium{
			{Position: 1, TrackCount: 1, Format: "CD"},
		},
	}

	e := expand(release)

	require.Len(t, e.Artists, 1)
	assert.Equal(t, "Foo", e.Artists[0].Name)

	require.Len(t, e.ArtistCredits, 1)
	assert.Equal(t, model.NewArtistCreditID(e.Artists[0].ID, ""), e.ArtistCredits[0].ID)

	require.Len(t, e.ArtistCreditReleases, 1)
	assert.Equal(t, e.Release.ID, e.ArtistCreditReleases[0].ReleaseID)

	assert.Equal(t, "album", e.Release.ReleaseType)
	require.NotNil(t, e.Release.Year)
	assert.Equal(t, 2005, *e.Release.Year)
	require.NotNil(t, e.Release.OriginalYear)
	assert.Equal(t, 1999, *e.Release.OriginalYear)

	require.Len(t, e.Mediums, 1)
	assert.Equal(t, e.Release.ID, e.Mediums[0].ReleaseID)
	assert.NotEqual(t, [16]byte{}, [16]byte(e.Mediums[0].ID))
}

func TestExpandGenresSortedByCountAndDedupedAcrossTracks(t *testing.T) {
	t.Parallel()

	release := mbRelease{
		ID: "11111111-1111-1111-1111-111111111111",
		Media: []mbMedium{
			{
				Tracks: []mbTrack{
					{
						ID:       "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa",
						Position: 1,
						Recording: mbRecording{
							ID: "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb",
							Genres: []mbGenre{
								{Name: "rock", Disambiguation: "rock", Count: 5},
								{Name: "post-rock", Disambiguation: "post-rock", Count: 1},
							},
						},
					},
					{
						ID:       "cccccccc-cccc-cccc-cccc-cccccccccccc",
						Position: 2,
						Recording: mbRecording{
							ID: "dddddddd-dddd-dddd-dddd-dddddddddddd",
							Genres: []mbGenre{
								{Name: "rock", Disambiguation: "rock", Count: 9},
							},
						},
					},
				},
			},
		},
	}

	e := expand(release)

	require.Len(t, e.GenreTracks, 3)
	// First track's genres come back sorted ascending by count: post-rock(1) before rock(5).
	assert.Equal(t, model.NewGenreID("post-rock"), e.GenreTracks[0].GenreID)
	assert.Equal(t, model.NewGenreID("rock"), e.GenreTracks[1].GenreID)

	require.Len(t, e.Genres, 2)
	require.Len(t, e.GenreReleases, 2)

	seen := map[string]bool{}
	for _, g := range e.Genres {
		seen[g.Name] = true
	}

	assert.True(t, seen["rock"])
	assert.True(t, seen["post-rock"])
}

func TestExpandRelationsIncludesWorkRelationsViaPerformance(t *testing.T) {
	t.Parallel()

	composer := &mbArtist{ID: "11111111-1111-1111-1111-111111111111", Name: "Composer"}
	performer := &mbArtist{ID: "22222222-2222-2222-2222-222222222222", Name: "Performer"}

	relations := []mbRelation{
		{Type: "performer", Artist: performer},
		{
			Type: "performance",
			Work: &mbWork{
				Relations: []mbRelation{
					{Type: "composer", Artist: composer},
				},
			},
		},
	}

	expanded := expandRelations(relations)

	require.Len(t, expanded, 3)
	assert.Equal(t, "composer", expanded[2].Type)
}

func TestRelationTypeFoldsUnrecognizedIntoOther(t *testing.T) {
	t.Parallel()

	assert.Equal(t, model.RelationEngineer, relationType("engineer"))
	assert.Equal(t, model.RelationOther, relationType("remixer"))
}

func TestParseDatePartial(t *testing.T) {
	t.Parallel()

	year, month, day := parseDate("2001")
	require.NotNil(t, year)
	assert.Equal(t, 2001, *year)
	assert.Nil(t, month)
	assert.Nil(t, day)

	year, month, day = parseDate("2001-02-03")
	require.NotNil(t, year)
	require.NotNil(t, month)
	require.NotNil(t, day)
	assert.Equal(t, 2001, *year)
	assert.Equal(t, 2, *month)
	assert.Equal(t, 3, *day)

	year, month, day = parseDate("")
	assert.Nil(t, year)
	assert.Nil(t, month)
	assert.Nil(t, day)
}

func TestParseUUIDOrNewFallsBackOnMalformed(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t, parseUUIDOrNew(""), parseUUIDOrNew(""))
	assert.NotEqual(t, parseUUIDOrNew("not-a-uuid"), parseUUIDOrNew("not-a-uuid"))
}
