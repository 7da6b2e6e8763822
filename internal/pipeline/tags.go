package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// relationTagKeys maps a recognized ArtistTrackRelationType to the tag key
// its credited artist's name is folded into, per §3's relation enumeration.
// Relations with no listed entry (RelationOther, and any relation type this
// table doesn't recognize) contribute nothing to the tag map.
var relationTagKeys = map[model.ArtistTrackRelationType]tagkey.Key{
	model.RelationEngineer:  tagkey.Engineer,
	model.RelationProducer:  tagkey.Producer,
	model.RelationMix:       tagkey.Mixer,
	model.RelationPerformer: tagkey.Performer,
	model.RelationLyricist:  tagkey.Lyricist,
	model.RelationWriter:    tagkey.Writer,
	model.RelationComposer:  tagkey.Composer,
}

func artistByID(artists []model.Artist, id uuid.UUID) (model.Artist, bool) {
	for _, a := range artists {
		if a.ID == id {
			return a, true
		}
	}

	return model.Artist{}, false
}

func creditByID(credits []model.ArtistCredit, id string) (model.ArtistCredit, bool) {
	for _, c := range credits {
		if c.ID == id {
			return c, true
		}
	}

	return model.ArtistCredit{}, false
}

// joinArtistCredits renders a set of artist-credit ids the way MusicBrainz
// itself does: each credited artist's name immediately followed by its own
// join phrase, with no separator inserted besides the phrase.
func joinArtistCredits(imp *model.Import, creditIDs []string) string {
	var b strings.Builder

	for _, id := range creditIDs {
		credit, ok := creditByID(imp.ArtistCredits, id)
		if !ok {
			continue
		}

		artist, ok := artistByID(imp.Artists, credit.ArtistID)
		if !ok {
			continue
		}

		b.WriteString(artist.Name)
		b.WriteString(credit.JoinPhrase)
	}

	return b.String()
}

func creditIDsForRelease(imp *model.Import, releaseID uuid.UUID) []string {
	var ids []string

	for _, link := range imp.ArtistCreditReleases {
		if link.ReleaseID == releaseID {
			ids = append(ids, link.ArtistCreditID)
		}
	}

	return ids
}

func creditIDsForTrack(imp *model.Import, trackID uuid.UUID) []string {
	var ids []string

	for _, link := range imp.ArtistCreditTracks {
		if link.TrackID == trackID {
			ids = append(ids, link.ArtistCreditID)
		}
	}

	return ids
}

func mediumFor(mediums []model.Medium, mediumID uuid.UUID) (model.Medium, bool) {
	for _, m := range mediums {
		if m.ID == mediumID {
			return m, true
		}
	}

	return model.Medium{}, false
}

func genreNamesForTrack(imp *model.Import, trackID uuid.UUID) []string {
	type weighted struct {
		name  string
		count int
	}

	var genres []weighted

	for _, link := range imp.GenreTracks {
		if link.TrackID != trackID {
			continue
		}

		for _, g := range imp.Genres {
			if g.ID == link.GenreID {
				genres = append(genres, weighted{name: g.Name, count: link.Count})
			}
		}
	}

	sort.SliceStable(genres, func(i, j int) bool { return genres[i].count > genres[j].count })

	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.name
	}

	return names
}

// releaseTags builds the release-level tag map for release, per §3's tag
// vocabulary: title, artist credit, dates, classification fields.
func releaseTags(imp *model.Import, release model.Release, mediums []model.Medium) map[tagkey.Key][]string {
	tags := map[tagkey.Key][]string{
		tagkey.Album:                 {release.Title},
		tagkey.AlbumArtist:           {joinArtistCredits(imp, creditIDsForRelease(imp, release.ID))},
		tagkey.MusicBrainzReleaseID:  {release.ID.String()},
		tagkey.TotalDiscs:            {strconv.Itoa(len(mediums))},
		tagkey.ReleaseType:           nonEmpty(release.ReleaseType),
		tagkey.ReleaseStatus:         nonEmpty(release.Status),
		tagkey.ReleaseCountry:        nonEmpty(release.Country),
		tagkey.RecordLabel:           nonEmpty(release.Label),
		tagkey.CatalogNumber:         nonEmpty(release.CatalogNumber),
		tagkey.Script:                nonEmpty(release.Script),
		tagkey.ReleaseYear:           nonEmptyInt(release.Year),
		tagkey.ReleaseMonth:          nonEmptyInt(release.Month),
		tagkey.ReleaseDay:            nonEmptyInt(release.Day),
		tagkey.OriginalReleaseYear:   nonEmptyInt(release.OriginalYear),
		tagkey.OriginalReleaseMonth:  nonEmptyInt(release.OriginalMonth),
		tagkey.OriginalReleaseDay:    nonEmptyInt(release.OriginalDay),
	}

	if release.ReleaseGroupID != nil {
		tags[tagkey.MusicBrainzReleaseGroupID] = []string{release.ReleaseGroupID.String()}
	}

	return tags
}

// combinedTags builds the release tags plus track-level fields, per §4.9's
// `tags_from_combination`: the tag map `apply-track` writes into the file.
func combinedTags(imp *model.Import, release model.Release, mediums []model.Medium, track model.Track) map[tagkey.Key][]string {
	tags := releaseTags(imp, release, mediums)

	tags[tagkey.TrackTitle] = []string{track.Title}
	tags[tagkey.TrackNumber] = []string{strconv.Itoa(track.Number)}
	tags[tagkey.MusicBrainzRecordingID] = []string{track.RecordingID.String()}

	artists := joinArtistCredits(imp, creditIDsForTrack(imp, track.ID))
	if artists != "" {
		tags[tagkey.Artist] = []string{artists}
	}

	if track.LengthMS > 0 {
		tags[tagkey.Duration] = []string{strconv.Itoa(track.LengthMS / 1000)}
	}

	if medium, ok := mediumFor(mediums, track.MediumID); ok {
		tags[tagkey.DiscNumber] = []string{strconv.Itoa(medium.Position)}
		tags[tagkey.TotalTracks] = []string{strconv.Itoa(medium.Tracks)}
	}

	if genres := genreNamesForTrack(imp, track.ID); len(genres) > 0 {
		tags[tagkey.Genre] = genres
	}

	roleValues := map[tagkey.Key][]string{}

	for _, rel := range imp.ArtistTrackRelations {
		if rel.TrackID != track.ID {
			continue
		}

		key, ok := relationTagKeys[rel.RelationType]
		if !ok {
			continue
		}

		artist, ok := artistByID(imp.Artists, rel.ArtistID)
		if !ok {
			continue
		}

		roleValues[key] = append(roleValues[key], artist.Name)
	}

	for key, values := range roleValues {
		tags[key] = values
	}

	return tags
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}

	return []string{s}
}

func nonEmptyInt(v *int) []string {
	if v == nil {
		return nil
	}

	return []string{strconv.Itoa(*v)}
}
