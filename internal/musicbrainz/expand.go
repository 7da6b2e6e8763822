package musicbrainz

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

// Expansion is the catalog entity tuple produced by expanding one fetched
// release document, per spec.md §4.4: "(artists, artist_credits, release,
// mediums, tracks, artist_track_relations, artist_credit_releases,
// artist_credit_tracks, genres, track_genres, release_genres)".
type Expansion struct {
	Artists              []model.Artist
	ArtistCredits        []model.ArtistCredit
	Release              model.Release
	Mediums              []model.Medium
	Tracks               []model.Track
	ArtistTrackRelations []model.ArtistTrackRelation
	ArtistCreditReleases []model.ArtistCreditRelease
	ArtistCreditTracks   []model.ArtistCreditTrack
	Genres               []model.Genre
	GenreTracks          []model.GenreTrack
	GenreReleases        []model.GenreRelease
}

// relationTypes is the closed mapping from MusicBrainz's raw relation type
// strings to ArtistTrackRelationType, per §3's enumeration. Anything not
// listed here folds into RelationOther.
var relationTypes = map[string]model.ArtistTrackRelationType{
	"engineer":    model.RelationEngineer,
	"instrument":  model.RelationInstrument,
	"performer":   model.RelationPerformer,
	"mix":         model.RelationMix,
	"producer":    model.RelationProducer,
	"vocal":       model.RelationVocal,
	"lyricist":    model.RelationLyricist,
	"writer":      model.RelationWriter,
	"composer":    model.RelationComposer,
	"performance": model.RelationPerformance,
}

func relationType(raw string) model.ArtistTrackRelationType {
	if t, ok := relationTypes[strings.ToLower(raw)]; ok {
		return t
	}

	return model.RelationOther
}

// expand turns one fetched release document into its catalog entity tuple.
func expand(r mbRelease) Expansion {
	releaseID := parseUUIDOrNew(r.ID)

	var (
		e            Expansion
		seenGenreID  = make(map[string]struct{})
		seenArtistID = make(map[string]struct{})
	)

	addArtist := func(a mbArtist) {
		id := parseUUIDOrNew(a.ID)
		if _, ok := seenArtistID[id.String()]; ok {
			return
		}

		seenArtistID[id.String()] = struct{}{}
		e.Artists = append(e.Artists, model.Artist{
			ID:       id,
			Name:     a.Name,
			SortName: a.SortName,
		})
	}

	for _, ac := range r.ArtistCredit {
		addArtist(ac.Artist)

		acID := artistCreditID(ac)
		e.ArtistCredits = append(e.ArtistCredits, model.ArtistCredit{
			ID:         acID,
			ArtistID:   parseUUIDOrNew(ac.Artist.ID),
			JoinPhrase: ac.JoinPhrase,
		})
		e.ArtistCreditReleases = append(e.ArtistCreditReleases, model.ArtistCreditRelease{
			ArtistCreditID: acID,
			ReleaseID:      releaseID,
		})
	}

	e.Release = expandRelease(r, releaseID)

	for _, m := range r.Media {
		mediumID := parseUUIDOrNew(m.ID)
		e.Mediums = append(e.Mediums, model.Medium{
			ID:          mediumID,
			ReleaseID:   releaseID,
			Position:    m.Position,
			Tracks:      m.TrackCount,
			TrackOffset: m.TrackOffset,
			Format:      m.Format,
		})

		for _, t := range m.Tracks {
			expandTrack(&e, t, mediumID, addArtist, seenGenreID)
		}
	}

	return e
}

func expandRelease(r mbRelease, releaseID uuid.UUID) model.Release {
	release := model.Release{
		ID:      releaseID,
		Title:   r.Title,
		ASIN:    r.ASIN,
		Country: r.Country,
		Status:  r.Status,
	}

	if r.ReleaseGroup != nil {
		groupID := parseUUIDOrNew(r.ReleaseGroup.ID)
		release.ReleaseGroupID = &groupID
		release.ReleaseType = strings.ToLower(r.ReleaseGroup.PrimaryType)
		release.OriginalYear, release.OriginalMonth, release.OriginalDay = parseDate(r.ReleaseGroup.FirstReleaseDate)
	}

	if len(r.LabelInfo) > 0 {
		release.CatalogNumber = r.LabelInfo[0].CatalogNumber
		if r.LabelInfo[0].Label != nil {
			release.Label = r.LabelInfo[0].Label.Name
		}
	}

	if r.TextRepresentation != nil {
		release.Script = r.TextRepresentation.Script
	}

	release.Year, release.Month, release.Day = parseDate(r.Date)

	return release
}

func expandTrack(
	e *Expansion,
	t mbTrack,
	mediumID uuid.UUID,
	addArtist func(mbArtist),
	seenGenreID map[string]struct{},
) {
	trackID := parseUUIDOrNew(t.ID)

	length := t.Length
	if length == nil {
		length = t.Recording.Length
	}

	lengthMS := 0
	if length != nil {
		lengthMS = *length
	}

	e.Tracks = append(e.Tracks, model.Track{
		ID:          trackID,
		MediumID:    mediumID,
		Title:       t.Title,
		LengthMS:    lengthMS,
		Number:      t.Position,
		RecordingID: parseUUIDOrNew(t.Recording.ID),
	})

	for _, ac := range t.Recording.ArtistCredit {
		addArtist(ac.Artist)

		acID := artistCreditID(ac)
		e.ArtistCredits = append(e.ArtistCredits, model.ArtistCredit{
			ID:         acID,
			ArtistID:   parseUUIDOrNew(ac.Artist.ID),
			JoinPhrase: ac.JoinPhrase,
		})
		e.ArtistCreditTracks = append(e.ArtistCreditTracks, model.ArtistCreditTrack{
			ArtistCreditID: acID,
			TrackID:        trackID,
		})
	}

	for _, rel := range expandRelations(t.Recording.Relations) {
		if rel.Artist == nil {
			continue
		}

		addArtist(*rel.Artist)
		e.ArtistTrackRelations = append(e.ArtistTrackRelations, model.ArtistTrackRelation{
			ArtistID:      parseUUIDOrNew(rel.Artist.ID),
			TrackID:       trackID,
			RelationType:  relationType(rel.Type),
			RelationValue: rel.Type,
		})
	}

	genres := append([]mbGenre(nil), t.Recording.Genres...)
	sort.SliceStable(genres, func(i, j int) bool { return genres[i].Count < genres[j].Count })

	for _, g := range genres {
		genreID := model.NewGenreID(g.Disambiguation)
		e.GenreTracks = append(e.GenreTracks, model.GenreTrack{
			GenreID: genreID,
			TrackID: trackID,
			Count:   g.Count,
		})

		if _, ok := seenGenreID[genreID]; ok {
			continue
		}

		seenGenreID[genreID] = struct{}{}
		e.Genres = append(e.Genres, model.Genre{
			ID:             genreID,
			Name:           g.Name,
			Disambiguation: g.Disambiguation,
		})
		e.GenreReleases = append(e.GenreReleases, model.GenreRelease{
			GenreID:   genreID,
			ReleaseID: e.Release.ID,
		})
	}
}

// expandRelations collects a recording's direct relations plus the
// relations of any work linked via a performance relation, per spec.md
// §4.4.1.
func expandRelations(relations []mbRelation) []mbRelation {
	all := append([]mbRelation(nil), relations...)

	for _, rel := range relations {
		if relationType(rel.Type) != model.RelationPerformance || rel.Work == nil {
			continue
		}

		all = append(all, rel.Work.Relations...)
	}

	return all
}

func artistCreditID(ac mbArtistCredit) string {
	return model.NewArtistCreditID(parseUUIDOrNew(ac.Artist.ID), ac.JoinPhrase)
}

// parseUUIDOrNew parses a MusicBrainz MBID, or assigns a fresh UUID when
// absent or malformed — the only non-determinism spec.md §4.4 permits,
// scoped to the current process.
func parseUUIDOrNew(raw string) uuid.UUID {
	if raw == "" {
		return uuid.New()
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.New()
	}

	return id
}

// parseDate parses MusicBrainz's partial-ISO-8601 date strings ("YYYY",
// "YYYY-MM", or "YYYY-MM-DD"), returning nil components for whatever the
// string doesn't specify.
func parseDate(raw string) (year, month, day *int) {
	parts := strings.Split(raw, "-")
	if raw == "" || len(parts) == 0 {
		return nil, nil, nil
	}

	if v, err := strconv.Atoi(parts[0]); err == nil {
		year = &v
	}

	if len(parts) > 1 {
		if v, err := strconv.Atoi(parts[1]); err == nil {
			month = &v
		}
	}

	if len(parts) > 2 {
		if v, err := strconv.Atoi(parts[2]); err == nil {
			day = &v
		}
	}

	return year, month, day
}
