package tagcodec

import "github.com/tempo-importer/tempo-importer/internal/tagkey"

// flacKeys maps each TagKey to the Vorbis comment field name(s) that carry
// it. Vorbis comments are natively multi-valued (repeated fields), so no
// separator is needed for this format. A TagKey mapping to more than one
// field is concatenated on Get and written to all of them on Set.
//
//nolint:gochecknoglobals // Immutable lookup table built once at init.
var flacKeys = map[tagkey.Key][]string{
	tagkey.MusicBrainzRecordingID:    {"MUSICBRAINZ_TRACKID"},
	tagkey.MusicBrainzReleaseID:      {"MUSICBRAINZ_ALBUMID"},
	tagkey.MusicBrainzReleaseGroupID: {"MUSICBRAINZ_RELEASEGROUPID"},
	tagkey.MusicBrainzArtistID:       {"MUSICBRAINZ_ARTISTID"},
	tagkey.MusicBrainzTrackID:        {"MUSICBRAINZ_RELEASETRACKID"},
	tagkey.MusicBrainzDiscID:         {"MUSICBRAINZ_DISCID"},
	tagkey.ASIN:                      {"ASIN"},
	tagkey.ISRC:                      {"ISRC"},
	tagkey.AcoustID:                  {"ACOUSTID_ID"},

	tagkey.TrackTitle:          {"TITLE"},
	tagkey.Album:               {"ALBUM"},
	tagkey.AlbumSortOrder:      {"ALBUMSORT"},
	tagkey.TrackTitleSortOrder: {"TITLESORT"},

	tagkey.Artist:              {"ARTIST"},
	tagkey.Artists:             {"ARTISTS"},
	tagkey.AlbumArtist:         {"ALBUMARTIST"},
	tagkey.ArtistSortOrder:     {"ARTISTSORT"},
	tagkey.AlbumArtistSortOrder: {"ALBUMARTISTSORT"},
	tagkey.Composer:            {"COMPOSER"},
	tagkey.ComposerSortOrder:   {"COMPOSERSORT"},
	tagkey.Conductor:           {"CONDUCTOR"},
	tagkey.Producer:            {"PRODUCER"},
	tagkey.Engineer:            {"ENGINEER"},
	tagkey.Mixer:               {"MIXER"},
	tagkey.Performer:           {"PERFORMER"},
	tagkey.Lyricist:            {"LYRICIST"},
	tagkey.Writer:              {"WRITER"},
	tagkey.Remixer:             {"REMIXER"},
	tagkey.Arranger:            {"ARRANGER"},
	tagkey.MixDJ:               {"DJMIXER"},

	tagkey.DiscNumber:  {"DISCNUMBER"},
	tagkey.TrackNumber: {"TRACKNUMBER"},
	tagkey.TotalDiscs:  {"TOTALDISCS", "DISCTOTAL"},
	tagkey.TotalTracks: {"TOTALTRACKS", "TRACKTOTAL"},
	tagkey.Media:       {"MEDIA"},

	tagkey.ReleaseYear:          {"DATE"},
	tagkey.ReleaseMonth:         {"RELEASEMONTH"},
	tagkey.ReleaseDay:           {"RELEASEDAY"},
	tagkey.OriginalReleaseYear:  {"ORIGINALDATE", "ORIGINALYEAR"},
	tagkey.OriginalReleaseMonth: {"ORIGINALRELEASEMONTH"},
	tagkey.OriginalReleaseDay:   {"ORIGINALRELEASEDAY"},

	tagkey.Genre:          {"GENRE"},
	tagkey.ReleaseType:    {"RELEASETYPE"},
	tagkey.ReleaseStatus:  {"RELEASESTATUS"},
	tagkey.ReleaseCountry: {"RELEASECOUNTRY"},
	tagkey.RecordLabel:    {"LABEL"},
	tagkey.CatalogNumber:  {"CATALOGNUMBER"},
	tagkey.Script:         {"SCRIPT"},
	tagkey.Language:       {"LANGUAGE"},

	tagkey.Duration:            {"DURATION"},
	tagkey.BPM:                 {"BPM"},
	tagkey.InitialKey:          {"INITIALKEY"},
	tagkey.ReplayGainTrackGain: {"REPLAYGAIN_TRACK_GAIN"},
	tagkey.ReplayGainTrackPeak: {"REPLAYGAIN_TRACK_PEAK"},
	tagkey.ReplayGainAlbumGain: {"REPLAYGAIN_ALBUM_GAIN"},
	tagkey.ReplayGainAlbumPeak: {"REPLAYGAIN_ALBUM_PEAK"},
	tagkey.EncodedBy:           {"ENCODEDBY"},
	tagkey.EncoderSettings:     {"ENCODERSETTINGS"},

	tagkey.Comment:   {"COMMENT"},
	tagkey.Copyright: {"COPYRIGHT"},
	tagkey.Mood:      {"MOOD"},
	tagkey.Grouping:  {"GROUPING"},
	tagkey.Lyrics:    {"LYRICS"},
}

// id3Keys maps each TagKey to a four-character ID3v2.4 frame id. Keys absent
// from this map are written as TXXX:<tagkey name> user-defined text frames
// instead (see id3.go), so every TagKey is representable in ID3 even without
// an explicit entry here. Two kinds of key are handled outside this map:
// MBID is carried by a UFID:http://musicbrainz.org frame rather than a text
// frame, and the id3RoleFrames keys are stored as TXXX:<role> frames.
//
//nolint:gochecknoglobals // Immutable lookup table built once at init.
var id3Keys = map[tagkey.Key]string{
	tagkey.TrackTitle:  "TIT2",
	tagkey.Artist:      "TPE1",
	tagkey.AlbumArtist:  "TPE2",
	tagkey.Album:       "TALB",
	tagkey.TrackNumber: "TRCK",
	tagkey.DiscNumber:  "TPOS",
	tagkey.Genre:       "TCON",
	tagkey.ISRC:        "TSRC",
	tagkey.ReleaseYear: "TDRC",
	tagkey.OriginalReleaseYear: "TDOR",
	tagkey.Composer:    "TCOM",
	tagkey.Copyright:   "TCOP",
	tagkey.EncodedBy:   "TENC",
	tagkey.BPM:         "TBPM",
	tagkey.Comment:     "COMM",
}

// id3MBIDFrame is the UFID owner identifier MusicBrainz recording ids are
// stored under.
const id3MBIDFrame = "http://musicbrainz.org"

// id3RoleFrames maps the involved-people-list roles onto their TIPL/TMCL
// sub-key, for TagKeys whose native ID3 home is a role-tagged list frame
// rather than a plain text frame.
//
//nolint:gochecknoglobals // Immutable lookup table built once at init.
var id3RoleFrames = map[tagkey.Key]string{
	tagkey.Producer:  "producer",
	tagkey.Engineer:  "engineer",
	tagkey.Mixer:     "mix",
	tagkey.Conductor: "instrument conductor",
	tagkey.Remixer:   "remixer",
	tagkey.MixDJ:     "DJ-mix",
}

// mp4Keys maps each TagKey to a four-byte iTunes atom name. Keys absent from
// this map fall back to a `----:com.apple.iTunes:<tagkey name>` freeform atom.
//
//nolint:gochecknoglobals // Immutable lookup table built once at init.
var mp4Keys = map[tagkey.Key]string{
	tagkey.TrackTitle:  "\xa9nam",
	tagkey.Artist:      "\xa9ART",
	tagkey.AlbumArtist: "aART",
	tagkey.Album:       "\xa9alb",
	tagkey.TrackNumber: "trkn",
	tagkey.DiscNumber:  "disk",
	tagkey.Genre:       "\xa9gen",
	tagkey.ReleaseYear: "\xa9day",
	tagkey.Comment:     "\xa9cmt",
	tagkey.Composer:    "\xa9wrt",
}

// apeKeys maps each TagKey to an upper/mixed-case APEv2 item key. Keys
// absent from this map are still written, using the TagKey's canonical
// name verbatim as the item key, since APEv2 item keys are free-form.
//
//nolint:gochecknoglobals // Immutable lookup table built once at init.
var apeKeys = map[tagkey.Key]string{
	tagkey.TrackTitle:  "Title",
	tagkey.Artist:      "Artist",
	tagkey.AlbumArtist: "Album Artist",
	tagkey.Album:       "Album",
	tagkey.TrackNumber: "Track",
	tagkey.DiscNumber:  "Disc",
	tagkey.Genre:       "Genre",
	tagkey.ReleaseYear: "Year",
	tagkey.Comment:     "Comment",
	tagkey.Composer:    "Composer",
}
