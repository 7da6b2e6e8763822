// Package tagkey defines the closed, format-independent vocabulary of
// metadata fields that internal/tagcodec reads and writes, and the Picture
// type used to carry embedded cover art across tag formats.
package tagkey

// Key identifies a semantic metadata field, independent of the on-disk tag
// format that ultimately carries it. It is a closed enumeration: every
// field a tag codec can read or write has a named Key here.
type Key int

// The closed TagKey vocabulary.
const (
	// Identifiers.
	MusicBrainzRecordingID Key = iota + 1
	MusicBrainzReleaseID
	MusicBrainzReleaseGroupID
	MusicBrainzArtistID
	MusicBrainzTrackID
	MusicBrainzDiscID
	ASIN
	ISRC
	AcoustID

	// Titles.
	TrackTitle
	Album
	AlbumSortOrder
	TrackTitleSortOrder

	// People.
	Artist
	Artists
	AlbumArtist
	ArtistSortOrder
	AlbumArtistSortOrder
	Composer
	ComposerSortOrder
	Conductor
	Producer
	Engineer
	Mixer
	Performer
	Lyricist
	Writer
	Remixer
	Arranger
	MixDJ

	// Structure.
	DiscNumber
	TrackNumber
	TotalDiscs
	TotalTracks
	Media

	// Dates.
	ReleaseYear
	ReleaseMonth
	ReleaseDay
	OriginalReleaseYear
	OriginalReleaseMonth
	OriginalReleaseDay

	// Classification.
	Genre
	ReleaseType
	ReleaseStatus
	ReleaseCountry
	RecordLabel
	CatalogNumber
	Script
	Language

	// Technical.
	Duration
	BPM
	InitialKey
	ReplayGainTrackGain
	ReplayGainTrackPeak
	ReplayGainAlbumGain
	ReplayGainAlbumPeak
	EncodedBy
	EncoderSettings

	// Annotations.
	Comment
	Copyright
	Mood
	Grouping
	Lyrics
)

// names holds the human-readable spelling of each Key, used for logging and
// for the TXXX/freeform frame description a format falls back to when it has
// no dedicated frame for a key.
//
//nolint:gochecknoglobals // Immutable lookup table.
var names = map[Key]string{
	MusicBrainzRecordingID:   "MUSICBRAINZ_TRACKID",
	MusicBrainzReleaseID:     "MUSICBRAINZ_ALBUMID",
	MusicBrainzReleaseGroupID: "MUSICBRAINZ_RELEASEGROUPID",
	MusicBrainzArtistID:      "MUSICBRAINZ_ARTISTID",
	MusicBrainzTrackID:       "MUSICBRAINZ_RELEASETRACKID",
	MusicBrainzDiscID:        "MUSICBRAINZ_DISCID",
	ASIN:                     "ASIN",
	ISRC:                     "ISRC",
	AcoustID:                 "ACOUSTID_ID",

	TrackTitle:          "TITLE",
	Album:               "ALBUM",
	AlbumSortOrder:      "ALBUMSORT",
	TrackTitleSortOrder: "TITLESORT",

	Artist:               "ARTIST",
	Artists:               "ARTISTS",
	AlbumArtist:           "ALBUMARTIST",
	ArtistSortOrder:       "ARTISTSORT",
	AlbumArtistSortOrder:  "ALBUMARTISTSORT",
	Composer:              "COMPOSER",
	ComposerSortOrder:     "COMPOSERSORT",
	Conductor:             "CONDUCTOR",
	Producer:              "PRODUCER",
	Engineer:              "ENGINEER",
	Mixer:                 "MIXER",
	Performer:             "PERFORMER",
	Lyricist:              "LYRICIST",
	Writer:                "WRITER",
	Remixer:               "REMIXER",
	Arranger:              "ARRANGER",
	MixDJ:                 "DJMIXER",

	DiscNumber:  "DISCNUMBER",
	TrackNumber: "TRACKNUMBER",
	TotalDiscs:  "TOTALDISCS",
	TotalTracks: "TOTALTRACKS",
	Media:       "MEDIA",

	ReleaseYear:          "DATE",
	ReleaseMonth:         "RELEASEMONTH",
	ReleaseDay:           "RELEASEDAY",
	OriginalReleaseYear:  "ORIGINALDATE",
	OriginalReleaseMonth: "ORIGINALRELEASEMONTH",
	OriginalReleaseDay:   "ORIGINALRELEASEDAY",

	Genre:          "GENRE",
	ReleaseType:    "RELEASETYPE",
	ReleaseStatus:  "RELEASESTATUS",
	ReleaseCountry: "RELEASECOUNTRY",
	RecordLabel:    "LABEL",
	CatalogNumber:  "CATALOGNUMBER",
	Script:         "SCRIPT",
	Language:       "LANGUAGE",

	Duration:            "DURATION",
	BPM:                 "BPM",
	InitialKey:          "INITIALKEY",
	ReplayGainTrackGain: "REPLAYGAIN_TRACK_GAIN",
	ReplayGainTrackPeak: "REPLAYGAIN_TRACK_PEAK",
	ReplayGainAlbumGain: "REPLAYGAIN_ALBUM_GAIN",
	ReplayGainAlbumPeak: "REPLAYGAIN_ALBUM_PEAK",
	EncodedBy:           "ENCODEDBY",
	EncoderSettings:     "ENCODERSETTINGS",

	Comment:   "COMMENT",
	Copyright: "COPYRIGHT",
	Mood:      "MOOD",
	Grouping:  "GROUPING",
	Lyrics:    "LYRICS",
}

// String returns the canonical (Vorbis-comment-shaped) spelling of k, used as
// a format-neutral name in logs and as the TXXX/freeform description for
// formats with no dedicated frame.
func (k Key) String() string {
	if name, ok := names[k]; ok {
		return name
	}

	return "UNKNOWN"
}

// PictureType is the closed enumeration of ID3 APIC picture types, shared by
// every tag format that embeds pictures.
type PictureType uint8

// The 21 picture types defined by the ID3v2 APIC frame.
const (
	PictureTypeOther PictureType = iota
	PictureTypeFileIcon
	PictureTypeOtherFileIcon
	PictureTypeCoverFront
	PictureTypeCoverBack
	PictureTypeLeafletPage
	PictureTypeMedia
	PictureTypeLeadArtist
	PictureTypeArtist
	PictureTypeConductor
	PictureTypeBand
	PictureTypeComposer
	PictureTypeLyricist
	PictureTypeRecordingLocation
	PictureTypeDuringRecording
	PictureTypeDuringPerformance
	PictureTypeMovieScreenCapture
	PictureTypeColoredFish
	PictureTypeIllustration
	PictureTypeBandLogotype
	PictureTypePublisherLogotype
)

// Picture is an embedded image carried inside a tagged audio file.
type Picture struct {
	// MIMEType is the picture's MIME type, e.g. "image/jpeg".
	MIMEType string
	// Type classifies the picture's role (front cover, artist photo, etc).
	Type PictureType
	// Description is a free-text caption.
	Description string
	// Data is the raw encoded image bytes.
	Data []byte
}
