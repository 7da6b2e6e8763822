// Package model defines the catalog entities an import run produces and
// persists, plus the Import job record that tracks a single run's lifecycle.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// ArtistTrackRelationType is the closed enumeration of relation types an
// ArtistTrackRelation may carry. Unrecognized catalog relation types fold
// into Other, with the raw type string preserved as RelationValue.
type ArtistTrackRelationType string

// The closed set of recognized relation types.
const (
	RelationEngineer    ArtistTrackRelationType = "engineer"
	RelationInstrument  ArtistTrackRelationType = "instrument"
	RelationPerformer   ArtistTrackRelationType = "performer"
	RelationMix         ArtistTrackRelationType = "mix"
	RelationProducer    ArtistTrackRelationType = "producer"
	RelationVocal       ArtistTrackRelationType = "vocal"
	RelationLyricist    ArtistTrackRelationType = "lyricist"
	RelationWriter      ArtistTrackRelationType = "writer"
	RelationComposer    ArtistTrackRelationType = "composer"
	RelationPerformance ArtistTrackRelationType = "performance"
	RelationOther       ArtistTrackRelationType = "other"
)

// Artist is a catalog performer, composer, or other credited person.
type Artist struct {
	ID          uuid.UUID
	Name        string
	SortName    string
	Description string
}

// ArtistCredit attributes one artist to a release or track, with an optional
// join phrase used when rendering a multi-artist credit string. Its ID is
// deterministic from (ArtistID, JoinPhrase) so retries are idempotent.
type ArtistCredit struct {
	ID         string
	ArtistID   uuid.UUID
	JoinPhrase string
}

// NewArtistCreditID derives the deterministic ArtistCredit id for
// (artistID, joinPhrase), per spec invariant (b): id = artist_id + "-" + join_phrase.
func NewArtistCreditID(artistID uuid.UUID, joinPhrase string) string {
	return artistID.String() + "-" + joinPhrase
}

// Release is a catalog release (an album, EP, single, etc).
type Release struct {
	ID               uuid.UUID
	Title            string
	ReleaseGroupID   *uuid.UUID
	ReleaseType      string
	ASIN             string
	Country          string
	Label            string
	CatalogNumber    string
	Status           string
	Year, Month, Day *int
	OriginalYear     *int
	OriginalMonth    *int
	OriginalDay      *int
	Script           string
	Path             string
}

// Medium is one disc/side of a Release.
type Medium struct {
	ID          uuid.UUID
	ReleaseID   uuid.UUID
	Position    int
	Tracks      int
	TrackOffset int
	Format      string
}

// Track is a single recording placed on a Medium.
type Track struct {
	ID          uuid.UUID
	MediumID    uuid.UUID
	Title       string
	LengthMS    int
	Number      int
	RecordingID uuid.UUID
	Format      string
	Path        string
}

// Genre is a catalog genre tag, keyed by a hash of its disambiguation so
// the same (name, disambiguation) pair always resolves to the same row.
type Genre struct {
	ID             string
	Name           string
	Disambiguation string
}

// NewGenreID derives the deterministic Genre id, per spec invariant: sha256(disambiguation).
func NewGenreID(disambiguation string) string {
	sum := sha256.Sum256([]byte(disambiguation))
	return hex.EncodeToString(sum[:])
}

// Image is a stored cover art file, keyed by a hash of its canonical path so
// the same on-disk file always resolves to the same row. ContentHash is the
// sha256 of the raw encoded bytes; persistence also treats (ContentHash,
// Role) as a second, independent uniqueness constraint, per spec invariant:
// the same image content embedded under the same role never duplicates a row
// even when reached via a different path.
type Image struct {
	ID          string
	ContentHash string
	Role        string
	Format      string
	Description string
	Width       int
	Height      int
	Size        int
	Path        string
}

// NewImageContentHash derives the Image's content-based dedup key from its
// raw encoded bytes.
func NewImageContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewImageID derives the deterministic Image id, per spec invariant: sha256(path).
// path must already be canonical (absolute, NFC, host-normalized separators).
func NewImageID(path string) string {
	sum := sha256.Sum256([]byte(path))
	return hex.EncodeToString(sum[:])
}

// ArtistCreditRelease links an ArtistCredit to the Release it credits.
type ArtistCreditRelease struct {
	ArtistCreditID string
	ReleaseID      uuid.UUID
}

// ArtistCreditTrack links an ArtistCredit to the Track it credits.
type ArtistCreditTrack struct {
	ArtistCreditID string
	TrackID        uuid.UUID
}

// ArtistTrackRelation records one artist's role on one track.
type ArtistTrackRelation struct {
	ArtistID      uuid.UUID
	TrackID       uuid.UUID
	RelationType  ArtistTrackRelationType
	RelationValue string
}

// GenreTrack links a Genre to a Track with the catalog's vote count for it.
type GenreTrack struct {
	GenreID string
	TrackID uuid.UUID
	Count   int
}

// GenreRelease links a Genre to a Release.
type GenreRelease struct {
	GenreID   string
	ReleaseID uuid.UUID
}

// ImageRelease links an Image to the Release it is cover art for.
type ImageRelease struct {
	ImageID   string
	ReleaseID uuid.UUID
}

// CoverCandidate is one cover art option surfaced by a provider's search,
// before download. Urls holds one entry for a plain cover, or n² entries
// for an n×n mosaic tile grid that must be downloaded and composited.
type CoverCandidate struct {
	Provider string
	Urls     []string
	Width    int
	Height   int
	Title    string
	Artist   string
}

// InternalTrack is one locally-extracted track, before catalog matching.
// Path is the source file's location on disk and is never written to the
// database; it is how apply-track finds the file a candidate assignment
// refers to.
type InternalTrack struct {
	Title   string
	Artists []string
	Length  *int
	Disc    *int
	Number  *int
	Path    string
}

// InternalRelease is the consensus view of a folder of track files, before
// catalog matching.
type InternalRelease struct {
	Title            string
	Artists          []string
	Discs            *int
	Media            *string
	Tracks           int
	Country          *string
	Label            *string
	ReleaseType      *string
	Year, Month, Day *int
	OriginalYear     *int
	OriginalMonth    *int
	OriginalDay      *int
}

// UnknownTitle is substituted for a track or release with no extractable title.
const UnknownTitle = "(unknown title)"

// ReleaseMatch is one candidate release's score against the source tracks,
// and the optimal source-index to candidate-track-id assignment that
// produced it.
type ReleaseMatch struct {
	Score      int
	Assignment map[int]uuid.UUID
}

// Import is the persistent record of one import job, mutated only by
// pipeline stages under a database transaction and terminal once EndedAt is set.
type Import struct {
	ID        uuid.UUID
	Directory string

	SourceRelease InternalRelease
	SourceTracks  []InternalTrack

	Artists               []Artist
	ArtistCredits         []ArtistCredit
	Releases              []Release
	Mediums               []Medium
	Tracks                []Track
	ArtistTrackRelations  []ArtistTrackRelation
	ArtistCreditReleases  []ArtistCreditRelease
	ArtistCreditTracks    []ArtistCreditTrack
	Genres                []Genre
	GenreTracks           []GenreTrack
	GenreReleases         []GenreRelease
	Covers                []CoverCandidate

	ReleaseMatches map[uuid.UUID]ReleaseMatch
	CoverRatings   []float64

	SelectedRelease *uuid.UUID
	SelectedCover   *int

	StartedAt time.Time
	EndedAt   *time.Time
}

// Done reports whether the import has reached its terminal state.
func (i *Import) Done() bool {
	return i.EndedAt != nil
}
