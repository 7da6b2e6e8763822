package pipeline

import "github.com/google/uuid"

// importPayload is the task payload shared by every stage that only needs
// to know which Import to load: rank-releases, fetch-covers, rank-covers.
type importPayload struct {
	ImportID uuid.UUID `json:"import_id"`
}

// fetchReleasePayload is fetch-release's task payload, per spec.md §4.9:
// "(import_id, release_id)". ReleaseID is the raw MusicBrainz MBID string
// returned by search, not yet parsed into the catalog's uuid.UUID.
type fetchReleasePayload struct {
	ImportID  uuid.UUID `json:"import_id"`
	ReleaseID string    `json:"release_id"`
}

// applyTrackPayload is apply-track's task payload, per spec.md §4.9:
// "{ import_id, release_id, track_id, source:int, cover_path? }".
type applyTrackPayload struct {
	ImportID  uuid.UUID `json:"import_id"`
	ReleaseID uuid.UUID `json:"release_id"`
	TrackID   uuid.UUID `json:"track_id"`
	Source    int       `json:"source"`
	CoverPath *string   `json:"cover_path,omitempty"`
}
