package musicbrainz

// The structs below mirror the JSON schema MusicBrainz's web service
// returns for `/release` search and lookup, trimmed to the fields §4.4.1's
// expansion rules need. Unknown fields are ignored rather than rejected:
// the schema is large and only partially documented, and MusicBrainz adds
// fields over time.

type mbReleaseSearch struct {
	Created  string       `json:"created"`
	Count    int64        `json:"count"`
	Offset   int64        `json:"offset"`
	Releases []mbRelease  `json:"releases"`
}

type mbRelease struct {
	ID                string             `json:"id"`
	Title             string             `json:"title"`
	Status            string             `json:"status"`
	ASIN              string             `json:"asin"`
	Date              string             `json:"date"`
	Country           string             `json:"country"`
	TrackCount        int                `json:"track-count"`
	LabelInfo         []mbLabelInfo      `json:"label-info"`
	ReleaseGroup      *mbReleaseGroup    `json:"release-group"`
	ArtistCredit      []mbArtistCredit   `json:"artist-credit"`
	Media             []mbMedium         `json:"media"`
	TextRepresentation *mbTextRepresentation `json:"text-representation"`
}

type mbLabelInfo struct {
	CatalogNumber string   `json:"catalog-number"`
	Label         *mbLabel `json:"label"`
}

type mbLabel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type mbReleaseGroup struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Disambiguation    string `json:"disambiguation"`
	PrimaryType       string `json:"primary-type"`
	FirstReleaseDate  string `json:"first-release-date"`
}

type mbArtistCredit struct {
	Name       string   `json:"name"`
	JoinPhrase string   `json:"joinphrase"`
	Artist     mbArtist `json:"artist"`
}

type mbArtist struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SortName       string `json:"sort-name"`
	Disambiguation string `json:"disambiguation"`
	TypeID         string `json:"type-id"`
	Type           string `json:"type"`
}

type mbTextRepresentation struct {
	Language string `json:"language"`
	Script   string `json:"script"`
}

type mbMedium struct {
	ID          string    `json:"id"`
	Position    int       `json:"position"`
	TrackOffset int       `json:"track-offset"`
	TrackCount  int       `json:"track-count"`
	Format      string    `json:"format"`
	Tracks      []mbTrack `json:"tracks"`
}

type mbTrack struct {
	ID        string      `json:"id"`
	Number    string      `json:"number"`
	Position  int         `json:"position"`
	Length    *int        `json:"length"`
	Title     string      `json:"title"`
	Recording mbRecording `json:"recording"`
}

type mbRecording struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Disambiguation   string           `json:"disambiguation"`
	Length           *int             `json:"length"`
	Video            bool             `json:"video"`
	FirstReleaseDate string           `json:"first-release-date"`
	ArtistCredit     []mbArtistCredit `json:"artist-credit"`
	Genres           []mbGenre        `json:"genres"`
	Relations        []mbRelation     `json:"relations"`
}

type mbGenre struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Disambiguation string `json:"disambiguation"`
	Count          int    `json:"count"`
}

type mbRelation struct {
	Type       string     `json:"type"`
	Attributes []string   `json:"attributes"`
	Artist     *mbArtist  `json:"artist"`
	Work       *mbWork    `json:"work"`
}

type mbWork struct {
	Relations []mbRelation `json:"relations"`
}
