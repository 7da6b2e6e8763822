package cover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

type deezerResponse struct {
	Data []deezerAlbum `json:"data"`
}

type deezerAlbum struct {
	Title       string       `json:"title"`
	CoverSmall  string       `json:"cover_small"`
	CoverMedium string       `json:"cover_medium"`
	CoverBig    string       `json:"cover_big"`
	CoverXL     string       `json:"cover_xl"`
	Artist      deezerArtist `json:"artist"`
}

type deezerArtist struct {
	Name string `json:"name"`
}

// deezerCandidateSizes pairs each of Deezer's fixed cover fields with its
// known pixel dimensions, largest first.
var deezerCandidateSizes = []struct {
	field string
	size  int
}{
	{"cover_xl", 1000},
	{"cover_big", 500},
	{"cover_medium", 250},
	{"cover_small", 56},
}

// deezerProvider queries Deezer's album search API. Its query/response
// shape follows the same pattern as the iTunes provider (spec.md §4.5),
// grounded on itunes.go: a term-based search that returns a list of albums,
// each carrying fixed-size cover URLs (no substitution or probing needed,
// since Deezer serves every size directly).
const deezerBaseURL = "https://api.deezer.com/search/album"

type deezerProvider struct {
	httpClient *http.Client
	baseURL    string
}

func newDeezerProvider(httpClient *http.Client) *deezerProvider {
	return &deezerProvider{httpClient: httpClient, baseURL: deezerBaseURL}
}

func (p *deezerProvider) Search(ctx context.Context, release Release) ([]model.CoverCandidate, error) {
	term := strings.TrimSpace(release.JoinedArtists() + " " + release.Title)

	query := url.Values{}
	query.Set("q", term)

	requestURL := p.baseURL + "?" + query.Encode()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("deezer: build request: %w", err)
	}

	response, err := p.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("deezer: request: %w", err)
	}
	defer response.Body.Close() //nolint:errcheck // best-effort close on a read-only GET.

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("deezer: unexpected status %d", response.StatusCode)
	}

	var parsed deezerResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("deezer: decode response: %w", err)
	}

	var candidates []model.CoverCandidate

	for _, album := range parsed.Data {
		for _, entry := range deezerCandidateSizes {
			coverURL := deezerCoverURL(album, entry.field)
			if coverURL == "" {
				continue
			}

			candidates = append(candidates, model.CoverCandidate{
				Provider: ProviderDeezer,
				Urls:     []string{coverURL},
				Width:    entry.size,
				Height:   entry.size,
				Title:    album.Title,
				Artist:   album.Artist.Name,
			})
		}
	}

	return candidates, nil
}

func deezerCoverURL(album deezerAlbum, field string) string {
	switch field {
	case "cover_xl":
		return album.CoverXL
	case "cover_big":
		return album.CoverBig
	case "cover_medium":
		return album.CoverMedium
	case "cover_small":
		return album.CoverSmall
	default:
		return ""
	}
}
