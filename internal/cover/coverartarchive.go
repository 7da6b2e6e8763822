package cover

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

// coverArtArchiveResponse is the JSON shape of coverartarchive.org's
// per-release/release-group image listing.
type coverArtArchiveResponse struct {
	Images []coverArtArchiveImage `json:"images"`
}

type coverArtArchiveImage struct {
	Front      bool              `json:"front"`
	Thumbnails map[string]string `json:"thumbnails"`
}

// coverArtArchiveBaseURL is the Cover Art Archive's production root.
const coverArtArchiveBaseURL = "https://coverartarchive.org"

// coverArtArchiveProvider queries the Cover Art Archive, per spec.md §4.5:
// keep only front=true images, pick the largest numeric thumbnail size.
type coverArtArchiveProvider struct {
	httpClient      *http.Client
	useReleaseGroup bool
	baseURL         string
}

func newCoverArtArchiveProvider(httpClient *http.Client, useReleaseGroup bool) *coverArtArchiveProvider {
	return &coverArtArchiveProvider{
		httpClient:      httpClient,
		useReleaseGroup: useReleaseGroup,
		baseURL:         coverArtArchiveBaseURL,
	}
}

func (p *coverArtArchiveProvider) Search(ctx context.Context, release Release) ([]model.CoverCandidate, error) {
	entity := "release"
	id := release.ID

	// A null release_group_id falls back to the release id, per spec.md's
	// REDESIGN FLAGS note on the original's ambiguous behavior here.
	if p.useReleaseGroup {
		entity = "release-group"
		if release.ReleaseGroupID != nil {
			id = *release.ReleaseGroupID
		}
	}

	url := fmt.Sprintf("%s/%s/%s", p.baseURL, entity, id.String())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("cover_art_archive: build request: %w", err)
	}

	response, err := p.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("cover_art_archive: request: %w", err)
	}
	defer response.Body.Close() //nolint:errcheck // best-effort close on a read-only GET.

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("cover_art_archive: unexpected status %d", response.StatusCode)
	}

	var parsed coverArtArchiveResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("cover_art_archive: decode response: %w", err)
	}

	var candidates []model.CoverCandidate

	for _, img := range parsed.Images {
		if !img.Front {
			continue
		}

		size, thumbURL, ok := largestThumbnail(img.Thumbnails)
		if !ok {
			continue
		}

		candidates = append(candidates, model.CoverCandidate{
			Provider: ProviderCoverArtArchive,
			Urls:     []string{thumbURL},
			Width:    size,
			Height:   size,
			Title:    release.Title,
			Artist:   release.JoinedArtists(),
		})
	}

	return candidates, nil
}

// largestThumbnail picks the numerically-largest key in a thumbnails map
// whose keys are sizes as decimal strings (non-numeric keys like "large" and
// "small" are ignored, per spec.md §4.5).
func largestThumbnail(thumbnails map[string]string) (size int, url string, ok bool) {
	best := -1

	for key, value := range thumbnails {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}

		if n > best {
			best = n
			url = value
		}
	}

	if best < 0 {
		return 0, "", false
	}

	return best, url, true
}
