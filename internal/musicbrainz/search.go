package musicbrainz

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

// ReleaseSummary is one candidate from Search: enough to enqueue a
// fetch-release task (spec.md §4.9's `fetch` stage), not the full document.
type ReleaseSummary struct {
	ID    string
	Title string
}

// Search implements the catalog client's `search` operation (spec.md §4.4):
// it builds the `release:<title> artist:<joined> tracks:<n>` query, issues
// the request, and returns up to searchResultLimit candidates.
func (c *Client) Search(ctx context.Context, release model.InternalRelease) ([]ReleaseSummary, error) {
	query := url.Values{}
	query.Set("query", searchQuery(release.Title, release.Artists, release.Tracks))
	query.Set("limit", strconv.Itoa(searchResultLimit))

	var result mbReleaseSearch
	if err := c.get(ctx, "/release/", query, &result); err != nil {
		return nil, err
	}

	summaries := make([]ReleaseSummary, 0, len(result.Releases))
	for _, r := range result.Releases {
		summaries = append(summaries, ReleaseSummary{ID: r.ID, Title: r.Title})
	}

	return summaries, nil
}
