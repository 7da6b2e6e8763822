package musicbrainz

import (
	"context"
)

// Fetch implements the catalog client's `fetch` operation (spec.md §4.4):
// it retrieves the full release document for releaseID with the fixed
// relation-expansion sub-queries, then expands it (§4.4.1) into the
// catalog entity tuple.
func (c *Client) Fetch(ctx context.Context, releaseID string) (Expansion, error) {
	if cached, ok := c.fetchCache.Get(releaseID); ok {
		return expand(cached), nil
	}

	rawQuery := "fmt=json&inc=" + fetchIncludes

	var result mbRelease
	if err := c.getRaw(ctx, "/release/"+releaseID, rawQuery, &result); err != nil {
		return Expansion{}, err
	}

	c.fetchCache.Add(releaseID, result)

	return expand(result), nil
}
