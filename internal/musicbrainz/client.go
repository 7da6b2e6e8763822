// Package musicbrainz implements the catalog client (component D):
// search and fetch operations against the MusicBrainz web service, and the
// relation-expansion rules (§4.4.1) that turn its JSON responses into the
// catalog entity tuple the rest of the pipeline persists.
package musicbrainz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tempo-importer/tempo-importer/internal/retry"
	http_transport "github.com/tempo-importer/tempo-importer/internal/transport/http"
	"github.com/tempo-importer/tempo-importer/internal/utils"
)

const (
	// DefaultBaseURL is MusicBrainz's production web service root.
	DefaultBaseURL = "https://musicbrainz.org/ws/2"

	// searchResultLimit caps search results per spec.md §4.4.
	searchResultLimit = 8

	// fetchIncludes is the fixed sub-query string for fetch's full document
	// lookup, per spec.md §4.4 and original_source/common/src/fetch/mod.rs's
	// `get` function.
	fetchIncludes = "artists+artist-credits+release-groups+labels+recordings+genres+" +
		"work-rels+work-level-rels+artist-rels+recording-rels+instrument-rels+recording-level-rels"

	// fetchCacheSize bounds the in-process cache of fetched release documents,
	// so re-expanding the same candidate across retried tasks doesn't re-hit
	// the network.
	fetchCacheSize = 256
)

// ErrUnexpectedStatus wraps any non-2xx response from the catalog, per
// spec.md §4.4: "Any non-2xx response is a retryable failure."
var ErrUnexpectedStatus = errors.New("musicbrainz: unexpected HTTP status")

// Client queries the MusicBrainz web service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	policy     retry.Policy
	fetchCache *lru.Cache[string, mbRelease]
}

// NewClient builds a Client. A zero baseURL defaults to DefaultBaseURL; a
// nil httpClient gets the teacher's decorated transport (user-agent
// injection + debug-level request/response logging).
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{
			Transport: http_transport.NewUserAgentInjector(
				http_transport.NewLogTransport(http.DefaultTransport, 0),
				utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
			Timeout: http_transport.DefaultTimeout,
		}
	}

	cache, _ := lru.New[string, mbRelease](fetchCacheSize)

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		policy:     retry.DefaultPolicy(),
		fetchCache: cache,
	}
}

// classifyRetryable treats every ErrUnexpectedStatus as retryable, per
// spec.md §4.4. Other errors (malformed URLs, cancelled contexts, body
// decode failures) are not retried.
func classifyRetryable(err error) bool {
	return errors.Is(err, ErrUnexpectedStatus)
}

func (c *Client) get(ctx context.Context, route string, query url.Values, out any) error {
	query.Set("fmt", "json")

	return c.getRaw(ctx, route, query.Encode(), out)
}

// getRaw issues the request with an already-encoded query string, so
// callers whose MusicBrainz parameters use "+" as a literal join character
// (the "inc" sub-query list) can bypass url.Values.Encode's percent-escaping
// and send the separator exactly as original_source/common/src/fetch/mod.rs
// does.
func (c *Client) getRaw(ctx context.Context, route, rawQuery string, out any) error {
	return retry.Do(ctx, c.policy, classifyRetryable, "musicbrainz "+route, func(ctx context.Context) error {
		return c.getOnce(ctx, route, rawQuery, out)
	})
}

func (c *Client) getOnce(ctx context.Context, route, rawQuery string, out any) error {
	full, err := url.JoinPath(c.baseURL, route)
	if err != nil {
		return fmt.Errorf("musicbrainz: build url: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, full, http.NoBody)
	if err != nil {
		return fmt.Errorf("musicbrainz: build request: %w", err)
	}

	request.URL.RawQuery = rawQuery

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("musicbrainz: request: %w", err)
	}
	defer response.Body.Close() //nolint:errcheck // best-effort close on a read-only GET.

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("musicbrainz: decode response: %w", err)
	}

	return nil
}

// searchQuery builds the `release:<title> artist:<joined> tracks:<n>` query
// string, omitting `artist:` when artists joins to an empty string,
// per spec.md §4.4.
func searchQuery(title string, artists []string, tracks int) string {
	var b strings.Builder

	b.WriteString("release:")
	b.WriteString(title)

	joined := strings.Join(artists, ", ")
	if joined != "" {
		b.WriteString(" artist:")
		b.WriteString(joined)
	}

	b.WriteString(" tracks:")
	b.WriteString(strconv.Itoa(tracks))

	return b.String()
}
