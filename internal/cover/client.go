package cover

import (
	"context"
	"net/http"

	http_transport "github.com/tempo-importer/tempo-importer/internal/transport/http"
	"github.com/tempo-importer/tempo-importer/internal/utils"
)

// decoratedClient returns client unchanged if non-nil, otherwise builds the
// teacher's decorated transport: user-agent injection wrapping debug-level
// request/response logging.
func decoratedClient(client *http.Client) *http.Client {
	if client != nil {
		return client
	}

	return &http.Client{
		Transport: http_transport.NewUserAgentInjector(
			http_transport.NewLogTransport(http.DefaultTransport, http_transport.DefaultMaxLogLength),
			utils.NewSimpleUserAgentProvider(http_transport.DefaultUserAgent)),
		Timeout: http_transport.DefaultTimeout,
	}
}

// probe issues a HEAD request against url, reporting whether it resolves
// successfully. iTunes' size-substituted artwork URLs (§4.5) don't all
// exist for every result, so candidates are filtered down to the sizes that do.
func probe(ctx context.Context, httpClient *http.Client, url string) bool {
	request, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return false
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return false
	}
	defer response.Body.Close() //nolint:errcheck // best-effort close on a read-only HEAD.

	return response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices
}
