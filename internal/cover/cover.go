// Package cover implements cover art search across multiple providers and
// the mosaic download/composite/resample pipeline that turns a selected
// CoverCandidate into an encoded image (spec.md §4.5).
package cover

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tempo-importer/tempo-importer/internal/logger"
	"github.com/tempo-importer/tempo-importer/internal/model"
)

// Provider names, as configured in library.art.providers.
const (
	ProviderCoverArtArchive = "cover_art_archive"
	ProviderItunes          = "itunes"
	ProviderDeezer          = "deezer"
)

// Release is the catalog release cover providers search against: the
// winning candidate selected by rank-releases, plus its joined
// artist-credit names.
type Release struct {
	ID             uuid.UUID
	ReleaseGroupID *uuid.UUID
	Title          string
	Country        string
	Artists        []string
}

// JoinedArtists renders Artists the way the original importer's
// `get_joined_artists` does, for query terms and cover-rating comparisons.
func (r Release) JoinedArtists() string {
	return strings.Join(r.Artists, ", ")
}

// Provider searches one cover art source for candidates matching release.
type Provider interface {
	Search(ctx context.Context, release Release) ([]model.CoverCandidate, error)
}

// Client fans a cover search out across a configured, ordered set of providers.
type Client struct {
	providers map[string]Provider
}

// NewClient builds a Client with the given http.Client shared across providers.
// A nil httpClient gets the teacher's decorated transport (user-agent
// injection + debug-level request/response logging).
func NewClient(httpClient *http.Client, useReleaseGroup bool) *Client {
	httpClient = decoratedClient(httpClient)

	return &Client{
		providers: map[string]Provider{
			ProviderCoverArtArchive: newCoverArtArchiveProvider(httpClient, useReleaseGroup),
			ProviderItunes:          newItunesProvider(httpClient),
			ProviderDeezer:          newDeezerProvider(httpClient),
		},
	}
}

// Search queries each named provider in order, per spec.md §4.5: a failing
// provider logs a warning and does not block the rest. Candidates are
// appended in provider-preference order; rank-covers' provider_rank_norm
// looks up each candidate's Provider name in the configured provider list.
func (c *Client) Search(ctx context.Context, providerNames []string, release Release) []model.CoverCandidate {
	var candidates []model.CoverCandidate

	for _, name := range providerNames {
		provider, ok := c.providers[name]
		if !ok {
			logger.WarnKV(ctx, "cover: unknown provider, skipping", "provider", name)
			continue
		}

		found, err := provider.Search(ctx, release)
		if err != nil {
			logger.WarnKV(ctx, "cover: provider search failed", "provider", name, "error", err)
			continue
		}

		candidates = append(candidates, found...)
	}

	return candidates
}
