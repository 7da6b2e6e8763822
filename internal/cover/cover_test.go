package cover

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

type stubProvider struct {
	candidates []model.CoverCandidate
	err        error
}

func (s stubProvider) Search(_ context.Context, _ Release) ([]model.CoverCandidate, error) {
	return s.candidates, s.err
}

func TestClientSearchSkipsFailingProviderAndKeepsOrder(t *testing.T) {
	t.Parallel()

	client := &Client{
		providers: map[string]Provider{
			"a": stubProvider{err: errors.New("boom")},
			"b": stubProvider{candidates: []model.CoverCandidate{{Provider: "b", Title: "Bar"}}},
		},
	}

	candidates := client.Search(context.Background(), []string{"a", "b"}, Release{Title: "Bar"})
	require.Len(t, candidates, 1)
	assert.Equal(t, "b", candidates[0].Provider)
}

func TestClientSearchSkipsUnknownProviderName(t *testing.T) {
	t.Parallel()

	client := &Client{providers: map[string]Provider{}}

	candidates := client.Search(context.Background(), []string{"nonexistent"}, Release{})
	assert.Empty(t, candidates)
}

func TestJoinedArtistsJoinsWithCommaSpace(t *testing.T) {
	t.Parallel()

	release := Release{Artists: []string{"Foo", "Bar"}}
	assert.Equal(t, "Foo, Bar", release.JoinedArtists())
}
