package cover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoverArtArchivePicksLargestFrontThumbnail(t *testing.T) {
	t.Parallel()

	releaseID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/release/"+releaseID.String(), r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"images":[
			{"front":false,"thumbnails":{"1200":"http://example.com/back.jpg"}},
			{"front":true,"thumbnails":{"250":"http://example.com/small.jpg","1200":"http://example.com/large.jpg","large":"http://example.com/l.jpg"}}
		]}`))
	}))
	defer server.Close()

	provider := newCoverArtArchiveProvider(server.Client(), false)
	provider.baseURL = server.URL

	candidates, err := provider.Search(context.Background(), Release{ID: releaseID, Title: "Bar", Artists: []string{"Foo"}})
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, []string{"http://example.com/large.jpg"}, candidates[0].Urls)
	assert.Equal(t, 1200, candidates[0].Width)
	assert.Equal(t, ProviderCoverArtArchive, candidates[0].Provider)
}

func TestCoverArtArchiveUsesReleaseGroupWhenConfiguredAndPresent(t *testing.T) {
	t.Parallel()

	releaseID := uuid.New()
	groupID := uuid.New()

	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"images":[]}`))
	}))
	defer server.Close()

	provider := newCoverArtArchiveProvider(server.Client(), true)
	provider.baseURL = server.URL

	_, err := provider.Search(context.Background(), Release{ID: releaseID, ReleaseGroupID: &groupID})
	require.NoError(t, err)
	assert.Equal(t, "/release-group/"+groupID.String(), gotPath)
}

func TestCoverArtArchiveFallsBackToReleaseIDWhenGroupMissing(t *testing.T) {
	t.Parallel()

	releaseID := uuid.New()

	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"images":[]}`))
	}))
	defer server.Close()

	provider := newCoverArtArchiveProvider(server.Client(), true)
	provider.baseURL = server.URL

	_, err := provider.Search(context.Background(), Release{ID: releaseID})
	require.NoError(t, err)
	assert.Equal(t, "/release-group/"+releaseID.String(), gotPath)
}
