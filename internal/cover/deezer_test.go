package cover

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeezerReturnsOneCandidatePerPresentCoverField(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Foo Bar", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"title":"Bar","artist":{"name":"Foo"},
			 "cover_small":"http://example.com/s.jpg",
			 "cover_big":"http://example.com/b.jpg",
			 "cover_xl":"http://example.com/xl.jpg"}
		]}`))
	}))
	defer server.Close()

	provider := newDeezerProvider(server.Client())
	provider.baseURL = server.URL

	candidates, err := provider.Search(context.Background(), Release{Title: "Bar", Artists: []string{"Foo"}})
	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, 1000, candidates[0].Width)
	assert.Equal(t, "http://example.com/xl.jpg", candidates[0].Urls[0])
	assert.Equal(t, 500, candidates[1].Width)
	assert.Equal(t, 56, candidates[2].Width)
}
