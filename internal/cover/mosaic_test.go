package cover

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-importer/tempo-importer/internal/model"
)

func solidPNG(t *testing.T, size int, c color.Color) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestGetCoverCompositesSingleTileAndResizes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(solidPNG(t, 200, color.RGBA{R: 255, A: 255}))
	}))
	defer server.Close()

	candidate := model.CoverCandidate{
		Provider: ProviderItunes,
		Urls:     []string{server.URL + "/cover.png"},
		Width:    200,
		Height:   200,
	}

	data, err := GetCover(context.Background(), server.Client(), candidate, 100, 100, FormatPNG)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 100, decoded.Bounds().Dy())
}

func TestGetCoverCompositesMosaicGrid(t *testing.T) {
	t.Parallel()

	colors := []color.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, A: 255},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idx := 0
		switch r.URL.Path {
		case "/0.png":
			idx = 0
		case "/1.png":
			idx = 1
		case "/2.png":
			idx = 2
		case "/3.png":
			idx = 3
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(solidPNG(t, 50, colors[idx]))
	}))
	defer server.Close()

	candidate := model.CoverCandidate{
		Provider: ProviderCoverArtArchive,
		Urls: []string{
			server.URL + "/0.png",
			server.URL + "/1.png",
			server.URL + "/2.png",
			server.URL + "/3.png",
		},
		Width:  100,
		Height: 100,
	}

	data, err := GetCover(context.Background(), server.Client(), candidate, 100, 100, FormatPNG)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// Tile 0 occupies the top-left quadrant, tile 3 the bottom-right, per
	// the corrected x = i % per_side, y = i / per_side grid.
	assert.Equal(t, colors[0], rgba(decoded.At(10, 10)))
	assert.Equal(t, colors[1], rgba(decoded.At(90, 10)))
	assert.Equal(t, colors[2], rgba(decoded.At(10, 90)))
	assert.Equal(t, colors[3], rgba(decoded.At(90, 90)))
}

func rgba(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}

func TestGetCoverRejectsEmptyURLs(t *testing.T) {
	t.Parallel()

	_, err := GetCover(context.Background(), http.DefaultClient, model.CoverCandidate{}, 100, 100, FormatPNG)
	require.ErrorIs(t, err, ErrNoCandidateURLs)
}
