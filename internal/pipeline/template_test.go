package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

func TestRenderPathSubstitutesPlaceholders(t *testing.T) {
	t.Parallel()

	tags := map[tagkey.Key][]string{
		tagkey.AlbumArtist: {"The Beatles"},
		tagkey.Album:       {"Abbey Road"},
		tagkey.ReleaseYear: {"1969"},
	}

	out, err := renderPath("{albumArtist}/{releaseYear} - {albumTitle}", tags)

	require.NoError(t, err)
	assert.Equal(t, "The Beatles/1969 - Abbey Road", out)
}

func TestRenderPathMissingKeyFailsTheRender(t *testing.T) {
	t.Parallel()

	tags := map[tagkey.Key][]string{
		tagkey.Album: {"Abbey Road"},
	}

	_, err := renderPath("{albumArtist}/{albumTitle}", tags)

	require.Error(t, err)
}

func TestRenderPathSanitizesSlashesInValues(t *testing.T) {
	t.Parallel()

	tags := map[tagkey.Key][]string{
		tagkey.Album: {"AC/DC Live \\ Back in Black"},
	}

	out, err := renderPath("{albumTitle}", tags)

	require.NoError(t, err)
	assert.NotContains(t, out, "/")
	assert.NotContains(t, out, "\\")
}

func TestRenderPathPadsTrackNumber(t *testing.T) {
	t.Parallel()

	tags := map[tagkey.Key][]string{
		tagkey.TrackNumber: {"7"},
		tagkey.TrackTitle:  {"Something"},
	}

	out, err := renderPath("{trackNumberPad} - {trackTitle}", tags)

	require.NoError(t, err)
	assert.Equal(t, "07 - Something", out)
}

func TestPadNumericLeavesNonNumericUnchanged(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A", padNumeric("A"))
	assert.Equal(t, "03", padNumeric("3"))
}
