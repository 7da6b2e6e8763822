package trackfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-importer/tempo-importer/internal/tagcodec"
	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// apeContainerHeader is Monkey's Audio's own file-header magic, "MAC "
// followed by a plausible version/flags tail, used to make fixtures
// recognizable as .ape containers by content sniffing.
var apeContainerHeader = []byte{'M', 'A', 'C', ' ', 0x96, 0x0f, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}

func writeAPEFixture(t *testing.T, path string) {
	t.Helper()

	data := append(append([]byte{}, apeContainerHeader...), []byte(" rest of the audio stream")...)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestOpenDetectsFormatByContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "track.ape")
	writeAPEFixture(t, path)

	handle, err := Open(path, tagcodec.DefaultSeparators())
	require.NoError(t, err)

	assert.Equal(t, tagcodec.FormatAPE, handle.Format())
	assert.Equal(t, path, handle.Path())
}

func TestGetSetTagRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "track.ape")
	writeAPEFixture(t, path)

	handle, err := Open(path, tagcodec.DefaultSeparators())
	require.NoError(t, err)

	require.NoError(t, handle.SetTag(tagkey.TrackTitle, []string{"A Song"}))
	assert.Equal(t, []string{"A Song"}, handle.GetTag(tagkey.TrackTitle))

	require.NoError(t, handle.Write())

	reopened, err := Open(path, tagcodec.DefaultSeparators())
	require.NoError(t, err)
	assert.Equal(t, []string{"A Song"}, reopened.GetTag(tagkey.TrackTitle))
}

func TestApplySkipsNothingForAPESinceEveryKeyIsFreeform(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "track.ape")
	writeAPEFixture(t, path)

	handle, err := Open(path, tagcodec.DefaultSeparators())
	require.NoError(t, err)

	err = handle.Apply(map[tagkey.Key][]string{
		tagkey.TrackTitle: {"Title"},
		tagkey.Artist:     {"Artist"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Title"}, handle.GetTag(tagkey.TrackTitle))
	assert.Equal(t, []string{"Artist"}, handle.GetTag(tagkey.Artist))
}

func TestClearRemovesTagsAndPictures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "track.ape")
	writeAPEFixture(t, path)

	handle, err := Open(path, tagcodec.DefaultSeparators())
	require.NoError(t, err)

	require.NoError(t, handle.SetTag(tagkey.Album, []string{"An Album"}))
	handle.SetPictures([]tagkey.Picture{{MIMEType: "image/jpeg", Data: []byte{1, 2, 3}}})

	handle.Clear()

	assert.Nil(t, handle.GetTag(tagkey.Album))
	assert.Empty(t, handle.Pictures())
}

func TestDuplicateToIsAtomicAndIndependent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "source.ape")
	writeAPEFixture(t, src)

	handle, err := Open(src, tagcodec.DefaultSeparators())
	require.NoError(t, err)
	require.NoError(t, handle.SetTag(tagkey.TrackTitle, []string{"Original"}))

	dest := filepath.Join(dir, "dest.ape")

	duplicate, err := handle.DuplicateTo(dest, tagcodec.DefaultSeparators())
	require.NoError(t, err)

	_, err = os.Stat(dest)
	require.NoError(t, err)

	require.NoError(t, duplicate.SetTag(tagkey.TrackTitle, []string{"Changed In Duplicate"}))

	// The original handle's in-memory tag is untouched by the duplicate's mutation.
	assert.Equal(t, []string{"Original"}, handle.GetTag(tagkey.TrackTitle))
	assert.Equal(t, []string{"Changed In Duplicate"}, duplicate.GetTag(tagkey.TrackTitle))

	noTempFilesLeftBehind(t, dir)
}

func noTempFilesLeftBehind(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".trackfile-")
	}
}
