package tagcodec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// buildBox returns a length-prefixed ISOBMFF box: 4-byte size, 4-byte type, payload.
func buildBox(boxType string, payload []byte) []byte {
	out := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(payload))) //nolint:gosec // Test fixture sizes are small.
	copy(out[4:8], boxType)
	copy(out[8:], payload)

	return out
}

// buildDataBox wraps value in an ilst-style "data" sub-box: 4-byte type code,
// 4-byte locale (always zero here), then the raw value.
func buildDataBox(dataType uint32, value []byte) []byte {
	payload := make([]byte, 8+len(value))
	binary.BigEndian.PutUint32(payload[0:4], dataType)
	copy(payload[8:], value)

	return buildBox("data", payload)
}

func TestIterateBoxesFindsSiblings(t *testing.T) {
	t.Parallel()

	data := append(buildBox("free", []byte("pad")), buildBox("moov", []byte("child"))...)

	boxes := iterateBoxes(data)
	require.Len(t, boxes, 2)
	assert.Equal(t, "free", boxes[0].boxType)
	assert.Equal(t, "moov", boxes[1].boxType)
	assert.Equal(t, []byte("child"), boxes[1].payload)
}

func TestFindBoxLocatesNestedBox(t *testing.T) {
	t.Parallel()

	udta := buildBox("udta", []byte("whatever"))
	data := append(buildBox("free", nil), udta...)

	found, err := findBox(data, "udta")
	require.NoError(t, err)
	assert.Equal(t, []byte("whatever"), found)

	missing, err := findBox(data, "skip")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestParseILSTTextItem(t *testing.T) {
	t.Parallel()

	nam := buildBox("\xa9nam", buildDataBox(1, []byte("Track Title")))
	ilst := nam

	fields, pictures := parseILST(ilst)

	assert.Equal(t, []string{"Track Title"}, fields["\xa9nam"])
	assert.Empty(t, pictures)
}

func TestParseILSTCoverPicture(t *testing.T) {
	t.Parallel()

	jpegBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	covr := buildBox("covr", buildDataBox(13, jpegBytes))

	fields, pictures := parseILST(covr)

	assert.Empty(t, fields)
	require.Len(t, pictures, 1)
	assert.Equal(t, "image/jpeg", pictures[0].MIMEType)
	assert.Equal(t, jpegBytes, pictures[0].Data)
}

func TestParseILSTImplicitIntTrackNumber(t *testing.T) {
	t.Parallel()

	// trkn payload: 2 reserved bytes, 2-byte index, 2-byte total, 2 reserved.
	trknValue := []byte{0x00, 0x00, 0x00, 0x05, 0x00, 0x0C, 0x00, 0x00}
	trkn := buildBox("trkn", buildDataBox(0, trknValue))

	fields, _ := parseILST(trkn)
	assert.Equal(t, []string{"5"}, fields["trkn"])
}

func TestFindILSTWalksFullTree(t *testing.T) {
	t.Parallel()

	nam := buildBox("\xa9nam", buildDataBox(1, []byte("Nested")))
	ilst := buildBox("ilst", nam)
	metaPayload := append([]byte{0, 0, 0, 0}, ilst...) // 4-byte version/flags header, then children.
	metaBox := buildBox("meta", metaPayload)
	udta := buildBox("udta", metaBox)
	moov := buildBox("moov", udta)

	found, err := findILST(moov)
	require.NoError(t, err)
	require.NotNil(t, found)

	fields, _ := parseILST(found)
	assert.Equal(t, []string{"Nested"}, fields["\xa9nam"])
}

func TestFindILSTNoMoovIsNilNotError(t *testing.T) {
	t.Parallel()

	found, err := findILST([]byte("not an mp4 at all"))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMP4AtomForFallsBackToFreeform(t *testing.T) {
	t.Parallel()

	// ISRC has no dedicated mp4Keys entry.
	atom := mp4AtomFor(tagkey.ISRC)
	assert.Equal(t, mp4FreeformPrefix+"ISRC", atom)
}
