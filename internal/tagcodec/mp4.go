package tagcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"
	"strings"

	mp4tag "github.com/Sorrow446/go-mp4tag"

	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// mp4Codec implements Codec over an MP4/M4A file's iTunes-style `ilst` atom.
// Reads walk the ISOBMFF box tree directly (moov/udta/meta/ilst); writes go
// through go-mp4tag, which owns the harder problem of rewriting box sizes
// and the `mdat` offset table when atom payloads change length.
type mp4Codec struct {
	path      string
	separator string
	fields    map[string][]string // four-byte (or freeform) atom name -> values.
	pictures  []tagkey.Picture
}

// mp4FreeformPrefix is the mean/name pair iTunes freeform atoms are stored
// under, conventionally "com.apple.iTunes".
const mp4FreeformPrefix = "----:com.apple.iTunes:"

func openMP4(path, separator string) (Codec, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is supplied by the folder walker, not untrusted input.
	if err != nil {
		return nil, fmt.Errorf("tagcodec: read %s: %w", path, err)
	}

	ilst, err := findILST(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err) //nolint:errorlint // Wraps a box-walk error.
	}

	codec := &mp4Codec{
		path:      path,
		separator: separator,
		fields:    map[string][]string{},
	}

	if ilst != nil {
		codec.fields, codec.pictures = parseILST(ilst)
	}

	return codec, nil
}

func (c *mp4Codec) Get(key tagkey.Key) []string {
	atom := mp4AtomFor(key)

	if values, ok := c.fields[atom]; ok {
		if len(values) == 1 && strings.Contains(values[0], c.separator) {
			return strings.Split(values[0], c.separator)
		}

		return values
	}

	return nil
}

func (c *mp4Codec) Set(key tagkey.Key, values []string) error {
	atom := mp4AtomFor(key)

	nonEmpty := make([]string, 0, len(values))

	for _, v := range values {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}

	if len(nonEmpty) == 0 {
		delete(c.fields, atom)
		return nil
	}

	c.fields[atom] = []string{strings.Join(nonEmpty, c.separator)}

	return nil
}

func (c *mp4Codec) Clear() {
	c.fields = map[string][]string{}
	c.pictures = nil
}

func (c *mp4Codec) Pictures() []tagkey.Picture {
	return c.pictures
}

func (c *mp4Codec) SetPictures(pictures []tagkey.Picture) {
	c.pictures = pictures
}

func (c *mp4Codec) Write(path string) error {
	handle, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("tagcodec: open %s for mp4 write: %w", path, err)
	}

	defer handle.Close() //nolint:errcheck // Close after Write only releases the handle; Write's error is authoritative.

	tags := &mp4tag.MP4Tags{
		Custom: map[string]string{},
	}

	for atom, values := range c.fields {
		joined := strings.Join(values, c.separator)
		assignMP4Field(tags, atom, joined)
	}

	for _, picture := range c.pictures {
		tags.Pictures = append(tags.Pictures, &mp4tag.MP4Picture{
			Data: picture.Data,
			Ext:  extensionForMIME(picture.MIMEType),
		})
	}

	if err := handle.Write(tags, nil); err != nil {
		return fmt.Errorf("tagcodec: write mp4 tags to %s: %w", path, err)
	}

	return nil
}

// mp4AtomFor returns the iTunes atom name key maps to: a four-byte atom for
// keys in mp4Keys, otherwise a freeform `----:com.apple.iTunes:<name>` atom.
func mp4AtomFor(key tagkey.Key) string {
	if atom, ok := mp4Keys[key]; ok {
		return atom
	}

	return mp4FreeformPrefix + key.String()
}

func assignMP4Field(tags *mp4tag.MP4Tags, atom, value string) {
	switch atom {
	case "\xa9nam":
		tags.Title = value
	case "\xa9ART":
		tags.Artist = value
	case "aART":
		tags.AlbumArtist = value
	case "\xa9alb":
		tags.Album = value
	case "\xa9gen":
		tags.Genre = value
	case "\xa9day":
		if year, err := strconv.Atoi(value); err == nil {
			tags.Year = year
		}
	case "\xa9cmt":
		tags.Comment = value
	case "\xa9wrt":
		tags.Composer = value
	case "trkn":
		tags.Track, _ = strconv.Atoi(value) //nolint:errcheck // Non-numeric values are silently dropped.
	case "disk":
		tags.Disk, _ = strconv.Atoi(value) //nolint:errcheck // Non-numeric values are silently dropped.
	default:
		name := strings.TrimPrefix(atom, mp4FreeformPrefix)
		tags.Custom[name] = value
	}
}

func extensionForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return "png"
	default:
		return "jpg"
	}
}

// --- minimal ISOBMFF box walking, just deep enough to reach moov/udta/meta/ilst. ---

type box struct {
	boxType string
	payload []byte
}

// findILST walks the top-level boxes of an MP4 file looking for
// moov > udta > meta > ilst. It returns nil (not an error) if no ilst atom
// exists yet, since a freshly-ripped file may carry no iTunes metadata.
func findILST(data []byte) ([]byte, error) {
	moov, err := findBox(data, "moov")
	if err != nil || moov == nil {
		return nil, err
	}

	udta, err := findBox(moov, "udta")
	if err != nil || udta == nil {
		return nil, err //nolint:nilerr // Absence of udta is not an error; nil payload signals "no tags yet".
	}

	meta, err := findBox(udta, "meta")
	if err != nil || meta == nil {
		return nil, err //nolint:nilerr // See above.
	}

	// The `meta` box has a 4-byte version/flags header before its children.
	if len(meta) < 4 {
		return nil, nil
	}

	return findBox(meta[4:], "ilst")
}

// findBox scans data's immediate children for a box of the given type and
// returns its payload.
func findBox(data []byte, want string) ([]byte, error) {
	for _, b := range iterateBoxes(data) {
		if b.boxType == want {
			return b.payload, nil
		}
	}

	return nil, nil
}

func iterateBoxes(data []byte) []box {
	var boxes []box

	for offset := 0; offset+8 <= len(data); {
		size := binary.BigEndian.Uint32(data[offset : offset+4])
		boxType := string(data[offset+4 : offset+8])

		headerLen := 8
		boxSize := int(size)

		if size == 1 {
			// 64-bit "largesize" box.
			if offset+16 > len(data) {
				break
			}

			boxSize = int(binary.BigEndian.Uint64(data[offset+8 : offset+16])) //nolint:gosec // MP4 atoms are bounded by file size.
			headerLen = 16
		}

		if boxSize < headerLen || offset+boxSize > len(data) {
			break
		}

		boxes = append(boxes, box{
			boxType: boxType,
			payload: data[offset+headerLen : offset+boxSize],
		})

		offset += boxSize
	}

	return boxes
}

// parseILST parses the children of an ilst atom into semantic fields and
// pictures. Each child is itself a box whose tag name is the atom name
// (e.g. "\xa9nam") and whose payload holds one or more "data" sub-boxes.
func parseILST(ilst []byte) (map[string][]string, []tagkey.Picture) {
	fields := map[string][]string{}

	var pictures []tagkey.Picture

	for _, item := range iterateBoxes(ilst) {
		values, picture := parseILSTItem(item)

		if item.boxType == "covr" {
			if picture != nil {
				pictures = append(pictures, *picture)
			}

			continue
		}

		if len(values) > 0 {
			fields[item.boxType] = append(fields[item.boxType], values...)
		}
	}

	return fields, pictures
}

func parseILSTItem(item box) ([]string, *tagkey.Picture) {
	var values []string

	var picture *tagkey.Picture

	for _, dataBox := range iterateBoxes(item.payload) {
		if dataBox.boxType != "data" {
			continue
		}

		if len(dataBox.payload) < 8 {
			continue
		}

		dataType := binary.BigEndian.Uint32(dataBox.payload[0:4])
		value := dataBox.payload[8:]

		switch dataType {
		case 1: // UTF-8 text.
			values = append(values, string(value))
		case 13: // JPEG.
			picture = &tagkey.Picture{MIMEType: "image/jpeg", Data: value}
		case 14: // PNG.
			picture = &tagkey.Picture{MIMEType: "image/png", Data: value}
		case 0: // Implicit (integer types like trkn/disk).
			values = append(values, decodeImplicitInt(value))
		default:
			values = append(values, string(bytes.TrimRight(value, "\x00")))
		}
	}

	return values, picture
}

// decodeImplicitInt decodes MP4 "implicit" typed data, used by trkn/disk:
// a 2-byte reserved field, a 2-byte index, and a 2-byte total.
func decodeImplicitInt(data []byte) string {
	if len(data) < 4 {
		return ""
	}

	index := binary.BigEndian.Uint16(data[2:4])

	return strconv.Itoa(int(index))
}
