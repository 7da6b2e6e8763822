package tagcodec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// APEv2 footer/item layout, per the de facto APEv2 specification: a 32-byte
// footer at end-of-file, optionally mirrored by an identical header, framing
// a sequence of (value-size, flags, NUL-terminated key, value) items.
const (
	apeFooterSize      = 32
	apePreambleSize    = 8
	apeItemFlagsText   uint32 = 0 // UTF-8 text item.
	apeItemFlagsBinary uint32 = 1 << 1
	apeHasHeaderFlag   uint32 = 1 << 31
	apeVersion         uint32 = 2000
)

// apeItem is one key/value pair from an APEv2 tag.
type apeItem struct {
	key    string // preserves original case for round-tripping; matched case-insensitively.
	flags  uint32
	values []byte
}

// apeCodec implements Codec over an APEv2 tag, as carried by APE (Monkey's
// Audio) files and occasionally by MP3/WavPack files as a fallback container.
type apeCodec struct {
	path      string
	separator string
	items     []apeItem
	pictures  []tagkey.Picture
}

func openAPE(path, separator string) (Codec, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is supplied by the folder walker, not untrusted input.
	if err != nil {
		return nil, fmt.Errorf("tagcodec: read %s: %w", path, err)
	}

	items, err := parseAPETag(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err) //nolint:errorlint // Wraps a parse error.
	}

	return &apeCodec{path: path, separator: separator, items: items}, nil
}

func parseAPETag(data []byte) ([]apeItem, error) {
	if len(data) < apeFooterSize {
		return nil, nil
	}

	footer := data[len(data)-apeFooterSize:]
	if !bytes.Equal(footer[:apePreambleSize], apeMagic) {
		// No APEv2 tag present; not an error, just nothing to read.
		return nil, nil
	}

	tagSize := binary.LittleEndian.Uint32(footer[12:16])
	itemCount := binary.LittleEndian.Uint32(footer[16:20])

	if uint64(tagSize) > uint64(len(data)) || tagSize < apeFooterSize {
		return nil, fmt.Errorf("ape: implausible tag size %d", tagSize)
	}

	itemsEnd := len(data) - apeFooterSize
	itemsStart := len(data) - int(tagSize)

	if itemsStart < 0 || itemsStart > itemsEnd {
		return nil, fmt.Errorf("ape: tag size %d overruns file", tagSize)
	}

	return parseAPEItems(data[itemsStart:itemsEnd], int(itemCount))
}

func parseAPEItems(data []byte, expectedCount int) ([]apeItem, error) {
	items := make([]apeItem, 0, expectedCount)

	offset := 0
	for offset+8 <= len(data) {
		valueSize := binary.LittleEndian.Uint32(data[offset : offset+4])
		flags := binary.LittleEndian.Uint32(data[offset+4 : offset+8])

		keyEnd := bytes.IndexByte(data[offset+8:], 0)
		if keyEnd < 0 {
			return items, fmt.Errorf("ape: unterminated item key at offset %d", offset)
		}

		key := string(data[offset+8 : offset+8+keyEnd])
		valueStart := offset + 8 + keyEnd + 1
		valueEnd := valueStart + int(valueSize)

		if valueEnd > len(data) {
			return items, fmt.Errorf("ape: item %q value overruns tag", key)
		}

		items = append(items, apeItem{
			key:    key,
			flags:  flags,
			values: data[valueStart:valueEnd],
		})

		offset = valueEnd
	}

	return items, nil
}

func (c *apeCodec) findItem(key string) *apeItem {
	for i := range c.items {
		if strings.EqualFold(c.items[i].key, key) {
			return &c.items[i]
		}
	}

	return nil
}

func (c *apeCodec) Get(key tagkey.Key) []string {
	name := apeKeyFor(key)

	item := c.findItem(name)
	if item == nil || item.flags&apeItemFlagsBinary != 0 {
		return nil
	}

	text := string(item.values)
	if text == "" {
		return nil
	}

	return strings.Split(text, c.separator)
}

func (c *apeCodec) Set(key tagkey.Key, values []string) error {
	name := apeKeyFor(key)

	nonEmpty := make([]string, 0, len(values))

	for _, v := range values {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}

	c.deleteItem(name)

	if len(nonEmpty) == 0 {
		return nil
	}

	c.items = append(c.items, apeItem{
		key:    name,
		flags:  apeItemFlagsText,
		values: []byte(strings.Join(nonEmpty, c.separator)),
	})

	return nil
}

func (c *apeCodec) deleteItem(name string) {
	kept := c.items[:0]

	for _, item := range c.items {
		if !strings.EqualFold(item.key, name) {
			kept = append(kept, item)
		}
	}

	c.items = kept
}

func (c *apeCodec) Clear() {
	c.items = nil
	c.pictures = nil
}

func (c *apeCodec) Pictures() []tagkey.Picture {
	return c.pictures
}

func (c *apeCodec) SetPictures(pictures []tagkey.Picture) {
	c.pictures = pictures

	c.deleteItem("Cover Art (Front)")

	for _, picture := range pictures {
		ext := "jpg"
		if picture.MIMEType == "image/png" {
			ext = "png"
		}

		// APEv2 binary picture items are "<filename>\0<image bytes>".
		value := append([]byte("cover."+ext), 0)
		value = append(value, picture.Data...)

		c.items = append(c.items, apeItem{
			key:    "Cover Art (Front)",
			flags:  apeItemFlagsBinary,
			values: value,
		})
	}
}

func (c *apeCodec) Write(path string) error {
	original, err := os.ReadFile(path) //nolint:gosec // Path is supplied by the folder walker, not untrusted input.
	if err != nil {
		return fmt.Errorf("tagcodec: read %s for ape write: %w", path, err)
	}

	audio := stripExistingAPETag(original)

	tag := buildAPETag(c.items)

	out := make([]byte, 0, len(audio)+len(tag))
	out = append(out, audio...)
	out = append(out, tag...)

	if err := os.WriteFile(path, out, 0o644); err != nil { //nolint:gosec,mnd // Matches constants.DefaultFilePermissions.
		return fmt.Errorf("tagcodec: write %s: %w", path, err)
	}

	return nil
}

// stripExistingAPETag returns data with any trailing APEv2 tag (and its
// mirrored header, if present) removed, leaving only the audio stream.
func stripExistingAPETag(data []byte) []byte {
	if len(data) < apeFooterSize {
		return data
	}

	footer := data[len(data)-apeFooterSize:]
	if !bytes.Equal(footer[:apePreambleSize], apeMagic) {
		return data
	}

	tagSize := binary.LittleEndian.Uint32(footer[12:16])
	flags := binary.LittleEndian.Uint32(footer[20:24])

	total := int(tagSize)
	if flags&apeHasHeaderFlag != 0 {
		total += apeFooterSize
	}

	if total > len(data) {
		return data
	}

	return data[:len(data)-total]
}

// buildAPETag serializes items into a full APEv2 tag (header + items +
// footer), matching the structure stripExistingAPETag expects to find again.
func buildAPETag(items []apeItem) []byte {
	var itemBytes bytes.Buffer

	for _, item := range items {
		var header [8]byte

		binary.LittleEndian.PutUint32(header[0:4], uint32(len(item.values))) //nolint:gosec // Item values are bounded by file size.
		binary.LittleEndian.PutUint32(header[4:8], item.flags)

		itemBytes.Write(header[:])
		itemBytes.WriteString(item.key)
		itemBytes.WriteByte(0)
		itemBytes.Write(item.values)
	}

	tagSize := uint32(itemBytes.Len() + apeFooterSize) //nolint:gosec // Bounded by file size.

	frame := func(isHeader bool) []byte {
		flags := apeHasHeaderFlag
		buf := make([]byte, apeFooterSize)

		copy(buf[0:8], apeMagic)
		binary.LittleEndian.PutUint32(buf[8:12], apeVersion)
		binary.LittleEndian.PutUint32(buf[12:16], tagSize)
		binary.LittleEndian.PutUint32(buf[16:20], uint32(len(items))) //nolint:gosec // Bounded by practical tag sizes.
		binary.LittleEndian.PutUint32(buf[20:24], flags)

		_ = isHeader // header and footer share the same fixed fields in this encoder.

		return buf
	}

	out := make([]byte, 0, apeFooterSize*2+itemBytes.Len())
	out = append(out, frame(true)...)
	out = append(out, itemBytes.Bytes()...)
	out = append(out, frame(false)...)

	return out
}

// apeKeyFor returns the APEv2 item key key maps to: a conventional key for
// keys in apeKeys, otherwise the TagKey's canonical name verbatim, since
// APEv2 item keys are free-form.
func apeKeyFor(key tagkey.Key) string {
	if name, ok := apeKeys[key]; ok {
		return name
	}

	return key.String()
}
