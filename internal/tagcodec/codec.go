// Package tagcodec presents a uniform, semantic view over the four tag
// formats a managed audio file may carry: FLAC (Vorbis comments), ID3v2.4
// (MP3), MP4 (iTunes atoms), and APEv2. Callers read and write tagkey.Key
// values without knowing which on-disk container backs a given file.
package tagcodec

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// Format identifies a detected container format.
type Format int

// The four supported tag formats.
const (
	FormatUnknown Format = iota
	FormatFLAC
	FormatMP3
	FormatMP4
	FormatAPE
)

// String returns the human-readable name of the format.
func (f Format) String() string {
	switch f {
	case FormatFLAC:
		return "FLAC"
	case FormatMP3:
		return "MP3"
	case FormatMP4:
		return "MP4"
	case FormatAPE:
		return "APE"
	default:
		return "unknown"
	}
}

// Static error definitions for better error handling.
var (
	// ErrUnsupportedFormat indicates that the file's magic bytes match no known container.
	ErrUnsupportedFormat = errors.New("tagcodec: unsupported format")
	// ErrMalformed indicates that the file's tag block is corrupt or truncated.
	ErrMalformed = errors.New("tagcodec: malformed tag block")
	// ErrNotSupported indicates that the format has no frame for the requested TagKey.
	// Callers must treat this as non-fatal.
	ErrNotSupported = errors.New("tagcodec: key not supported by this format")
)

// Separators configures the join character each format uses for multi-valued
// fields it does not represent as a native list.
type Separators struct {
	// ID3 joins multi-valued ID3v2 text frames.
	ID3 string
	// MP4 joins multi-valued iTunes freeform atoms.
	MP4 string
	// APE joins multi-valued APEv2 items.
	APE string
}

// DefaultSeparators returns the conventional separators used when a config
// does not override them: ID3v2 text frames conventionally join multi-valued
// fields with a NUL byte, while MP4 and APEv2 use a semicolon.
func DefaultSeparators() Separators {
	return Separators{ID3: "\x00", MP4: ";", APE: ";"}
}

// Codec presents a uniform read/write/clear view over a tagged audio file.
type Codec interface {
	// Get returns all values for the semantic key, or an empty slice if the
	// underlying format has no mapping or no value for it.
	Get(key tagkey.Key) []string
	// Set writes values for key. It returns ErrNotSupported when the format
	// has no frame for this key; callers must treat that as non-fatal.
	Set(key tagkey.Key, values []string) error
	// Clear removes every frame, including embedded pictures.
	Clear()
	// Pictures returns the embedded pictures.
	Pictures() []tagkey.Picture
	// SetPictures replaces the embedded pictures.
	SetPictures(pictures []tagkey.Picture)
	// Write flushes the codec's in-memory state to path.
	Write(path string) error
}

// magic byte prefixes used for content sniffing. Detection is by content,
// never by file extension.
var (
	flacMagic = []byte("fLaC")
	id3Magic  = []byte("ID3")
	// apeContainerMagic is Monkey's Audio's own file-header magic, identifying
	// an .ape container at file start.
	apeContainerMagic = []byte("MAC ")
	// apeMagic is the APEv2 tag block's magic, used both as a footer/header
	// preamble inside an .ape file and as a trailing tag on MP3/WavPack files.
	apeMagic = []byte("APETAGEX")
)

// Open detects path's tag format by content sniffing and returns a Codec
// positioned over its current tags. It fails with ErrUnsupportedFormat if
// the magic bytes match no known container, or ErrMalformed if the tag
// block itself is corrupt.
func Open(path string, separators Separators) (Codec, error) {
	header := make([]byte, 12)

	f, err := os.Open(path) //nolint:gosec // Path is supplied by the folder walker, not untrusted input.
	if err != nil {
		return nil, fmt.Errorf("tagcodec: open %s: %w", path, err)
	}

	n, err := f.Read(header)

	closeErr := f.Close()
	if err != nil && n == 0 {
		return nil, fmt.Errorf("tagcodec: read header of %s: %w", path, err)
	}

	if closeErr != nil {
		return nil, fmt.Errorf("tagcodec: close %s: %w", path, closeErr)
	}

	header = header[:n]

	switch DetectFormat(header) {
	case FormatFLAC:
		return openFLAC(path)
	case FormatMP3:
		return openID3(path, separators.ID3)
	case FormatMP4:
		return openMP4(path, separators.MP4)
	case FormatAPE:
		return openAPE(path, separators.APE)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// DetectFormat classifies header (the first bytes of a file) by magic byte
// content. MP4's ftyp box sits at offset 4, so it needs the full header
// rather than a bare prefix match. MP3 files without an ID3v2 header are
// still detected by content: the MPEG audio frame sync word. An .ape file is
// recognized by Monkey's Audio's own "MAC " container magic, not by the
// APEv2 tag magic (apeMagic), which lives at the tail of the file instead.
func DetectFormat(header []byte) Format {
	switch {
	case bytes.HasPrefix(header, flacMagic):
		return FormatFLAC
	case bytes.HasPrefix(header, id3Magic):
		return FormatMP3
	case len(header) >= 8 && bytes.Equal(header[4:8], []byte("ftyp")):
		return FormatMP4
	case bytes.HasPrefix(header, apeContainerMagic):
		return FormatAPE
	case isMPEGFrameSync(header):
		return FormatMP3
	default:
		return FormatUnknown
	}
}

// isMPEGFrameSync reports whether header begins with an MPEG audio frame
// sync word: 11 set sync bits followed by a non-reserved MPEG version and a
// non-reserved layer, per the MPEG-1/2 frame header layout.
func isMPEGFrameSync(header []byte) bool {
	if len(header) < 2 {
		return false
	}

	const (
		reservedVersion = 0b01
		reservedLayer   = 0b00
	)

	version := (header[1] >> 3) & 0b11
	layer := (header[1] >> 1) & 0b11

	return header[0] == 0xFF && header[1]&0xE0 == 0xE0 && version != reservedVersion && layer != reservedLayer
}
