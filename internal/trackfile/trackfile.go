// Package trackfile wraps a single on-disk audio file together with the
// detected tag codec covering it, presenting the small set of operations the
// import pipeline needs without exposing format-specific details.
package trackfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tempo-importer/tempo-importer/internal/constants"
	"github.com/tempo-importer/tempo-importer/internal/tagcodec"
	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// Handle is an open audio file paired with its detected tag codec.
type Handle struct {
	path   string
	format tagcodec.Format
	codec  tagcodec.Codec
}

// Open detects path's tag format by content sniffing and returns a Handle
// positioned over its current tags.
func Open(path string, separators tagcodec.Separators) (*Handle, error) {
	header, err := readHeader(path)
	if err != nil {
		return nil, err
	}

	codec, err := tagcodec.Open(path, separators)
	if err != nil {
		return nil, err
	}

	return &Handle{
		path:   path,
		format: tagcodec.DetectFormat(header),
		codec:  codec,
	}, nil
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // Path is supplied by the folder walker, not untrusted input.
	if err != nil {
		return nil, fmt.Errorf("trackfile: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only handle; nothing to flush.

	header := make([]byte, 12)

	n, err := f.Read(header)
	if err != nil && n == 0 {
		return nil, fmt.Errorf("trackfile: read header of %s: %w", path, err)
	}

	return header[:n], nil
}

// Path returns the file's current on-disk location.
func (h *Handle) Path() string {
	return h.path
}

// Format returns the detected tag container format.
func (h *Handle) Format() tagcodec.Format {
	return h.format
}

// GetTag returns all values stored under key, or nil if the codec holds none.
func (h *Handle) GetTag(key tagkey.Key) []string {
	return h.codec.Get(key)
}

// SetTag writes values for key. ErrNotSupported is returned verbatim so
// callers implementing Apply can ignore it per key.
func (h *Handle) SetTag(key tagkey.Key, values []string) error {
	return h.codec.Set(key, values)
}

// Apply sets every key in tags, silently skipping keys the underlying format
// has no frame for (tagcodec.ErrNotSupported is non-fatal by contract).
func (h *Handle) Apply(tags map[tagkey.Key][]string) error {
	for key, values := range tags {
		if err := h.codec.Set(key, values); err != nil {
			if errors.Is(err, tagcodec.ErrNotSupported) {
				continue
			}

			return fmt.Errorf("trackfile: apply %s: %w", key, err)
		}
	}

	return nil
}

// Clear removes every tag and embedded picture.
func (h *Handle) Clear() {
	h.codec.Clear()
}

// Pictures returns the embedded cover art.
func (h *Handle) Pictures() []tagkey.Picture {
	return h.codec.Pictures()
}

// SetPictures replaces the embedded cover art.
func (h *Handle) SetPictures(pictures []tagkey.Picture) {
	h.codec.SetPictures(pictures)
}

// Write flushes the handle's in-memory tag state back to its own path.
func (h *Handle) Write() error {
	return h.codec.Write(h.path)
}

// DuplicateTo copies the file's bytes to dest and reopens a fresh codec
// against the copy, leaving h untouched. The copy is atomic from the
// caller's perspective: it is written to a temporary file in dest's
// directory and renamed into place, so dest either ends up with the
// complete source bytes or does not exist at all.
func (h *Handle) DuplicateTo(dest string, separators tagcodec.Separators) (*Handle, error) {
	if err := copyFileAtomic(h.path, dest); err != nil {
		return nil, err
	}

	return Open(dest, separators)
}

func copyFileAtomic(src, dest string) error {
	destDir := filepath.Dir(dest)

	tmp, err := os.CreateTemp(destDir, ".trackfile-*"+filepath.Ext(dest))
	if err != nil {
		return fmt.Errorf("trackfile: create temp file in %s: %w", destDir, err)
	}

	tmpPath := tmp.Name()

	if err := copyInto(tmp, src); err != nil {
		tmp.Close()         //nolint:errcheck,gosec // Best-effort close before removing the failed temp file.
		os.Remove(tmpPath) //nolint:errcheck // Best-effort cleanup; the copy already failed.

		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath) //nolint:errcheck // Best-effort cleanup; the copy already failed.

		return fmt.Errorf("trackfile: close temp file %s: %w", tmpPath, err)
	}

	if err := os.Chmod(tmpPath, constants.DefaultFilePermissions); err != nil {
		os.Remove(tmpPath) //nolint:errcheck // Best-effort cleanup; the copy already failed.

		return fmt.Errorf("trackfile: set permissions on %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath) //nolint:errcheck // Best-effort cleanup; the copy already failed.

		return fmt.Errorf("trackfile: rename %s to %s: %w", tmpPath, dest, err)
	}

	return nil
}

func copyInto(dst *os.File, src string) error {
	srcFile, err := os.Open(src) //nolint:gosec // Path is supplied by the folder walker, not untrusted input.
	if err != nil {
		return fmt.Errorf("trackfile: open %s: %w", src, err)
	}
	defer srcFile.Close() //nolint:errcheck // Read-only handle; nothing to flush.

	if _, err := io.Copy(dst, srcFile); err != nil {
		return fmt.Errorf("trackfile: copy %s: %w", src, err)
	}

	return nil
}
