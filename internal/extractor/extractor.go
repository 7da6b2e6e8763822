// Package extractor normalizes a folder of track files into an
// InternalRelease and its InternalTrack slice by consensus-voting their tags.
package extractor

import (
	"context"
	"strconv"
	"strings"

	"github.com/tempo-importer/tempo-importer/internal/logger"
	"github.com/tempo-importer/tempo-importer/internal/model"
	"github.com/tempo-importer/tempo-importer/internal/tagkey"
	"github.com/tempo-importer/tempo-importer/internal/trackfile"
)

// tagReader is the subset of trackfile.Handle extraction needs, so tests can
// supply fakes without touching the filesystem.
type tagReader interface {
	GetTag(key tagkey.Key) []string
	Path() string
}

var _ tagReader = (*trackfile.Handle)(nil)

// ExtractFolder builds the consensus InternalRelease and its per-file
// InternalTrack slice for a folder's opened track handles, in the order the
// handles are given. It is the entry point external callers (the CLI's
// import intake) use, since tagReader itself is unexported.
func ExtractFolder(ctx context.Context, handles []*trackfile.Handle) (model.InternalRelease, []model.InternalTrack) {
	readers := make([]tagReader, len(handles))
	for i, h := range handles {
		readers[i] = h
	}

	release := ExtractRelease(ctx, readers)

	tracks := make([]model.InternalTrack, len(handles))
	for i, r := range readers {
		tracks[i] = ExtractTrack(ctx, r)
	}

	return release, tracks
}

// ExtractRelease builds the consensus InternalRelease for a folder's track
// files, per spec.md §4.3's majority-vote rules.
func ExtractRelease(ctx context.Context, handles []tagReader) model.InternalRelease {
	title := firstTag(ctx, handles, tagkey.Album)
	if title == "" {
		title = model.UnknownTitle
	}

	return model.InternalRelease{
		Title:         title,
		Artists:       extractArtists(ctx, handles),
		Discs:         parseIntTag(ctx, handles, tagkey.TotalDiscs),
		Media:         parseStringTag(ctx, handles, tagkey.Media),
		Tracks:        derefOrZero(parseIntValue(firstTag(ctx, handles, tagkey.TotalTracks))),
		Country:       parseStringTag(ctx, handles, tagkey.ReleaseCountry),
		Label:         parseStringTag(ctx, handles, tagkey.RecordLabel),
		ReleaseType:   parseStringTag(ctx, handles, tagkey.ReleaseType),
		Year:          parseIntTag(ctx, handles, tagkey.ReleaseYear),
		Month:         parseIntTag(ctx, handles, tagkey.ReleaseMonth),
		Day:           parseIntTag(ctx, handles, tagkey.ReleaseDay),
		OriginalYear:  parseIntTag(ctx, handles, tagkey.OriginalReleaseYear),
		OriginalMonth: parseIntTag(ctx, handles, tagkey.OriginalReleaseMonth),
		OriginalDay:   parseIntTag(ctx, handles, tagkey.OriginalReleaseDay),
	}
}

// ExtractTrack builds the InternalTrack for a single track file.
func ExtractTrack(ctx context.Context, handle tagReader) model.InternalTrack {
	single := []tagReader{handle}

	title := firstTag(ctx, single, tagkey.TrackTitle)
	if title == "" {
		title = model.UnknownTitle
	}

	return model.InternalTrack{
		Title:   title,
		Artists: dedup(handle.GetTag(tagkey.Artists)),
		Length:  parseIntTag(ctx, single, tagkey.Duration),
		Disc:    parseIntTag(ctx, single, tagkey.DiscNumber),
		Number:  parseIntTag(ctx, single, tagkey.TrackNumber),
		Path:    handle.Path(),
	}
}

// extractArtists prefers AlbumArtist across every file if any file has one,
// per spec.md §4.3(b); otherwise it unions Artist and Artists.
func extractArtists(ctx context.Context, handles []tagReader) []string {
	if firstTag(ctx, handles, tagkey.AlbumArtist) != "" {
		return collectTag(ctx, handles, tagkey.AlbumArtist)
	}

	artists := collectTag(ctx, handles, tagkey.Artist)
	artists = append(artists, collectTag(ctx, handles, tagkey.Artists)...)

	return dedup(artists)
}

// collectTag flattens and dedupes key's values across every handle.
func collectTag(_ context.Context, handles []tagReader, key tagkey.Key) []string {
	var values []string

	for _, h := range handles {
		values = append(values, h.GetTag(key)...)
	}

	return dedup(values)
}

// firstTag returns the first of key's distinct non-empty values across
// handles, per spec.md §4.3(a): when more than one distinct value exists,
// the disagreement is logged and the first one wins.
func firstTag(ctx context.Context, handles []tagReader, key tagkey.Key) string {
	options := collectTag(ctx, handles, key)

	nonEmpty := options[:0:0]

	for _, v := range options {
		if strings.TrimSpace(v) != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}

	if len(nonEmpty) > 1 {
		logger.DebugKV(ctx, "multiple distinct tag values found across files; using the first",
			"tag", key.String(), "values", strings.Join(nonEmpty, ", "))
	}

	if len(nonEmpty) == 0 {
		return ""
	}

	return nonEmpty[0]
}

func parseStringTag(ctx context.Context, handles []tagReader, key tagkey.Key) *string {
	value := firstTag(ctx, handles, key)
	if value == "" {
		return nil
	}

	return &value
}

func parseIntTag(ctx context.Context, handles []tagReader, key tagkey.Key) *int {
	return parseIntValue(firstTag(ctx, handles, key))
}

func parseIntValue(raw string) *int {
	if raw == "" {
		return nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}

	return &n
}

func derefOrZero(n *int) int {
	if n == nil {
		return 0
	}

	return *n
}

// dedup removes duplicate strings while preserving first-occurrence order.
func dedup(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}

		out = append(out, v)
	}

	return out
}
