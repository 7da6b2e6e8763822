package pipeline

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/tempo-importer/tempo-importer/internal/tagkey"
)

// placeholderKeys maps each {placeholder} name a library naming template may
// reference to the tagkey.Key whose first value supplies it, per §4.11's
// flattened tag vocabulary shared by library.release_name, library.track_name
// and library.artist_name.
var placeholderKeys = map[string]tagkey.Key{
	"albumArtist":    tagkey.AlbumArtist,
	"albumTitle":     tagkey.Album,
	"trackArtist":    tagkey.Artist,
	"trackTitle":     tagkey.TrackTitle,
	"releaseYear":    tagkey.ReleaseYear,
	"releaseMonth":   tagkey.ReleaseMonth,
	"releaseDay":     tagkey.ReleaseDay,
	"releaseType":    tagkey.ReleaseType,
	"releaseCountry": tagkey.ReleaseCountry,
	"catalogNumber":  tagkey.CatalogNumber,
	"recordLabel":    tagkey.RecordLabel,
	"discNumber":     tagkey.DiscNumber,
	"trackNumber":    tagkey.TrackNumber,
	"genre":          tagkey.Genre,
}

// sanitizePathComponent strips the characters that would let a tag value
// escape its place in a rendered path, per §4.11: "no rendered path contains
// / or \ in any substituted value".
func sanitizePathComponent(value string) string {
	value = strings.ReplaceAll(value, "/", "-")
	value = strings.ReplaceAll(value, "\\", "-")

	return strings.TrimSpace(value)
}

// flattenPlaceholders reduces a tagkey-keyed tag map to the flat, sanitized
// {placeholder} -> value map a naming template substitutes from. Only the
// first value of a multi-valued field is used. It also synthesizes the
// zero-padded "Pad" variants (trackNumberPad, discNumberPad) the default
// templates reference.
func flattenPlaceholders(tags map[tagkey.Key][]string) map[string]string {
	placeholders := make(map[string]string, len(placeholderKeys)+2)

	for name, key := range placeholderKeys {
		values := tags[key]
		if len(values) == 0 || values[0] == "" {
			continue
		}

		placeholders[name] = sanitizePathComponent(values[0])
	}

	if n, ok := placeholders["trackNumber"]; ok {
		placeholders["trackNumberPad"] = padNumeric(n)
	}

	if n, ok := placeholders["discNumber"]; ok {
		placeholders["discNumberPad"] = padNumeric(n)
	}

	return placeholders
}

// padNumeric zero-pads a numeric placeholder to two digits. Non-numeric
// input is returned unchanged.
func padNumeric(raw string) string {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return raw
	}

	return fmt.Sprintf("%02d", n)
}

// renderPath renders a library naming template against tags, per §4.11.
// Every {placeholder} the template references must resolve to a non-empty
// tag value; a reference to an absent key fails the render, which fails the
// stage that called it.
func renderPath(tmplText string, tags map[tagkey.Key][]string) (string, error) {
	placeholders := flattenPlaceholders(tags)

	funcs := make(template.FuncMap, len(placeholders))

	for name, value := range placeholders {
		value := value
		funcs[name] = func() string { return value }
	}

	tmpl, err := template.New("path").Delims("{", "}").Funcs(funcs).Parse(tmplText)
	if err != nil {
		return "", fmt.Errorf("pipeline: parse naming template %q: %w", tmplText, err)
	}

	var out strings.Builder

	if err := tmpl.Execute(&out, nil); err != nil {
		return "", fmt.Errorf("pipeline: render naming template %q: %w", tmplText, err)
	}

	return out.String(), nil
}
