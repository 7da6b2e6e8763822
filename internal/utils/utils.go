package utils

import (
	"mime"
	"regexp"
	"strings"
)

var (
	// textContentTypePatterns is a slice of regular expressions that match content types
	// considered to be text-based. This includes "text/*", "application/json", and
	// "application/samlmetadata+xml".
	//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
	textContentTypePatterns = []*regexp.Regexp{
		regexp.MustCompile("^text/.+"),
		regexp.MustCompile("^application/json$"),
		regexp.MustCompile(`^application/samlmetadata\+xml`),
	}
)

// IsTextContentType checks if the given content type represents a text-based format.
// It supports common text content types like "text/*", "application/json", and "application/samlmetadata+xml".
// It also checks that the charset, if present, is either "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}
