package entities

import (
	"net/url"
	"strings"
)

// reservedEscaper escapes the sub-delimiters url.PathEscape leaves as-is.
// PathEscape already turns '%' into %25, so these replacements never collide.
var reservedEscaper = strings.NewReplacer(
	":", "%3A",
	"@", "%40",
	"$", "%24",
	"&", "%26",
	"+", "%2B",
	"=", "%3D",
)

// escapeSegment percent-encodes s for use as a single path segment with
// every reserved character escaped.
func escapeSegment(s string) string {
	return reservedEscaper.Replace(url.PathEscape(s))
}
