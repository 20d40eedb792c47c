// Package sanitize strips markup from free-text fields before they are stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// maxPasses bounds the decode/strip loop for nested entity encodings.
const maxPasses = 4

// Text removes all HTML from s and trims surrounding whitespace. Entities are
// decoded so plain text like "R&D" is kept as typed, and decoded text is
// stripped again until it is stable, so "&lt;b&gt;" cannot become a tag.
func Text(s string) string {
	if s == "" {
		return s
	}
	out := s
	for i := 0; i < maxPasses; i++ {
		next := html.UnescapeString(strict.Sanitize(out))
		if next == out {
			break
		}
		out = next
	}
	// Still unstable after maxPasses: keep the escaped form rather than risk markup.
	if html.UnescapeString(strict.Sanitize(out)) != out {
		out = strict.Sanitize(out)
	}
	return strings.TrimSpace(out)
}
