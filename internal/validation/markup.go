package validation

import (
	"html"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// ContainsMarkup reports whether s holds HTML that a strict policy would
// strip. Plain text, including bare "&" and "<" characters, does not.
func ContainsMarkup(s string) bool {
	return html.UnescapeString(strict.Sanitize(s)) != s
}
