package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// similarityThreshold is the largest edit distance, as a fraction of the
// longer normalized answer, still accepted as a match
const similarityThreshold = 0.2

var articles = []string{"the ", "a ", "an "}

// NormalizeAnswer lowercases an answer, drops a leading article and
// punctuation, and collapses whitespace
func NormalizeAnswer(answer string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))

	for _, article := range articles {
		if strings.HasPrefix(answer, article) {
			answer = strings.TrimPrefix(answer, article)
			break
		}
	}

	var b strings.Builder
	for _, r := range answer {
		if !unicode.IsPunct(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// CheckAnswer reports whether a player's answer matches the expected one.
// Typos within the similarity threshold are forgiven.
func CheckAnswer(given, expected string) bool {
	g, e := NormalizeAnswer(given), NormalizeAnswer(expected)
	if g == "" || e == "" {
		return false
	}
	if g == e {
		return true
	}

	longest := max(utf8.RuneCountInString(g), utf8.RuneCountInString(e))
	return float64(levenshtein.ComputeDistance(g, e))/float64(longest) <= similarityThreshold
}
