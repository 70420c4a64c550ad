// Package pagination slices ordered listings into fixed-size pages.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// QuestionsPerPage is the fixed page size for every listing
const QuestionsPerPage = 10

// MaxPage is the highest page whose offset fits in an int. Larger page
// numbers are clamped to it, which is still past the end of any listing.
const MaxPage = math.MaxInt / QuestionsPerPage

// Page identifies a 1-based page of QuestionsPerPage items
type Page struct {
	Number int
}

// NewPage returns the page numbered n, falling back to the first page when
// n < 1 and to MaxPage when n is larger
func NewPage(n int) Page {
	return Page{Number: min(max(n, 1), MaxPage)}
}

// ParsePage reads a page query parameter. Absent, unparseable or
// non-positive values select page 1. Numbers too large for an int select
// MaxPage.
func ParsePage(raw string) Page {
	n, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return NewPage(MaxPage)
		}
		return NewPage(1)
	}
	return NewPage(n)
}

// Offset is the index of the first item on the page
func (p Page) Offset() int {
	return (NewPage(p.Number).Number - 1) * QuestionsPerPage
}

// Limit is the maximum number of items on the page
func (p Page) Limit() int {
	return QuestionsPerPage
}

// Paginate returns items[(page-1)*10 : page*10], clamped to the bounds of
// items. Pages past the end yield an empty slice. items is not modified.
func Paginate[T any](page Page, items []T) []T {
	start := page.Offset()
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := min(start+page.Limit(), len(items))

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
