package media

import (
	"regexp"
	"strings"
)

// Query parsing helpers.
//
// Parsing is kept deliberately tolerant: a trailing parenthesized year or
// year range like "(2010)" or "(2011-2019)" is split off the search term,
// and only the first year of a range is used. A bare trailing number is
// left alone so titles like "Blade Runner 2049" survive intact.
var queryYearRe = regexp.MustCompile(`\(\s*((?:19|20)\d{2})(?:[\s\-–—]+(?:19|20)\d{2})?\s*\)\s*$`)

// ParseQuery splits a free-text search query into the title term and an
// optional release year.
func ParseQuery(raw string) (term, year string) {
	term = strings.TrimSpace(raw)
	if match := queryYearRe.FindStringSubmatch(term); match != nil {
		year = match[1]
		term = strings.TrimSpace(strings.TrimSuffix(term, match[0]))
	}
	return term, year
}
