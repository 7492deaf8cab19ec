package dataprocessing

import (
	"strings"
)

// headerMatches reports whether a (lowercased, trimmed) header satisfies a
// candidate name: exact match, or either string contains the other. The
// containment rules are deliberately loose so that headers like
// "Instagram Followers" still match a "followers" candidate.
func headerMatches(header, candidate string) bool {
	return header == candidate ||
		strings.Contains(header, candidate) ||
		strings.Contains(candidate, header)
}

// ResolveValue looks up the cell value for one semantic field. headers must
// be lowercased and trimmed, in column order; candidates are ordered most
// specific first and the first candidate with a non-empty matching cell wins.
// Changing candidate order changes which column wins on ambiguous headers, so
// callers pass ordered slices, never sets.
//
// The returned value is trimmed. Cells that are empty after trimming are
// treated as no match and scanning continues. No match at all returns "".
func ResolveValue(headers []string, row []string, candidates []string) string {
	for _, candidate := range candidates {
		candidate = strings.ToLower(candidate)
		for i, header := range headers {
			if !headerMatches(header, candidate) {
				continue
			}
			if i >= len(row) {
				continue
			}
			if value := strings.TrimSpace(row[i]); value != "" {
				return value
			}
		}
	}
	return ""
}

// NormalizeHeaders lowercases and trims a raw header row for use with
// ResolveValue.
func NormalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	for i, h := range raw {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return headers
}
