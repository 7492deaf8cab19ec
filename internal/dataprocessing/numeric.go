package dataprocessing

import (
	"strconv"
	"strings"
)

// FollowerCount is the result of parsing a raw follower cell: the numeric
// value used for calculations and the display string shown to users.
type FollowerCount struct {
	Numeric float64
	Display string
}

var zeroCount = FollowerCount{Numeric: 0, Display: "0"}

// ParseFollowerCount converts a raw cell value into a follower count.
// Suffixed values ("10K", "1.5M", case-insensitive) keep their original
// numeric literal in the display string so they round-trip exactly; bare
// numbers get a synthesized display ("1.2K", "2M"). Currency symbols and
// thousands separators are stripped. Empty or unparseable input yields
// {0, "0"} rather than an error: one bad cell must never abort an import.
func ParseFollowerCount(raw string) FollowerCount {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return zeroCount
	}

	upper := strings.ToUpper(trimmed)
	if strings.ContainsAny(upper, "KM") {
		prefix, err := strconv.ParseFloat(stripNonNumeric(upper), 64)
		if err != nil {
			return zeroCount
		}
		// M wins when both letters appear.
		if strings.Contains(upper, "M") {
			return FollowerCount{
				Numeric: prefix * 1_000_000,
				Display: strconv.FormatFloat(prefix, 'f', -1, 64) + "M",
			}
		}
		return FollowerCount{
			Numeric: prefix * 1_000,
			Display: strconv.FormatFloat(prefix, 'f', -1, 64) + "K",
		}
	}

	num, err := strconv.ParseFloat(stripNonNumeric(raw), 64)
	if err != nil {
		return zeroCount
	}
	return FollowerCount{Numeric: num, Display: formatCompact(num)}
}

// formatCompact renders a bare numeric follower count in abbreviated form:
// one decimal with a trailing ".0" dropped. This is intentionally a different
// format from FormatAggregate in analytics.go, which uses fixed two decimals
// for selection totals.
func formatCompact(num float64) string {
	switch {
	case num >= 1_000_000:
		return strings.TrimSuffix(strconv.FormatFloat(num/1_000_000, 'f', 1, 64), ".0") + "M"
	case num >= 1_000:
		return strings.TrimSuffix(strconv.FormatFloat(num/1_000, 'f', 1, 64), ".0") + "K"
	default:
		return strconv.FormatFloat(num, 'f', -1, 64)
	}
}

// stripNonNumeric removes everything except digits and decimal points,
// discarding currency symbols, commas and stray letters.
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
