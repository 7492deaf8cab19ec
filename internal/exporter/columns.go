// Package exporter writes normalized roster profiles back out as CSV or
// Excel files using the column layout users expect from the original sheets.
// Format specifics (column order, widths) live here; the records themselves
// are exported as stored, with no further normalization.
package exporter

import (
	"strconv"

	"rostercli/internal/dataprocessing"
	"rostercli/pkg/contracts/domain"
)

// profileHeaders is the exported column set, in order.
var profileHeaders = []string{
	"Name",
	"Profile Link",
	"Platform",
	"Followers/Subscribers",
	"Range",
	"Commercials",
	"Category/Niche",
	"Sex",
	"State",
	"Phone Number",
	"Email ID",
}

// profileColumnWidths sizes the Excel columns to match the header set above.
var profileColumnWidths = []float64{20, 40, 15, 20, 12, 15, 18, 8, 15, 18, 30}

// profileRecord flattens one profile into export cells. The display value is
// preferred for follower counts, falling back to the raw number; the range
// column is classified at export time from the numeric count.
func profileRecord(p domain.Profile) []string {
	followers := p.FollowersDisplay
	if followers == "" {
		followers = strconv.FormatFloat(p.Followers, 'f', -1, 64)
	}
	return []string{
		p.Name,
		p.ProfileLink,
		p.Platform,
		followers,
		dataprocessing.ClassifyRange(p.Followers),
		p.Commercials,
		p.Category,
		p.Sex,
		p.State,
		p.PhoneNumber,
		p.Email,
	}
}
