package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"rostercli/internal/errors"
	"rostercli/pkg/contracts/domain"
)

// Candidate lists for header resolution, most specific first. Order is
// load-bearing: the first candidate with a non-empty matching cell wins, and
// reordering changes which column is picked on ambiguous headers.
var (
	linkCandidates = []string{
		"profile link", "link", "url", "profile", "profile url",
		"social link", "instagram link", "youtube link", "tiktok link",
		"facebook link", "handle", "username link", "instagram", "youtube",
		"tiktok", "facebook", "social media link", "channel link", "page link",
	}
	platformCandidates    = []string{"platform", "social media", "social", "social platform"}
	followersCandidates   = []string{"followers", "subscribers", "follower count", "followers count", "subscriber count"}
	nameCandidates        = []string{"name", "full name", "username", "influencer name"}
	commercialsCandidates = []string{"commercials", "commercial", "rate", "price", "commercial rate", "pricing"}
	rangeCandidates       = []string{"range", "avg views", "average views", "views", "view range", "average view"}
	phoneCandidates       = []string{"phone", "phone number", "mobile", "contact", "contact number", "mobile number"}
	emailCandidates       = []string{"email", "email id", "email address", "e-mail"}
	stateCandidates       = []string{"state", "location", "city", "region", "area"}
	categoryCandidates    = []string{"category", "niche", "category/niche", "type", "genre"}
	sexCandidates         = []string{"sex", "gender", "male/female", "m/f"}
	ageCandidates         = []string{"age"}
)

// Normalizer converts raw spreadsheet rows into domain.Profile records.
type Normalizer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewNormalizer creates a row normalizer. A nil logger falls back to
// slog.Default.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		logger: logger.With(slog.String("component", "normalizer")),
		now:    time.Now,
	}
}

// Normalize converts decoded spreadsheet rows (row 0 = headers) into
// profiles. Rows whose cells are all empty are skipped; everything else
// produces a record, worst case with empty/zero fields. IDs are unique within
// the batch: one timestamp is taken per call and combined with the source row
// index.
//
// The only error case is a sheet too short to contain data. An import that
// yields zero profiles returns an empty slice, not an error; the caller
// decides how to report it.
func (n *Normalizer) Normalize(ctx context.Context, rows [][]string) ([]domain.Profile, error) {
	if len(rows) < 2 {
		return nil, errors.NewParsingError("file must have at least a header row and one data row", nil)
	}

	headers := NormalizeHeaders(rows[0])
	batchID := uuid.NewString()
	batchStamp := nextBatchStamp(n.now().UnixMilli())

	n.logger.InfoContext(ctx, "normalizing spreadsheet rows",
		slog.String("batch_id", batchID),
		slog.Int("data_rows", len(rows)-1),
		slog.Any("headers", headers))

	profiles := make([]domain.Profile, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		profiles = append(profiles, n.normalizeRow(headers, row, batchStamp, i))
	}

	n.logger.InfoContext(ctx, "normalization complete",
		slog.String("batch_id", batchID),
		slog.Int("profile_count", len(profiles)))

	return profiles, nil
}

// normalizeRow builds one profile from one data row. It never fails: missing
// or malformed fields default to empty strings and zero counts.
func (n *Normalizer) normalizeRow(headers, row []string, batchStamp int64, rowIndex int) domain.Profile {
	// Header-resolved links are trimmed; fallback-scanned links are kept
	// byte-for-byte as found. Once set, the link is never rewritten.
	profileLink := ResolveValue(headers, row, linkCandidates)
	if profileLink == "" {
		profileLink = scanForLink(row)
	}

	platform := ResolveValue(headers, row, platformCandidates)
	platform = DetectPlatform(platform, profileLink)

	followers := ParseFollowerCount(ResolveValue(headers, row, followersCandidates))

	return domain.Profile{
		ID:               fmt.Sprintf("profile_%d_%d", batchStamp, rowIndex),
		Name:             ResolveValue(headers, row, nameCandidates),
		ProfileLink:      profileLink,
		Platform:         platform,
		Followers:        followers.Numeric,
		FollowersDisplay: followers.Display,
		Commercials:      ResolveValue(headers, row, commercialsCandidates),
		Range:            ResolveValue(headers, row, rangeCandidates),
		PhoneNumber:      ResolveValue(headers, row, phoneCandidates),
		Email:            ResolveValue(headers, row, emailCandidates),
		State:            ResolveValue(headers, row, stateCandidates),
		Category:         ResolveValue(headers, row, categoryCandidates),
		Sex:              ResolveValue(headers, row, sexCandidates),
		Age:              ResolveValue(headers, row, ageCandidates),
		Status:           domain.StatusPending,
	}
}

// lastBatchStamp tracks the most recently issued batch stamp so that two
// batches normalized within the same millisecond still get distinct id
// prefixes.
var lastBatchStamp atomic.Int64

func nextBatchStamp(stamp int64) int64 {
	for {
		last := lastBatchStamp.Load()
		if stamp <= last {
			stamp = last + 1
		}
		if lastBatchStamp.CompareAndSwap(last, stamp) {
			return stamp
		}
	}
}

// scanForLink is the last-resort profile link lookup for sheets that put raw
// URLs in unlabeled columns: the first cell in column order that looks URL-ish
// wins, taken verbatim with no trimming.
func scanForLink(row []string) string {
	for _, cell := range row {
		if cell == "" {
			continue
		}
		if strings.Contains(cell, "http") ||
			strings.Contains(cell, "instagram.com") ||
			strings.Contains(cell, "youtube.com") ||
			strings.Contains(cell, "tiktok.com") ||
			strings.Contains(cell, "facebook.com") ||
			strings.HasPrefix(cell, "@") ||
			strings.Contains(cell, "/") {
			return cell
		}
	}
	return ""
}

// isEmptyRow reports whether every cell in the row is the empty string.
// Whitespace-only cells count as data here; they are trimmed away later per
// field.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
