package dataprocessing

import (
	"strconv"

	"rostercli/pkg/contracts/domain"
)

// ClassifyRange maps a follower count to its range bucket. Buckets are
// evaluated low to high with inclusive lower and exclusive upper bounds;
// zero and anything under 10,000 is NANO. Total over all non-negative counts.
func ClassifyRange(followers float64) string {
	switch {
	case followers < 10_000:
		return domain.RangeNano
	case followers < 50_000:
		return domain.Range10K50K
	case followers < 100_000:
		return domain.Range50K100K
	case followers < 200_000:
		return domain.Range100K200K
	case followers < 500_000:
		return domain.Range200K500K
	case followers < 1_000_000:
		return domain.Range500K1M
	default:
		return domain.Range1MPlus
	}
}

// ComputeStats aggregates follower statistics over the profiles whose IDs
// appear in selectedIDs. Pure and deterministic: safe to recompute on every
// request. An empty selection yields all-zero stats with an empty
// distribution. Buckets with no selected profiles are absent from the
// distribution map; callers needing all buckets default missing entries to 0
// via domain.RangeBuckets.
func ComputeStats(profiles []domain.Profile, selectedIDs []string) domain.SelectionStats {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var (
		total float64
		count int
		dist  = make(map[string]int)
	)
	for _, p := range profiles {
		if !selected[p.ID] {
			continue
		}
		total += p.Followers
		count++
		dist[ClassifyRange(p.Followers)]++
	}

	if count == 0 {
		return domain.SelectionStats{
			TotalFollowersDisplay: "0",
			RangeDistribution:     map[string]int{},
		}
	}

	totalInMillions := total / 1_000_000
	return domain.SelectionStats{
		TotalProfiles:         count,
		TotalFollowers:        total,
		TotalInMillions:       totalInMillions,
		TotalFollowersDisplay: FormatAggregate(total),
		AverageFollowers:      total / float64(count),
		RangeDistribution:     dist,
	}
}

// FormatAggregate renders a selection total in fixed two-decimal M/K form.
// Distinct from formatCompact on purpose: per-row displays strip the trailing
// ".0", aggregate totals always show two decimals.
func FormatAggregate(total float64) string {
	switch {
	case total >= 1_000_000:
		return strconv.FormatFloat(total/1_000_000, 'f', 2, 64) + "M"
	case total >= 1_000:
		return strconv.FormatFloat(total/1_000, 'f', 2, 64) + "K"
	default:
		return strconv.FormatFloat(total, 'f', -1, 64)
	}
}
