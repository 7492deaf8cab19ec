package domain

import (
	"time"
)

// Profile represents one normalized roster entry produced from a single
// spreadsheet row. String fields are carried verbatim from the source sheet;
// only Platform, Followers and FollowersDisplay are derived.
type Profile struct {
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	ProfileLink      string    `json:"profileLink" db:"profile_link"`
	Platform         string    `json:"platform" db:"platform"`
	Followers        float64   `json:"followers" db:"followers"`
	FollowersDisplay string    `json:"followersDisplay" db:"followers_display"`
	Commercials      string    `json:"commercials" db:"commercials"`
	Range            string    `json:"range" db:"view_range"`
	PhoneNumber      string    `json:"phoneNumber" db:"phone_number"`
	Email            string    `json:"email" db:"email"`
	State            string    `json:"state" db:"state"`
	Category         string    `json:"category" db:"category"`
	Sex              string    `json:"sex" db:"sex"`
	Age              string    `json:"age" db:"age"`
	Status           Status    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Status represents the review state of a profile.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known review states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Canonical platform names. The normalization pipeline only ever emits one of
// these or the empty string; abbreviations like "IG" never leave the detector.
const (
	PlatformInstagram = "Instagram"
	PlatformYouTube   = "YouTube"
	PlatformTikTok    = "TikTok"
	PlatformFacebook  = "Facebook"
)

// Platforms lists the canonical platform names in display order.
var Platforms = []string{PlatformInstagram, PlatformYouTube, PlatformTikTok, PlatformFacebook}

// Follower range buckets, low to high.
const (
	RangeNano     = "NANO"
	Range10K50K   = "10K-50K"
	Range50K100K  = "50K-100K"
	Range100K200K = "100K-200K"
	Range200K500K = "200K-500K"
	Range500K1M   = "500K-1M"
	Range1MPlus   = "1M+"
)

// RangeBuckets lists all follower range buckets in ascending order. Callers
// that need a complete histogram default missing buckets to zero.
var RangeBuckets = []string{
	RangeNano,
	Range10K50K,
	Range50K100K,
	Range100K200K,
	Range200K500K,
	Range500K1M,
	Range1MPlus,
}

// SelectionStats holds aggregate statistics over a selected subset of
// profiles. It is derived on demand and never persisted.
type SelectionStats struct {
	TotalProfiles         int            `json:"total_profiles"`
	TotalFollowers        float64        `json:"total_followers"`
	TotalInMillions       float64        `json:"total_in_millions"`
	TotalFollowersDisplay string         `json:"total_followers_display"`
	AverageFollowers      float64        `json:"average_followers"`
	RangeDistribution     map[string]int `json:"range_distribution"`
}
