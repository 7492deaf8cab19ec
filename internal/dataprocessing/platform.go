package dataprocessing

import (
	"strings"

	"rostercli/pkg/contracts/domain"
)

// NormalizePlatform maps a free-text platform field to its canonical display
// name. Matching is containment over the uppercased text, so "ig", "IG Reels"
// and "instagram" all resolve to Instagram. Text that matches no known
// platform is passed through unchanged: unknown platforms are preserved
// rather than discarded.
func NormalizePlatform(text string) string {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "IG"), strings.Contains(upper, "INSTAGRAM"):
		return domain.PlatformInstagram
	case strings.Contains(upper, "YT"), strings.Contains(upper, "YOUTUBE"):
		return domain.PlatformYouTube
	case strings.Contains(upper, "TT"), strings.Contains(upper, "TIKTOK"):
		return domain.PlatformTikTok
	case strings.Contains(upper, "FB"), strings.Contains(upper, "FACEBOOK"):
		return domain.PlatformFacebook
	default:
		return text
	}
}

// DetectPlatformFromLink infers a platform from a profile link or handle.
// Lowercased domain substrings are tested in priority order, with bare
// original-case abbreviation tokens (IG/YT/TT/FB) as a fallback for each.
// Returns "" when nothing matches.
func DetectPlatformFromLink(link string) string {
	if link == "" {
		return ""
	}
	lower := strings.ToLower(link)
	switch {
	case strings.Contains(lower, "instagram.com"),
		strings.Contains(lower, "ig"),
		strings.Contains(link, "IG"):
		return domain.PlatformInstagram
	case strings.Contains(lower, "youtube.com"),
		strings.Contains(lower, "youtu.be"),
		strings.Contains(lower, "yt"),
		strings.Contains(link, "YT"):
		return domain.PlatformYouTube
	case strings.Contains(lower, "tiktok.com"),
		strings.Contains(lower, "tiktok"),
		strings.Contains(link, "TT"):
		return domain.PlatformTikTok
	case strings.Contains(lower, "facebook.com"),
		strings.Contains(lower, "fb.com"),
		strings.Contains(lower, "facebook"),
		strings.Contains(link, "FB"):
		return domain.PlatformFacebook
	default:
		return ""
	}
}

// DetectPlatform resolves the platform for a profile. An explicit platform
// field wins and is normalized; otherwise the link heuristics run. Returns ""
// when neither source yields a platform.
func DetectPlatform(explicitField, linkOrHandle string) string {
	if explicitField != "" {
		return NormalizePlatform(explicitField)
	}
	if detected := DetectPlatformFromLink(linkOrHandle); detected != "" {
		// Link-derived names are already canonical; normalization keeps the
		// two code paths symmetric.
		return NormalizePlatform(detected)
	}
	return ""
}
