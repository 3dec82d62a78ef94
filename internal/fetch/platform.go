package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known profile or resume hosting site.
type Platform string

const (
	// PlatformGitHub covers github.com profile and README pages
	PlatformGitHub Platform = "github"
	// PlatformLinkedIn covers public linkedin.com profile pages
	PlatformLinkedIn Platform = "linkedin"
	// PlatformUnknown is an unrecognized host
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the hosting site from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)

	if strings.Contains(host, "github.com") ||
		strings.Contains(host, "github.io") {
		return PlatformGitHub
	}

	if strings.Contains(host, "linkedin.com") {
		return PlatformLinkedIn
	}

	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors tuned for a hosting site.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGitHub:
		return []string{
			".markdown-body", // rendered README / profile README
			"article",
			".Box-body",
			"main",
		}
	case PlatformLinkedIn:
		return []string{
			".scaffold-layout__main",
			".core-section-container",
			".profile-content",
			"main",
		}
	default:
		return ProfilePageSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a hosting site.
func PlatformNoiseSelectors(platform Platform) []string {
	// Common noise selectors for all sites
	common := []string{
		"form",
		".login-form",
		".signup-banner",
		".social-share",
		".share-buttons",
		".social-links",
		".cookie-banner",
		".cookie-consent",
		".gdpr-notice",
		".modal",
	}

	switch platform {
	case PlatformGitHub:
		return append(common,
			".js-header-wrapper",
			".AppHeader",
			".pagehead",
			".footer",
		)
	case PlatformLinkedIn:
		return append(common,
			".global-nav",
			".msg-overlay-list-bubble",
			".ad-banner-container",
			".right-rail",
		)
	default:
		return common
	}
}
