package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform_GitHub(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://github.com/janedoe", PlatformGitHub},
		{"https://github.com/janedoe/resume/blob/main/README.md", PlatformGitHub},
		{"https://janedoe.github.io/cv", PlatformGitHub},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_LinkedIn(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.linkedin.com/in/janedoe", PlatformLinkedIn},
		{"https://linkedin.com/in/janedoe/", PlatformLinkedIn},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDetectPlatform_Unknown(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://example.com/resume", PlatformUnknown},
		{"https://janedoe.dev/cv", PlatformUnknown},
		{"not a url at all://", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			result := DetectPlatform(tt.url)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPlatformContentSelectors_GitHub(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformGitHub)
	assert.Contains(t, selectors, ".markdown-body")
	assert.Contains(t, selectors, "main")
}

func TestPlatformContentSelectors_Unknown(t *testing.T) {
	selectors := PlatformContentSelectors(PlatformUnknown)
	// Falls back to the generic profile selectors
	assert.Contains(t, selectors, ".resume")
	assert.Contains(t, selectors, "main")
}

func TestPlatformNoiseSelectors_LinkedIn(t *testing.T) {
	selectors := PlatformNoiseSelectors(PlatformLinkedIn)
	// Common selectors
	assert.Contains(t, selectors, "form")
	assert.Contains(t, selectors, ".cookie-banner")
	// LinkedIn-specific
	assert.Contains(t, selectors, ".global-nav")
	assert.Contains(t, selectors, ".msg-overlay-list-bubble")
}

func TestPlatformNoiseSelectors_Unknown(t *testing.T) {
	selectors := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, selectors, "form")
	assert.Contains(t, selectors, ".login-form")
	assert.Contains(t, selectors, ".cookie-banner")
}
