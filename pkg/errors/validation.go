package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxViewportDimension bounds viewport sizes accepted from untrusted input
// (query strings, CLI flags). Larger values are almost certainly mistakes.
const MaxViewportDimension = 1 << 16

// ValidateViewport validates a viewport size supplied by a caller.
// Both dimensions must be positive and no larger than MaxViewportDimension.
func ValidateViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidViewport, "viewport must be positive, got %dx%d", width, height)
	}
	if width > MaxViewportDimension || height > MaxViewportDimension {
		return New(ErrCodeInvalidViewport, "viewport too large (max %d)", MaxViewportDimension)
	}
	return nil
}

// ValidateStorageKey validates a key for the settings store.
// It rejects keys that could escape a namespace or a file store directory:
//   - No empty keys
//   - No control characters
//   - No path traversal sequences or separators
//   - Maximum length of 256 characters
func ValidateStorageKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "storage key cannot be empty")
	}

	if len(key) > 256 {
		return New(ErrCodeInvalidKey, "storage key too long (max 256 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "storage key contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "/", "\\"} {
		if strings.Contains(key, pattern) {
			return New(ErrCodeInvalidKey, "storage key contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateURL validates a page or endpoint URL.
// It requires an absolute http or https URL with a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "malformed URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "URL must include a host")
	}

	return nil
}
