package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// screenNameRegex matches screen names: lowercase words joined by dashes.
var screenNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateScreenName validates a screen name used for lookups and cache keys.
func ValidateScreenName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScreen, "screen name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidScreen, "screen name too long (max 64 characters)")
	}
	if !screenNameRegex.MatchString(name) {
		return New(ErrCodeInvalidScreen, "invalid screen name: %q", name)
	}
	return nil
}

// ValidatePath validates a file path supplied by a caller.
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
		}
	}

	return nil
}

// ValidateImageURL validates an item image reference.
// Empty references are allowed (items without images); anything else must
// use an http or https scheme. The URL itself is passed through unmodified.
func ValidateImageURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "image URL must use http or https scheme: %q", rawURL)
	}
	return nil
}
