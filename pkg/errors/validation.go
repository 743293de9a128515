package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateRegionName validates a brain region identifier for safety and
// correctness. Region names end up in DOT node ids, SVG labels, and output
// filenames, so the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, backslash)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateRegionName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRegion, "region name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidRegion, "region name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRegion, "region name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidRegion, "region name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateRegionNames validates a full region list: every name must pass
// ValidateRegionName and names must be unique.
func ValidateRegionNames(names []string) error {
	if len(names) == 0 {
		return New(ErrCodeInvalidRegion, "region list cannot be empty")
	}

	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		if err := ValidateRegionName(name); err != nil {
			return Wrap(ErrCodeInvalidRegion, err, "region %d", i)
		}
		if _, dup := seen[name]; dup {
			return New(ErrCodeInvalidRegion, "duplicate region name: %q", name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// ValidatePath validates an output file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
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

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// hexColorRegex matches #RGB and #RRGGBB hex color strings.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a hex color string (e.g. "#E74C3C" or "#fff").
func ValidateHexColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidInput, "color cannot be empty")
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid hex color: %q", color)
	}

	return nil
}

// runIDRegex matches canonical UUID strings used as run identifiers.
var runIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateRunID validates a stored analysis run identifier.
func ValidateRunID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "run id cannot be empty")
	}

	if !runIDRegex.MatchString(strings.ToLower(id)) {
		return New(ErrCodeInvalidInput, "invalid run id: %q", id)
	}

	return nil
}
