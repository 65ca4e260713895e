package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// railNameRegex matches names that are safe as a CSS class suffix.
var railNameRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateRailName validates a rail instance name.
// The name is embedded in the rail's region class ("rhr-region--<name>"), so
// it must be a non-empty CSS identifier fragment of at most 64 characters.
func ValidateRailName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "rail name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "rail name too long (max 64 characters)")
	}
	if !railNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "rail name must contain only letters, digits, '-' or '_': %q", name)
	}
	return nil
}

// ValidateNodeID validates the id of a node declared in a page document.
//
// Validation rules:
//   - No empty ids
//   - No whitespace or control characters
//   - Maximum length of 128 characters
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "node id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidDocument, "node id too long (max 128 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDocument, "node id contains whitespace or control characters: %q", id)
		}
	}
	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
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

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
