package errors

import (
	"strings"
	"unicode"
)

// ValidateMapID validates a map identifier for safety and correctness.
// Map IDs become file names in the file store and document keys in MongoDB,
// so the rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateMapID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidMapID, "map id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidMapID, "map id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMapID, "map id contains control characters")
		}
	}

	dangerous := []string{"..", "/", "\\", "\x00"}
	for _, pattern := range dangerous {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidMapID, "map id contains invalid sequence: %q", pattern)
		}
	}

	return nil
}

// ValidateNodeID validates a node identifier. Node IDs are caller-assigned
// and only need to be non-empty and printable; uniqueness is checked
// separately by tree.Validate.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains control characters")
		}
	}
	return nil
}
