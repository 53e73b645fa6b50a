package errors

import (
	"strings"
	"unicode"
)

// ValidateIdentifier validates a state or symbol identifier for safety.
// Identifiers end up as JSON object keys, DOT node names, and grammar
// nonterminals, so the rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - Maximum length of 128 characters
func ValidateIdentifier(kind, id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "%s too long (max 128 characters): %q", kind, id)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains control characters: %q", kind, id)
		}
	}

	return nil
}

// ValidateStateID validates a state identifier.
func ValidateStateID(id string) error {
	return ValidateIdentifier("state", id)
}

// ValidateSymbol validates an alphabet symbol.
func ValidateSymbol(sym string) error {
	return ValidateIdentifier("symbol", sym)
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
