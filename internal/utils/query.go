package utils

import (
	"strings"
	"unicode"
)

// IsQuoted reports whether s is wrapped in a pair of literal double quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// Unquote strips one pair of surrounding double quotes and trims the inside.
// Strings that are not quoted are returned trimmed.
func Unquote(s string) string {
	if IsQuoted(s) {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// ContainsControlChars reports whether s holds non-printable control runes
// (newlines and tabs included). Query input is expected on a single line.
func ContainsControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// IsValidQuery checks if input should be passed to the search engine.
// Empty input is valid (it yields empty results); overlong or control-laden input is not.
func IsValidQuery(s string, maxLen int) bool {
	if maxLen > 0 && len([]rune(s)) > maxLen {
		return false
	}
	return !ContainsControlChars(s)
}
