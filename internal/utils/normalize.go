package utils

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item and increments for subsequent items.
// Useful for ranking items that are already sorted.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := 0; i < count; i++ {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}

// NFC returns s in Unicode normalization form C, so composed and
// decomposed spellings of the same text compare equal.
func NFC(s string) string {
	return norm.NFC.String(s)
}

// Fold trims, NFC-normalizes and lowercases s. Every key stored in or
// compared against the search indices goes through Fold.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
