package search

import (
	"strings"
	"unicode"

	"github.com/bastiangx/mapsearch/internal/utils"
)

// MaxTagLength is the longest tag body (without '#') that is recognized.
// Longer runs are cut at this many runes.
const MaxTagLength = 64

// tagDelimiters may precede a '#' besides whitespace.
const tagDelimiters = `.,;:!?()[]{}<>"'/\|*+=~` + "`"

func isTagRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

func isTagDelimiter(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(tagDelimiters, r)
}

// ExtractHashtags returns the lowercase tags found in text, without their '#',
// in order of first appearance with duplicates removed.
//
// A tag starts at a '#' placed at the start of text or right after whitespace
// or punctuation, and runs over letters, digits, '_' and '-'.
func ExtractHashtags(text string) []string {
	tags := []string{}
	if text == "" {
		return tags
	}

	runes := []rune(utils.NFC(text))
	filter := utils.NewSuggestionFilter()

	for i := 0; i < len(runes); i++ {
		if runes[i] != '#' {
			continue
		}
		if i > 0 && !isTagDelimiter(runes[i-1]) {
			continue
		}

		end := i + 1
		for end < len(runes) && end-i-1 < MaxTagLength && isTagRune(runes[end]) {
			end++
		}
		if end == i+1 {
			continue
		}

		tag := strings.ToLower(string(runes[i+1 : end]))
		if filter.ShouldInclude(tag) {
			tags = append(tags, tag)
		}
		i = end - 1
	}
	return tags
}

// TokenizeQuery splits input on whitespace into lowercase tokens, dropping
// repeats. A double-quoted run such as `"old ridge"` stays one token with its
// quotes, which marks it as an exact title lookup for Resolve. A quote that
// is never closed is kept as an ordinary character.
func TokenizeQuery(input string) []string {
	tokens := []string{}
	rest := utils.Fold(input)
	filter := utils.NewSuggestionFilter()

	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			break
		}

		var token string
		if rest[0] == '"' {
			if closing := strings.IndexByte(rest[1:], '"'); closing >= 0 {
				token = rest[:closing+2]
				rest = rest[closing+2:]
			}
		}
		if token == "" {
			n := strings.IndexFunc(rest, unicode.IsSpace)
			if n < 0 {
				n = len(rest)
			}
			token = rest[:n]
			rest = rest[n:]
		}

		if filter.ShouldInclude(token) {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
