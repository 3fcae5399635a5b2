// Package keywords derives the SEO keyword list of a post from its title and
// meta description.
package keywords

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxKeywords caps the derived keyword list.
	MaxKeywords = 12
	// MinKeywordLength is the shortest keyword kept, in characters.
	MinKeywordLength = 2
)

// punctuation is replaced with spaces before splitting.
var punctuation = strings.NewReplacer(
	",", " ", ".", " ", ":", " ", ";", " ", "!", " ", "?", " ",
	"(", " ", ")", " ", "[", " ", "]", " ", "{", " ", "}", " ",
	`"`, " ", "'", " ",
)

// Tokenize splits text on whitespace after blanking out punctuation.
func Tokenize(text string) []string {
	return strings.Fields(punctuation.Replace(text))
}

// Derive returns title tokens followed by meta description tokens, deduplicated
// in first-seen order, without tokens shorter than MinKeywordLength, capped at
// MaxKeywords. Empty inputs just contribute nothing.
func Derive(title, metaDescription string) []string {
	seeds := append(Tokenize(title), Tokenize(metaDescription)...)

	seen := make(map[string]struct{}, len(seeds))
	out := make([]string, 0, MaxKeywords)
	for _, s := range seeds {
		s = strings.TrimSpace(s)
		if utf8.RuneCountInString(s) < MinKeywordLength {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}
