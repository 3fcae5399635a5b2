// Package analytics computes word statistics over page body text.
package analytics

import (
	"sort"
	"strings"
	"unicode"
)

type Analytics struct{}

// Stopwords per language, space separated. Only function words and page
// chrome are listed; anything a topic could be named after stays countable.
var stopwordLists = map[string]string{
	"en": `a about after again all also am an and any are as at be been before
		being but by can could did do does doing down during each even every few
		for from had has have having he her here hers him his how however i if in
		into is it its itself just me more most my no nor not now of off on once
		only or other our ours out over own same she should so some such than that
		the their theirs them then there these they this those through to too
		under until up us very was we were what when where which while who whom
		why will with would you your yours`,
	"web": `click button link menu redirect page pages website site home homepage
		search loading load`,
	"ko": `그리고 그러나 하지만 그래서 또는 또한 이 그 저 것 수 등 및 있는 있습니다
		합니다 하는 입니다 있다 이런 그런 어떤 모든 위한 대한 통해 더 잘 좀 정말 너무`,
}

// commonWords holds words ignored in frequency analysis.
var commonWords = buildStopwords(stopwordLists)

func buildStopwords(lists map[string]string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range strings.Fields(list) {
			words[w] = struct{}{}
		}
	}
	return words
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

// WordFrequency counts non-stopword terms, lowercased, with surrounding
// punctuation removed. Letters of any script are kept.
func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text)) // strings.Fields handles multiple spaces and newlines
	frequencies := make(map[string]int)

	for _, word := range words {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})

		// Skip if it's a common word or empty after cleaning
		if word == "" || IsStopword(word) {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

// TopNWords returns the n most frequent terms. Ties are broken alphabetically
// so the result is stable across runs.
func (a *Analytics) TopNWords(text string, n int) []string {
	frequencies := a.WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}
	if limit < 0 {
		limit = 0
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = counts[i].Word
	}

	return topN
}
