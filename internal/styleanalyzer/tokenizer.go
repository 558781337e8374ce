package styleanalyzer

import (
	"regexp"
	"sort"
	"strings"
)

// Every analyzer consumes this package's segmentation; nothing
// re-tokenizes on its own, so all counts stay mutually consistent.

var (
	wordPattern      = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentencePattern  = regexp.MustCompile(`[.!?]+`)
	paragraphPattern = regexp.MustCompile(`\n\s*\n`)
)

// Words returns the case-folded word tokens of text: maximal runs of
// letters, digits and underscores. Empty input yields an empty slice.
func Words(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// Sentences splits text on sentence-terminator runs (".", "!", "?"),
// trimming whitespace and discarding empty fragments.
func Sentences(text string) []string {
	var sentences []string
	for _, s := range sentencePattern.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// Paragraphs splits text on blank-line boundaries, trimming whitespace
// and discarding empty fragments.
func Paragraphs(text string) []string {
	var paragraphs []string
	for _, p := range paragraphPattern.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// countPhrase counts whole-word occurrences of phrase within tokens.
// The phrase is tokenized with the same rules as the text, so
// apostrophes and accents need no special casing.
func countPhrase(tokens []string, phrase string) int {
	want := wordPattern.FindAllString(strings.ToLower(phrase), -1)
	if len(want) == 0 || len(tokens) < len(want) {
		return 0
	}

	count := 0
	for i := 0; i+len(want) <= len(tokens); i++ {
		match := true
		for j, w := range want {
			if tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			count++
		}
	}
	return count
}

// countPhrases sums countPhrase over a phrase list. Overlapping phrases
// ("je" inside "je pense que") each count on their own.
func countPhrases(tokens []string, phrases []string) int {
	total := 0
	for _, phrase := range phrases {
		total += countPhrase(tokens, phrase)
	}
	return total
}

// countAlternation counts non-overlapping occurrences of any phrase in
// the list, preferring the longest phrase at each position and
// consuming its tokens. "que" inside "parce que" therefore counts once,
// matching single-regex alternation semantics.
func countAlternation(tokens []string, phrases []string) int {
	wants := make([][]string, 0, len(phrases))
	for _, phrase := range phrases {
		if want := wordPattern.FindAllString(strings.ToLower(phrase), -1); len(want) > 0 {
			wants = append(wants, want)
		}
	}
	sort.SliceStable(wants, func(i, j int) bool {
		return len(wants[i]) > len(wants[j])
	})

	count := 0
	for i := 0; i < len(tokens); {
		matched := 0
		for _, want := range wants {
			if i+len(want) > len(tokens) {
				continue
			}
			ok := true
			for j, w := range want {
				if tokens[i+j] != w {
					ok = false
					break
				}
			}
			if ok {
				matched = len(want)
				break
			}
		}
		if matched > 0 {
			count++
			i += matched
		} else {
			i++
		}
	}
	return count
}

// firstPhraseIndex returns the token index of the earliest occurrence
// of any phrase in the list, or -1 when none occurs.
func firstPhraseIndex(tokens []string, phrases []string) int {
	first := -1
	for _, phrase := range phrases {
		want := wordPattern.FindAllString(strings.ToLower(phrase), -1)
		if len(want) == 0 {
			continue
		}
		for i := 0; i+len(want) <= len(tokens); i++ {
			match := true
			for j, w := range want {
				if tokens[i+j] != w {
					match = false
					break
				}
			}
			if match {
				if first == -1 || i < first {
					first = i
				}
				break
			}
		}
	}
	return first
}
