package styleanalyzer

import "unicode/utf8"

// wordStats holds word-level statistics for one analysis pass.
type wordStats struct {
	TotalWords          int
	UniqueWords         int
	AvgWordLength       float64
	PronounDistribution map[string]float64
	VerbTenses          map[string]int
	WordFrequency       map[string]int
}

// analyzeWords computes word-level statistics from the token stream.
func analyzeWords(tokens []string) wordStats {
	frequency := make(map[string]int)
	totalLength := 0
	for _, token := range tokens {
		frequency[token]++
		totalLength += utf8.RuneCountInString(token)
	}

	avgLength := 0.0
	if len(tokens) > 0 {
		avgLength = float64(totalLength) / float64(len(tokens))
	}

	return wordStats{
		TotalWords:          len(tokens),
		UniqueWords:         len(frequency),
		AvgWordLength:       avgLength,
		PronounDistribution: pronounDistribution(frequency),
		VerbTenses:          verbTenses(frequency),
		WordFrequency:       frequency,
	}
}

// pronounDistribution counts the tracked pronouns and normalizes by
// their sum. With zero pronouns it reports raw zero counts rather than
// dividing by zero.
func pronounDistribution(frequency map[string]int) map[string]float64 {
	counts := make(map[string]int, len(trackedPronouns))
	total := 0
	for _, pronoun := range trackedPronouns {
		counts[pronoun] = frequency[pronoun]
		total += frequency[pronoun]
	}

	distribution := make(map[string]float64, len(trackedPronouns))
	for pronoun, count := range counts {
		if total > 0 {
			distribution[pronoun] = float64(count) / float64(total)
		} else {
			distribution[pronoun] = 0
		}
	}
	return distribution
}

// verbTenses counts occurrences of the fixed inflected-form lists per
// tense category. Counts are raw, not normalized.
func verbTenses(frequency map[string]int) map[string]int {
	tenses := make(map[string]int, len(tenseCategories))
	for _, category := range tenseCategories {
		count := 0
		for _, form := range category.Forms {
			count += frequency[form]
		}
		tenses[category.Name] = count
	}
	return tenses
}
