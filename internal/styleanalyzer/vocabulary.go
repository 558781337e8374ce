package styleanalyzer

import (
	"sort"

	"github.com/najouaboughida-blip/rapport-stage/internal/models"
)

// Extraction caps.
const (
	maxExtractedTerms    = 15
	maxMostFrequentWords = 20
)

// vocabularyStats holds lexical richness and term extraction results.
type vocabularyStats struct {
	RichnessScore      float64
	LexicalDensity     float64
	AcademicTerms      []string
	TechnicalTerms     []string
	AcademicIndicators []string
	MostFrequent       []models.WordFrequency
}

// analyzeVocabulary computes vocabulary statistics from the token
// stream.
func analyzeVocabulary(tokens []string, words wordStats) vocabularyStats {
	richness := 0.0
	if words.TotalWords > 0 {
		richness = float64(words.UniqueWords) / float64(words.TotalWords)
	}

	return vocabularyStats{
		RichnessScore:      richness,
		LexicalDensity:     lexicalDensity(tokens),
		AcademicTerms:      extractTerms(tokens, academicTermGroups, maxExtractedTerms),
		TechnicalTerms:     extractTerms(tokens, technicalTermGroups, maxExtractedTerms),
		AcademicIndicators: detectIndicators(words.WordFrequency),
		MostFrequent:       mostFrequentWords(tokens, maxMostFrequentWords),
	}
}

// extractTerms scans the token stream against the fixed term groups,
// deduplicating in first-group order and capping the result. Matching
// is whole-phrase; the returned terms are the canonical list entries.
func extractTerms(tokens []string, groups [][]string, limit int) []string {
	terms := []string{}
	for _, group := range groups {
		for _, term := range group {
			if len(terms) >= limit {
				return terms
			}
			if countPhrase(tokens, term) > 0 {
				terms = append(terms, term)
			}
		}
	}
	return terms
}

// detectIndicators returns the academic indicator words present in the
// text, in fixed-list order.
func detectIndicators(frequency map[string]int) []string {
	found := []string{}
	for _, indicator := range academicIndicators {
		if frequency[indicator] > 0 {
			found = append(found, indicator)
		}
	}
	return found
}

// mostFrequentWords returns the top-limit tokens by descending
// frequency. Ties keep first-occurrence order via a stable sort over
// the insertion-ordered vocabulary.
func mostFrequentWords(tokens []string, limit int) []models.WordFrequency {
	frequency := make(map[string]int)
	var order []string
	for _, token := range tokens {
		if frequency[token] == 0 {
			order = append(order, token)
		}
		frequency[token]++
	}

	ranked := make([]models.WordFrequency, 0, len(order))
	for _, word := range order {
		ranked = append(ranked, models.WordFrequency{Word: word, Count: frequency[word]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// lexicalDensity approximates the content-word ratio: tokens outside
// the fixed function-word list over total tokens. It is 0 for empty
// input and monotonic in content-vocabulary share.
func lexicalDensity(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	functionWords := getFunctionWords()
	content := 0
	for _, token := range tokens {
		if !functionWords[token] {
			content++
		}
	}
	return float64(content) / float64(len(tokens))
}
