package styleanalyzer

import (
	"math"
	"strings"
)

// Sentence classification thresholds and type labels.
const (
	simpleSentenceMaxWords = 15

	sentenceSimple   = "simple"
	sentenceComplex  = "complexe"
	sentenceCompound = "composée"
)

// sentenceStats holds sentence-level statistics for one analysis pass.
type sentenceStats struct {
	TotalSentences    int
	AvgLength         float64
	StdLength         float64
	SentenceTypes     map[string]float64
	ComplexityMarkers map[string]float64
}

// analyzeSentences computes sentence-level statistics.
func analyzeSentences(sentences []string) sentenceStats {
	stats := sentenceStats{
		SentenceTypes:     emptyTypeFractions(),
		ComplexityMarkers: make(map[string]float64, len(complexityMarkers)),
	}
	for _, marker := range complexityMarkers {
		stats.ComplexityMarkers[marker.Name] = 0
	}
	if len(sentences) == 0 {
		return stats
	}

	lengths := make([]int, len(sentences))
	typeCounts := map[string]int{}
	markerCounts := make(map[string]int, len(complexityMarkers))

	for i, sentence := range sentences {
		tokens := Words(sentence)
		lengths[i] = len(tokens)
		typeCounts[classifySentence(sentence, len(tokens))]++
		for _, marker := range complexityMarkers {
			markerCounts[marker.Name] += countAlternation(tokens, marker.Phrases)
		}
	}

	total := float64(len(sentences))
	stats.TotalSentences = len(sentences)
	stats.AvgLength = meanInt(lengths)
	stats.StdLength = stdDevInt(lengths, stats.AvgLength)
	for name, count := range typeCounts {
		stats.SentenceTypes[name] = float64(count) / total
	}
	for _, marker := range complexityMarkers {
		stats.ComplexityMarkers[marker.Name] = float64(markerCounts[marker.Name]) / total
	}
	return stats
}

// classifySentence applies the fixed decision rule: the word-count
// check runs first, so a short sentence stays "simple" even with a
// comma.
func classifySentence(sentence string, wordCount int) string {
	if wordCount < simpleSentenceMaxWords {
		return sentenceSimple
	}
	if strings.ContainsAny(sentence, ",;") {
		return sentenceComplex
	}
	return sentenceCompound
}

func emptyTypeFractions() map[string]float64 {
	return map[string]float64{
		sentenceSimple:   0,
		sentenceComplex:  0,
		sentenceCompound: 0,
	}
}

func meanInt(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// stdDevInt returns the population standard deviation, 0 with fewer
// than two values.
func stdDevInt(values []int, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := float64(v) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
