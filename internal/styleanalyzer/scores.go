package styleanalyzer

import (
	"strings"

	"github.com/najouaboughida-blip/rapport-stage/internal/models"
)

// Formality policy constants.
const (
	neutralScore = 50.0

	collectivePronounBonus = 15.0
	personalPronounPenalty = 10.0
)

// Complexity and academic score weights.
const (
	complexityLengthWeight    = 0.6
	complexityStructureWeight = 0.4
	complexityLengthCeiling   = 30.0

	academicTermWeight     = 0.7
	academicRichnessWeight = 0.3
	academicTermFactor     = 10.0
)

// Flesch reading-ease coefficients, kept as published.
const (
	fleschBase           = 206.835
	fleschSentenceWeight = 1.015
	fleschSyllableWeight = 84.6
)

// Cohesion: transition density per thousand words, amplified tenfold.
const (
	cohesionDensityScale = 1000.0
	cohesionAmplifier    = 10.0
)

// scoreStyle computes the five composite scores from the analyzer
// sub-results. Every score lands in [0,100].
func scoreStyle(text string, tokens []string, words wordStats, sentences sentenceStats, structure structureStats, vocabulary vocabularyStats) models.StyleScores {
	return models.StyleScores{
		Formality:   formalityScore(tokens, words),
		Complexity:  complexityScore(sentences),
		Academic:    academicScore(vocabulary),
		Readability: readabilityScore(text, words, sentences),
		Cohesion:    cohesionScore(words, structure),
	}
}

// formalityScore starts from the formal/informal marker ratio, then
// adjusts for the dominant pronoun. A text with no markers at all
// scores the neutral 50 before adjustments.
func formalityScore(tokens []string, words wordStats) float64 {
	formal := countPhrases(tokens, formalMarkers)
	informal := countPhrases(tokens, informalMarkers)

	score := neutralScore
	if formal+informal > 0 {
		score = float64(formal) / float64(formal+informal) * 100
	}

	nous := words.WordFrequency["nous"]
	je := words.WordFrequency["je"]
	if nous > 2*je {
		score += collectivePronounBonus
	} else if je > nous {
		score -= personalPronounPenalty
	}

	return clampScore(score)
}

// complexityScore mixes normalized sentence length with the complex
// sentence fraction. Length saturates at 30 words per sentence.
func complexityScore(sentences sentenceStats) float64 {
	lengthComponent := sentences.AvgLength / complexityLengthCeiling * 100
	if lengthComponent > 100 {
		lengthComponent = 100
	}
	structureComponent := sentences.SentenceTypes[sentenceComplex] * 100
	return clampScore(complexityLengthWeight*lengthComponent + complexityStructureWeight*structureComponent)
}

// academicScore mixes distinct academic plus technical term counts,
// saturating at 10 terms, with vocabulary richness.
func academicScore(vocabulary vocabularyStats) float64 {
	termComponent := float64(len(vocabulary.AcademicTerms)+len(vocabulary.TechnicalTerms)) * academicTermFactor
	if termComponent > 100 {
		termComponent = 100
	}
	return clampScore(academicTermWeight*termComponent + academicRichnessWeight*vocabulary.RichnessScore*100)
}

// readabilityScore is the Flesch reading-ease adaptation: syllables are
// approximated by counting French vowel characters over the lowercased
// text. Vowel-free tokens (numbers, codes) contribute zero syllables.
// A text with no words or sentences scores the neutral 50.
func readabilityScore(text string, words wordStats, sentences sentenceStats) float64 {
	if words.TotalWords == 0 || sentences.TotalSentences == 0 {
		return neutralScore
	}

	syllables := 0
	for _, r := range strings.ToLower(text) {
		if strings.ContainsRune(frenchVowels, r) {
			syllables++
		}
	}
	syllablesPerWord := float64(syllables) / float64(words.TotalWords)

	avgSentenceLength := float64(words.TotalWords) / float64(sentences.TotalSentences)
	return clampScore(fleschBase - fleschSentenceWeight*avgSentenceLength - fleschSyllableWeight*syllablesPerWord)
}

// cohesionScore amplifies transition-word density per thousand words,
// saturating at 100. A text with no words scores the neutral 50.
func cohesionScore(words wordStats, structure structureStats) float64 {
	if words.TotalWords == 0 {
		return neutralScore
	}

	transitions := 0
	for _, t := range structure.TransitionWords {
		transitions += t.Count
	}

	score := float64(transitions) / float64(words.TotalWords) * cohesionDensityScale * cohesionAmplifier
	if score > 100 {
		score = 100
	}
	return score
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
