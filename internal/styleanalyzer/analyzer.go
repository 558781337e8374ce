// Package styleanalyzer derives a structured writing-style profile
// from French academic text: counting statistics, linguistic features,
// vocabulary metrics, composite scores and improvement
// recommendations. Analysis is pure and deterministic: the same input
// always produces the same profile, and no input makes it fail.
package styleanalyzer

import (
	"strings"
	"unicode/utf8"

	"github.com/najouaboughida-blip/rapport-stage/internal/models"
)

// MinTextLength is the minimum trimmed length (in runes) below which
// analysis falls back to the canonical default profile.
const MinTextLength = 50

// Academic level labels and their word-count boundaries.
const (
	LevelMaster          = "master"
	LevelLicenceAdvanced = "licence_avancée"
	LevelLicence         = "licence"

	masterMinWords          = 1000
	licenceAdvancedMinWords = 500
)

// Analyzer computes style profiles. It is stateless and safe for
// concurrent use.
type Analyzer struct{}

func New() *Analyzer {
	return &Analyzer{}
}

// Analyzable reports whether text is long enough to analyze.
func Analyzable(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) >= MinTextLength
}

// Analyze computes the full style profile for text. Input below the
// minimum length yields the canonical default profile rather than an
// error; callers distinguish the two cases with Analyzable.
func (a *Analyzer) Analyze(text string) models.StyleAnalysis {
	if !Analyzable(text) {
		return DefaultAnalysis()
	}

	tokens := Words(text)
	sentenceList := Sentences(text)
	paragraphList := Paragraphs(text)

	words := analyzeWords(tokens)
	sentences := analyzeSentences(sentenceList)
	structure := analyzeStructure(tokens, paragraphList)
	vocabulary := analyzeVocabulary(tokens, words)
	scores := scoreStyle(text, tokens, words, sentences, structure, vocabulary)

	return models.StyleAnalysis{
		BasicStats: models.BasicStats{
			WordCount:          words.TotalWords,
			SentenceCount:      sentences.TotalSentences,
			ParagraphCount:     structure.ParagraphCount,
			AvgWordLength:      words.AvgWordLength,
			AvgSentenceLength:  sentences.AvgLength,
			StdSentenceLength:  sentences.StdLength,
			AvgParagraphLength: structure.AvgParagraphLength,
		},
		StyleScores: scores,
		LinguisticFeatures: models.LinguisticFeatures{
			PronounUsage:       words.PronounDistribution,
			VerbTenses:         words.VerbTenses,
			SentenceTypes:      sentences.SentenceTypes,
			ComplexityMarkers:  sentences.ComplexityMarkers,
			TransitionWords:    structure.TransitionWords,
			AcademicIndicators: vocabulary.AcademicIndicators,
		},
		VocabularyAnalysis: models.VocabularyAnalysis{
			RichnessScore:  vocabulary.RichnessScore,
			LexicalDensity: vocabulary.LexicalDensity,
			AcademicTerms:  vocabulary.AcademicTerms,
			TechnicalTerms: vocabulary.TechnicalTerms,
			MostUsedWords:  vocabulary.MostFrequent,
		},
		StructuralPatterns: models.StructuralPatterns{
			ParagraphStructure:   structure.ParagraphStructure,
			SectionOrganization:  structure.SectionOrganization,
			ArgumentationPattern: structure.ArgumentationPattern,
		},
		Recommendations: buildRecommendations(scores, sentences),
	}
}

// DefaultAnalysis returns the canonical profile used for input below
// the minimum length. The sentinel values describe a plausible formal
// academic style so downstream prompt building still has something to
// work from.
func DefaultAnalysis() models.StyleAnalysis {
	return models.StyleAnalysis{
		BasicStats: models.BasicStats{
			AvgWordLength:      5,
			AvgSentenceLength:  20,
			AvgParagraphLength: 100,
		},
		StyleScores: models.StyleScores{
			Formality:   70,
			Complexity:  60,
			Academic:    65,
			Readability: 65,
			Cohesion:    60,
		},
		LinguisticFeatures: models.LinguisticFeatures{
			PronounUsage: map[string]float64{
				"nous": 0.8, "je": 0.1, "il": 0.1, "elle": 0, "on": 0,
			},
			VerbTenses: map[string]int{
				"présent": 0, "passé": 0, "futur": 0, "conditionnel": 0,
			},
			SentenceTypes: map[string]float64{
				sentenceSimple: 0.4, sentenceComplex: 0.4, sentenceCompound: 0.2,
			},
			ComplexityMarkers: map[string]float64{
				"subordonnées": 0, "conjonctions": 0, "relatives": 0,
			},
			TransitionWords: []models.TransitionCount{
				{Word: "premièrement", Count: 1},
				{Word: "ensuite", Count: 1},
				{Word: "enfin", Count: 1},
			},
			AcademicIndicators: []string{"analyse", "méthodologie", "conclusion"},
		},
		VocabularyAnalysis: models.VocabularyAnalysis{
			RichnessScore:  0.6,
			LexicalDensity: 0.5,
			AcademicTerms:  []string{"problématique", "méthodologie", "résultats"},
			TechnicalTerms: []string{"système", "application", "développement"},
			MostUsedWords: []models.WordFrequency{
				{Word: "le", Count: 10},
				{Word: "la", Count: 8},
				{Word: "et", Count: 7},
			},
		},
		StructuralPatterns: models.StructuralPatterns{
			ParagraphStructure:   paragraphStandard,
			SectionOrganization:  organizationLogical,
			ArgumentationPattern: argumentDeductive,
		},
		Recommendations: []models.Recommendation{},
	}
}

// AcademicLevel classifies the reference text by raw word count.
func AcademicLevel(text string) string {
	wordCount := len(strings.Fields(text))
	switch {
	case wordCount > masterMinWords:
		return LevelMaster
	case wordCount > licenceAdvancedMinWords:
		return LevelLicenceAdvanced
	default:
		return LevelLicence
	}
}

// Summarize maps the composite scores to the coarse categorical labels
// consumed by the section generator.
func Summarize(text string, analysis models.StyleAnalysis) models.Summary {
	return models.Summary{
		AcademicLevel:       AcademicLevel(text),
		FormalityScore:      analysis.StyleScores.Formality,
		FormalityLevel:      formalityLevel(analysis.StyleScores.Formality),
		Complexity:          complexityLevel(analysis.StyleScores.Complexity),
		Vocabulary:          vocabularyLevel(analysis.VocabularyAnalysis.RichnessScore),
		Readability:         readabilityLevel(analysis.StyleScores.Readability),
		TechnicalTermsCount: len(analysis.VocabularyAnalysis.TechnicalTerms),
	}
}

func formalityLevel(score float64) string {
	switch {
	case score >= 80:
		return "très formel"
	case score >= 60:
		return "formel"
	case score >= 40:
		return "modéré"
	default:
		return "informel"
	}
}

func complexityLevel(score float64) string {
	switch {
	case score >= 70:
		return "complexe"
	case score >= 50:
		return "moyenne"
	default:
		return "simple"
	}
}

func vocabularyLevel(richness float64) string {
	switch {
	case richness >= 0.7:
		return "riche"
	case richness >= 0.5:
		return "moyenne"
	default:
		return "limitée"
	}
}

func readabilityLevel(score float64) string {
	switch {
	case score >= 70:
		return "excellente"
	case score >= 50:
		return "bonne"
	default:
		return "difficile"
	}
}
