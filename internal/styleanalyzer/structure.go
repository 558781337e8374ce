package styleanalyzer

import (
	"sort"

	"github.com/najouaboughida-blip/rapport-stage/internal/models"
)

// Structural pattern tags. The defaults form the canonical tag set
// used when the text is too short to classify.
const (
	paragraphStandard   = "standard"
	paragraphDeveloped  = "développée"
	paragraphFragmented = "fragmentée"

	organizationLogical       = "logique"
	organizationChronological = "chronologique"
	organizationStandard      = "standard"

	argumentDeductive = "déductive"
	argumentInductive = "inductive"
)

const maxRankedTransitions = 10

// Paragraph-shape thresholds (words per paragraph).
const (
	developedParagraphMinWords  = 150
	fragmentedParagraphMaxWords = 30
)

// structureStats holds paragraph- and document-level statistics.
type structureStats struct {
	ParagraphCount       int
	AvgParagraphLength   float64
	TransitionWords      []models.TransitionCount
	ParagraphStructure   string
	SectionOrganization  string
	ArgumentationPattern string
}

// analyzeStructure computes structural statistics and pattern tags.
func analyzeStructure(tokens []string, paragraphs []string) structureStats {
	stats := structureStats{
		ParagraphCount:       len(paragraphs),
		TransitionWords:      rankTransitionWords(tokens),
		ParagraphStructure:   paragraphStandard,
		SectionOrganization:  organizationLogical,
		ArgumentationPattern: argumentDeductive,
	}
	if len(paragraphs) == 0 {
		return stats
	}

	totalWords := 0
	for _, p := range paragraphs {
		totalWords += len(Words(p))
	}
	stats.AvgParagraphLength = float64(totalWords) / float64(len(paragraphs))

	switch {
	case stats.AvgParagraphLength > developedParagraphMinWords:
		stats.ParagraphStructure = paragraphDeveloped
	case stats.AvgParagraphLength < fragmentedParagraphMaxWords && len(paragraphs) > 3:
		stats.ParagraphStructure = paragraphFragmented
	}

	switch {
	case countPhrases(tokens, orderingConnectives) > 0:
		stats.SectionOrganization = organizationLogical
	case countPhrases(tokens, temporalConnectives) > 0:
		stats.SectionOrganization = organizationChronological
	default:
		stats.SectionOrganization = organizationStandard
	}

	// Examples introduced before any consequence connective suggest an
	// inductive argument; everything else reads as deductive.
	exampleIdx := firstPhraseIndex(tokens, exampleMarkers)
	consequenceIdx := firstPhraseIndex(tokens, consequenceMarkers)
	if exampleIdx >= 0 && (consequenceIdx < 0 || exampleIdx < consequenceIdx) {
		stats.ArgumentationPattern = argumentInductive
	}

	return stats
}

// rankTransitionWords counts whole-phrase occurrences of the fixed
// transition list, keeps phrases with count > 0, and ranks them by
// descending count. The sort is stable, so equal counts preserve the
// fixed-list order; the result is truncated to the top 10.
func rankTransitionWords(tokens []string) []models.TransitionCount {
	ranked := []models.TransitionCount{}
	for _, phrase := range transitionWords {
		if count := countPhrase(tokens, phrase); count > 0 {
			ranked = append(ranked, models.TransitionCount{Word: phrase, Count: count})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > maxRankedTransitions {
		ranked = ranked[:maxRankedTransitions]
	}
	return ranked
}
