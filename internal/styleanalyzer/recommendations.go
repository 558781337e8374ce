package styleanalyzer

import "github.com/najouaboughida-blip/rapport-stage/internal/models"

// Recommendation thresholds.
const (
	formalityHighThreshold   = 40.0
	formalityMediumThreshold = 60.0

	longSentenceThreshold  = 30.0
	shortSentenceThreshold = 15.0

	academicMediumThreshold = 40.0
)

// Tip thresholds.
const (
	excessiveJeRatio      = 0.2
	limitedRichnessFloor  = 0.5
	maxTips               = 5
)

// Recommendation categories and priorities.
const (
	categoryStyle      = "style"
	categoryStructure  = "structure"
	categoryVocabulary = "vocabulaire"

	priorityHigh   = "high"
	priorityMedium = "medium"
)

// buildRecommendations derives prioritized style recommendations from
// the composite scores and sentence statistics. Rules are checked in a
// fixed order, so the output order is deterministic.
func buildRecommendations(scores models.StyleScores, sentences sentenceStats) []models.Recommendation {
	recommendations := []models.Recommendation{}

	switch {
	case scores.Formality < formalityHighThreshold:
		recommendations = append(recommendations, models.Recommendation{
			Category:    categoryStyle,
			Priority:    priorityHigh,
			Title:       "Améliorer la formalité",
			Description: "Le style est trop informel pour un rapport académique.",
			Suggestions: []string{
				"Remplacer \"je\" par \"nous\" ou utiliser des tournures impersonnelles",
				"Éviter les expressions familières",
				"Utiliser plus de connecteurs logiques formels",
			},
		})
	case scores.Formality < formalityMediumThreshold:
		recommendations = append(recommendations, models.Recommendation{
			Category:    categoryStyle,
			Priority:    priorityMedium,
			Title:       "Affiner le style académique",
			Description: "Le style pourrait être plus formel.",
			Suggestions: []string{
				"Augmenter l'utilisation du \"nous académique\"",
				"Ajouter des expressions comme \"il convient de souligner\"",
				"Structurer les phrases avec des subordonnées",
			},
		})
	}

	switch {
	case sentences.AvgLength > longSentenceThreshold:
		recommendations = append(recommendations, models.Recommendation{
			Category:    categoryStructure,
			Priority:    priorityHigh,
			Title:       "Simplifier les phrases",
			Description: "Les phrases sont trop longues, ce qui nuit à la lisibilité.",
			Suggestions: []string{
				"Diviser les phrases de plus de 30 mots",
				"Utiliser des points-virgules pour séparer les idées",
				"Réorganiser les phrases complexes",
			},
		})
	case sentences.AvgLength < shortSentenceThreshold:
		recommendations = append(recommendations, models.Recommendation{
			Category:    categoryStructure,
			Priority:    priorityMedium,
			Title:       "Enrichir les phrases",
			Description: "Les phrases sont trop courtes, ce qui donne un style haché.",
			Suggestions: []string{
				"Combiner des phrases courtes avec des conjonctions",
				"Développer les idées avec plus de détails",
				"Utiliser des propositions relatives",
			},
		})
	}

	if scores.Academic < academicMediumThreshold {
		recommendations = append(recommendations, models.Recommendation{
			Category:    categoryVocabulary,
			Priority:    priorityMedium,
			Title:       "Enrichir le vocabulaire",
			Description: "Le vocabulaire pourrait être plus varié et technique.",
			Suggestions: []string{
				"Utiliser plus de synonymes",
				"Intégrer des termes techniques spécifiques",
				"Consulter un glossaire académique",
			},
		})
	}

	return recommendations
}

// WritingTips derives consumer-facing writing tips from a completed
// analysis, capped at five. A nil analysis yields the single baseline
// tip.
func WritingTips(analysis *models.StyleAnalysis) []models.Tip {
	if analysis == nil {
		return []models.Tip{{
			Title:    "Style académique de base",
			Content:  "Utilisez le \"nous académique\" et évitez le \"je\".",
			Examples: []string{"Remplacer \"Je pense que\" par \"Nous constatons que\""},
		}}
	}

	tips := []models.Tip{}

	if analysis.LinguisticFeatures.PronounUsage["je"] > excessiveJeRatio {
		tips = append(tips, models.Tip{
			Title:   "Utilisation excessive du \"je\"",
			Content: "Privilégiez le \"nous académique\" pour plus de formalité.",
			Examples: []string{
				"\"Je pense que\" → \"Nous considérons que\"",
				"\"J'ai réalisé\" → \"Nous avons réalisé\"",
			},
		})
	}

	if analysis.BasicStats.AvgSentenceLength > longSentenceThreshold {
		tips = append(tips, models.Tip{
			Title:   "Phrases trop longues",
			Content: "Divisez les phrases longues pour améliorer la lisibilité.",
			Examples: []string{
				"Diviser : \"Le système qui a été développé pour résoudre le problème complexe de gestion des données qui était identifié lors de l'analyse préliminaire\"",
				"En : \"Le système a été développé pour résoudre un problème complexe de gestion des données. Ce problème avait été identifié lors de l'analyse préliminaire.\"",
			},
		})
	}

	if analysis.VocabularyAnalysis.RichnessScore < limitedRichnessFloor {
		tips = append(tips, models.Tip{
			Title:   "Vocabulaire peu varié",
			Content: "Utilisez plus de synonymes et de termes spécifiques.",
			Examples: []string{
				"\"Faire\" → \"Réaliser\", \"Implémenter\", \"Développer\"",
				"\"Problème\" → \"Problématique\", \"Défi\", \"Enjeu\"",
			},
		})
	}

	if len(tips) > maxTips {
		tips = tips[:maxTips]
	}
	return tips
}
