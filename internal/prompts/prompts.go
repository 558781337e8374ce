// Package prompts builds the academic writing prompts sent to the
// model for each report section. Prompts are assembled from a fixed
// base per academic level, style instructions derived from the
// reference-text analysis, the report context, and per-section
// templates.
package prompts

import (
	"fmt"
	"strings"

	"github.com/najouaboughida-blip/rapport-stage/internal/models"
)

// Report section identifiers.
const (
	SectionCoverPage    = "cover_page"
	SectionThanks       = "thanks"
	SectionAbstract     = "abstract"
	SectionIntroduction = "introduction"
	SectionMethodology  = "methodology"
	SectionConclusion   = "conclusion"
)

const (
	maxIndicatorsInPrompt      = 3
	maxRecommendationsInPrompt = 2
	maxTechnicalTermChars      = 100
)

// Generator assembles section prompts. A nil summary or analysis means
// no reference text was analyzed; the generator then falls back to the
// standard academic style block.
type Generator struct {
	level    string
	summary  *models.Summary
	analysis *models.StyleAnalysis
}

func New(level string, summary *models.Summary, analysis *models.StyleAnalysis) *Generator {
	return &Generator{level: level, summary: summary, analysis: analysis}
}

// ForSection builds the complete prompt for one section.
func (g *Generator) ForSection(section string, ctx models.SectionContext) string {
	parts := []string{
		g.basePrompt(),
		g.styleInstructions(),
		formatContext(ctx, g.level),
		g.SectionTemplate(section, ctx),
		formattingConstraints(),
		"GÉNÈRE UNIQUEMENT LE CONTENU TEXTUEL DE LA SECTION, SANS COMMENTAIRES NI MÉTADONNÉES.",
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

func (g *Generator) basePrompt() string {
	if g.level == "master" {
		return `TU ES UN EXPERT ACADÉMIQUE DE NIVEAU MASTER, SPÉCIALISÉ DANS LA RÉDACTION DE MÉMOIRES DE RECHERCHE.

TON ÉCRITURE DOIT ÊTRE :
1. Rigoureuse et scientifiquement fondée
2. Structurée avec une argumentation solide
3. Riche en références théoriques pertinentes
4. Critique et analytique
5. Conforme aux normes académiques les plus strictes

TA MISSION : Produire un texte académique d'excellence, adapté à un public universitaire exigeant.`
	}
	return `TU ES UN ASSISTANT ACADÉMIQUE EXPERT EN RÉDACTION DE RAPPORTS DE STAGE.

TON ÉCRITURE DOIT :
1. Respecter le style académique formel
2. Utiliser le "nous académique" systématiquement
3. Être claire, structurée et cohérente
4. Éviter les répétitions et les listes excessives
5. Suivre les normes de rédaction universitaires

TA MISSION : Produire un texte académique professionnel, adapté à un rapport de stage.`
}

func (g *Generator) styleInstructions() string {
	if g.summary == nil || g.analysis == nil {
		return `STYLE À UTILISER : Académique formel standard

Caractéristiques :
- Phrases de 18-25 mots en moyenne
- Vocabulaire technique adapté
- Connecteurs logiques modérés
- Structure paragraphes claire (5-8 lignes)
- Utilisation exclusive du "nous académique"`
	}

	formalityNote := "Style formel standard"
	if g.summary.FormalityScore > 75 {
		formalityNote = "Utiliser exclusivement le 'nous académique'"
	}
	complexityNote := "Phrases de complexité moyenne"
	if g.summary.Complexity == "complexe" {
		complexityNote = "Phrases complexes avec subordonnées"
	}
	vocabularyNote := "Vocabulaire académique standard"
	if g.summary.Vocabulary == "riche" {
		vocabularyNote = "Utiliser un vocabulaire riche et varié"
	}

	terms := strings.Join(g.analysis.VocabularyAnalysis.TechnicalTerms, ", ")
	if terms == "" {
		terms = "standard"
	}
	if runes := []rune(terms); len(runes) > maxTechnicalTermChars {
		terms = string(runes[:maxTechnicalTermChars])
	}

	var b strings.Builder
	fmt.Fprintf(&b, `STYLE À REPRODUIRE (basé sur l'analyse) :

1. NIVEAU DE FORMALITÉ : %s
   - Score : %.0f/100
   - Conséquence : %s

2. COMPLEXITÉ DES PHRASES : %s
   - Longueur recommandée : %.0f mots en moyenne
   - Type : %s

3. VOCABULAIRE : %s
   - %s
   - Termes techniques recommandés : %s

4. INDICATEURS ACADÉMIQUES DÉTECTÉS :
`,
		g.summary.FormalityLevel, g.summary.FormalityScore, formalityNote,
		g.summary.Complexity, g.analysis.BasicStats.AvgSentenceLength, complexityNote,
		g.summary.Vocabulary, vocabularyNote, terms)

	indicators := g.analysis.LinguisticFeatures.AcademicIndicators
	if len(indicators) > maxIndicatorsInPrompt {
		indicators = indicators[:maxIndicatorsInPrompt]
	}
	if len(indicators) == 0 {
		b.WriteString("   - Aucun indicateur spécifique détecté\n")
	}
	for _, indicator := range indicators {
		fmt.Fprintf(&b, "   - Intégrer : '%s'\n", indicator)
	}

	recommendations := g.analysis.Recommendations
	if len(recommendations) > maxRecommendationsInPrompt {
		recommendations = recommendations[:maxRecommendationsInPrompt]
	}
	if len(recommendations) > 0 {
		b.WriteString("\n5. RECOMMANDATIONS À INTÉGRER :\n")
		for _, rec := range recommendations {
			fmt.Fprintf(&b, "   - %s\n", rec.Title)
		}
	}

	return b.String()
}

func formatContext(ctx models.SectionContext, level string) string {
	return fmt.Sprintf(`INFORMATIONS DU RAPPORT :

ÉTUDIANT :
- Nom complet : %s
- Filière : %s
- Titre du projet : "%s"
- Durée du stage : %s
- Année universitaire : %s
- Encadrant académique : %s

ENTREPRISE :
- Nom : %s
- Secteur d'activité : %s
- Encadrant professionnel : %s
- Localisation : %s

OPTIONS DE RÉDACTION :
- Style demandé : %s
- Longueur cible : %s
- Niveau académique : %s`,
		orDefault(ctx.Student.FullName, "NOM Prénom"),
		orDefault(ctx.Student.Filiere, "Génie Informatique"),
		orDefault(ctx.Student.ProjectTitle, "Projet technique"),
		orDefault(ctx.Student.Duration, "2 mois"),
		orDefault(ctx.Student.AcademicYear, "2024-2025"),
		orDefault(ctx.Student.Supervisor, "Dr. NOM Prénom"),
		orDefault(ctx.Company.Name, "Entreprise"),
		orDefault(ctx.Company.Sector, "Informatique"),
		orDefault(ctx.Company.Supervisor, "M. NOM Prénom"),
		orDefault(ctx.Company.Location, "Non spécifiée"),
		orDefault(ctx.Options.WritingStyle, "académique_formel"),
		orDefault(ctx.Options.TargetLength, "60-80 pages"),
		orDefault(ctx.Options.AcademicLevel, level))
}

// SectionTemplate returns the per-section instruction block. It doubles
// as the simulated-generation source when no model is available.
func (g *Generator) SectionTemplate(section string, ctx models.SectionContext) string {
	student := ctx.Student
	company := ctx.Company

	switch section {
	case SectionCoverPage:
		return fmt.Sprintf(`TU DOIS GÉNÉRER UNE PAGE DE GARDE ACADÉMIQUE PROFESSIONNELLE.

INFORMATIONS À INCLURE (DANS L'ORDRE) :
1. [LOGO] UNIVERSITÉ MOHAMMED PREMIER
2. ÉCOLE NATIONALE DES SCIENCES APPLIQUÉES - OUJDA
3. FILIÈRE : %s
4. "RAPPORT DE STAGE DE FIN D'ÉTUDES"
5. TITRE : "%s"
6. "Présenté par :" %s
7. "Encadré par :" %s (académique) et %s (%s)
8. "Année universitaire :" %s

FORMAT EXIGÉ :
- HTML centré verticalement et horizontalement
- Sans texte continu (structure visuelle)
- Polices académiques (Times New Roman implicitement)
- Taille de police dégressive (titre plus grand)
- Aucun commentaire supplémentaire`,
			orDefault(student.Filiere, "Génie Informatique"),
			orDefault(student.ProjectTitle, "Titre du projet"),
			orDefault(student.FullName, "NOM Prénom"),
			orDefault(student.Supervisor, "Dr. NOM Prénom"),
			orDefault(company.Supervisor, "M. NOM Prénom"),
			orDefault(company.Name, "Entreprise"),
			orDefault(student.AcademicYear, "2024-2025"))

	case SectionThanks:
		return fmt.Sprintf(`TU DOIS RÉDIGER LA SECTION "REMERCIEMENTS".

STRUCTURE ACADÉMIQUE STRICTE :
1. Remerciement général (optionnel : expression de gratitude)
2. Remerciement à la famille pour le soutien
3. Remerciement à l'encadrant académique %s pour son encadrement
4. Remerciement à l'encadrant professionnel %s pour son accompagnement
5. Remerciement à l'entreprise %s pour l'accueil
6. Remerciement aux collègues et collaborateurs
7. Remerciement au jury (optionnel)
8. Signature : "Fait à Oujda, le [date actuelle]" + "%s"

STYLE EXIGÉ :
- Utiliser le "nous" académique
- Ton respectueux et formel
- Phrases complètes (pas de listes à puces)
- 1 page maximum
- Texte fluide et cohérent`,
			orDefault(student.Supervisor, "Dr. NOM"),
			orDefault(company.Supervisor, "M. NOM"),
			company.Name,
			orDefault(student.FullName, "NOM Prénom"))

	case SectionAbstract:
		return fmt.Sprintf(`TU DOIS GÉNÉRER LES RÉSUMÉS ACADÉMIQUES.

A. RÉSUMÉ EN FRANÇAIS (200-250 mots exactement)
Structure obligatoire :
- Contexte : Stage chez %s, projet "%s"
- Problématique abordée
- Méthodologie employée
- Résultats principaux obtenus
- Conclusions majeures
- Mots-clés (5-8 termes techniques pertinents)

B. ABSTRACT IN ENGLISH (200-250 words exactly)
Same structure in academic English.

CONTRAINTES :
- Texte continu, pas de listes
- Style synthétique mais complet
- Pas de détails techniques approfondis
- Vocabulaire académique standard
- Deux sections distinctes clairement identifiées`,
			orDefault(company.Name, "l'entreprise"),
			student.ProjectTitle)

	case SectionIntroduction:
		return fmt.Sprintf(`TU DOIS RÉDIGER L'INTRODUCTION GÉNÉRALE DU RAPPORT.

STRUCTURE ACADÉMIQUE STRICTE À SUIVRE :

1. CONTEXTE GÉNÉRAL (1-2 paragraphes)
   - Partir du domaine %s en général
   - Rétrécir progressivement vers le cas spécifique
   - Justifier l'importance scientifique et professionnelle du sujet

2. CADRE DU STAGE (1 paragraphe)
   - Présentation de %s
   - Contexte organisationnel et sectoriel
   - Positionnement précis du stage et du projet

3. PROBLÉMATIQUE (1-2 paragraphes)
   - Situation initiale vs situation souhaitée
   - Problème identifié et ses enjeux
   - Question de recherche centrale
   - Pertinence scientifique et pratique

4. OBJECTIFS (1 paragraphe)
   - Objectif général du travail
   - Objectifs spécifiques (3-5 objectifs clairs)
   - Contribution attendue au domaine

5. MÉTHODOLOGIE SOMMAIRE (1 paragraphe)
   - Approche générale adoptée
   - Méthodes principales utilisées
   - Justification sommaire des choix

6. PLAN DU RAPPORT (1 paragraphe)
   - Annonce des chapitres avec leur contenu
   - Logique de progression argumentative
   - Structure adoptée et son intérêt

LONGUEUR : 600-800 mots
STYLE : Formel, argumenté, progressif, académique`,
			orDefault(company.Sector, "informatique"),
			orDefault(company.Name, "l'entreprise d'accueil"))

	case SectionMethodology:
		return `TU DOIS RÉDIGER LE CHAPITRE "MÉTHODOLOGIE".

SECTIONS REQUISES :

1. APPROCHE MÉTHODOLOGIQUE GLOBALE
   - Cadre épistémologique de la recherche
   - Justification des choix méthodologiques
   - Alternatives considérées et raisons de leur rejet

2. DÉMARCHE ADOPTÉE
   - Phasage détaillé du projet
   - Étapes successives et leurs livrables
   - Critères de validation à chaque étape
   - Calendrier sommaire d'exécution

3. OUTILS ET TECHNOLOGIES
   - Stack technique complète utilisée
   - Justification détaillée des choix techniques
   - Environnement de développement et de test
   - Outils de gestion, suivi et documentation

4. ORGANISATION DU TRAVAIL
   - Rôles et responsabilités de chaque acteur
   - Processus de communication et de coordination
   - Gestion documentaire et versionning
   - Méthodes de collaboration et de revue

5. CONSIDÉRATIONS ÉTHIQUES ET LIMITES
   - Aspects éthiques pris en compte
   - Limitations méthodologiques identifiées
   - Contraintes techniques et organisationnelles
   - Stratégies d'atténuation mises en place

STYLE : Technique, justificatif, précis, structuré
LONGUEUR : 1000-1200 mots
PRÉCISION : Décrire concrètement ce qui a été fait, pas seulement la théorie`

	case SectionConclusion:
		return `TU DOIS RÉDIGER LA CONCLUSION GÉNÉRALE.

STRUCTURE À SUIVRE :

1. SYNTHÈSE DES TRAVAUX RÉALISÉS
   - Rappel du contexte et des objectifs
   - Résumé des principales réalisations
   - Mise en perspective des contributions

2. RÉPONSE À LA PROBLÉMATIQUE
   - Réponse apportée à la question de recherche
   - Validation des hypothèses formulées
   - Apports principaux au domaine

3. LIMITATIONS ET DIFFICULTÉS
   - Limitations méthodologiques rencontrées
   - Difficultés techniques et organisationnelles
   - Contraintes non levées

4. PERSPECTIVES ET RECOMMANDATIONS
   - Évolutions possibles du travail
   - Recommandations pour des travaux futurs
   - Applications potentielles dans d'autres contextes

5. BILAN PERSONNEL ET PROFESSIONNEL
   - Acquis techniques et méthodologiques
   - Compétences professionnelles développées
   - Apports de cette expérience au parcours

STYLE : Synthétique, réflexif, prospectif, professionnel
LONGUEUR : 500-700 mots
TON : Équilibré entre objectivité scientifique et réflexion personnelle`

	default:
		return fmt.Sprintf(`TU DOIS RÉDIGER UNE SECTION ACADÉMIQUE.

EXIGENCES GÉNÉRALES :
- Structure claire avec introduction, développement, conclusion
- Argumentation logique et progressive
- Vocabulaire technique adapté au domaine
- Citations et références si nécessaires
- Ton académique et professionnel

CONTEXTE :
- Étudiant : %s
- Projet : %s
- Entreprise : %s

LONGUEUR : 500-800 mots
STYLE : Académique formel, structuré, précis`,
			student.FullName, student.ProjectTitle, company.Name)
	}
}

func formattingConstraints() string {
	return `FORMATAGE EXIGÉ (HTML simple) :

STRUCTURE :
<h2>Titre principal de la section</h2>
<h3>Sous-section si nécessaire</h3>
<p>Paragraphe de texte continu avec plusieurs phrases formant une idée complète.</p>
<ul><li>Liste à puces si nécessaire</li><li>Élément de liste</li></ul>

CONTRAINTES STRICTES :
- PAS de Markdown (**gras** ou *italique*)
- PAS de LaTeX ou formules complexes
- PAS de métadonnées ou commentaires
- UNIQUEMENT le contenu textuel formaté en HTML simple
- Balises autorisées : h2, h3, h4, p, ul, li, strong, em
- Structure académique stricte`
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
