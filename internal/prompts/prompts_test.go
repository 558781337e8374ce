package prompts

import (
	"strings"
	"testing"

	"github.com/najouaboughida-blip/rapport-stage/internal/models"
)

func sampleContext() models.SectionContext {
	return models.SectionContext{
		Student: models.StudentInfo{
			FullName:     "Alaoui Samira",
			Filiere:      "Génie Informatique",
			ProjectTitle: "Plateforme de supervision réseau",
			Duration:     "3 mois",
			AcademicYear: "2025-2026",
			Supervisor:   "Dr. Benali",
		},
		Company: models.CompanyInfo{
			Name:       "TechnoServ",
			Sector:     "Télécommunications",
			Supervisor: "M. Idrissi",
			Location:   "Oujda",
		},
	}
}

func TestForSectionWithoutAnalysis(t *testing.T) {
	g := New("licence", nil, nil)

	prompt := g.ForSection(SectionIntroduction, sampleContext())

	if !strings.Contains(prompt, "ASSISTANT ACADÉMIQUE EXPERT") {
		t.Error("licence level should use the report-writing base prompt")
	}
	if !strings.Contains(prompt, "STYLE À UTILISER : Académique formel standard") {
		t.Error("missing analysis should fall back to the standard style block")
	}
	if !strings.Contains(prompt, "TechnoServ") {
		t.Error("prompt should include the company name")
	}
	if !strings.Contains(prompt, "INTRODUCTION GÉNÉRALE") {
		t.Error("prompt should include the introduction template")
	}
	if !strings.Contains(prompt, "SANS COMMENTAIRES NI MÉTADONNÉES") {
		t.Error("prompt should end with the content-only directive")
	}
}

func TestForSectionMasterBase(t *testing.T) {
	g := New("master", nil, nil)

	prompt := g.ForSection(SectionConclusion, sampleContext())
	if !strings.Contains(prompt, "EXPERT ACADÉMIQUE DE NIVEAU MASTER") {
		t.Error("master level should use the research-writing base prompt")
	}
}

func TestForSectionWithAnalysis(t *testing.T) {
	summary := models.Summary{
		AcademicLevel:  "licence",
		FormalityScore: 82,
		FormalityLevel: "très formel",
		Complexity:     "complexe",
		Vocabulary:     "riche",
		Readability:    "bonne",
	}
	analysis := models.StyleAnalysis{
		BasicStats: models.BasicStats{AvgSentenceLength: 22},
		LinguisticFeatures: models.LinguisticFeatures{
			AcademicIndicators: []string{"analyse", "méthodologie", "hypothèse", "résultats"},
		},
		VocabularyAnalysis: models.VocabularyAnalysis{
			TechnicalTerms: []string{"système", "architecture"},
		},
		Recommendations: []models.Recommendation{
			{Title: "Simplifier les phrases"},
			{Title: "Enrichir le vocabulaire"},
			{Title: "Améliorer la formalité"},
		},
	}

	g := New("licence", &summary, &analysis)
	prompt := g.ForSection(SectionMethodology, sampleContext())

	if !strings.Contains(prompt, "NIVEAU DE FORMALITÉ : très formel") {
		t.Error("prompt should carry the formality label")
	}
	if !strings.Contains(prompt, "Utiliser exclusivement le 'nous académique'") {
		t.Error("formality above 75 should require the academic nous")
	}
	if !strings.Contains(prompt, "système, architecture") {
		t.Error("prompt should list the detected technical terms")
	}
	if !strings.Contains(prompt, "Intégrer : 'analyse'") {
		t.Error("prompt should surface detected academic indicators")
	}
	if strings.Contains(prompt, "Intégrer : 'résultats'") {
		t.Error("indicators should be capped at three")
	}
	if strings.Contains(prompt, "Améliorer la formalité") {
		t.Error("recommendations should be capped at two")
	}
}

func TestSectionTemplates(t *testing.T) {
	g := New("licence", nil, nil)
	ctx := sampleContext()

	tests := []struct {
		section  string
		expected string
	}{
		{SectionCoverPage, "PAGE DE GARDE"},
		{SectionThanks, "REMERCIEMENTS"},
		{SectionAbstract, "RÉSUMÉS ACADÉMIQUES"},
		{SectionIntroduction, "INTRODUCTION GÉNÉRALE"},
		{SectionMethodology, "MÉTHODOLOGIE"},
		{SectionConclusion, "CONCLUSION GÉNÉRALE"},
		{"annexes", "SECTION ACADÉMIQUE"},
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			template := g.SectionTemplate(tt.section, ctx)
			if !strings.Contains(template, tt.expected) {
				t.Errorf("template for %q should mention %q", tt.section, tt.expected)
			}
		})
	}
}

func TestContextDefaults(t *testing.T) {
	g := New("licence", nil, nil)

	prompt := g.ForSection(SectionIntroduction, models.SectionContext{})
	if !strings.Contains(prompt, "NOM Prénom") {
		t.Error("empty student info should fall back to placeholder values")
	}
	if !strings.Contains(prompt, "Niveau académique : licence") {
		t.Error("empty academic level option should fall back to the generator level")
	}
}
