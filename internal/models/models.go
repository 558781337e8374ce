package models

import "time"

// Report statuses.
const (
	StatusComplete   = "complete"
	StatusNoAnalysis = "no_analysis"
)

// Section generation statuses.
const (
	SectionQueued    = "queued"
	SectionCompleted = "completed"
	SectionFailed    = "failed"
)

// Report wraps a style analysis with its persistence metadata. The
// analysis itself is deterministic; timestamps live only on this
// envelope.
type Report struct {
	ID        string        `json:"id"`
	Text      string        `json:"text"`
	Status    string        `json:"status"` // complete, no_analysis
	Summary   Summary       `json:"summary"`
	Analysis  StyleAnalysis `json:"analysis"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// StyleAnalysis contains all information derived from one analysis pass
// over a reference text.
type StyleAnalysis struct {
	BasicStats         BasicStats         `json:"basic_stats"`
	StyleScores        StyleScores        `json:"style_scores"`
	LinguisticFeatures LinguisticFeatures `json:"linguistic_features"`
	VocabularyAnalysis VocabularyAnalysis `json:"vocabulary_analysis"`
	StructuralPatterns StructuralPatterns `json:"structural_patterns"`
	Recommendations    []Recommendation   `json:"recommendations"`
}

// BasicStats holds raw counting statistics.
type BasicStats struct {
	WordCount          int     `json:"word_count"`
	SentenceCount      int     `json:"sentence_count"`
	ParagraphCount     int     `json:"paragraph_count"`
	AvgWordLength      float64 `json:"avg_word_length"`
	AvgSentenceLength  float64 `json:"avg_sentence_length"`
	StdSentenceLength  float64 `json:"std_sentence_length"`
	AvgParagraphLength float64 `json:"avg_paragraph_length"`
}

// StyleScores holds the composite scores, each clamped to [0,100].
type StyleScores struct {
	Formality   float64 `json:"formality_score"`
	Complexity  float64 `json:"complexity_score"`
	Academic    float64 `json:"academic_score"`
	Readability float64 `json:"readability_score"`
	Cohesion    float64 `json:"cohesion_score"`
}

// LinguisticFeatures holds word- and sentence-level linguistic signals.
type LinguisticFeatures struct {
	PronounUsage       map[string]float64 `json:"pronoun_usage"`
	VerbTenses         map[string]int     `json:"verb_tenses"`
	SentenceTypes      map[string]float64 `json:"sentence_types"`
	ComplexityMarkers  map[string]float64 `json:"complexity_markers"`
	TransitionWords    []TransitionCount  `json:"transition_words"`
	AcademicIndicators []string           `json:"academic_indicators"`
}

// TransitionCount is one transition phrase with its occurrence count.
type TransitionCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// VocabularyAnalysis holds lexical richness and term extraction results.
type VocabularyAnalysis struct {
	RichnessScore  float64         `json:"richness_score"`
	LexicalDensity float64         `json:"lexical_density"`
	AcademicTerms  []string        `json:"academic_terms"`
	TechnicalTerms []string        `json:"technical_terms"`
	MostUsedWords  []WordFrequency `json:"most_used_words"`
}

// WordFrequency represents a word and its frequency.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// StructuralPatterns holds coarse categorical structure tags.
type StructuralPatterns struct {
	ParagraphStructure   string `json:"paragraph_structure"`
	SectionOrganization  string `json:"section_organization"`
	ArgumentationPattern string `json:"argumentation_pattern"`
}

// Recommendation is a prioritized style improvement suggestion.
type Recommendation struct {
	Category    string   `json:"category"` // style, structure, vocabulaire
	Priority    string   `json:"priority"` // high, medium
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Suggestions []string `json:"suggestions"`
}

// Summary maps the composite scores to categorical labels for coarse
// style selection by the section generator.
type Summary struct {
	AcademicLevel       string  `json:"academic_level"`
	FormalityScore      float64 `json:"formality_score"`
	FormalityLevel      string  `json:"formality_level"`
	Complexity          string  `json:"complexity"`
	Vocabulary          string  `json:"vocabulary"`
	Readability         string  `json:"readability"`
	TechnicalTermsCount int     `json:"technical_terms_count"`
}

// Tip is a consumer-facing writing tip with before/after examples.
type Tip struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Examples []string `json:"examples"`
}

// Section represents a generated report section.
type Section struct {
	ID           string    `json:"id"`
	ReportID     string    `json:"report_id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"` // queued, completed, failed
	Content      string    `json:"content"`
	Simulated    bool      `json:"simulated"` // true when the rule-based fallback produced the content
	WordCount    int       `json:"word_count"`
	PromptLength int       `json:"prompt_length"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SectionContext carries the report information used to build a
// section prompt.
type SectionContext struct {
	Student StudentInfo       `json:"student"`
	Company CompanyInfo       `json:"company"`
	Options GenerationOptions `json:"options"`
}

// StudentInfo describes the report author.
type StudentInfo struct {
	FullName     string `json:"full_name"`
	Filiere      string `json:"filiere"`
	ProjectTitle string `json:"project_title"`
	Duration     string `json:"duration"`
	AcademicYear string `json:"academic_year"`
	Supervisor   string `json:"supervisor"`
}

// CompanyInfo describes the host company.
type CompanyInfo struct {
	Name       string `json:"name"`
	Sector     string `json:"sector"`
	Supervisor string `json:"supervisor"`
	Location   string `json:"location"`
}

// GenerationOptions holds caller preferences for section generation.
type GenerationOptions struct {
	WritingStyle  string `json:"writing_style"`
	TargetLength  string `json:"target_length"`
	AcademicLevel string `json:"academic_level"`
}
