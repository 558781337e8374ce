package styleanalyzer

import "testing"

func TestWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"simple text", "Bonjour le monde", 3},
		{"with punctuation", "Bonjour, le monde ! Comment allez-vous ?", 6},
		{"accented words", "était où à étude", 4},
		{"apostrophe splits", "l'analyse d'abord", 4},
		{"empty string", "", 0},
		{"whitespace only", "   \n\t  ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := Words(tt.input)
			if len(words) != tt.expected {
				t.Errorf("expected %d words, got %d (%v)", tt.expected, len(words), words)
			}
		})
	}
}

func TestWordsLowercases(t *testing.T) {
	words := Words("Nous Étudions")
	if len(words) != 2 || words[0] != "nous" || words[1] != "étudions" {
		t.Errorf("expected lowercased tokens, got %v", words)
	}
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"single sentence", "Nous analysons le corpus.", 1},
		{"multiple terminators", "Vraiment !? Oui. Bien sûr...", 3},
		{"no terminator", "une phrase sans point final", 1},
		{"empty string", "", 0},
		{"trailing whitespace fragment", "Première phrase.   ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sentences := Sentences(tt.input)
			if len(sentences) != tt.expected {
				t.Errorf("expected %d sentences, got %d (%v)", tt.expected, len(sentences), sentences)
			}
		})
	}
}

func TestParagraphs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{"single paragraph", "Un seul bloc de texte.", 1},
		{"two paragraphs", "Premier bloc.\n\nSecond bloc.", 2},
		{"blank line with spaces", "Premier bloc.\n   \nSecond bloc.", 2},
		{"single newline stays joined", "Première ligne.\nSeconde ligne.", 1},
		{"empty string", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paragraphs := Paragraphs(tt.input)
			if len(paragraphs) != tt.expected {
				t.Errorf("expected %d paragraphs, got %d", tt.expected, len(paragraphs))
			}
		})
	}
}

func TestCountPhrase(t *testing.T) {
	tokens := Words("Par conséquent, nous avançons. Par conséquent, nous concluons. Le conséquent seul ne compte pas comme transition.")

	tests := []struct {
		name     string
		phrase   string
		expected int
	}{
		{"multi-word phrase", "par conséquent", 2},
		{"single word", "nous", 2},
		{"accented phrase", "ne compte pas", 1},
		{"absent phrase", "en outre", 0},
		{"empty phrase", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countPhrase(tokens, tt.phrase); got != tt.expected {
				t.Errorf("countPhrase(%q) = %d, want %d", tt.phrase, got, tt.expected)
			}
		})
	}
}

func TestCountAlternation(t *testing.T) {
	subordination := []string{"qui", "que", "dont", "où", "si", "quand", "comme", "parce que"}

	tests := []struct {
		name     string
		text     string
		phrases  []string
		expected int
	}{
		{"compound marker consumes its words", "Le système fonctionne parce que l'équipe travaille", subordination, 1},
		{"standalone and compound both count", "Nous pensons que le projet avance parce que l'équipe est motivée", subordination, 2},
		{"single words unaffected", "Le client et le serveur et la base", []string{"et", "ou", "mais"}, 2},
		{"no match", "Aucun marqueur présent ici", subordination, 0},
		{"empty tokens", "", subordination, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := countAlternation(Words(tt.text), tt.phrases); got != tt.expected {
				t.Errorf("countAlternation = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFirstPhraseIndex(t *testing.T) {
	tokens := Words("Par exemple le système fonctionne donc nous validons")

	if idx := firstPhraseIndex(tokens, exampleMarkers); idx != 0 {
		t.Errorf("expected example marker at index 0, got %d", idx)
	}
	if idx := firstPhraseIndex(tokens, consequenceMarkers); idx != 5 {
		t.Errorf("expected consequence marker at index 5, got %d", idx)
	}
	if idx := firstPhraseIndex(tokens, []string{"néanmoins"}); idx != -1 {
		t.Errorf("expected -1 for absent phrase, got %d", idx)
	}
}
