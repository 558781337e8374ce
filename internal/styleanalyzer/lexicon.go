package styleanalyzer

// The analyzer's fixed word lists are French-specific. They are loaded
// once as package-level tables and never mutated; swapping locale means
// swapping this file, not the analysis logic.
//
// All matching is whole-word over the tokenizer's output. Multi-word
// phrases are matched as token subsequences, which keeps accented
// words and apostrophes ("d'abord", "l'art") unicode-correct.

// trackedPronouns is the closed pronoun set, in fixed order.
var trackedPronouns = []string{"nous", "je", "il", "elle", "on"}

// tenseCategories lists the verb-tense heuristic categories in fixed
// order, each with its closed list of inflected forms. This is a coarse
// pattern proxy, not morphological tagging.
var tenseCategories = []struct {
	Name  string
	Forms []string
}{
	{"présent", []string{"est", "sont", "fait", "font", "peut", "doit", "veut"}},
	{"passé", []string{"était", "fut", "fit", "furent", "avait", "eut"}},
	{"futur", []string{"sera", "fera", "devra", "pourra"}},
	{"conditionnel", []string{"serait", "ferait", "devrait", "pourrait"}},
}

// complexityMarkers lists the sentence complexity indicator categories.
// Each category is counted as one consuming alternation, so "que"
// inside "parce que" counts once.
var complexityMarkers = []struct {
	Name    string
	Phrases []string
}{
	{"subordonnées", []string{"qui", "que", "dont", "où", "si", "quand", "comme", "parce que"}},
	{"conjonctions", []string{"et", "ou", "mais", "donc", "or", "ni", "car"}},
	{"relatives", []string{"lequel", "laquelle", "duquel", "auquel"}},
}

// transitionWords is the fixed ordered transition-phrase list. Ranking
// ties preserve this order, so the order is part of the contract.
var transitionWords = []string{
	"premièrement", "deuxièmement", "troisièmement",
	"d'abord", "ensuite", "enfin",
	"par ailleurs", "en outre", "de plus",
	"cependant", "toutefois", "néanmoins",
	"par conséquent", "donc", "ainsi",
	"par exemple", "notamment", "entre autres",
}

// formalMarkers and informalMarkers feed the formality ratio.
var formalMarkers = []string{
	"nous", "il convient", "souligner", "notons que", "par conséquent",
	"cependant", "toutefois", "néanmoins", "en outre", "par ailleurs",
}

var informalMarkers = []string{
	"je", "moi", "perso", "super", "cool", "trop", "genre",
	"je pense que", "je crois que", "je trouve que", "j'aime",
}

// academicTermGroups are the curated academic-vocabulary term lists,
// grouped the way the scoring formulas were tuned against them.
var academicTermGroups = [][]string{
	{"problématique", "hypothèse", "méthodologie", "cadre théorique"},
	{"revue de littérature", "état de l'art", "corpus d'étude"},
	{"analyse", "synthèse", "discussion", "conclusion", "perspective"},
	{"expérimentation", "validation", "évaluation", "optimisation"},
}

// technicalTermGroups mirror the academic groups for engineering
// vocabulary.
var technicalTermGroups = [][]string{
	{"système", "application", "architecture", "infrastructure"},
	{"algorithme", "base de données", "interface", "framework"},
	{"développement", "implémentation", "déploiement", "intégration"},
	{"serveur", "réseau", "protocole", "sécurité", "performance"},
}

// academicIndicators are structural academic-writing signal words.
var academicIndicators = []string{
	"problématique", "méthodologie", "hypothèse", "analyse",
	"résultats", "conclusion", "objectifs", "démarche",
}

// frenchVowels includes accented vowels; syllables are approximated by
// counting vowel characters.
const frenchVowels = "aeiouyàâäéèêëîïôöùûü"

// temporalConnectives signal chronological section organization.
var temporalConnectives = []string{
	"puis", "avant", "après", "lors de", "pendant", "durant", "au cours de",
}

// orderingConnectives signal explicitly sequenced, logical organization.
var orderingConnectives = []string{
	"premièrement", "deuxièmement", "d'abord", "ensuite", "enfin",
	"dans un premier temps", "dans un second temps",
}

// exampleMarkers and consequenceMarkers feed the argumentation-pattern
// heuristic: examples appearing before consequences suggest induction.
var exampleMarkers = []string{
	"par exemple", "notamment", "entre autres", "à titre d'exemple",
}

var consequenceMarkers = []string{
	"donc", "par conséquent", "ainsi", "en conséquence",
}

// getFunctionWords returns the French function words excluded from the
// lexical-density content-word count.
func getFunctionWords() map[string]bool {
	words := []string{
		"le", "la", "les", "un", "une", "des", "du", "de", "d", "l",
		"et", "ou", "mais", "donc", "or", "ni", "car", "que", "qui",
		"quoi", "dont", "où", "ce", "cet", "cette", "ces", "mon", "ma",
		"mes", "ton", "ta", "tes", "son", "sa", "ses", "notre", "nos",
		"votre", "vos", "leur", "leurs", "je", "tu", "il", "elle", "on",
		"nous", "vous", "ils", "elles", "se", "en", "y", "à", "au",
		"aux", "dans", "par", "pour", "sur", "avec", "sans", "sous",
		"vers", "chez", "est", "sont", "être", "avoir", "a", "ont",
		"ne", "pas", "plus", "très", "bien", "tout", "tous", "toute",
		"toutes", "comme", "si", "quand", "alors", "aussi", "même",
	}

	functionWords := make(map[string]bool)
	for _, word := range words {
		functionWords[word] = true
	}
	return functionWords
}
