package nlp

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon maps surface forms to a lemma the dictionary gets wrong or lacks,
// typically kitchen abbreviations (tbsp -> tablespoon).
type Lexicon struct {
	// lemma -> all forms (including the lemma itself)
	forms map[string][]string

	// form -> lemma
	reverseIndex map[string]string
}

// NewLexicon creates an empty lexicon.
func NewLexicon() *Lexicon {
	return &Lexicon{
		forms:        make(map[string][]string),
		reverseIndex: make(map[string]string),
	}
}

// LoadLexicon loads lemma overrides from a YAML file.
//
// Expected format:
//
//	lemmas:
//	  - lemma: tablespoon
//	    forms: [tbsp, tbsps, tablespoons]
//	  - lemma: teaspoon
//	    forms: [tsp, tsps, teaspoons]
//
// Matching is case-insensitive.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config struct {
		Lemmas []struct {
			Lemma string   `yaml:"lemma"`
			Forms []string `yaml:"forms"`
		} `yaml:"lemmas"`
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	lex := NewLexicon()
	for _, entry := range config.Lemmas {
		lex.Add(entry.Lemma, entry.Forms)
	}
	return lex, nil
}

// Add registers forms for a lemma. Re-adding a lemma replaces its old forms.
func (l *Lexicon) Add(lemma string, forms []string) {
	lemma = strings.ToLower(lemma)

	if old, exists := l.forms[lemma]; exists {
		for _, f := range old {
			delete(l.reverseIndex, f)
		}
	}

	normalized := make([]string, 0, len(forms)+1)
	seen := map[string]bool{lemma: true}
	normalized = append(normalized, lemma)
	for _, f := range forms {
		f = strings.ToLower(f)
		if !seen[f] {
			normalized = append(normalized, f)
			seen[f] = true
		}
	}

	l.forms[lemma] = normalized
	for _, f := range normalized {
		l.reverseIndex[f] = lemma
	}
}

// Lookup returns the lemma registered for a form.
func (l *Lexicon) Lookup(form string) (string, bool) {
	lemma, ok := l.reverseIndex[strings.ToLower(form)]
	return lemma, ok
}

// Len returns the number of lemmas.
func (l *Lexicon) Len() int {
	return len(l.forms)
}
