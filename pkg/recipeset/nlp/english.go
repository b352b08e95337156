package nlp

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// English tags with prose's averaged perceptron and lemmatizes with golem's
// English dictionary. Lexicon entries take precedence over the dictionary.
type English struct {
	lemmatizer *golem.Lemmatizer
	lexicon    *Lexicon
}

// NewEnglish loads the English dictionary. lex may be nil.
func NewEnglish(lex *Lexicon) (*English, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemmas: %w", err)
	}
	if lex == nil {
		lex = NewLexicon()
	}
	return &English{lemmatizer: lemmatizer, lexicon: lex}, nil
}

// Analyze tokenizes and tags text, then attaches a lemma to every token.
func (e *English) Analyze(text string) ([]Token, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	toks := doc.Tokens()
	out := make([]Token, 0, len(toks))
	for _, tok := range toks {
		t := Token{Text: tok.Text, Tag: tok.Tag}
		if tag, ok := markerTags[t.Text]; ok {
			t.Tag = tag
			t.Lemma = t.Text
			out = append(out, t)
			continue
		}
		t.Lemma = e.lemma(t)
		out = append(out, t)
	}
	return out, nil
}

func (e *English) lemma(t Token) string {
	if t.IsPronoun() {
		return PronounLemma
	}
	if lemma, ok := e.lexicon.Lookup(t.Text); ok {
		return lemma
	}
	if !hasLetter(t.Text) {
		return t.Text
	}
	return e.lemmatizer.Lemma(t.Text)
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
