// Package nlptest provides a deterministic nlp.Model for tests.
package nlptest

import (
	"errors"
	"strings"

	"github.com/cognicore/recipeset/pkg/recipeset/nlp"
)

var pronouns = map[string]string{
	"i": "PRP", "you": "PRP", "he": "PRP", "she": "PRP", "it": "PRP", "we": "PRP", "they": "PRP",
	"them": "PRP", "me": "PRP", "us": "PRP",
	"your": "PRP$", "my": "PRP$", "our": "PRP$", "their": "PRP$", "its": "PRP$",
}

var verbs = map[string]string{
	"mix": "mix", "bake": "bake", "baked": "bake", "add": "add", "stir": "stir", "whisk": "whisk",
	"fold": "fold", "chop": "chop", "serve": "serve", "preheat": "preheat", "pour": "pour",
	"is": "be", "are": "be", "has": "have",
}

// ErrFail is returned by a Fake whose Fail text is analyzed.
var ErrFail = errors.New("nlptest: forced failure")

// Fake splits on whitespace, lowercases as its lemma, and knows a small
// fixed set of verbs and pronouns. Every other token is tagged NN.
type Fake struct {
	// Fail makes Analyze return ErrFail when the text contains it.
	Fail string
	// Calls counts Analyze invocations.
	Calls int
}

// Analyze implements nlp.Model.
func (f *Fake) Analyze(text string) ([]nlp.Token, error) {
	f.Calls++
	if f.Fail != "" && strings.Contains(text, f.Fail) {
		return nil, ErrFail
	}

	var out []nlp.Token
	for _, w := range strings.Fields(text) {
		lower := strings.ToLower(w)
		tok := nlp.Token{Text: w, Lemma: lower, Tag: "NN"}
		if tag, ok := pronouns[lower]; ok {
			tok.Tag = tag
			tok.Lemma = nlp.PronounLemma
		} else if lemma, ok := verbs[lower]; ok {
			tok.Tag = "VB"
			tok.Lemma = lemma
		}
		out = append(out, tok)
	}
	return out, nil
}
