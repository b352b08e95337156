// Package nlp wraps the language model used for lemmatization and part-of-speech
// tagging. A Model is a handle the caller creates once and passes to the normalizer;
// nothing in this package keeps global state.
package nlp

// PronounLemma replaces the lemma of every pronoun.
const PronounLemma = "-PRON-"

// Reserved marker tokens written by the normalizer in place of numbers and
// sentence terminals. Models tag them as CD and "." respectively.
const (
	NumMarker = "zNUM"
	DotMarker = "zDOT"
)

// markerTags fixes the tag of each marker.
var markerTags = map[string]string{
	NumMarker: "CD",
	DotMarker: ".",
}

// IsMarker reports whether text is a reserved marker token.
func IsMarker(text string) bool {
	_, ok := markerTags[text]
	return ok
}

// Token is one analyzed word.
type Token struct {
	Text  string
	Lemma string
	Tag   string // Penn Treebank tag, e.g. "VBD", "PRP", "NN"
}

// auxiliaries are tagged VB* by the Penn tagset but are not content verbs.
var auxiliaries = map[string]struct{}{
	"be":   {},
	"have": {},
	"do":   {},
}

// IsVerb reports whether the token is a content verb.
func (t Token) IsVerb() bool {
	if IsMarker(t.Text) || len(t.Tag) < 2 || t.Tag[:2] != "VB" {
		return false
	}
	_, aux := auxiliaries[t.Lemma]
	return !aux
}

// IsPronoun reports whether the token is a personal or possessive pronoun.
func (t Token) IsPronoun() bool {
	if IsMarker(t.Text) {
		return false
	}
	return t.Tag == "PRP" || t.Tag == "PRP$"
}

// Model analyzes text into lemmatized, tagged tokens.
type Model interface {
	Analyze(text string) ([]Token, error)
}
