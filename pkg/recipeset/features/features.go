// Package features derives per-paragraph scalar features from normalizer output.
package features

import (
	"strings"

	"github.com/cognicore/recipeset/pkg/recipeset/nlp"
	"github.com/cognicore/recipeset/pkg/recipeset/normalize"
)

var (
	dotMarker = strings.ToLower(normalize.DotTag)
	numMarker = strings.ToLower(normalize.NumTag)
)

// SentCount counts sentence-boundary markers; a paragraph has at least one sentence.
func SentCount(s string) int {
	n := strings.Count(strings.ToLower(s), dotMarker)
	if n == 0 {
		return 1
	}
	return n
}

// NumCount counts numeric markers.
func NumCount(s string) int {
	return strings.Count(strings.ToLower(s), numMarker)
}

// WordCount counts whitespace-separated words.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// VerbCount counts content verbs in an analysis.
func VerbCount(tokens []nlp.Token) int {
	n := 0
	for _, t := range tokens {
		if t.IsVerb() {
			n++
		}
	}
	return n
}

// ContainsPron returns 1 when the lemmatized text holds the pronoun marker.
func ContainsPron(lemmatized string) int {
	if strings.Contains(lemmatized, nlp.PronounLemma) {
		return 1
	}
	return 0
}
