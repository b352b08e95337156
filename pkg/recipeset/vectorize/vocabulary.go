package vectorize

import (
	"sort"
	"strings"
)

// Vocabulary maps the most frequent tokens of a fitted corpus to ids 1..Len().
// Id 0 is reserved for padding. Tokens outside the vocabulary are dropped.
type Vocabulary struct {
	index map[string]int // token -> id
	terms []string       // id-1 -> token
	df    []int          // id-1 -> number of documents containing the token
	docs  int
}

// Tokenize splits cleaned text into lowercase tokens.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// FitVocabulary counts tokens over texts and keeps at most size of them,
// ordered by descending frequency with ties broken by first occurrence.
func FitVocabulary(texts []string, size int) *Vocabulary {
	counts := make(map[string]int)
	docFreq := make(map[string]int)
	var order []string

	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(text) {
			if _, ok := counts[tok]; !ok {
				order = append(order, tok)
			}
			counts[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if size < 0 {
		size = 0
	}
	if len(order) > size {
		order = order[:size]
	}

	v := &Vocabulary{
		index: make(map[string]int, len(order)),
		terms: order,
		df:    make([]int, len(order)),
		docs:  len(texts),
	}
	for i, tok := range order {
		v.index[tok] = i + 1
		v.df[i] = docFreq[tok]
	}
	return v
}

// Len returns the number of tokens in the vocabulary.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// ID returns the id of a token.
func (v *Vocabulary) ID(token string) (int, bool) {
	id, ok := v.index[token]
	return id, ok
}

// Term returns the token for an id.
func (v *Vocabulary) Term(id int) (string, bool) {
	if id < 1 || id > len(v.terms) {
		return "", false
	}
	return v.terms[id-1], true
}

// Encode maps text to in-vocabulary ids, dropping unknown tokens.
func (v *Vocabulary) Encode(text string) []int {
	toks := Tokenize(text)
	out := make([]int, 0, len(toks))
	for _, tok := range toks {
		if id, ok := v.index[tok]; ok {
			out = append(out, id)
		}
	}
	return out
}
