// Package vectorize turns cleaned paragraphs into fixed-width matrices. The
// vocabulary is fit once on the training texts and reused for every later
// transform.
package vectorize

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
)

// Mode selects a vectorization strategy.
type Mode string

const (
	ModeSequence Mode = "sequence"
	ModeTFIDF    Mode = "tfidf"
)

// TextVectorizer fits a vocabulary once and transforms texts with it.
type TextVectorizer interface {
	Fit(texts []string) error
	Transform(texts []string) (*mat.Dense, error)
	Vocabulary() *Vocabulary
}

// New builds a vectorizer for mode.
func New(mode Mode, vocabSize, maxLen int) (TextVectorizer, error) {
	switch mode {
	case ModeSequence:
		s, err := NewSequence(vocabSize, maxLen)
		if err != nil {
			return nil, err
		}
		return s, nil
	case ModeTFIDF:
		t, err := NewTFIDF(vocabSize)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unknown vectorizer mode %q", internalerr.ErrInvalidConfig, mode)
	}
}

func checkSize(name string, n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", internalerr.ErrInvalidConfig, name, n)
	}
	return nil
}

// FitTransform fits on train and transforms train and test with the same vocabulary.
func FitTransform(v TextVectorizer, train, test []string) (trainM, testM *mat.Dense, err error) {
	if err := v.Fit(train); err != nil {
		return nil, nil, err
	}
	if trainM, err = v.Transform(train); err != nil {
		return nil, nil, err
	}
	if len(test) == 0 {
		return trainM, nil, nil
	}
	if testM, err = v.Transform(test); err != nil {
		return nil, nil, err
	}
	return trainM, testM, nil
}

type fitted struct {
	size  int
	vocab *Vocabulary
}

func (f *fitted) fit(texts []string) error {
	if f.vocab != nil {
		return internalerr.ErrAlreadyFitted
	}
	f.vocab = FitVocabulary(texts, f.size)
	return nil
}

func (f *fitted) ready(texts []string) error {
	if f.vocab == nil {
		return internalerr.ErrNotFitted
	}
	if len(texts) == 0 {
		return fmt.Errorf("transform: %w", internalerr.ErrEmptyDataset)
	}
	return nil
}

// Sequence maps each text to token ids padded with trailing zeros to maxLen.
// Longer sequences are truncated from the end.
type Sequence struct {
	fitted
	maxLen int
}

// NewSequence creates an unfitted sequence vectorizer. Both sizes must be
// positive.
func NewSequence(vocabSize, maxLen int) (*Sequence, error) {
	if err := checkSize("vocab size", vocabSize); err != nil {
		return nil, err
	}
	if err := checkSize("max sequence length", maxLen); err != nil {
		return nil, err
	}
	return &Sequence{fitted: fitted{size: vocabSize}, maxLen: maxLen}, nil
}

// Fit builds the vocabulary. A vectorizer can only be fit once.
func (s *Sequence) Fit(texts []string) error { return s.fit(texts) }

// Vocabulary returns the fitted vocabulary, or nil.
func (s *Sequence) Vocabulary() *Vocabulary { return s.vocab }

// Sequences returns padded id sequences.
func (s *Sequence) Sequences(texts []string) ([][]int, error) {
	if err := s.ready(texts); err != nil {
		return nil, err
	}
	out := make([][]int, len(texts))
	for i, text := range texts {
		row := make([]int, s.maxLen)
		ids := s.vocab.Encode(text)
		if len(ids) > s.maxLen {
			ids = ids[:s.maxLen]
		}
		copy(row, ids)
		out[i] = row
	}
	return out, nil
}

// Transform returns the sequences as a rows × maxLen matrix.
func (s *Sequence) Transform(texts []string) (*mat.Dense, error) {
	seqs, err := s.Sequences(texts)
	if err != nil {
		return nil, err
	}
	m := mat.NewDense(len(seqs), s.maxLen, nil)
	for i, seq := range seqs {
		for j, id := range seq {
			m.Set(i, j, float64(id))
		}
	}
	return m, nil
}

// TFIDF produces rows × vocabSize weights; column id-1 holds token id.
// tf = 1 + ln(count), idf = ln(1 + docs/(1+df)).
type TFIDF struct {
	fitted
}

// NewTFIDF creates an unfitted TF-IDF vectorizer. vocabSize must be positive.
func NewTFIDF(vocabSize int) (*TFIDF, error) {
	if err := checkSize("vocab size", vocabSize); err != nil {
		return nil, err
	}
	return &TFIDF{fitted: fitted{size: vocabSize}}, nil
}

// Fit builds the vocabulary. A vectorizer can only be fit once.
func (t *TFIDF) Fit(texts []string) error { return t.fit(texts) }

// Vocabulary returns the fitted vocabulary, or nil.
func (t *TFIDF) Vocabulary() *Vocabulary { return t.vocab }

// Transform weights each text against the fitted vocabulary.
func (t *TFIDF) Transform(texts []string) (*mat.Dense, error) {
	if err := t.ready(texts); err != nil {
		return nil, err
	}
	m := mat.NewDense(len(texts), t.size, nil)
	for i, text := range texts {
		counts := make(map[int]int)
		for _, id := range t.vocab.Encode(text) {
			counts[id]++
		}
		for id, c := range counts {
			tf := 1 + math.Log(float64(c))
			idf := math.Log(1 + float64(t.vocab.docs)/float64(1+t.vocab.df[id-1]))
			m.Set(i, id-1, tf*idf)
		}
	}
	return m, nil
}
