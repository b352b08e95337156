// Package normalize implements the ordered text transforms applied to every
// paragraph: numeric tagging, lemmatization, punctuation stripping and
// stop-word removal. Each stage's output is kept in Stages.
package normalize

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/recipeset/pkg/recipeset/nlp"
	"github.com/cognicore/recipeset/pkg/recipeset/stoplist"
)

// Reserved marker tokens. After lowercasing they read "znum" and "zdot".
const (
	NumTag = nlp.NumMarker
	DotTag = nlp.DotMarker
)

// Default patterns: numbers (11, 11,00, 1111.99, 23-th, 25-, 1/2, ¼),
// stray symbols, and sentence terminals.
const (
	DefaultDigitPattern  = `\d+(?:[.,/⁄]\d+)*(?:-?(?:st|nd|rd|th))?-?|[¼½¾⅓⅔⅛⅜⅝⅞]`
	DefaultSymbolPattern = `[^\p{L}\p{N}\s.:,;!?'’-]`
	DefaultDotPattern    = `[.:]`
)

// Patterns are the compiled tagging expressions.
type Patterns struct {
	Digit  *regexp.Regexp
	Symbol *regexp.Regexp
	Dot    *regexp.Regexp
}

// DefaultPatterns compiles the default expressions.
func DefaultPatterns() Patterns {
	return Patterns{
		Digit:  regexp.MustCompile(DefaultDigitPattern),
		Symbol: regexp.MustCompile(DefaultSymbolPattern),
		Dot:    regexp.MustCompile(DefaultDotPattern),
	}
}

// Stages holds every intermediate form of one paragraph.
type Stages struct {
	ReplacedNum     string
	Lemmatized      string
	Tokens          []nlp.Token // analysis behind Lemmatized
	CleanedTokens   string
	RemoveStopWords string
}

// Options configures a Normalizer.
type Options struct {
	Model    nlp.Model
	Stoplist *stoplist.Manager // nil: English base list
	Patterns Patterns          // zero fields fall back to defaults
	Logger   *zap.Logger
}

// Normalizer applies the transform chain with a fixed model and stop-word set.
type Normalizer struct {
	model    nlp.Model
	stops    *stoplist.Manager
	patterns Patterns
	logger   *zap.Logger
}

// New creates a normalizer. A model is required.
func New(opts Options) (*Normalizer, error) {
	if opts.Model == nil {
		return nil, errors.New("normalize: language model is required")
	}

	def := DefaultPatterns()
	p := opts.Patterns
	if p.Digit == nil {
		p.Digit = def.Digit
	}
	if p.Symbol == nil {
		p.Symbol = def.Symbol
	}
	if p.Dot == nil {
		p.Dot = def.Dot
	}

	stops := opts.Stoplist
	if stops == nil {
		stops = stoplist.NewManager(stoplist.English())
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Normalizer{model: opts.Model, stops: stops, patterns: p, logger: logger}, nil
}

// TagNumbers replaces numbers with NumTag, drops stray symbols and
// replaces sentence terminals with DotTag.
func (n *Normalizer) TagNumbers(s string) string {
	s = norm.NFKC.String(s)
	s = n.patterns.Digit.ReplaceAllString(s, " "+NumTag+" ")
	s = n.patterns.Symbol.ReplaceAllString(s, " ")
	return n.patterns.Dot.ReplaceAllString(s, " "+DotTag+" ")
}

// Lemmatize replaces each word with its lemma; pronouns become nlp.PronounLemma.
// The analysis is returned so callers do not run the model twice.
func (n *Normalizer) Lemmatize(s string) (string, []nlp.Token, error) {
	toks, err := n.model.Analyze(s)
	if err != nil {
		return "", nil, err
	}
	lemmas := make([]string, 0, len(toks))
	for _, t := range toks {
		lemmas = append(lemmas, t.Lemma)
	}
	return strings.Join(lemmas, " "), toks, nil
}

// StripPunctuation removes punctuation and symbols, lowercases and collapses whitespace.
func StripPunctuation(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// RemoveStopWords drops tokens found in the stop-word set.
func (n *Normalizer) RemoveStopWords(s string) string {
	words := strings.Fields(s)
	kept := words[:0]
	for _, w := range words {
		if !n.stops.IsStop(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Normalize runs the full chain over one paragraph.
func (n *Normalizer) Normalize(paragraph string) (Stages, error) {
	var st Stages
	st.ReplacedNum = n.TagNumbers(paragraph)

	lemmatized, toks, err := n.Lemmatize(st.ReplacedNum)
	if err != nil {
		n.logger.Warn("lemmatization failed", zap.String("paragraph", paragraph), zap.Error(err))
		return Stages{}, err
	}
	st.Lemmatized = lemmatized
	st.Tokens = toks

	st.CleanedTokens = StripPunctuation(st.Lemmatized)
	st.RemoveStopWords = n.RemoveStopWords(st.CleanedTokens)
	return st, nil
}
