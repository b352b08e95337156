package features

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/recipeset/pkg/recipeset/dataset"
	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
	"github.com/cognicore/recipeset/pkg/recipeset/normalize"
)

// MetaColumns is the column order of the metadata matrix.
var MetaColumns = []string{"sent_count", "num_count", "clean_paragraph_len", "verb_count", "contains_pron"}

// EnrichedRow is a labeled paragraph with every normalizer stage and feature.
type EnrichedRow struct {
	dataset.Row

	ReplacedNum       string
	Lemmatized        string
	VerbCount         int
	ContainsPron      int
	CleanedTokens     string
	RemoveStopWords   string
	SentCount         int
	NumCount          int
	CleanParagraphLen int
}

// Extractor runs the normalizer and computes features for each row.
type Extractor struct {
	normalizer *normalize.Normalizer
	logger     *zap.Logger
}

// NewExtractor creates an extractor. logger may be nil.
func NewExtractor(n *normalize.Normalizer, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{normalizer: n, logger: logger}
}

// EnrichRow normalizes one row and derives its features.
func (e *Extractor) EnrichRow(r dataset.Row) (EnrichedRow, error) {
	st, err := e.normalizer.Normalize(r.Paragraph)
	if err != nil {
		return EnrichedRow{}, err
	}
	return EnrichedRow{
		Row:               r,
		ReplacedNum:       st.ReplacedNum,
		Lemmatized:        st.Lemmatized,
		VerbCount:         VerbCount(st.Tokens),
		ContainsPron:      ContainsPron(st.Lemmatized),
		CleanedTokens:     st.CleanedTokens,
		RemoveStopWords:   st.RemoveStopWords,
		SentCount:         SentCount(st.RemoveStopWords),
		NumCount:          NumCount(st.RemoveStopWords),
		CleanParagraphLen: WordCount(st.RemoveStopWords),
	}, nil
}

// Enrich builds a new enriched table; the input is not modified.
func (e *Extractor) Enrich(rows dataset.Table) ([]EnrichedRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("enrich: %w", internalerr.ErrEmptyDataset)
	}

	out := make([]EnrichedRow, 0, len(rows))
	for i, r := range rows {
		er, err := e.EnrichRow(r)
		if err != nil {
			return nil, fmt.Errorf("enrich row %d: %w", i, err)
		}
		out = append(out, er)
	}

	e.logger.Info("rows enriched", zap.Int("rows", len(out)), zap.Strings("features", MetaColumns))
	return out, nil
}

// Meta returns the rows × 5 metadata matrix in MetaColumns order.
// An empty input yields nil.
func Meta(rows []EnrichedRow) *mat.Dense {
	if len(rows) == 0 {
		return nil
	}
	m := mat.NewDense(len(rows), len(MetaColumns), nil)
	for i, r := range rows {
		m.SetRow(i, []float64{
			float64(r.SentCount),
			float64(r.NumCount),
			float64(r.CleanParagraphLen),
			float64(r.VerbCount),
			float64(r.ContainsPron),
		})
	}
	return m
}

// Labels returns the label vector.
func Labels(rows []EnrichedRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = int(r.Label)
	}
	return out
}

// Texts returns the stop-word-filtered text column, the vectorizer input.
func Texts(rows []EnrichedRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.RemoveStopWords
	}
	return out
}
