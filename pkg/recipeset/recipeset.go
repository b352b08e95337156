// Package recipeset turns scraped recipe pages into a labeled, feature-enriched
// paragraph dataset for an ingredient-vs-instruction classifier.
package recipeset

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/recipeset/pkg/recipeset/config"
	"github.com/cognicore/recipeset/pkg/recipeset/dataset"
	"github.com/cognicore/recipeset/pkg/recipeset/eval"
	"github.com/cognicore/recipeset/pkg/recipeset/features"
	"github.com/cognicore/recipeset/pkg/recipeset/normalize"
	"github.com/cognicore/recipeset/pkg/recipeset/split"
	"github.com/cognicore/recipeset/pkg/recipeset/store"
	"github.com/cognicore/recipeset/pkg/recipeset/vectorize"
)

// Split names used for persisted tables.
const (
	SplitTrain   = "train"
	SplitTest    = "test"
	SplitOnePage = "one_page"
)

// Pipeline is the dataset-building facade.
type Pipeline struct {
	assembler *dataset.Assembler
	extractor *features.Extractor
	store     store.Store
	cfg       config.Config
	logger    *zap.Logger
}

// Options configures a Pipeline.
type Options struct {
	Normalizer *normalize.Normalizer
	Store      store.Store
	Config     *config.Config // nil: config.Default()
	Logger     *zap.Logger
}

// New creates a Pipeline with the given dependencies.
func New(opts Options) (*Pipeline, error) {
	if opts.Normalizer == nil {
		return nil, errors.New("recipeset: normalizer is required")
	}
	if opts.Store == nil {
		return nil, errors.New("recipeset: store is required")
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		assembler: dataset.NewAssembler(logger),
		extractor: features.NewExtractor(opts.Normalizer, logger),
		store:     opts.Store,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// Close releases the store.
func (p *Pipeline) Close() error {
	return p.store.Close()
}

// PreprocessResult holds the enriched splits and where they were saved.
type PreprocessResult struct {
	Train     []features.EnrichedRow
	Test      []features.EnrichedRow
	TrainPath string
	TestPath  string
}

// Preprocess assembles pages, splits stratified by label, enriches each split
// separately and saves both.
func (p *Pipeline) Preprocess(ctx context.Context, pages []dataset.RawPage) (PreprocessResult, error) {
	table, err := p.assembler.Assemble(pages)
	if err != nil {
		return PreprocessResult{}, err
	}

	train, test, err := split.Stratified(table, p.cfg.TestSize, p.cfg.Seed)
	if err != nil {
		return PreprocessResult{}, fmt.Errorf("split: %w", err)
	}
	p.logger.Info("stratified split",
		zap.Int("train", len(train)),
		zap.Int("test", len(test)),
		zap.Float64("test_size", p.cfg.TestSize),
	)

	var res PreprocessResult
	if res.Train, res.TrainPath, err = p.clean(ctx, train, SplitTrain); err != nil {
		return PreprocessResult{}, err
	}
	if res.Test, res.TestPath, err = p.clean(ctx, test, SplitTest); err != nil {
		return PreprocessResult{}, err
	}
	return res, nil
}

// clean enriches and persists one split.
func (p *Pipeline) clean(ctx context.Context, rows dataset.Table, name string) ([]features.EnrichedRow, string, error) {
	enriched, err := p.extractor.Enrich(rows)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", name, err)
	}

	path, err := p.store.Save(ctx, name, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("save %s: %w", name, err)
	}

	props := dataset.Proportions(rows)
	p.logger.Info("clean data saved",
		zap.String("split", name),
		zap.String("path", path),
		zap.Float64("ingredient_share", props[dataset.Ingredient]),
		zap.Float64("instruction_share", props[dataset.Instruction]),
	)
	return enriched, path, nil
}

// Vectorize fits a vectorizer on train texts and transforms both splits with
// the same vocabulary. test may be nil.
func (p *Pipeline) Vectorize(mode vectorize.Mode, train, test []features.EnrichedRow) (trainM, testM *mat.Dense, err error) {
	v, err := vectorize.New(mode, p.cfg.VocabSize, p.cfg.MaxSeqLen)
	if err != nil {
		return nil, nil, err
	}

	var testTexts []string
	if len(test) > 0 {
		testTexts = features.Texts(test)
	}
	trainM, testM, err = vectorize.FitTransform(v, features.Texts(train), testTexts)
	if err != nil {
		return nil, nil, err
	}

	p.logger.Info("vectorized",
		zap.String("mode", string(mode)),
		zap.Int("vocabulary", v.Vocabulary().Len()),
	)
	return trainM, testM, nil
}

// OnePage cleans a single page, reloads the persisted table, vectorizes it
// and evaluates scorer on it.
func (p *Pipeline) OnePage(ctx context.Context, page dataset.RawPage, mode vectorize.Mode, scorer eval.Scorer) (eval.Report, error) {
	table, err := p.assembler.AssembleOne(page)
	if err != nil {
		return eval.Report{}, err
	}

	if _, _, err := p.clean(ctx, table, SplitOnePage); err != nil {
		return eval.Report{}, err
	}

	saved, err := p.store.Load(ctx, SplitOnePage)
	if err != nil {
		return eval.Report{}, fmt.Errorf("reload %s: %w", SplitOnePage, err)
	}
	rows := store.Enriched(saved)

	text, _, err := p.Vectorize(mode, rows, nil)
	if err != nil {
		return eval.Report{}, err
	}

	in := eval.Input{
		Text:       text,
		Meta:       features.Meta(rows),
		Labels:     features.Labels(rows),
		Paragraphs: dataset.Table(rowsOf(rows)).Paragraphs(),
	}
	return eval.Evaluate(ctx, scorer, in, eval.DefaultThreshold, p.logger)
}

func rowsOf(rows []features.EnrichedRow) []dataset.Row {
	out := make([]dataset.Row, len(rows))
	for i, r := range rows {
		out[i] = r.Row
	}
	return out
}
