package recipeset

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cognicore/recipeset/pkg/recipeset/config"
	"github.com/cognicore/recipeset/pkg/recipeset/dataset"
	"github.com/cognicore/recipeset/pkg/recipeset/eval"
	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
	"github.com/cognicore/recipeset/pkg/recipeset/nlp/nlptest"
	"github.com/cognicore/recipeset/pkg/recipeset/normalize"
	"github.com/cognicore/recipeset/pkg/recipeset/store/memstore"
	"github.com/cognicore/recipeset/pkg/recipeset/vectorize"
)

func newPipeline(t *testing.T, cfg *config.Config) (*Pipeline, *memstore.Store) {
	t.Helper()
	n, err := normalize.New(normalize.Options{Model: &nlptest.Fake{}})
	if err != nil {
		t.Fatalf("normalize.New: %v", err)
	}
	st := memstore.New()
	p, err := New(Options{Normalizer: n, Store: st, Config: cfg})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, st
}

func samplePages(n int) []dataset.RawPage {
	pages := make([]dataset.RawPage, 0, n)
	for i := 0; i < n; i++ {
		pages = append(pages, dataset.NewPage(
			[]string{fmt.Sprintf("%d cups flour", i+1), fmt.Sprintf("%d eggs", i+2)},
			fmt.Sprintf("Preheat oven to %d degrees.\n\nMix batter %d times.\n\nBake it well.", 180+i, i),
		))
	}
	return pages
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(Options{Store: memstore.New()}); err == nil {
		t.Error("expected error without normalizer")
	}
	n, _ := normalize.New(normalize.Options{Model: &nlptest.Fake{}})
	if _, err := New(Options{Normalizer: n}); err == nil {
		t.Error("expected error without store")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	n, _ := normalize.New(normalize.Options{Model: &nlptest.Fake{}})
	cfg := config.Default()
	cfg.TestSize = 1.5
	_, err := New(Options{Normalizer: n, Store: memstore.New(), Config: &cfg})
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestPreprocess(t *testing.T) {
	cfg := config.Default()
	cfg.TestSize = 0.25
	p, st := newPipeline(t, &cfg)

	res, err := p.Preprocess(context.Background(), samplePages(8))
	if err != nil {
		t.Fatalf("Preprocess: %v", err)
	}

	// 8 ingredient rows, 8 distinct preheat + 8 distinct mix + 1 shared bake row
	total := len(res.Train) + len(res.Test)
	if total != 8+8+8+1 {
		t.Errorf("expected 25 rows across splits, got %d", total)
	}
	if len(res.Test) == 0 || len(res.Train) == 0 {
		t.Fatalf("both splits should be non-empty: train=%d test=%d", len(res.Train), len(res.Test))
	}

	for _, name := range []string{SplitTrain, SplitTest} {
		rows, err := st.Load(context.Background(), name)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if len(rows) == 0 {
			t.Errorf("%s should be persisted", name)
		}
	}
	if res.TrainPath != "new_train_data_clean.mem" {
		t.Errorf("TrainPath = %q", res.TrainPath)
	}

	for _, r := range append(res.Train, res.Test...) {
		if r.SentCount < 1 {
			t.Errorf("sent_count < 1 for %q", r.Paragraph)
		}
	}
}

func TestPreprocessEmpty(t *testing.T) {
	p, _ := newPipeline(t, nil)
	_, err := p.Preprocess(context.Background(), []dataset.RawPage{dataset.NewPage(nil, "")})
	if !errors.Is(err, internalerr.ErrEmptyDataset) {
		t.Fatalf("expected ErrEmptyDataset, got %v", err)
	}
}

func TestVectorizeUsesTrainVocabulary(t *testing.T) {
	cfg := config.Default()
	cfg.VocabSize = 10
	cfg.MaxSeqLen = 6
	p, _ := newPipeline(t, &cfg)

	res, err := p.Preprocess(context.Background(), samplePages(8))
	if err != nil {
		t.Fatal(err)
	}

	trainM, testM, err := p.Vectorize(vectorize.ModeSequence, res.Train, res.Test)
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if r, c := trainM.Dims(); r != len(res.Train) || c != 6 {
		t.Errorf("train dims = %dx%d", r, c)
	}
	if r, c := testM.Dims(); r != len(res.Test) || c != 6 {
		t.Errorf("test dims = %dx%d", r, c)
	}
	r, c := testM.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := testM.At(i, j); v < 0 || v > 10 {
				t.Errorf("id %v outside fitted vocabulary", v)
			}
		}
	}
}

func TestOnePage(t *testing.T) {
	p, st := newPipeline(t, nil)

	page := dataset.NewPage([]string{"1 cup flour", "2 eggs"}, "Mix well.\n\nBake 20 min.")

	// Oracle scorer: returns each row's own label.
	scorer := eval.ScorerFunc(func(_ context.Context, in eval.Input) ([]float64, error) {
		out := make([]float64, len(in.Labels))
		for i, l := range in.Labels {
			out[i] = float64(l)
		}
		return out, nil
	})

	rep, err := p.OnePage(context.Background(), page, vectorize.ModeTFIDF, scorer)
	if err != nil {
		t.Fatalf("OnePage: %v", err)
	}
	if rep.Total != 3 {
		t.Errorf("Total = %d, want 3", rep.Total)
	}
	if rep.Accuracy != 1 {
		t.Errorf("Accuracy = %v, want 1", rep.Accuracy)
	}
	if _, err := st.Load(context.Background(), SplitOnePage); err != nil {
		t.Errorf("one_page table should be persisted: %v", err)
	}
}

func TestOnePageScorerError(t *testing.T) {
	p, _ := newPipeline(t, nil)
	page := dataset.NewPage([]string{"1 cup flour"}, "Mix well.")

	boom := errors.New("model offline")
	scorer := eval.ScorerFunc(func(context.Context, eval.Input) ([]float64, error) {
		return nil, boom
	})

	if _, err := p.OnePage(context.Background(), page, vectorize.ModeTFIDF, scorer); !errors.Is(err, boom) {
		t.Fatalf("expected scorer error, got %v", err)
	}
}
