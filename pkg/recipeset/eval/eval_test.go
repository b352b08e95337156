package eval

import (
	"context"
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
)

func fixed(scores ...float64) Scorer {
	return ScorerFunc(func(context.Context, Input) ([]float64, error) {
		return scores, nil
	})
}

func input(labels ...int) Input {
	return Input{
		Text:       mat.NewDense(len(labels), 2, nil),
		Meta:       mat.NewDense(len(labels), 5, nil),
		Labels:     labels,
		Paragraphs: make([]string, len(labels)),
	}
}

func TestEvaluateMetrics(t *testing.T) {
	in := input(1, 1, 0, 0)
	in.Paragraphs[2] = "Stir in 2 cups."

	rep, err := Evaluate(context.Background(), fixed(0.9, 0.2, 0.7, 0.1), in, DefaultThreshold, nil)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if rep.Accuracy != 0.5 {
		t.Errorf("Accuracy = %v", rep.Accuracy)
	}
	if rep.Precision != 0.5 || rep.Recall != 0.5 || math.Abs(rep.F1-0.5) > 1e-12 {
		t.Errorf("P/R/F1 = %v/%v/%v", rep.Precision, rep.Recall, rep.F1)
	}
	if rep.Confusion != [2][2]int{{1, 1}, {1, 1}} {
		t.Errorf("Confusion = %v", rep.Confusion)
	}
	if len(rep.Misses) != 2 || rep.Misses[1].Paragraph != "Stir in 2 cups." {
		t.Errorf("Misses = %+v", rep.Misses)
	}
}

func TestEvaluateNoPositives(t *testing.T) {
	rep, err := Evaluate(context.Background(), fixed(0, 0), input(0, 0), DefaultThreshold, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Accuracy != 1 || rep.Precision != 0 || rep.F1 != 0 {
		t.Errorf("report = %+v", rep)
	}
}

func TestEvaluateValidation(t *testing.T) {
	ctx := context.Background()

	if _, err := Evaluate(ctx, fixed(), Input{}, 0.5, nil); !errors.Is(err, internalerr.ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset, got %v", err)
	}

	bad := input(1, 0)
	bad.Meta = mat.NewDense(3, 5, nil)
	if _, err := Evaluate(ctx, fixed(1, 0), bad, 0.5, nil); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for meta rows, got %v", err)
	}

	if _, err := Evaluate(ctx, fixed(1), input(1, 0), 0.5, nil); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for short scores, got %v", err)
	}

	failing := ScorerFunc(func(context.Context, Input) ([]float64, error) {
		return nil, errors.New("model offline")
	})
	if _, err := Evaluate(ctx, failing, input(1), 0.5, nil); err == nil {
		t.Error("expected scorer error")
	}
}
