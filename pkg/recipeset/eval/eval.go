// Package eval hands vectorized paragraphs to an opaque scoring model and
// summarizes how well its predictions match the labels.
package eval

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
)

// DefaultThreshold splits scores into ingredient (>=) and instruction (<).
const DefaultThreshold = 0.5

// Input is everything a scorer receives.
type Input struct {
	Text       *mat.Dense // vectorized text, one row per paragraph
	Meta       *mat.Dense // metadata features, one row per paragraph
	Labels     []int
	Paragraphs []string // original text, for reporting only
}

// Validate checks that every part has one row per label.
func (in Input) Validate() error {
	n := len(in.Labels)
	if n == 0 {
		return fmt.Errorf("eval: %w", internalerr.ErrEmptyDataset)
	}
	if in.Text == nil {
		return fmt.Errorf("%w: missing text matrix", internalerr.ErrInvalidInput)
	}
	if r, _ := in.Text.Dims(); r != n {
		return fmt.Errorf("%w: text matrix has %d rows for %d labels", internalerr.ErrInvalidInput, r, n)
	}
	if in.Meta != nil {
		if r, _ := in.Meta.Dims(); r != n {
			return fmt.Errorf("%w: meta matrix has %d rows for %d labels", internalerr.ErrInvalidInput, r, n)
		}
	}
	if in.Paragraphs != nil && len(in.Paragraphs) != n {
		return fmt.Errorf("%w: %d paragraphs for %d labels", internalerr.ErrInvalidInput, len(in.Paragraphs), n)
	}
	return nil
}

// Scorer is the trained model: it returns the probability that each row is
// ingredient text.
type Scorer interface {
	Score(ctx context.Context, in Input) ([]float64, error)
}

// ScorerFunc adapts a function to Scorer.
type ScorerFunc func(ctx context.Context, in Input) ([]float64, error)

// Score implements Scorer.
func (f ScorerFunc) Score(ctx context.Context, in Input) ([]float64, error) {
	return f(ctx, in)
}

// Miss is a misclassified paragraph.
type Miss struct {
	Index     int
	Paragraph string
	Label     int
	Score     float64
}

// Report summarizes predictions against labels; label 1 is the positive class.
type Report struct {
	Total     int
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	Confusion [2][2]int // [label][predicted]
	Misses    []Miss
}

// Evaluate scores in with scorer and compares predictions at threshold.
func Evaluate(ctx context.Context, scorer Scorer, in Input, threshold float64, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := in.Validate(); err != nil {
		return Report{}, err
	}

	scores, err := scorer.Score(ctx, in)
	if err != nil {
		return Report{}, fmt.Errorf("score: %w", err)
	}
	if len(scores) != len(in.Labels) {
		return Report{}, fmt.Errorf("%w: scorer returned %d scores for %d rows", internalerr.ErrInvalidInput, len(scores), len(in.Labels))
	}

	rep := Report{Total: len(scores)}
	for i, s := range scores {
		pred := 0
		if s >= threshold {
			pred = 1
		}
		label := in.Labels[i]
		if label != 0 && label != 1 {
			return Report{}, fmt.Errorf("%w: label %d at row %d", internalerr.ErrInvalidInput, label, i)
		}
		rep.Confusion[label][pred]++
		if pred != label {
			m := Miss{Index: i, Label: label, Score: s}
			if in.Paragraphs != nil {
				m.Paragraph = in.Paragraphs[i]
			}
			rep.Misses = append(rep.Misses, m)
		}
	}

	tp := float64(rep.Confusion[1][1])
	tn := float64(rep.Confusion[0][0])
	fp := float64(rep.Confusion[0][1])
	fn := float64(rep.Confusion[1][0])

	rep.Accuracy = (tp + tn) / float64(rep.Total)
	rep.Precision = ratio(tp, tp+fp)
	rep.Recall = ratio(tp, tp+fn)
	rep.F1 = ratio(2*rep.Precision*rep.Recall, rep.Precision+rep.Recall)

	logger.Info("evaluation",
		zap.Int("rows", rep.Total),
		zap.Float64("accuracy", rep.Accuracy),
		zap.Float64("precision", rep.Precision),
		zap.Float64("recall", rep.Recall),
		zap.Float64("f1", rep.F1),
	)
	for _, m := range rep.Misses {
		logger.Debug("misclassified", zap.Int("row", m.Index), zap.Int("label", m.Label),
			zap.Float64("score", m.Score), zap.String("paragraph", m.Paragraph))
	}
	return rep, nil
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
