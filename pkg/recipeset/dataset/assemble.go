// Package dataset turns extracted recipe pages into a flat, labeled,
// deduplicated paragraph table.
package dataset

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
)

// Label marks the origin of a paragraph.
type Label int

const (
	Instruction Label = 0
	Ingredient  Label = 1
)

// Row is one labeled paragraph.
type Row struct {
	Paragraph string
	Label     Label
}

// Table is an ordered collection of rows, columns [paragraph, label].
type Table []Row

// Columns returns the table's column order.
func (Table) Columns() []string {
	return []string{"paragraph", "label"}
}

// Paragraphs returns the paragraph column.
func (t Table) Paragraphs() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Paragraph
	}
	return out
}

// Labels returns the label column.
func (t Table) Labels() []Label {
	out := make([]Label, len(t))
	for i, r := range t {
		out[i] = r.Label
	}
	return out
}

// Proportions returns each label's share of the table.
func Proportions(t Table) map[Label]float64 {
	out := make(map[Label]float64)
	if len(t) == 0 {
		return out
	}
	for _, r := range t {
		out[r.Label]++
	}
	for l := range out {
		out[l] /= float64(len(t))
	}
	return out
}

// Assembler builds the labeled table. Ingredient text is always labeled
// Ingredient and instruction text always Instruction.
type Assembler struct {
	logger *zap.Logger
}

// NewAssembler creates an assembler. logger may be nil.
func NewAssembler(logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{logger: logger}
}

// Assemble flattens pages into rows: one joined ingredient row per page,
// then one row per instruction paragraph. The union is deduplicated on
// (paragraph, label), keeping first occurrences, and empty paragraphs are
// dropped. Malformed pages are logged and skipped.
func (a *Assembler) Assemble(pages []RawPage) (Table, error) {
	var all Table
	skipped := 0
	for i, p := range pages {
		if err := p.Validate(); err != nil {
			a.logger.Warn("skipping page", zap.Int("page", i), zap.Error(err))
			skipped++
			continue
		}
		all = append(all, pageRows(p)...)
	}
	a.logger.Info("pages flattened",
		zap.Int("pages", len(pages)),
		zap.Int("skipped", skipped),
		zap.Int("rows", len(all)),
	)

	unique := dedup(all)
	a.logger.Info("duplicates removed", zap.Int("rows", len(unique)))

	out := dropEmpty(unique)
	a.logger.Info("empty paragraphs removed", zap.Int("rows", len(out)))

	if len(out) == 0 {
		return nil, fmt.Errorf("assemble %d pages: %w", len(pages), internalerr.ErrEmptyDataset)
	}
	return out, nil
}

// AssembleOne assembles a single in-memory page.
func (a *Assembler) AssembleOne(p RawPage) (Table, error) {
	return a.Assemble([]RawPage{p})
}

func pageRows(p RawPage) Table {
	rows := Table{{Paragraph: JoinLines(p.Ingredients), Label: Ingredient}}
	for _, block := range p.Instructions {
		for _, para := range SplitParagraphs(block) {
			rows = append(rows, Row{Paragraph: para, Label: Instruction})
		}
	}
	return rows
}

func dedup(rows Table) Table {
	seen := make(map[Row]struct{}, len(rows))
	out := make(Table, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func dropEmpty(rows Table) Table {
	out := make(Table, 0, len(rows))
	for _, r := range rows {
		if r.Paragraph != "" {
			out = append(out, r)
		}
	}
	return out
}
