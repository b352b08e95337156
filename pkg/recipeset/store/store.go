package store

import (
	"context"
	"fmt"

	"github.com/cognicore/recipeset/pkg/recipeset/dataset"
	"github.com/cognicore/recipeset/pkg/recipeset/features"
)

// Store persists clean per-split tables.
type Store interface {
	Close() error

	// Save writes rows under name and returns the location written.
	Save(ctx context.Context, name string, rows []features.EnrichedRow) (string, error)
	// Load reads back the table saved under name.
	Load(ctx context.Context, name string) ([]CleanRow, error)
}

// CleanRow is the persisted projection of an enriched row, columns
// [paragraph, remove_stop_words, sent_count, num_count, clean_paragraph_len,
// verb_count, contains_pron, label].
type CleanRow struct {
	Paragraph         string
	RemoveStopWords   string
	SentCount         int
	NumCount          int
	CleanParagraphLen int
	VerbCount         int
	ContainsPron      int
	Label             dataset.Label
}

// Columns is the persisted column order.
var Columns = []string{
	"paragraph", "remove_stop_words", "sent_count", "num_count",
	"clean_paragraph_len", "verb_count", "contains_pron", "label",
}

// Project keeps the persisted columns of rows.
func Project(rows []features.EnrichedRow) []CleanRow {
	out := make([]CleanRow, len(rows))
	for i, r := range rows {
		out[i] = CleanRow{
			Paragraph:         r.Paragraph,
			RemoveStopWords:   r.RemoveStopWords,
			SentCount:         r.SentCount,
			NumCount:          r.NumCount,
			CleanParagraphLen: r.CleanParagraphLen,
			VerbCount:         r.VerbCount,
			ContainsPron:      r.ContainsPron,
			Label:             r.Label,
		}
	}
	return out
}

// Enriched lifts persisted rows back into enriched rows. Stages that are not
// persisted are left empty.
func Enriched(rows []CleanRow) []features.EnrichedRow {
	out := make([]features.EnrichedRow, len(rows))
	for i, r := range rows {
		out[i] = features.EnrichedRow{
			Row:               dataset.Row{Paragraph: r.Paragraph, Label: r.Label},
			RemoveStopWords:   r.RemoveStopWords,
			SentCount:         r.SentCount,
			NumCount:          r.NumCount,
			CleanParagraphLen: r.CleanParagraphLen,
			VerbCount:         r.VerbCount,
			ContainsPron:      r.ContainsPron,
		}
	}
	return out
}

// FileName returns the file name for a split, e.g. new_train_data_clean.db.
func FileName(name, ext string) string {
	return fmt.Sprintf("new_%s_data_clean.%s", name, ext)
}
