package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/cognicore/recipeset/pkg/recipeset/dataset"
	"github.com/cognicore/recipeset/pkg/recipeset/features"
	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
	"github.com/cognicore/recipeset/pkg/recipeset/store"
)

func TestMemStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := New()

	rows := []features.EnrichedRow{{
		Row:             dataset.Row{Paragraph: "Stir.", Label: dataset.Instruction},
		RemoveStopWords: "stir zdot",
		SentCount:       1,
	}}
	path, err := s.Save(ctx, "one_page", rows)
	if err != nil {
		t.Fatal(err)
	}
	if path != "new_one_page_data_clean.mem" {
		t.Errorf("path = %q", path)
	}

	got, err := s.Load(ctx, "one_page")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].RemoveStopWords != "stir zdot" {
		t.Errorf("Load = %+v", got)
	}

	lifted := store.Enriched(got)
	if lifted[0].Paragraph != "Stir." || lifted[0].SentCount != 1 {
		t.Errorf("Enriched = %+v", lifted[0])
	}

	if _, err := s.Load(ctx, "train"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(s.Names()) != 1 {
		t.Errorf("Names = %v", s.Names())
	}
}
