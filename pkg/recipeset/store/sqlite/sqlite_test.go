package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/recipeset/pkg/recipeset/dataset"
	"github.com/cognicore/recipeset/pkg/recipeset/features"
	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
	"github.com/cognicore/recipeset/pkg/recipeset/store"
)

func sampleRows() []features.EnrichedRow {
	return []features.EnrichedRow{
		{
			Row:               dataset.Row{Paragraph: "1 cup flour 2 eggs", Label: dataset.Ingredient},
			Lemmatized:        "znum cup flour znum egg",
			RemoveStopWords:   "znum cup flour znum egg",
			SentCount:         1,
			NumCount:          2,
			CleanParagraphLen: 5,
		},
		{
			Row:               dataset.Row{Paragraph: "Mix well.", Label: dataset.Instruction},
			RemoveStopWords:   "mix zdot",
			SentCount:         1,
			CleanParagraphLen: 2,
			VerbCount:         1,
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	path, err := s.Save(ctx, "train", sampleRows())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "new_train_data_clean.db"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	got, err := s.Load(ctx, "train")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := store.Project(sampleRows()); !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestSaveReplacesTable(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Save(ctx, "test", sampleRows()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(ctx, "test", sampleRows()[:1]); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, "test")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 row after overwrite, got %d", len(got))
	}
}

func TestLoadMissing(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(context.Background(), "one_page"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
