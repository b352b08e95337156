package dataset

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
)

func TestAssembleOnePage(t *testing.T) {
	page := NewPage([]string{"1 cup flour", "2 eggs"}, "Mix well.\n\nBake 20 min.")

	got, err := NewAssembler(nil).AssembleOne(page)
	if err != nil {
		t.Fatalf("AssembleOne: %v", err)
	}

	want := Table{
		{Paragraph: "1 cup flour 2 eggs", Label: Ingredient},
		{Paragraph: "Mix well.", Label: Instruction},
		{Paragraph: "Bake 20 min.", Label: Instruction},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssembleOne = %#v, want %#v", got, want)
	}
}

func TestAssembleDedupAndEmpty(t *testing.T) {
	pages := []RawPage{
		NewPage([]string{"salt"}, "Stir.\n\n\n\nStir."),
		NewPage([]string{"salt"}, "Stir.", "", "Serve."),
		// same text under the other label is a distinct row
		NewPage([]string{"Stir."}, "Serve."),
	}

	got, err := NewAssembler(nil).Assemble(pages)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	seen := make(map[Row]bool)
	for _, r := range got {
		if r.Paragraph == "" {
			t.Error("empty paragraph in output")
		}
		if seen[r] {
			t.Errorf("duplicate row %#v", r)
		}
		seen[r] = true
	}

	want := Table{
		{Paragraph: "salt", Label: Ingredient},
		{Paragraph: "Stir.", Label: Instruction},
		{Paragraph: "Serve.", Label: Instruction},
		{Paragraph: "Stir.", Label: Ingredient},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Assemble = %#v, want %#v", got, want)
	}
}

func TestAssembleSkipsMalformedPages(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	a := NewAssembler(zap.New(core))

	pages := []RawPage{
		{Ingredients: []string{"butter"}, HasIngredients: true},
		{Instructions: []string{"Melt."}, HasInstructions: true},
		NewPage([]string{"sugar"}, "Whisk."),
	}

	got, err := a.Assemble(pages)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 rows from the valid page, got %d", len(got))
	}
	if n := logs.FilterMessage("skipping page").Len(); n != 2 {
		t.Errorf("expected 2 skip warnings, got %d", n)
	}
}

func TestAssembleEmptyDataset(t *testing.T) {
	a := NewAssembler(nil)

	if _, err := a.Assemble(nil); !errors.Is(err, internalerr.ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset for no pages, got %v", err)
	}

	_, err := a.AssembleOne(NewPage([]string{}, ""))
	if !errors.Is(err, internalerr.ErrEmptyDataset) {
		t.Errorf("expected ErrEmptyDataset for empty page, got %v", err)
	}
}

func TestJoinLinesRoundTrip(t *testing.T) {
	lines := []string{"flour", "sugar", "2", "eggs"}
	got := strings.Fields(JoinLines(lines))
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("round trip = %v, want %v", got, lines)
	}
}

func TestProportions(t *testing.T) {
	table := Table{
		{Paragraph: "a", Label: Ingredient},
		{Paragraph: "b", Label: Instruction},
		{Paragraph: "c", Label: Instruction},
		{Paragraph: "d", Label: Instruction},
	}
	p := Proportions(table)
	if p[Ingredient] != 0.25 || p[Instruction] != 0.75 {
		t.Errorf("Proportions = %v", p)
	}
	if len(Proportions(nil)) != 0 {
		t.Error("empty table should have no proportions")
	}
}
