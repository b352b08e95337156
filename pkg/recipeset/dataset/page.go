package dataset

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
	"github.com/cognicore/recipeset/pkg/recipeset/normalize"
)

// Field names used by the page extraction dump.
const (
	FieldRecipe       = "Recipe"
	FieldInstructions = "INSTRUCTIONS"
)

// ParagraphSeparator delimits instruction paragraphs inside one string.
const ParagraphSeparator = "\n\n"

// RawPage is the extraction output for one recipe page.
type RawPage struct {
	Ingredients  []string
	Instructions []string

	HasIngredients  bool
	HasInstructions bool
}

// NewPage builds a complete page record.
func NewPage(ingredients []string, instructions ...string) RawPage {
	return RawPage{
		Ingredients:     ingredients,
		Instructions:    instructions,
		HasIngredients:  ingredients != nil,
		HasInstructions: instructions != nil,
	}
}

// Validate reports a page missing either field.
func (p RawPage) Validate() error {
	if !p.HasIngredients {
		return fmt.Errorf("%w: missing %s", internalerr.ErrMalformedPage, FieldRecipe)
	}
	if !p.HasInstructions {
		return fmt.Errorf("%w: missing %s", internalerr.ErrMalformedPage, FieldInstructions)
	}
	return nil
}

// JoinLines joins ingredient lines with single spaces.
func JoinLines(lines []string) string {
	return strings.Join(lines, " ")
}

// SplitParagraphs splits instruction text on the blank-line separator.
func SplitParagraphs(text string) []string {
	return strings.Split(text, ParagraphSeparator)
}

// textList decodes either a scalar string or a sequence of strings.
type textList []string

func (l *textList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = textList{s}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", value.Line)
	}
}

type pageRecord struct {
	Recipe       *textList `yaml:"Recipe"`
	Instructions *textList `yaml:"INSTRUCTIONS"`
}

func (r pageRecord) page() RawPage {
	var p RawPage
	if r.Recipe != nil {
		p.Ingredients = []string(*r.Recipe)
		p.HasIngredients = true
	}
	if r.Instructions != nil {
		p.Instructions = []string(*r.Instructions)
		p.HasInstructions = true
	}
	return p
}

// columnar is the scraper's dump: one list per field, one element per page.
type columnar struct {
	Recipe       []*textList `yaml:"Recipe"`
	Instructions []*textList `yaml:"INSTRUCTIONS"`
}

// LoadPages reads a page file. JSON and YAML are both accepted. The file is
// either a list of {Recipe, INSTRUCTIONS} records or the columnar form
// {Recipe: [...], INSTRUCTIONS: [...]}. Pages missing a field are returned
// with the corresponding Has flag unset so the assembler can skip them.
func LoadPages(path string) ([]RawPage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePages(data)
}

// ParsePages decodes page records from JSON or YAML bytes. Input that is not
// UTF-8 is charset-detected and transcoded first.
func ParsePages(data []byte) ([]RawPage, error) {
	text, err := normalize.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse pages: %w", err)
	}
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("parse pages: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, nil
	}
	doc := root.Content[0]

	switch doc.Kind {
	case yaml.SequenceNode:
		var records []pageRecord
		if err := doc.Decode(&records); err != nil {
			return nil, fmt.Errorf("parse pages: %w", err)
		}
		pages := make([]RawPage, len(records))
		for i, r := range records {
			pages[i] = r.page()
		}
		return pages, nil

	case yaml.MappingNode:
		if isSinglePage(doc) {
			var r pageRecord
			if err := doc.Decode(&r); err != nil {
				return nil, fmt.Errorf("parse page: %w", err)
			}
			return []RawPage{r.page()}, nil
		}
		var c columnar
		if err := doc.Decode(&c); err != nil {
			return nil, fmt.Errorf("parse pages: %w", err)
		}
		n := max(len(c.Recipe), len(c.Instructions))
		pages := make([]RawPage, n)
		for i := 0; i < n; i++ {
			var r pageRecord
			if i < len(c.Recipe) {
				r.Recipe = c.Recipe[i]
			}
			if i < len(c.Instructions) {
				r.Instructions = c.Instructions[i]
			}
			pages[i] = r.page()
		}
		return pages, nil

	default:
		return nil, fmt.Errorf("parse pages: unexpected top-level node at line %d", doc.Line)
	}
}

// isSinglePage reports whether a mapping holds one page: Recipe is a list
// of strings rather than a list of lists.
func isSinglePage(doc *yaml.Node) bool {
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != FieldRecipe {
			continue
		}
		v := doc.Content[i+1]
		if v.Kind != yaml.SequenceNode {
			return true
		}
		for _, item := range v.Content {
			if item.Kind == yaml.SequenceNode {
				return false
			}
		}
		return true
	}
	return false
}
