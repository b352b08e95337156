package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/recipeset/pkg/recipeset/nlp/nlptest"
)

func TestLoaderDefaults(t *testing.T) {
	loader := Loader{Model: &nlptest.Fake{}}

	comp, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Normalizer == nil {
		t.Fatal("Should have normalizer")
	}
	if comp.Lexicon == nil || comp.Lexicon.Len() != 0 {
		t.Error("Should have empty lexicon")
	}
	for _, w := range []string{"the", "f", "s", "etc"} {
		if !comp.Stoplist.IsStop(w) {
			t.Errorf("%q should be a stop word", w)
		}
	}
}

func TestLoaderNonExistentConfig(t *testing.T) {
	loader := Loader{ConfigPath: "/nonexistent/config.yaml", Model: &nlptest.Fake{}}
	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent config")
	}
}

func TestLoaderNonExistentStoplist(t *testing.T) {
	loader := Loader{StoplistPath: "/nonexistent/stoplist.yaml", Model: &nlptest.Fake{}}
	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent stoplist")
	}
}

func TestLoaderNonExistentLexicon(t *testing.T) {
	loader := Loader{LexiconPath: "/nonexistent/lexicon.yaml", Model: &nlptest.Fake{}}
	if _, err := loader.Load(); err == nil {
		t.Error("Should error on nonexistent lexicon")
	}
}

func TestLoaderValidFiles(t *testing.T) {
	tmpDir := t.TempDir()

	stopPath := filepath.Join(tmpDir, "stoplist.yaml")
	lexPath := filepath.Join(tmpDir, "lexicon.yaml")
	cfgPath := filepath.Join(tmpDir, "config.yaml")

	files := map[string]string{
		stopPath: "terms: [pinch]\n",
		lexPath:  "lemmas:\n  - lemma: tablespoon\n    forms: [tbsp]\n",
		cfgPath:  "vocab_size: 50\nstop_words: [dash]\nstoplist_path: " + stopPath + "\nlexicon_path: " + lexPath + "\n",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	comp, err := (&Loader{ConfigPath: cfgPath, Model: &nlptest.Fake{}}).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if comp.Config.VocabSize != 50 {
		t.Errorf("VocabSize = %d", comp.Config.VocabSize)
	}
	if !comp.Stoplist.IsStop("pinch") || !comp.Stoplist.IsStop("dash") {
		t.Error("stoplist file and config extensions should both apply")
	}
	if got, ok := comp.Lexicon.Lookup("tbsp"); !ok || got != "tablespoon" {
		t.Errorf("lexicon Lookup(tbsp) = %q, %v", got, ok)
	}
}
