package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cognicore/recipeset/pkg/recipeset/nlp"
	"github.com/cognicore/recipeset/pkg/recipeset/normalize"
	"github.com/cognicore/recipeset/pkg/recipeset/stoplist"
)

// Loader loads all configuration files and constructs components.
type Loader struct {
	ConfigPath string
	// StoplistPath and LexiconPath override the paths named in the config file.
	StoplistPath string
	LexiconPath  string

	// Model is used as-is when set; otherwise the English model is loaded.
	Model  nlp.Model
	Logger *zap.Logger
}

// Components holds all loaded configuration components.
type Components struct {
	Config     *Config
	Stoplist   *stoplist.Manager
	Lexicon    *nlp.Lexicon
	Model      nlp.Model
	Normalizer *normalize.Normalizer
}

// Load reads the config file, applies environment overrides, validates, and
// builds the normalizer.
func (l *Loader) Load() (*Components, error) {
	cfg, err := Load(l.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if l.StoplistPath != "" {
		cfg.StoplistPath = l.StoplistPath
	}
	if l.LexiconPath != "" {
		cfg.LexiconPath = l.LexiconPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	comp := &Components{Config: cfg}

	// Stop words: English base + config extensions + stoplist file
	comp.Stoplist = stoplist.NewManager(stoplist.English())
	for _, w := range cfg.StopWords {
		comp.Stoplist.Add(w)
	}
	if cfg.StoplistPath != "" {
		sl, err := LoadStoplist(cfg.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		for _, w := range sl.Terms {
			comp.Stoplist.Add(w)
		}
	}

	if cfg.LexiconPath != "" {
		lex, err := nlp.LoadLexicon(cfg.LexiconPath)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		comp.Lexicon = lex
	} else {
		comp.Lexicon = nlp.NewLexicon()
	}

	comp.Model = l.Model
	if comp.Model == nil {
		english, err := nlp.NewEnglish(comp.Lexicon)
		if err != nil {
			return nil, err
		}
		comp.Model = english
	}

	patterns, err := cfg.Patterns.Compile()
	if err != nil {
		return nil, err
	}
	comp.Normalizer, err = normalize.New(normalize.Options{
		Model:    comp.Model,
		Stoplist: comp.Stoplist,
		Patterns: patterns,
		Logger:   l.Logger,
	})
	if err != nil {
		return nil, err
	}

	return comp, nil
}
