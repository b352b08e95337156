package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/recipeset/pkg/recipeset/internalerr"
	"github.com/cognicore/recipeset/pkg/recipeset/normalize"
	"github.com/cognicore/recipeset/pkg/recipeset/split"
)

// Defaults used when neither the config file nor the environment sets a value.
const (
	DefaultVocabSize = 5000
	DefaultMaxSeqLen = 100
	DefaultTestSize  = 0.2
	DefaultSeed      = 42
	DefaultDataFile  = "recipes.yaml"
)

// Config is the externally supplied configuration surface of the pipeline.
// Every scalar can be overridden from the environment under its upper-case name.
type Config struct {
	VocabSize int     `yaml:"vocab_size" envconfig:"VOCAB_SIZE"`
	MaxSeqLen int     `yaml:"max_seq_len" envconfig:"MAX_SEQ_LEN"`
	TestSize  float64 `yaml:"test_size" envconfig:"TEST_SIZE"`
	Seed      uint64  `yaml:"seed" envconfig:"SEED"`

	DataFile  string `yaml:"data_file" envconfig:"DATA_FILE"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`

	Patterns `yaml:"patterns"`

	// StopWords extends the base English stop-word set.
	StopWords    []string `yaml:"stop_words" envconfig:"STOP_WORDS"`
	StoplistPath string   `yaml:"stoplist_path" envconfig:"STOPLIST_PATH"`
	LexiconPath  string   `yaml:"lexicon_path" envconfig:"LEXICON_PATH"`
}

// Patterns holds the regular expressions used for numeric and sentence tagging.
type Patterns struct {
	Digit  string `yaml:"digit" envconfig:"DIGIT_RX"`
	Symbol string `yaml:"symbol" envconfig:"SYMBOL_RX"`
	Dot    string `yaml:"dot" envconfig:"DOT_RX"`
}

// Default returns the configuration used when nothing else is supplied.
func Default() Config {
	return Config{
		VocabSize: DefaultVocabSize,
		MaxSeqLen: DefaultMaxSeqLen,
		TestSize:  DefaultTestSize,
		Seed:      DefaultSeed,
		DataFile:  DefaultDataFile,
		OutputDir: "data",
		Patterns: Patterns{
			Digit:  normalize.DefaultDigitPattern,
			Symbol: normalize.DefaultSymbolPattern,
			Dot:    normalize.DefaultDotPattern,
		},
	}
}

// Load reads a YAML config file on top of the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables (VOCAB_SIZE, MAX_SEQ_LEN,
// TEST_SIZE, SEED, DIGIT_RX, ...). Unset variables leave the field untouched.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks ranges and compiles the patterns.
func (c *Config) Validate() error {
	if c.VocabSize <= 0 {
		return fmt.Errorf("%w: VOCAB_SIZE must be positive, got %d", internalerr.ErrInvalidConfig, c.VocabSize)
	}
	if c.MaxSeqLen <= 0 {
		return fmt.Errorf("%w: MAX_SEQ_LEN must be positive, got %d", internalerr.ErrInvalidConfig, c.MaxSeqLen)
	}
	if !split.ValidFraction(c.TestSize) {
		return fmt.Errorf("%w: TEST_SIZE must be in (0,1), got %g", internalerr.ErrInvalidConfig, c.TestSize)
	}
	if _, err := c.Patterns.Compile(); err != nil {
		return err
	}
	return nil
}

// Compile turns the pattern strings into normalizer patterns.
func (p Patterns) Compile() (normalize.Patterns, error) {
	var out normalize.Patterns
	var err error

	if out.Digit, err = compile("DIGIT_RX", p.Digit, normalize.DefaultDigitPattern); err != nil {
		return out, err
	}
	if out.Symbol, err = compile("SYMBOL_RX", p.Symbol, normalize.DefaultSymbolPattern); err != nil {
		return out, err
	}
	if out.Dot, err = compile("DOT_RX", p.Dot, normalize.DefaultDotPattern); err != nil {
		return out, err
	}
	return out, nil
}

func compile(name, expr, fallback string) (*regexp.Regexp, error) {
	if expr == "" {
		expr = fallback
	}
	rx, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, name, err)
	}
	return rx, nil
}

// Stoplist represents the stopword list configuration.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file.
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
