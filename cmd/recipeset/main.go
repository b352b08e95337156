package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/cognicore/recipeset/internal/serving"
	"github.com/cognicore/recipeset/pkg/recipeset"
	"github.com/cognicore/recipeset/pkg/recipeset/config"
	"github.com/cognicore/recipeset/pkg/recipeset/dataset"
	"github.com/cognicore/recipeset/pkg/recipeset/store/sqlite"
	"github.com/cognicore/recipeset/pkg/recipeset/vectorize"
)

const usage = `usage: recipeset <command> [flags]

commands:
  preprocess   assemble, split and clean a page file into train/test tables
  one-page     clean a single page and evaluate a served model on it
`

// options holds the parsed command line.
type options struct {
	command    string
	configPath string
	dataPath   string
	outDir     string
	pagePath   string
	modelURL   string
	mode       string
	debug      bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	if len(args) == 0 {
		return options{}, errors.New("command required")
	}

	opts := options{command: args[0]}
	fs := flag.NewFlagSet(opts.command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file (optional)")
	fs.StringVar(&opts.outDir, "out", "", "Output directory for clean tables (default: config output_dir)")
	fs.BoolVar(&opts.debug, "debug", false, "Development logging")

	switch opts.command {
	case "preprocess":
		fs.StringVar(&opts.dataPath, "data", "", "Page file, YAML or JSON (default: config data_file)")
	case "one-page":
		fs.StringVar(&opts.pagePath, "page", "", "Single page file, YAML or JSON (required)")
		fs.StringVar(&opts.modelURL, "model-url", "", "Predict endpoint of the served model (required)")
		fs.StringVar(&opts.mode, "mode", string(vectorize.ModeTFIDF), "Vectorizer: tfidf or sequence")
	default:
		return options{}, fmt.Errorf("unknown command %q", opts.command)
	}

	if err := fs.Parse(args[1:]); err != nil {
		return options{}, err
	}

	if opts.command == "one-page" {
		if opts.pagePath == "" {
			return options{}, errors.New("--page required")
		}
		if opts.modelURL == "" {
			return options{}, errors.New("--model-url required")
		}
		if opts.mode != string(vectorize.ModeTFIDF) && opts.mode != string(vectorize.ModeSequence) {
			return options{}, fmt.Errorf("--mode must be tfidf or sequence, got %q", opts.mode)
		}
	}
	return opts, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	logger, err := newLogger(opts.debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(context.Background(), opts, logger); err != nil {
		logger.Fatal("recipeset failed", zap.String("command", opts.command), zap.Error(err))
	}
}

func run(ctx context.Context, opts options, logger *zap.Logger) error {
	loader := config.Loader{ConfigPath: opts.configPath, Logger: logger}
	comp, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	cfg := comp.Config

	outDir := opts.outDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	st, err := sqlite.Open(outDir)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	p, err := recipeset.New(recipeset.Options{
		Normalizer: comp.Normalizer,
		Store:      st,
		Config:     cfg,
		Logger:     logger,
	})
	if err != nil {
		st.Close()
		return err
	}
	defer p.Close()

	switch opts.command {
	case "preprocess":
		dataPath := opts.dataPath
		if dataPath == "" {
			dataPath = cfg.DataFile
		}
		pages, err := dataset.LoadPages(dataPath)
		if err != nil {
			return fmt.Errorf("load pages: %w", err)
		}
		logger.Info("pages loaded", zap.String("path", dataPath), zap.Int("pages", len(pages)))

		res, err := p.Preprocess(ctx, pages)
		if err != nil {
			return err
		}
		logger.Info("preprocess complete",
			zap.String("train", res.TrainPath),
			zap.String("test", res.TestPath),
		)

	case "one-page":
		pages, err := dataset.LoadPages(opts.pagePath)
		if err != nil {
			return fmt.Errorf("load page: %w", err)
		}
		if len(pages) != 1 {
			return fmt.Errorf("%s: expected one page, got %d", opts.pagePath, len(pages))
		}

		client := &serving.Client{URL: opts.modelURL}
		rep, err := p.OnePage(ctx, pages[0], vectorize.Mode(opts.mode), client)
		if err != nil {
			return err
		}
		for _, m := range rep.Misses {
			fmt.Printf("MISS label=%d score=%.3f %q\n", m.Label, m.Score, m.Paragraph)
		}
		fmt.Printf("rows=%d accuracy=%.3f precision=%.3f recall=%.3f f1=%.3f\n",
			rep.Total, rep.Accuracy, rep.Precision, rep.Recall, rep.F1)
	}
	return nil
}
