package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rumor-ml/bankparse/internal/logger"
	"github.com/rumor-ml/bankparse/internal/output"
	"github.com/rumor-ml/bankparse/internal/pipeline"
	"github.com/rumor-ml/bankparse/internal/scanner"
	"github.com/rumor-ml/bankparse/internal/ui"
	"github.com/rumor-ml/bankparse/internal/validate"
)

const (
	version = "0.1.0"
)

var (
	versionFlag = flag.Bool("version", false, "Show version")

	file     = flag.String("file", "", "Single statement file to parse")
	inputDir = flag.String("input", "", "Directory of statements to parse in batch")
	verbose  = flag.Bool("verbose", false, "Show detailed parsing logs")

	outputFile = flag.String("output", "", "Output JSON file (default: stdout)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `bankparse - Bank statement ingestion and normalization

Usage:
  bankparse [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr, `
Examples:
  # Parse one statement to stdout
  bankparse -file extrato.csv

  # Parse a directory of statements to a file
  bankparse -input ~/statements -output results.json

  # Verbose logs on stderr, result JSON on stdout
  bankparse -file fatura.pdf -verbose

`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("bankparse version %s\n", version)
		os.Exit(0)
	}

	if *file == "" && *inputDir == "" {
		fmt.Fprintf(os.Stderr, "Error: either -file or -input is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx, logger.New(*verbose))

	p, err := pipeline.New()
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	if *file != "" {
		return parseOne(ctx, p, *file)
	}
	return parseBatch(ctx, p, *inputDir)
}

func parseOne(ctx context.Context, p *pipeline.Pipeline, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	result, err := p.ParseStatement(ctx, data, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("parse interrupted: %w", err)
	}

	if vr := validate.ValidateResult(result); !vr.Valid() {
		return fmt.Errorf("result failed invariant checks: %+v", vr.Errors)
	}

	return output.WriteResultToFile(result, *outputFile)
}

func parseBatch(ctx context.Context, p *pipeline.Pipeline, dir string) error {
	if !*verbose {
		ui.Header("Parsing Bank Statements")
		ui.Step(1, 3, "Scanning directory")
	}

	files, err := scanner.New(dir).Scan()
	if err != nil {
		return fmt.Errorf("failed to scan directory %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no statement files found in %s", dir)
	}

	if !*verbose {
		ui.Step(2, 3, fmt.Sprintf("Parsing %d files", len(files)))
	}

	parsed := 0
	failed := 0
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		result, err := p.ParseStatement(ctx, data, filepath.Base(path))
		if err != nil {
			return fmt.Errorf("parse interrupted: %w", err)
		}
		if vr := validate.ValidateResult(result); !vr.Valid() {
			return fmt.Errorf("result for %s failed invariant checks: %+v", filepath.Base(path), vr.Errors)
		}

		if result.Success {
			parsed++
			if !*verbose {
				ui.Success(fmt.Sprintf("%s: %d transactions (%s)", filepath.Base(path), len(result.Transactions), result.Variant))
			}
		} else {
			failed++
			ui.Warning(fmt.Sprintf("%s: %s", filepath.Base(path), result.Errors[0]))
		}

		out := *outputFile
		if out != "" {
			out = batchOutputPath(out, path)
		}
		if err := output.WriteResultToFile(result, out); err != nil {
			return err
		}
	}

	if !*verbose {
		ui.Step(3, 3, "Done")
		ui.Info(fmt.Sprintf("%d parsed, %d failed", parsed, failed))
	}
	return nil
}

// batchOutputPath derives one output file per statement so batch runs do
// not overwrite a single -output target.
func batchOutputPath(outputFlag, statementPath string) string {
	base := filepath.Base(statementPath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	dir := filepath.Dir(outputFlag)
	return filepath.Join(dir, stem+".json")
}
