// Package output serializes parse results for consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rumor-ml/bankparse/internal/domain"
)

// WriteResult serializes a ParseResult to JSON with 2-space indentation
func WriteResult(result *domain.ParseResult, w io.Writer) error {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result as JSON: %w", err)
	}

	return nil
}

// WriteResultToFile writes a ParseResult to the given path, or to stdout
// when path is empty.
func WriteResultToFile(result *domain.ParseResult, path string) (err error) {
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	if path == "" {
		return WriteResult(result, os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file %s: %w", path, closeErr)
		}
	}()

	if err = WriteResult(result, f); err != nil {
		return fmt.Errorf("failed to write result to %s: %w", path, err)
	}

	return nil
}
