// Package scanner walks a directory tree and finds statement files the
// engine can parse, for batch CLI runs.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// statementExtensions are the upload formats the engine accepts. Legacy
// BIFF .xls is excluded: the sheet reader only decodes OOXML workbooks.
var statementExtensions = map[string]struct{}{
	".csv":  {},
	".txt":  {},
	".pdf":  {},
	".xlsx": {},
	".ofx":  {},
	".qfx":  {},
}

// Scanner walks a directory tree and finds statement files
type Scanner struct {
	rootDir string
}

// New creates a new scanner for the given root directory
func New(rootDir string) *Scanner {
	return &Scanner{rootDir: rootDir}
}

// Scan walks the directory tree and returns the statement file paths, in
// walk order.
func (s *Scanner) Scan() ([]string, error) {
	var paths []string

	rootDir := s.expandHome(s.rootDir)

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !s.isStatementFile(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return paths, nil
}

// isStatementFile checks if file is a known statement format
func (s *Scanner) isStatementFile(path string) bool {
	_, ok := statementExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// expandHome expands ~ to home directory
func (s *Scanner) expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}
