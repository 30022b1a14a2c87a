// Package reader turns heterogeneous statement uploads (delimited text,
// PDF, spreadsheets) into a uniform sequence of text lines for the
// line-oriented parsers downstream.
package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Fatal reader errors. Without readable content no transaction can be
// trusted, so these abort the whole parse.
var (
	// ErrRead reports bytes that could not be decoded into rows or text.
	ErrRead = errors.New("unreadable statement file")
	// ErrExtraction reports a failed PDF text extraction.
	ErrExtraction = errors.New("text extraction failed")
	// ErrEmptyWorkbook reports a spreadsheet with zero sheets.
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
)

// TextExtractor is the external document-text collaborator: binary PDF
// bytes in, raw text out.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// SheetReader is the external spreadsheet collaborator: binary workbook
// bytes in, the first sheet's rows of cell values out.
type SheetReader interface {
	ReadFirstSheet(data []byte) ([][]string, error)
}

// sheetDelimiter joins spreadsheet cells into lines so the same
// line-oriented parsers handle spreadsheet input.
const sheetDelimiter = ";"

// Reader selects a decoding strategy per file extension.
type Reader struct {
	extractor TextExtractor
	sheets    SheetReader
}

// New creates a reader with the given collaborators
func New(extractor TextExtractor, sheets SheetReader) *Reader {
	return &Reader{extractor: extractor, sheets: sheets}
}

// Lines decodes the uploaded bytes into text lines. Selection keys off the
// filename extension; unknown or missing extensions are attempted as
// delimited text rather than rejected, trading a risk of garbage output for
// tolerance of garbled uploads. That trade-off is deliberate.
func (r *Reader) Lines(data []byte, filename string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return r.documentLines(data)
	case ".xlsx":
		return r.sheetLines(data)
	case ".xls":
		// Legacy BIFF workbooks cannot be decoded by the OOXML sheet
		// reader; surface that instead of failing with a decode error.
		return nil, fmt.Errorf("%w: legacy .xls workbooks are not supported, re-export as .xlsx", ErrRead)
	default:
		// .csv, .txt and everything else.
		return splitLines(decodeText(data)), nil
	}
}

func (r *Reader) documentLines(data []byte) ([]string, error) {
	text, err := r.extractor.ExtractText(data)
	if err != nil {
		// No lossy fallback: surfacing the failure beats importing garbage.
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	return splitLines(text), nil
}

func (r *Reader) sheetLines(data []byte) ([]string, error) {
	rows, err := r.sheets.ReadFirstSheet(data)
	if err != nil {
		if errors.Is(err, ErrEmptyWorkbook) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, sheetDelimiter))
	}
	return lines, nil
}

// decodeText interprets raw bytes as UTF-8, falling back to Latin-1 for the
// legacy encodings some bank exports still use. A leading BOM is dropped.
func decodeText(data []byte) string {
	data = stripBOM(data)
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
