package reader

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelReader is the default SheetReader, backed by excelize. Only the
// first sheet is read; multi-sheet statements are not a thing banks export.
type ExcelReader struct{}

// NewExcelReader returns the default spreadsheet reader
func NewExcelReader() *ExcelReader {
	return &ExcelReader{}
}

// ReadFirstSheet returns the first sheet's rows as cell value strings
func (r *ExcelReader) ReadFirstSheet(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
