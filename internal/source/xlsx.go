package source

import (
	"fmt"
	"strings"

	"github.com/loomworks/shopforge/pkg/models"
	"github.com/xuri/excelize/v2"
)

// XLSXReader loads Excel workbooks; the first sheet's first row is taken
// as the header.
type XLSXReader struct{}

// NewXLSXReader creates an Excel file reader
func NewXLSXReader() *XLSXReader {
	return &XLSXReader{}
}

func (r *XLSXReader) Name() string         { return "xlsx" }
func (r *XLSXReader) Extensions() []string { return []string{".xlsx", ".xls"} }

func (r *XLSXReader) Read(path string) (*models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in %s", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file: %s", path)
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	table := &models.Table{Headers: header}
	for _, record := range rows[1:] {
		if isBlankRecord(record) {
			continue
		}
		row := make(models.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
