package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/loomworks/shopforge/pkg/models"
)

// CSVReader loads comma-separated product exports
type CSVReader struct{}

// NewCSVReader creates a CSV file reader
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

func (r *CSVReader) Name() string         { return "csv" }
func (r *CSVReader) Extensions() []string { return []string{".csv"} }

// Read parses the CSV into a table. Tolerates the malformed quoting some
// export tools produce and strips a UTF-8 BOM from the first header cell.
func (r *CSVReader) Read(path string) (*models.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file: %s", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &models.Table{Headers: header}
	for _, record := range records[1:] {
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

func isBlankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
