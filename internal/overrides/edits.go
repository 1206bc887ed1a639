package overrides

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Edit is one explicit per-variant override supplied by the user
type Edit struct {
	Size         string
	Color        string
	Title        string
	Quantity     int
	ComparePrice float64
}

// LoadEdits reads explicit variant edits from a CSV file with the columns
// size, color, title, quantity, compare price. A header row is skipped when
// its quantity cell is not numeric.
func LoadEdits(path string) ([]Edit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open edits file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var edits []Edit
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("edits file line %d: %w", line+1, err)
		}
		line++

		if len(record) < 5 {
			return nil, fmt.Errorf("edits file line %d: expected 5 fields, got %d", line, len(record))
		}

		qty, qtyErr := strconv.Atoi(strings.TrimSpace(record[3]))
		price, priceErr := strconv.ParseFloat(strings.TrimSpace(record[4]), 64)
		if qtyErr != nil || priceErr != nil {
			if line == 1 {
				// Header row
				continue
			}
			return nil, fmt.Errorf("edits file line %d: non-numeric quantity or price", line)
		}

		edits = append(edits, Edit{
			Size:         strings.TrimSpace(record[0]),
			Color:        strings.TrimSpace(record[1]),
			Title:        strings.TrimSpace(record[2]),
			Quantity:     qty,
			ComparePrice: price,
		})
	}

	return edits, nil
}

// Apply records each edit in the store
func (s *Store) Apply(edits []Edit) {
	for _, e := range edits {
		s.Set(Key(e.Size, e.Color, e.Title), e.Quantity, e.ComparePrice)
	}
}
