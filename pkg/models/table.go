package models

// Row is one record of an uploaded product table, keyed by the raw source
// column name exactly as it appeared in the file header.
type Row map[string]string

// Clone returns a shallow copy of the row
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table holds an uploaded product export in column order
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// VariantRow is one exploded (size, color) combination of a source row
type VariantRow struct {
	Source       Row     `json:"source"`
	Handle       string  `json:"handle"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	ExtractedQty int     `json:"extracted_qty"`            // quantity embedded in the size token, 0 if none
	ComparePrice float64 `json:"uploaded_compare_price"`   // uploaded compare-at price, or the configured default
	Description  string  `json:"description,omitempty"`    // AI-rewritten description, "" = use source description
	Tags         string  `json:"tags,omitempty"`           // comma-separated AI tags
}

// OutputRow is one record of the final Shopify import CSV, keyed by the
// exact Shopify column name.
type OutputRow map[string]string
