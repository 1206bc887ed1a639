package mapper

import (
	"strings"

	"github.com/loomworks/shopforge/pkg/models"
)

// Canonical field names used throughout the pipeline. Source columns are
// mapped onto these; everything downstream reads rows through Value only.
const (
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldColour          = "colour"
	FieldProductCode     = "product code"
	FieldProductCategory = "product category"
	FieldType            = "type"
	FieldPublished       = "published"
	FieldSize            = "size"
	FieldComponents      = "no of components"
	FieldFabric          = "fabric"
	FieldPrice           = "variant price"
	FieldComparePrice    = "variant compare at price"
	FieldCelebsName      = "celebs name"
	FieldFit             = "fit"
	FieldSizesInfo       = "sizes info"
	FieldDeliveryTime    = "delivery time"
	FieldWashCare        = "wash care"
	FieldTechnique       = "technique used"
	FieldEmbroidery      = "embroidery details"
)

// fieldSpec holds the known name variants for one canonical field.
// Order matters: fields are probed in this order on every pass, which keeps
// the mapping deterministic for a fixed input table.
type fieldSpec struct {
	name     string
	synonyms []string
}

var canonicalFields = []fieldSpec{
	{FieldTitle, []string{"title", "product_title", "product title", "name", "product_name", "product name"}},
	{FieldDescription, []string{"description", "product_description", "product description", "desc"}},
	{FieldColour, []string{"colour", "color", "colors", "colours"}},
	{FieldProductCode, []string{"product code", "product_code", "sku", "product_sku", "item_code", "item code"}},
	{FieldProductCategory, []string{"product category", "product_category", "category", "product_type"}},
	{FieldType, []string{"type", "product_type", "product type"}},
	{FieldPublished, []string{"published", "status", "active", "publish_status", "publish status"}},
	{FieldSize, []string{"size", "sizes", "variant_size", "variant size"}},
	{FieldComponents, []string{"no of components", "no_of_components", "components", "number_of_components", "component_count"}},
	{FieldFabric, []string{"fabric", "material", "fabric_type", "fabric type"}},
	{FieldPrice, []string{"variant price", "variant_price", "price", "unit_price", "unit price", "cost"}},
	{FieldComparePrice, []string{"variant compare at price", "variant_compare_at_price", "compare_price", "compare price", "compare at price", "compare_at_price", "original_price", "original price"}},
	{FieldCelebsName, []string{"celebs name", "celebs_name", "celebrity_name", "celebrity name", "celeb_name", "celeb name"}},
	{FieldFit, []string{"fit", "fitting", "size_fit", "size fit"}},
	{FieldSizesInfo, []string{"sizes info", "sizes_info", "size_info", "size info"}},
	{FieldDeliveryTime, []string{"delivery time", "delivery_time", "shipping_time", "shipping time"}},
	{FieldWashCare, []string{"wash care", "wash_care", "care_instructions", "care instructions"}},
	{FieldTechnique, []string{"technique used", "technique_used", "manufacturing_technique", "manufacturing technique"}},
	{FieldEmbroidery, []string{"embroidery details", "embroidery_details", "embroidery", "embroidery_info"}},
}

// Similarity threshold for the fuzzy pass and the minimum detector score for
// the content pass.
const (
	fuzzyThreshold   = 0.7
	contentThreshold = 0.6
)

// Mapping maps a canonical field name to the actual column name in the
// source table. A missing key means the field is unmapped; downstream reads
// fall back to defaults rather than failing.
type Mapping map[string]string

// Report describes how the mapping was derived
type Report struct {
	Confidence map[string]float64 // canonical field -> match confidence
	Method     map[string]string  // canonical field -> "exact", "fuzzy" or "content"
	Unmapped   []string           // source columns no field claimed
}

// MapColumns maps the table's raw column names onto the canonical schema.
// Three passes: exact synonym match, fuzzy similarity, then content-based
// detection over sampled values. Running it twice on the same table yields
// identical results.
func MapColumns(t *models.Table) (Mapping, *Report) {
	mapping := make(Mapping)
	report := &Report{
		Confidence: make(map[string]float64),
		Method:     make(map[string]string),
	}

	// Exact pass: lowercase/trim actual names, first synonym match wins
	actualLower := make(map[string]string, len(t.Headers))
	for _, col := range t.Headers {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, exists := actualLower[key]; !exists {
			actualLower[key] = col
		}
	}
	for _, spec := range canonicalFields {
		for _, syn := range spec.synonyms {
			if actual, ok := actualLower[syn]; ok {
				mapping[spec.name] = actual
				report.Confidence[spec.name] = 1.0
				report.Method[spec.name] = "exact"
				break
			}
		}
	}

	// Fuzzy pass over columns no exact synonym claimed
	fuzzyPass(t.Headers, mapping, report)

	// Content pass over columns still unused
	contentPass(t, mapping, report)

	used := make(map[string]bool, len(mapping))
	for _, col := range mapping {
		used[col] = true
	}
	for _, col := range t.Headers {
		if !used[col] {
			report.Unmapped = append(report.Unmapped, col)
		}
	}

	return mapping, report
}

// fuzzyPass repeatedly accepts the best-scoring (field, column) pair above
// the similarity threshold until none remains.
func fuzzyPass(headers []string, mapping Mapping, report *Report) {
	for {
		bestScore := fuzzyThreshold
		bestField := ""
		bestCol := ""

		used := make(map[string]bool, len(mapping))
		for _, col := range mapping {
			used[col] = true
		}

		for _, spec := range canonicalFields {
			if _, done := mapping[spec.name]; done {
				continue
			}
			for _, col := range headers {
				if used[col] {
					continue
				}
				colLower := strings.ToLower(strings.TrimSpace(col))
				for _, syn := range spec.synonyms {
					if score := Similarity(colLower, syn); score > bestScore {
						bestScore = score
						bestField = spec.name
						bestCol = col
					}
				}
			}
		}

		if bestField == "" {
			return
		}
		mapping[bestField] = bestCol
		report.Confidence[bestField] = bestScore
		report.Method[bestField] = "fuzzy"
	}
}

// contentPass samples values of still-unused columns and scores them
// against the type detectors.
func contentPass(t *models.Table, mapping Mapping, report *Report) {
	used := make(map[string]bool, len(mapping))
	for _, col := range mapping {
		used[col] = true
	}

	for _, col := range t.Headers {
		if used[col] {
			continue
		}

		samples := sampleValues(t, col, contentSampleSize)
		if len(samples) == 0 {
			continue
		}

		field, confidence := detectColumnType(samples, col)
		if field == "" || confidence <= contentThreshold {
			continue
		}
		if _, done := mapping[field]; done {
			continue
		}
		mapping[field] = col
		report.Confidence[field] = confidence
		report.Method[field] = "content"
		used[col] = true
	}
}

const contentSampleSize = 10

// sampleValues returns up to n non-blank values of a column
func sampleValues(t *models.Table, col string, n int) []string {
	var out []string
	for _, row := range t.Rows {
		v := CleanValue(row[col])
		if v == "" {
			continue
		}
		out = append(out, v)
		if len(out) >= n {
			break
		}
	}
	return out
}

// Value returns the row's value under the column mapped to the canonical
// field, or def if the field is unmapped or the cell is absent. This is the
// only way pipeline code reads logical fields from a raw row.
func Value(row models.Row, m Mapping, field, def string) string {
	actual, ok := m[field]
	if !ok {
		return def
	}
	v, ok := row[actual]
	if !ok {
		return def
	}
	return v
}
