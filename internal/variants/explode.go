// Package variants expands source product rows into one row per
// (size, color) combination and derives the Shopify handle that groups a
// product's variants together.
package variants

import (
	"strings"

	"github.com/loomworks/shopforge/internal/mapper"
	"github.com/loomworks/shopforge/internal/sizes"
	"github.com/loomworks/shopforge/pkg/models"
)

// Options configures variant explosion
type Options struct {
	DefaultComparePrice float64 // fallback when the upload carries no compare-at price
}

// comparePriceColumns is the priority order for locating an uploaded
// compare-at price when scanning raw headers. First present column with a
// valid non-negative value wins.
var comparePriceColumns = []string{
	"variant compare at price",
	"variant_compare_at_price",
	"compare_price",
	"compare price",
	"compare at price",
	"compare_at_price",
	"original_price",
	"original price",
}

// Explode cross-products a source row's sizes and colors into variant rows.
// A row with no parseable sizes gets a single empty-string size, likewise
// for colors, so every product yields at least one variant.
func Explode(row models.Row, headers []string, m mapper.Mapping, opts Options) []models.VariantRow {
	sizesValue := mapper.CleanValue(mapper.Value(row, m, mapper.FieldSize, ""))
	coloursValue := mapper.CleanValue(mapper.Value(row, m, mapper.FieldColour, ""))

	sortedSizes, quantities := sizes.SortSizesWithQuantities(sizesValue)

	var colors []string
	for _, c := range strings.Split(coloursValue, ",") {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}

	if len(sortedSizes) == 0 {
		sortedSizes = []string{""}
		quantities = map[string]int{"": 0}
	}
	if len(colors) == 0 {
		colors = []string{""}
	}

	comparePrice := resolveComparePrice(row, headers, opts.DefaultComparePrice)

	out := make([]models.VariantRow, 0, len(sortedSizes)*len(colors))
	for _, size := range sortedSizes {
		for _, color := range colors {
			out = append(out, models.VariantRow{
				Source:       row.Clone(),
				Size:         size,
				Color:        color,
				ExtractedQty: quantities[size],
				ComparePrice: comparePrice,
			})
		}
	}
	return out
}

// resolveComparePrice scans the raw headers for a known compare-price
// column, in priority order, and takes the first valid non-negative value.
func resolveComparePrice(row models.Row, headers []string, def float64) float64 {
	byLower := make(map[string]string, len(headers))
	for _, h := range headers {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, exists := byLower[key]; !exists {
			byLower[key] = h
		}
	}

	for _, name := range comparePriceColumns {
		actual, ok := byLower[name]
		if !ok {
			continue
		}
		if v, ok := mapper.ParsePrice(row[actual]); ok && v >= 0 {
			return v
		}
	}
	return def
}
