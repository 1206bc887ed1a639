// Package assembler turns exploded variant rows into the Shopify
// product-import CSV shape: variants grouped under a shared Handle,
// with product-level fields on the first row of each group only.
package assembler

import (
	"sort"
	"strconv"
	"strings"

	"github.com/loomworks/shopforge/internal/mapper"
	"github.com/loomworks/shopforge/internal/overrides"
	"github.com/loomworks/shopforge/internal/sizes"
	"github.com/loomworks/shopforge/pkg/models"
)

// Options carries the product-level values that do not come from the
// source table.
type Options struct {
	VendorName      string
	InventoryPolicy string // deny or continue
}

// Assemble groups variants by handle (first-appearance order), sorts
// each group by size order then color, and emits one output row per
// variant. Quantities and compare-at prices are read from the override
// store, never from the variant rows themselves.
func Assemble(variants []models.VariantRow, m mapper.Mapping, store *overrides.Store, opts Options) []models.OutputRow {
	if opts.InventoryPolicy == "" {
		opts.InventoryPolicy = "deny"
	}

	var handleOrder []string
	groups := make(map[string][]models.VariantRow)
	for _, v := range variants {
		if _, seen := groups[v.Handle]; !seen {
			handleOrder = append(handleOrder, v.Handle)
		}
		groups[v.Handle] = append(groups[v.Handle], v)
	}

	var out []models.OutputRow
	for _, handle := range handleOrder {
		group := sortGroup(groups[handle])
		for i, v := range group {
			if i == 0 {
				out = append(out, productRow(v, m, store, opts))
			} else {
				out = append(out, variantRow(v, m, store, opts))
			}
		}
	}

	return out
}

// sortGroup orders a product's variants by size rank then color. Sizes
// are ranked by re-sorting the distinct sizes of the group; anything
// the sorter does not return keeps a large rank so it sinks to the end.
func sortGroup(group []models.VariantRow) []models.VariantRow {
	var distinct []string
	seen := make(map[string]bool)
	for _, v := range group {
		if !seen[v.Size] {
			seen[v.Size] = true
			distinct = append(distinct, v.Size)
		}
	}

	rank := make(map[string]int)
	for i, s := range sizes.SortSizes(strings.Join(distinct, ",")) {
		rank[s] = i
	}

	sorted := make([]models.VariantRow, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, ok := rank[sorted[i].Size]
		if !ok {
			ri = 999
		}
		rj, ok := rank[sorted[j].Size]
		if !ok {
			rj = 999
		}
		if ri != rj {
			return ri < rj
		}
		return sorted[i].Color < sorted[j].Color
	})

	return sorted
}

func productRow(v models.VariantRow, m mapper.Mapping, store *overrides.Store, opts Options) models.OutputRow {
	title := mapper.CleanValue(mapper.Value(v.Source, m, mapper.FieldTitle, "Unknown"))
	published := "FALSE"
	if strings.EqualFold(mapper.CleanValue(mapper.Value(v.Source, m, mapper.FieldPublished, "")), "active") {
		published = "TRUE"
	}

	option1Name := ""
	if v.Size != "" {
		option1Name = "Size"
	}
	option2Name := ""
	if v.Color != "" {
		option2Name = "Color"
	}

	row := emptyFields()
	row["Handle"] = v.Handle
	row["Title"] = title
	row["Body (HTML)"] = BuildBodyHTML(v.Source, m, v.Description)
	row["Vendor"] = opts.VendorName
	row["Product Category"] = mapper.CleanValue(mapper.Value(v.Source, m, mapper.FieldProductCategory, ""))
	row["Type"] = mapper.CleanValue(mapper.Value(v.Source, m, mapper.FieldType, ""))
	row["Tags"] = mapper.CleanValue(v.Tags)
	row["Published"] = published
	row["Option1 Name"] = option1Name
	row["Option1 Value"] = v.Size
	row["Option2 Name"] = option2Name
	row["Option2 Value"] = v.Color
	fillVariantFields(row, v, m, store, opts)

	return row
}

func variantRow(v models.VariantRow, m mapper.Mapping, store *overrides.Store, opts Options) models.OutputRow {
	row := emptyFields()
	row["Handle"] = v.Handle
	row["Option1 Value"] = v.Size
	row["Option2 Value"] = v.Color
	fillVariantFields(row, v, m, store, opts)

	return row
}

// fillVariantFields writes the columns every row carries regardless of
// position in its group.
func fillVariantFields(row models.OutputRow, v models.VariantRow, m mapper.Mapping, store *overrides.Store, opts Options) {
	title := mapper.CleanValue(mapper.Value(v.Source, m, mapper.FieldTitle, "Unknown"))
	key := overrides.Key(v.Size, v.Color, title)

	price, _ := mapper.ParsePrice(mapper.Value(v.Source, m, mapper.FieldPrice, "0"))

	row["Variant SKU"] = mapper.CleanValue(mapper.Value(v.Source, m, mapper.FieldProductCode, ""))
	row["Variant Inventory Qty"] = strconv.Itoa(store.Quantity(key))
	row["Variant Inventory Policy"] = opts.InventoryPolicy
	row["Variant Compare At Price"] = FormatPrice(store.ComparePrice(key))
	row["Variant Price"] = FormatPrice(price)
}

// FormatPrice renders a price with two decimals, the format Shopify
// round-trips without reinterpreting.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// emptyFields returns a row with every Shopify column present, the
// constant columns filled and everything else blank. Missing keys
// would shift the CSV, so all columns are always written.
func emptyFields() models.OutputRow {
	row := make(models.OutputRow, len(Columns))
	for _, col := range Columns {
		row[col] = ""
	}
	row["Variant Grams"] = "0"
	row["Variant Fulfillment Service"] = "manual"
	row["Gift Card"] = "FALSE"
	row["Cost per item"] = "0"
	row["Status"] = "draft"

	return row
}
