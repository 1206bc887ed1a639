package assembler_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/shopforge/internal/assembler"
	"github.com/loomworks/shopforge/internal/mapper"
	"github.com/loomworks/shopforge/internal/overrides"
	"github.com/loomworks/shopforge/pkg/models"
)

var testMapping = mapper.Mapping{
	mapper.FieldTitle:       "title",
	mapper.FieldDescription: "description",
	mapper.FieldColour:      "colors",
	mapper.FieldProductCode: "sku",
	mapper.FieldPublished:   "status",
	mapper.FieldPrice:       "price",
	mapper.FieldFabric:      "fabric",
}

func kurtaRow() models.Row {
	return models.Row{
		"title":       "Silk Kurta",
		"description": "A handwoven silk kurta.",
		"colors":      "Red",
		"sku":         "SK-01",
		"status":      "Active",
		"price":       "1299",
		"fabric":      "Silk",
	}
}

func kurtaVariants() []models.VariantRow {
	row := kurtaRow()
	mk := func(size, color string) models.VariantRow {
		return models.VariantRow{Source: row, Handle: "silk-kurta-sk-01", Size: size, Color: color}
	}
	// deliberately out of size order
	return []models.VariantRow{mk("XL", "Red"), mk("S", "Red"), mk("M", "Red")}
}

func seededStore() *overrides.Store {
	store := overrides.NewStore(overrides.Defaults{Quantity: 10, ComparePrice: 0})
	store.Seed(kurtaVariants(), func(row models.Row) string { return row["title"] })
	return store
}

func TestAssembleGroupShape(t *testing.T) {
	rows := assembler.Assemble(kurtaVariants(), testMapping, seededStore(), assembler.Options{VendorName: "Loomworks"})

	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, "silk-kurta-sk-01", row["Handle"])
	}

	// product fields only on the first row
	assert.Equal(t, "Silk Kurta", rows[0]["Title"])
	assert.Equal(t, "Loomworks", rows[0]["Vendor"])
	assert.Equal(t, "", rows[1]["Title"])
	assert.Equal(t, "", rows[1]["Vendor"])
	assert.Equal(t, "", rows[2]["Title"])

	// sorted by size order, so the first row is S
	assert.Equal(t, "S", rows[0]["Option1 Value"])
	assert.Equal(t, "M", rows[1]["Option1 Value"])
	assert.Equal(t, "XL", rows[2]["Option1 Value"])
}

func TestAssembleOptionNames(t *testing.T) {
	rows := assembler.Assemble(kurtaVariants(), testMapping, seededStore(), assembler.Options{})

	assert.Equal(t, "Size", rows[0]["Option1 Name"])
	assert.Equal(t, "Color", rows[0]["Option2 Name"])
	assert.Equal(t, "Red", rows[0]["Option2 Value"])
	assert.Equal(t, "", rows[1]["Option1 Name"])
	assert.Equal(t, "", rows[1]["Option2 Name"])
	assert.Equal(t, "Red", rows[1]["Option2 Value"])
}

func TestAssemblePublishedRule(t *testing.T) {
	variants := kurtaVariants()
	rows := assembler.Assemble(variants, testMapping, seededStore(), assembler.Options{})
	assert.Equal(t, "TRUE", rows[0]["Published"])

	inactive := kurtaRow()
	inactive["status"] = "inactive"
	rows = assembler.Assemble([]models.VariantRow{
		{Source: inactive, Handle: "h", Size: "S", Color: ""},
	}, testMapping, seededStore(), assembler.Options{})
	assert.Equal(t, "FALSE", rows[0]["Published"])
}

func TestAssembleStoreIsAuthoritative(t *testing.T) {
	store := seededStore()
	store.Set(overrides.Key("M", "Red", "Silk Kurta"), 42, 1999)

	rows := assembler.Assemble(kurtaVariants(), testMapping, store, assembler.Options{})

	// rows sorted S, M, XL
	assert.Equal(t, "42", rows[1]["Variant Inventory Qty"])
	assert.Equal(t, "1999.00", rows[1]["Variant Compare At Price"])
	assert.Equal(t, "10", rows[0]["Variant Inventory Qty"])
}

func TestAssembleConstantColumns(t *testing.T) {
	rows := assembler.Assemble(kurtaVariants(), testMapping, seededStore(), assembler.Options{})

	for _, row := range rows {
		assert.Equal(t, "FALSE", row["Gift Card"])
		assert.Equal(t, "draft", row["Status"])
		assert.Equal(t, "manual", row["Variant Fulfillment Service"])
		assert.Equal(t, "0", row["Variant Grams"])
		assert.Equal(t, "0", row["Cost per item"])
		assert.Equal(t, "deny", row["Variant Inventory Policy"])
		assert.Equal(t, "1299.00", row["Variant Price"])
		assert.Equal(t, "SK-01", row["Variant SKU"])
	}
}

func TestAssembleEveryColumnPresent(t *testing.T) {
	rows := assembler.Assemble(kurtaVariants(), testMapping, seededStore(), assembler.Options{})

	for _, row := range rows {
		for _, col := range assembler.Columns {
			_, ok := row[col]
			assert.True(t, ok, "missing column %q", col)
		}
	}
}

func TestAssembleNoNaNLeaks(t *testing.T) {
	row := kurtaRow()
	row["description"] = "nan"
	row["fabric"] = "NaN"

	rows := assembler.Assemble([]models.VariantRow{
		{Source: row, Handle: "h", Size: "S", Color: "Red"},
	}, testMapping, seededStore(), assembler.Options{})

	for _, out := range rows {
		for col, v := range out {
			assert.NotEqual(t, "nan", strings.ToLower(v), "column %q", col)
		}
	}
}

func TestAssembleHandleOrderIsFirstAppearance(t *testing.T) {
	a := models.Row{"title": "Alpha", "price": "10"}
	b := models.Row{"title": "Beta", "price": "20"}
	variants := []models.VariantRow{
		{Source: b, Handle: "beta", Size: "M", Color: ""},
		{Source: a, Handle: "alpha", Size: "S", Color: ""},
		{Source: b, Handle: "beta", Size: "S", Color: ""},
	}
	store := overrides.NewStore(overrides.Defaults{Quantity: 1})
	store.Seed(variants, func(row models.Row) string { return row["title"] })

	rows := assembler.Assemble(variants, testMapping, store, assembler.Options{})

	require.Len(t, rows, 3)
	assert.Equal(t, "beta", rows[0]["Handle"])
	assert.Equal(t, "S", rows[0]["Option1 Value"])
	assert.Equal(t, "beta", rows[1]["Handle"])
	assert.Equal(t, "M", rows[1]["Option1 Value"])
	assert.Equal(t, "alpha", rows[2]["Handle"])
}

func TestBuildBodyHTML(t *testing.T) {
	body := assembler.BuildBodyHTML(kurtaRow(), testMapping, "")

	assert.Contains(t, body, "<p>A handwoven silk kurta.</p>")
	assert.Contains(t, body, "<li><strong>Fabric</strong>: Silk</li>")
	assert.Contains(t, body, "<li><strong>SKU</strong>: SK-01</li>")
	assert.True(t, strings.HasPrefix(body, "<p>"))
}

func TestBuildBodyHTMLRewrittenDescriptionWins(t *testing.T) {
	body := assembler.BuildBodyHTML(kurtaRow(), testMapping, "A rewritten description.")

	assert.Contains(t, body, "<p>A rewritten description.</p>")
	assert.NotContains(t, body, "handwoven")
}

func TestBuildBodyHTMLEmpty(t *testing.T) {
	body := assembler.BuildBodyHTML(models.Row{}, mapper.Mapping{}, "")

	assert.Equal(t, "", body)
}
