package mapper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/shopforge/internal/mapper"
	"github.com/loomworks/shopforge/pkg/models"
)

func TestMapColumnsExact(t *testing.T) {
	table := &models.Table{
		Headers: []string{"Title", "DESCRIPTION", "color", "SKU", "Price"},
	}

	mapping, report := mapper.MapColumns(table)

	assert.Equal(t, "Title", mapping[mapper.FieldTitle])
	assert.Equal(t, "DESCRIPTION", mapping[mapper.FieldDescription])
	assert.Equal(t, "color", mapping[mapper.FieldColour])
	assert.Equal(t, "SKU", mapping[mapper.FieldProductCode])
	assert.Equal(t, "Price", mapping[mapper.FieldPrice])

	for _, field := range []string{mapper.FieldTitle, mapper.FieldColour, mapper.FieldPrice} {
		assert.Equal(t, "exact", report.Method[field])
		assert.Equal(t, 1.0, report.Confidence[field])
	}
}

func TestMapColumnsFuzzy(t *testing.T) {
	// Separator differences should not block mapping
	table := &models.Table{
		Headers: []string{"Product-Title", "Wash Care Instructions"},
	}

	mapping, report := mapper.MapColumns(table)

	assert.Equal(t, "Product-Title", mapping[mapper.FieldTitle])
	assert.Equal(t, "fuzzy", report.Method[mapper.FieldTitle])
	assert.GreaterOrEqual(t, report.Confidence[mapper.FieldTitle], 0.7)
}

func TestMapColumnsContent(t *testing.T) {
	table := &models.Table{
		Headers: []string{"mystery_a", "mystery_b"},
		Rows: []models.Row{
			{"mystery_a": "₹1,299.00", "mystery_b": "Red"},
			{"mystery_a": "599", "mystery_b": "Navy Blue"},
			{"mystery_a": "2499.50", "mystery_b": "Black"},
		},
	}

	mapping, report := mapper.MapColumns(table)

	assert.Equal(t, "mystery_a", mapping[mapper.FieldPrice])
	assert.Equal(t, "content", report.Method[mapper.FieldPrice])
	assert.Equal(t, "mystery_b", mapping[mapper.FieldColour])
	assert.Equal(t, "content", report.Method[mapper.FieldColour])
}

func TestMapColumnsUnmapped(t *testing.T) {
	table := &models.Table{
		Headers: []string{"title", "internal_warehouse_zone"},
		Rows: []models.Row{
			{"title": "Shirt", "internal_warehouse_zone": "ships from central warehouse, aisle three"},
		},
	}

	mapping, report := mapper.MapColumns(table)

	require.Contains(t, mapping, mapper.FieldTitle)
	assert.Contains(t, report.Unmapped, "internal_warehouse_zone")
}

func TestMapColumnsDeterministic(t *testing.T) {
	table := &models.Table{
		Headers: []string{"product name", "colours", "sizes", "unit price", "status"},
		Rows: []models.Row{
			{"product name": "Kurta", "colours": "Red,Blue", "sizes": "S-4,M-8", "unit price": "999", "status": "active"},
		},
	}

	first, _ := mapper.MapColumns(table)
	second, _ := mapper.MapColumns(table)

	assert.Equal(t, first, second)
}

func TestValue(t *testing.T) {
	row := models.Row{"Product Name": "Silk Saree"}
	m := mapper.Mapping{mapper.FieldTitle: "Product Name"}

	assert.Equal(t, "Silk Saree", mapper.Value(row, m, mapper.FieldTitle, "Unknown"))
	assert.Equal(t, "Unknown", mapper.Value(row, m, mapper.FieldDescription, "Unknown"))
	assert.Equal(t, "", mapper.Value(models.Row{}, m, mapper.FieldTitle, ""))
}

func TestCleanValue(t *testing.T) {
	assert.Equal(t, "", mapper.CleanValue("nan"))
	assert.Equal(t, "", mapper.CleanValue("NaN"))
	assert.Equal(t, "", mapper.CleanValue("None"))
	assert.Equal(t, "", mapper.CleanValue("  "))
	assert.Equal(t, "Red", mapper.CleanValue(" Red "))
}

func TestParsePrice(t *testing.T) {
	v, ok := mapper.ParsePrice("₹1,299.50")
	require.True(t, ok)
	assert.InDelta(t, 1299.50, v, 0.001)

	v, ok = mapper.ParsePrice("$ 49")
	require.True(t, ok)
	assert.InDelta(t, 49, v, 0.001)

	_, ok = mapper.ParsePrice("call for price")
	assert.False(t, ok)

	_, ok = mapper.ParsePrice("")
	assert.False(t, ok)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, mapper.Similarity("product title", "product_title"))
	assert.GreaterOrEqual(t, mapper.Similarity("title", "product title"), 0.8)
	assert.Less(t, mapper.Similarity("warehouse", "price"), 0.7)
}
