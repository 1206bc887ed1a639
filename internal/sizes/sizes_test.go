package sizes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loomworks/shopforge/internal/sizes"
)

func TestParseSizeQuantity(t *testing.T) {
	tests := []struct {
		token    string
		wantSize string
		wantQty  int
	}{
		{"M-8", "M", 8},
		{"XL-16", "XL", 16},
		{" S - 4 ", "S", 4},
		{"L", "L", 0},
		{"custom", "Custom", 0},
		{"CUSTOM", "Custom", 0},
		{"A-B-C", "A-B-C", 0},
		{"M-", "M-", 0},
		{"38-12", "38", 12},
	}

	for _, tt := range tests {
		size, qty := sizes.ParseSizeQuantity(tt.token)
		assert.Equal(t, tt.wantSize, size, "token %q", tt.token)
		assert.Equal(t, tt.wantQty, qty, "token %q", tt.token)
	}
}

func TestSortSizesWithQuantities(t *testing.T) {
	ordered, quantities := sizes.SortSizesWithQuantities("XL-16,S-4,Custom,M-8,10,X20")

	assert.Equal(t, []string{"S", "M", "XL", "10", "X20", "Custom"}, ordered)
	assert.Equal(t, 4, quantities["S"])
	assert.Equal(t, 8, quantities["M"])
	assert.Equal(t, 16, quantities["XL"])
	assert.Equal(t, 0, quantities["10"])
}

func TestSortSizesDeduplicates(t *testing.T) {
	ordered, quantities := sizes.SortSizesWithQuantities("M-8,M-3,S-4")

	assert.Equal(t, []string{"S", "M"}, ordered)
	// last-seen quantity wins for a repeated label
	assert.Equal(t, 3, quantities["M"])
}

func TestSortSizesNumericOrdering(t *testing.T) {
	ordered := sizes.SortSizes("40,8,X12,100")

	assert.Equal(t, []string{"8", "X12", "40", "100"}, ordered)
}

func TestSortSizesEmpty(t *testing.T) {
	ordered, quantities := sizes.SortSizesWithQuantities("")

	assert.Empty(t, ordered)
	assert.Empty(t, quantities)
}

func TestSortSizesCustomAlphabetical(t *testing.T) {
	ordered := sizes.SortSizes("Tall,Petite,Regular")

	assert.Equal(t, []string{"Petite", "Regular", "Tall"}, ordered)
}
