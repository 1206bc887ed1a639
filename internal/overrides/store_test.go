package overrides_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/shopforge/internal/overrides"
	"github.com/loomworks/shopforge/pkg/models"
)

func titleOf(row models.Row) string {
	return row["title"]
}

func seedVariants() []models.VariantRow {
	row := models.Row{"title": "Silk Kurta"}
	return []models.VariantRow{
		{Source: row, Size: "S", Color: "Red", ExtractedQty: 4, ComparePrice: 1500},
		{Source: row, Size: "M", Color: "Red", ExtractedQty: 8, ComparePrice: 1500},
		{Source: row, Size: "XL", Color: "Red", ExtractedQty: 0, ComparePrice: 1500},
	}
}

func TestSeedUsesExtractedThenDefault(t *testing.T) {
	store := overrides.NewStore(overrides.Defaults{Quantity: 10, ComparePrice: 0})
	seeded := store.Seed(seedVariants(), titleOf)

	assert.Equal(t, 3, seeded)
	assert.Equal(t, 4, store.Quantity(overrides.Key("S", "Red", "Silk Kurta")))
	assert.Equal(t, 8, store.Quantity(overrides.Key("M", "Red", "Silk Kurta")))
	// no extracted quantity falls back to the configured default
	assert.Equal(t, 10, store.Quantity(overrides.Key("XL", "Red", "Silk Kurta")))
}

func TestSeedNeverClobbersExistingValues(t *testing.T) {
	store := overrides.NewStore(overrides.Defaults{Quantity: 10})
	store.Seed(seedVariants(), titleOf)

	store.Set(overrides.Key("S", "Red", "Silk Kurta"), 99, 1234)
	store.Seed(seedVariants(), titleOf)

	assert.Equal(t, 99, store.Quantity(overrides.Key("S", "Red", "Silk Kurta")))
	assert.Equal(t, 1234.0, store.ComparePrice(overrides.Key("S", "Red", "Silk Kurta")))
}

func TestExplicitEditSurvivesBulk(t *testing.T) {
	store := overrides.NewStore(overrides.Defaults{Quantity: 10})
	store.Seed(seedVariants(), titleOf)

	edited := overrides.Key("M", "Red", "Silk Kurta")
	store.Set(edited, 9, 2000)
	store.ApplyBulkQuantity(5)
	store.ApplyBulkComparePrice(1800)

	assert.Equal(t, 9, store.Quantity(edited))
	assert.Equal(t, 2000.0, store.ComparePrice(edited))
	assert.Equal(t, 5, store.Quantity(overrides.Key("S", "Red", "Silk Kurta")))
	assert.Equal(t, 1800.0, store.ComparePrice(overrides.Key("S", "Red", "Silk Kurta")))
}

func TestSurchargeOnlyTouchesMatchingSizes(t *testing.T) {
	store := overrides.NewStore(overrides.Defaults{Quantity: 10})
	store.Seed(seedVariants(), titleOf)

	count := store.ApplySizeSurcharge(map[string]float64{"XL": 0.10}, func(key string) float64 {
		return 1000
	})

	assert.Equal(t, 1, count)
	assert.Equal(t, 1100.0, store.ComparePrice(overrides.Key("XL", "Red", "Silk Kurta")))
	// non-matching sizes keep their seeded compare price
	assert.Equal(t, 1500.0, store.ComparePrice(overrides.Key("S", "Red", "Silk Kurta")))
	assert.Equal(t, 1500.0, store.ComparePrice(overrides.Key("M", "Red", "Silk Kurta")))
}

func TestSurchargeRoundsToTwoDecimals(t *testing.T) {
	store := overrides.NewStore(overrides.Defaults{})
	store.Seed([]models.VariantRow{
		{Source: models.Row{"title": "Top"}, Size: "XL", Color: "", ComparePrice: 0},
	}, titleOf)

	store.ApplySizeSurcharge(map[string]float64{"XL": 0.15}, func(string) float64 {
		return 333.33
	})

	assert.Equal(t, 383.33, store.ComparePrice(overrides.Key("XL", "", "Top")))
}

func TestSurchargeSkipsEditedKeys(t *testing.T) {
	store := overrides.NewStore(overrides.Defaults{Quantity: 10})
	store.Seed(seedVariants(), titleOf)

	edited := overrides.Key("XL", "Red", "Silk Kurta")
	store.Set(edited, 7, 999)
	store.ApplySizeSurcharge(map[string]float64{"XL": 0.10}, func(string) float64 {
		return 1000
	})

	assert.Equal(t, 999.0, store.ComparePrice(edited))
}

func TestUnknownKeyReads(t *testing.T) {
	store := overrides.NewStore(overrides.Defaults{Quantity: 10, ComparePrice: 250})

	assert.Equal(t, 0, store.Quantity("S|Red|Ghost"))
	assert.Equal(t, 250.0, store.ComparePrice("S|Red|Ghost"))
}

func TestHistoryRecordsMutations(t *testing.T) {
	store := overrides.NewStore(overrides.Defaults{Quantity: 10})
	store.Seed(seedVariants(), titleOf)
	store.ApplyBulkQuantity(5)
	store.Set(overrides.Key("S", "Red", "Silk Kurta"), 1, 1)

	history := store.History()
	require.Len(t, history, 3)
	assert.Equal(t, "seed", history[0].Action)
	assert.Equal(t, "bulk_qty", history[1].Action)
	assert.Equal(t, "set", history[2].Action)
}

func TestLoadEditsSkipsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.csv")
	content := "size,color,title,quantity,compare_price\nM,Red,Silk Kurta,9,2000\nXL,Blue,Silk Kurta,3,2500.50\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	edits, err := overrides.LoadEdits(path)
	require.NoError(t, err)
	require.Len(t, edits, 2)
	assert.Equal(t, overrides.Edit{Size: "M", Color: "Red", Title: "Silk Kurta", Quantity: 9, ComparePrice: 2000}, edits[0])
	assert.Equal(t, 2500.50, edits[1].ComparePrice)
}

func TestLoadEditsRejectsBadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edits.csv")
	content := "M,Red,Silk Kurta,nine,2000\nM,Red,Silk Kurta,9,2000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// line 1 with non-numeric cells is treated as a header; a later bad
	// row is an error
	content = "size,color,title,quantity,compare_price\nM,Red,Silk Kurta,nine,2000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := overrides.LoadEdits(path)
	assert.Error(t, err)
}

func TestApplyEdits(t *testing.T) {
	store := overrides.NewStore(overrides.Defaults{Quantity: 10})
	store.Seed(seedVariants(), titleOf)

	store.Apply([]overrides.Edit{
		{Size: "M", Color: "Red", Title: "Silk Kurta", Quantity: 42, ComparePrice: 1999},
	})
	store.ApplyBulkQuantity(5)

	assert.Equal(t, 42, store.Quantity(overrides.Key("M", "Red", "Silk Kurta")))
}
