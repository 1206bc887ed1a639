package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomworks/shopforge/internal/config"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, config.ModeDefault, cfg.Build.Mode)
	assert.Equal(t, 10, cfg.Build.DefaultQty)
	assert.Equal(t, "deny", cfg.Build.InventoryPolicy)
	assert.Equal(t, "OPENAI_API_KEY", cfg.AI.APIKeyEnv)
}

func TestSaveToLoadFromRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := config.DefaultConfig()
	cfg.Build.Mode = config.ModeFull
	cfg.Build.VendorName = "Loomworks"
	cfg.Build.SurchargeRules = map[string]float64{"XL": 0.10, "XXL": 0.15}
	require.NoError(t, config.SaveTo(cfg, path))

	loaded, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, config.ModeFull, loaded.Build.Mode)
	assert.Equal(t, "Loomworks", loaded.Build.VendorName)
	assert.Equal(t, 0.10, loaded.Build.SurchargeRules["XL"])
	assert.Equal(t, 0.15, loaded.Build.SurchargeRules["XXL"])
}

func TestLoadFromAppliesDefaultsToPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "build:\n  vendor_name: Loomworks\n"
	require.NoError(t, os.WriteFile(path, []byte(partial), 0644))

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "Loomworks", cfg.Build.VendorName)
	assert.Equal(t, config.ModeDefault, cfg.Build.Mode)
	assert.Equal(t, 10, cfg.Build.DefaultQty)
	assert.Equal(t, "gpt-5-nano", cfg.AI.Model)
	assert.NotNil(t, cfg.Build.SurchargeRules)
}

func TestLoadFromRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("build: [not a map"), 0644))

	_, err := config.LoadFrom(path)
	assert.Error(t, err)
}
