package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_CatalogIsUsable(t *testing.T) {
	cfg := Default()

	assert.Greater(t, cfg.SnapTolerance, 0.0)
	assert.Greater(t, cfg.AngleTolerance, 0.0)
	require.NotEmpty(t, cfg.Specs)

	for name, spec := range cfg.Specs {
		assert.NotEmpty(t, spec.Heights, "%s has no heights", name)
		assert.Greater(t, spec.MaxPanelWidth, 0.0, "%s has no panel width", name)
		assert.NotEmpty(t, spec.Stock, "%s has no stock catalog", name)
		if !spec.RollStock {
			assert.Greater(t, spec.RailsPerPanel, 0, "%s has no rails", name)
		}
	}
}

func TestDefaultPrices_CoverDefaultCatalog(t *testing.T) {
	cfg := Default()
	prices := DefaultPrices()

	for name, spec := range cfg.Specs {
		for _, h := range spec.Heights {
			_, ok := prices.Lookup(name, h)
			assert.True(t, ok, "no price for %s at %g ft", name, h)
		}
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesTolerances(t *testing.T) {
	path := writeFile(t, "config.toml", `
snap_tolerance = 0.1
cut_kerf = 0.125
tax_exempt = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.SnapTolerance)
	assert.Equal(t, 0.125, cfg.CutKerf)
	assert.True(t, cfg.TaxExempt)
	// Untouched keys keep their defaults.
	assert.Equal(t, Default().AngleTolerance, cfg.AngleTolerance)
	assert.Len(t, cfg.Specs, len(Default().Specs))
}

func TestLoad_SpecSectionReplacesWhole(t *testing.T) {
	// A redefined fence type replaces the built-in spec entirely rather
	// than merging field by field.
	path := writeFile(t, "config.toml", `
[specs.wood-privacy]
max_panel_width = 6
heights = [6]
rails_per_panel = 2
gate_single_max = 5

[[specs.wood-privacy.stock]]
length = 12
unit_cost = 10.0
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	spec := cfg.Specs["wood-privacy"]
	assert.Equal(t, 6.0, spec.MaxPanelWidth)
	assert.Equal(t, []float64{6}, spec.Heights)
	assert.Zero(t, spec.HardwarePerPanel, "unset fields do not inherit defaults")
	require.Len(t, spec.Stock, 1)
	assert.Equal(t, 12.0, spec.Stock[0].Length)

	// Other types are untouched.
	assert.Equal(t, Default().Specs["chain-link"], cfg.Specs["chain-link"])
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeFile(t, "config.toml", "snap_tolerance = [nope")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadPrices_MissingFileReturnsDefaults(t *testing.T) {
	prices, err := LoadPrices(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPrices(), prices)
}

func TestLoadPrices_ParsesEntries(t *testing.T) {
	path := writeFile(t, "prices.toml", `
[[price]]
fence_type = "wood-privacy"
height = 6.0
panel_price = 92.5
post_price = 17.0
labor_rate = 6.5
tax_rate = 0.07
markup_rate = 0.15
`)

	prices, err := LoadPrices(path)
	require.NoError(t, err)

	entry, ok := prices.Lookup("wood-privacy", 6)
	require.True(t, ok)
	assert.Equal(t, 92.5, entry.PanelPrice)
	assert.Equal(t, 0.07, entry.TaxRate)
}

func TestLoadPrices_EmptyTableFails(t *testing.T) {
	path := writeFile(t, "prices.toml", "# no entries\n")
	_, err := LoadPrices(path)
	assert.Error(t, err)
}
