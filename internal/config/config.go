// Package config supplies the built-in calculation defaults and loads
// overrides from TOML files. Loaded values are plain model types: the
// engine receives them by value and nothing here is global or mutable
// after load.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/fenceworks/fencecalc/internal/model"
)

// Load reads a calculation configuration from a TOML file. A missing file
// is not an error: the built-in defaults are returned, matching how the
// CLI behaves with no --config flag.
func Load(path string) (model.Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return model.Config{}, fmt.Errorf("read config: %w", err)
	}

	// Decode over a fresh value so a file section fully replaces the
	// corresponding default rather than merging half a spec.
	var loaded fileConfig
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return model.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	loaded.apply(&cfg)
	return cfg, nil
}

// fileConfig mirrors model.Config with pointer fields so absent keys keep
// their defaults.
type fileConfig struct {
	SnapTolerance  *float64                   `toml:"snap_tolerance"`
	AngleTolerance *float64                   `toml:"angle_tolerance"`
	CutKerf        *float64                   `toml:"cut_kerf"`
	TaxExempt      *bool                      `toml:"tax_exempt"`
	Specs          map[string]model.FenceSpec `toml:"specs"`
}

func (fc fileConfig) apply(cfg *model.Config) {
	if fc.SnapTolerance != nil {
		cfg.SnapTolerance = *fc.SnapTolerance
	}
	if fc.AngleTolerance != nil {
		cfg.AngleTolerance = *fc.AngleTolerance
	}
	if fc.CutKerf != nil {
		cfg.CutKerf = *fc.CutKerf
	}
	if fc.TaxExempt != nil {
		cfg.TaxExempt = *fc.TaxExempt
	}
	for name, spec := range fc.Specs {
		cfg.Specs[name] = spec
	}
}

// LoadPrices reads a price table from a TOML file of [[price]] blocks.
// A missing file returns the built-in price list.
func LoadPrices(path string) (model.PriceTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPrices(), nil
		}
		return model.PriceTable{}, fmt.Errorf("read price table: %w", err)
	}
	var table model.PriceTable
	if err := toml.Unmarshal(data, &table); err != nil {
		return model.PriceTable{}, fmt.Errorf("parse price table %s: %w", path, err)
	}
	if len(table.Entries) == 0 {
		return model.PriceTable{}, fmt.Errorf("price table %s has no [[price]] entries", path)
	}
	return table, nil
}
