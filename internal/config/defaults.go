package config

import "github.com/fenceworks/fencecalc/internal/model"

// Default returns the built-in calculation configuration. The catalog
// mirrors the product line the calculator ships with; every value can be
// overridden from a TOML file.
//
// Waste factors default to zero so that quantity math is exact unless a
// shop explicitly opts into padding.
func Default() model.Config {
	rails := []model.StockLength{
		{Length: 8, UnitCost: 9.50},
		{Length: 10, UnitCost: 11.75},
		{Length: 12, UnitCost: 14.00},
		{Length: 16, UnitCost: 19.00},
	}
	alumRails := []model.StockLength{
		{Length: 6, UnitCost: 12.50},
		{Length: 12, UnitCost: 24.00},
		{Length: 18, UnitCost: 35.50},
	}
	rolls := []model.StockLength{
		{Length: 25, UnitCost: 62.00},
		{Length: 50, UnitCost: 115.00},
	}

	return model.Config{
		SnapTolerance:  0.05, // feet
		AngleTolerance: 5.0,  // degrees
		CutKerf:        0,
		Specs: map[string]model.FenceSpec{
			"vinyl-privacy": {
				MaxPanelWidth:        8,
				Heights:              []float64{4, 6, 8},
				RailsPerPanel:        2,
				HardwarePerPanel:     4,
				CornerPostMultiplier: 1,
				ConcreteBagsPerPost:  1.5,
				GateSingleMax:        4,
				Stock:                rails,
			},
			"vinyl-semi-privacy": {
				MaxPanelWidth:        8,
				Heights:              []float64{4, 6},
				RailsPerPanel:        2,
				HardwarePerPanel:     4,
				CornerPostMultiplier: 1,
				ConcreteBagsPerPost:  1.5,
				GateSingleMax:        4,
				Stock:                rails,
			},
			"vinyl-picket": {
				MaxPanelWidth:        8,
				Heights:              []float64{3, 4},
				RailsPerPanel:        2,
				HardwarePerPanel:     3,
				CornerPostMultiplier: 1,
				ConcreteBagsPerPost:  1.0,
				GateSingleMax:        4,
				Stock:                rails,
			},
			"aluminum-privacy": {
				MaxPanelWidth:        6,
				Heights:              []float64{4, 6},
				RailsPerPanel:        3,
				HardwarePerPanel:     6,
				CornerPostMultiplier: 2,
				ConcreteBagsPerPost:  2.0,
				GateSingleMax:        4,
				Stock:                alumRails,
			},
			"aluminum-picket": {
				MaxPanelWidth:        6,
				Heights:              []float64{3, 4, 5},
				RailsPerPanel:        2,
				HardwarePerPanel:     4,
				CornerPostMultiplier: 2,
				ConcreteBagsPerPost:  2.0,
				GateSingleMax:        4,
				Stock:                alumRails,
			},
			"wood-privacy": {
				MaxPanelWidth:        8,
				Heights:              []float64{4, 6, 8},
				RailsPerPanel:        3,
				HardwarePerPanel:     8,
				CornerPostMultiplier: 1,
				ConcreteBagsPerPost:  1.5,
				GateSingleMax:        4,
				Stock:                rails,
			},
			"wood-picket": {
				MaxPanelWidth:        8,
				Heights:              []float64{3, 4},
				RailsPerPanel:        2,
				HardwarePerPanel:     6,
				CornerPostMultiplier: 1,
				ConcreteBagsPerPost:  1.0,
				GateSingleMax:        4,
				Stock:                rails,
			},
			"chain-link": {
				MaxPanelWidth:        10, // post spacing; sold by the linear foot
				Heights:              []float64{4, 5, 6},
				RollStock:            true,
				HardwarePerPanel:     2,
				CornerPostMultiplier: 1,
				ConcreteBagsPerPost:  1.5,
				GateSingleMax:        4,
				Stock:                rolls,
			},
		},
	}
}

// DefaultPrices returns the built-in price table matching the default
// catalog. Rates follow the shop's standard selling list.
func DefaultPrices() model.PriceTable {
	var entries []model.PriceEntry
	add := func(fenceType string, heights []float64, panel, linear, post, labor float64) {
		for _, h := range heights {
			entries = append(entries, model.PriceEntry{
				FenceType:        fenceType,
				Height:           h,
				PanelPrice:       panel * h / 6, // scale panel price by height
				LinearFootPrice:  linear,
				PostPrice:        post,
				GateKitPrice:     150,
				HardwarePrice:    2,
				ConcreteBagPrice: 8,
				LaborRate:        labor,
				TaxRate:          0.08,
				MarkupRate:       0.20,
			})
		}
	}

	add("vinyl-privacy", []float64{4, 6, 8}, 144, 0, 28, 8)
	add("vinyl-semi-privacy", []float64{4, 6}, 128, 0, 28, 7)
	add("vinyl-picket", []float64{3, 4}, 112, 0, 24, 6)
	add("aluminum-privacy", []float64{4, 6}, 150, 0, 38, 10)
	add("aluminum-picket", []float64{3, 4, 5}, 132, 0, 34, 9)
	add("wood-privacy", []float64{4, 6, 8}, 96, 0, 18, 6)
	add("wood-picket", []float64{3, 4}, 80, 0, 16, 5)
	add("chain-link", []float64{4, 5, 6}, 0, 8, 14, 4)

	return model.PriceTable{Entries: entries}
}
