package model

// PriceEntry holds the rates for one fence type / height combination.
type PriceEntry struct {
	FenceType        string  `json:"fence_type" toml:"fence_type"`
	Height           float64 `json:"height" toml:"height"`                       // feet
	PanelPrice       float64 `json:"panel_price" toml:"panel_price"`             // dollars per panel
	LinearFootPrice  float64 `json:"linear_foot_price" toml:"linear_foot_price"` // dollars per foot, roll-stock types
	PostPrice        float64 `json:"post_price" toml:"post_price"`
	GateKitPrice     float64 `json:"gate_kit_price" toml:"gate_kit_price"` // dollars per hardware kit
	HardwarePrice    float64 `json:"hardware_price" toml:"hardware_price"` // dollars per piece
	ConcreteBagPrice float64 `json:"concrete_bag_price" toml:"concrete_bag_price"`
	LaborRate        float64 `json:"labor_rate" toml:"labor_rate"`   // dollars per foot installed
	TaxRate          float64 `json:"tax_rate" toml:"tax_rate"`       // fraction (0.08 = 8%)
	MarkupRate       float64 `json:"markup_rate" toml:"markup_rate"` // fraction of subtotal
}

// PriceTable is the injected price list keyed by fence type and height.
type PriceTable struct {
	Entries []PriceEntry `json:"entries" toml:"price"`
}

// Lookup returns the entry for a fence type / height combination.
func (pt PriceTable) Lookup(fenceType string, height float64) (PriceEntry, bool) {
	for _, e := range pt.Entries {
		if e.FenceType == fenceType && e.Height == height {
			return e, true
		}
	}
	return PriceEntry{}, false
}

// CostBreakdown is the priced portion of an estimate.
type CostBreakdown struct {
	MaterialsCost float64 `json:"materials_cost"`
	LaborCost     float64 `json:"labor_cost"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Markup        float64 `json:"markup"`
	Total         float64 `json:"total"`
	CostPerFoot   float64 `json:"cost_per_foot"` // 0 when total length is 0
}

// Add merges another breakdown into this one and recomputes nothing:
// the caller is responsible for recomputing CostPerFoot over the final
// total length.
func (cb CostBreakdown) Add(other CostBreakdown) CostBreakdown {
	return CostBreakdown{
		MaterialsCost: cb.MaterialsCost + other.MaterialsCost,
		LaborCost:     cb.LaborCost + other.LaborCost,
		Subtotal:      cb.Subtotal + other.Subtotal,
		Tax:           cb.Tax + other.Tax,
		Markup:        cb.Markup + other.Markup,
		Total:         cb.Total + other.Total,
	}
}
