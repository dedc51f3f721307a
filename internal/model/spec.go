package model

// StockLength is one purchasable raw-stock size for rails or rolls.
type StockLength struct {
	Length   float64 `json:"length" toml:"length"`       // feet
	UnitCost float64 `json:"unit_cost" toml:"unit_cost"` // dollars per stick/roll
}

// FenceSpec holds the material specifications for one fence type.
type FenceSpec struct {
	MaxPanelWidth        float64       `json:"max_panel_width" toml:"max_panel_width"` // feet; also the post spacing
	Heights              []float64     `json:"heights" toml:"heights"`                 // offered panel heights, feet
	RollStock            bool          `json:"roll_stock" toml:"roll_stock"`           // sold by linear foot (chain link), no panel discretization
	RailsPerPanel        int           `json:"rails_per_panel" toml:"rails_per_panel"`
	HardwarePerPanel     int           `json:"hardware_per_panel" toml:"hardware_per_panel"`
	CornerPostMultiplier int           `json:"corner_post_multiplier" toml:"corner_post_multiplier"` // heavier/double corner posts
	ConcreteBagsPerPost  float64       `json:"concrete_bags_per_post" toml:"concrete_bags_per_post"`
	GateSingleMax        float64       `json:"gate_single_max" toml:"gate_single_max"` // feet; wider openings take a double kit
	Stock                []StockLength `json:"stock" toml:"stock"`                     // available rail/roll lengths

	// Waste factors as fractions (0.05 = 5%)
	PanelWasteFactor    float64 `json:"panel_waste_factor" toml:"panel_waste_factor"`
	PostWasteFactor     float64 `json:"post_waste_factor" toml:"post_waste_factor"`
	HardwareWasteFactor float64 `json:"hardware_waste_factor" toml:"hardware_waste_factor"`
}

// OffersHeight reports whether the spec covers the given panel height.
func (fs FenceSpec) OffersHeight(height float64) bool {
	for _, h := range fs.Heights {
		if h == height {
			return true
		}
	}
	return false
}

// MaxStockLength returns the longest available stock length, or 0 when
// no stock catalog is configured.
func (fs FenceSpec) MaxStockLength() float64 {
	var longest float64
	for _, s := range fs.Stock {
		if s.Length > longest {
			longest = s.Length
		}
	}
	return longest
}

// Config holds the calculation parameters injected into the engine.
// Values are copied at engine construction and never mutated.
type Config struct {
	SnapTolerance  float64              `json:"snap_tolerance" toml:"snap_tolerance"`   // feet; endpoints closer than this merge
	AngleTolerance float64              `json:"angle_tolerance" toml:"angle_tolerance"` // degrees from straight for a line post
	CutKerf        float64              `json:"cut_kerf" toml:"cut_kerf"`               // feet lost per cut
	TaxExempt      bool                 `json:"tax_exempt" toml:"tax_exempt"`
	Specs          map[string]FenceSpec `json:"specs" toml:"specs"` // keyed by fence type
}

// Spec looks up the specification for a fence type / height combination.
// The boolean is false when the type is unknown or the height not offered.
func (c Config) Spec(fenceType string, height float64) (FenceSpec, bool) {
	fs, ok := c.Specs[fenceType]
	if !ok || !fs.OffersHeight(height) {
		return FenceSpec{}, false
	}
	return fs, true
}
