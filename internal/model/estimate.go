package model

// PostCounts holds the number of posts required per structural role,
// waste factors and corner multipliers already applied.
type PostCounts struct {
	End    int `json:"end"`
	Line   int `json:"line"`
	Corner int `json:"corner"`
	Gate   int `json:"gate"`
}

// Total returns the combined post count.
func (pc PostCounts) Total() int {
	return pc.End + pc.Line + pc.Corner + pc.Gate
}

// Add returns the element-wise sum of two post counts.
func (pc PostCounts) Add(other PostCounts) PostCounts {
	return PostCounts{
		End:    pc.End + other.End,
		Line:   pc.Line + other.Line,
		Corner: pc.Corner + other.Corner,
		Gate:   pc.Gate + other.Gate,
	}
}

// GateKits counts gate hardware kits by opening size.
type GateKits struct {
	Single int `json:"single"` // opening <= the type's single-gate threshold
	Double int `json:"double"`
}

// Total returns the combined kit count.
func (gk GateKits) Total() int {
	return gk.Single + gk.Double
}

// MaterialKey identifies one fence type / height combination present in
// the input.
type MaterialKey struct {
	FenceType string  `json:"fence_type"`
	Height    float64 `json:"height"`
}

// Quantities holds the derived material counts for one run and material key.
type Quantities struct {
	Key          MaterialKey `json:"key"`
	RunID        string      `json:"run_id"`
	FenceLength  float64     `json:"fence_length"` // feet, gates excluded
	GateLength   float64     `json:"gate_length"`  // feet of gate openings
	Panels       int         `json:"panels"`       // 0 for roll-stock types
	LinearFeet   float64     `json:"linear_feet"`  // roll-stock footage
	Posts        PostCounts  `json:"posts"`
	Gates        GateKits    `json:"gates"`
	Hardware     int         `json:"hardware"`
	ConcreteBags int         `json:"concrete_bags"`
	CutPieces    []float64   `json:"cut_pieces"` // required rail/roll lengths, feet
}

// RunSummary is the per-run slice of an estimate.
type RunSummary struct {
	ID           string     `json:"id"`
	SegmentCount int        `json:"segment_count"`
	Length       float64    `json:"length"`
	Closed       bool       `json:"closed"`
	Posts        PostCounts `json:"posts"`
}

// Estimate is the final output of one calculation pass. It is a value:
// nothing in it is shared with the engine that produced it.
type Estimate struct {
	ID           string        `json:"id"` // reference number, not semantic
	TotalLength  float64       `json:"total_length"`
	SegmentCount int           `json:"segment_count"`
	Runs         []RunSummary  `json:"runs"`
	PanelCount   int           `json:"panel_count"`
	LinearFeet   float64       `json:"linear_feet"` // roll-stock footage
	Posts        PostCounts    `json:"post_counts_by_type"`
	Gates        GateKits      `json:"gate_hardware"`
	Hardware     int           `json:"hardware_count"`
	ConcreteBags int           `json:"concrete_bags"`
	StockPlan    StockPlan     `json:"stock_plan"`
	Costs        CostBreakdown `json:"cost_breakdown"`
}
