package model

// StockBin is one purchased stock unit with the pieces cut from it.
type StockBin struct {
	StockLength float64   `json:"stock_length"` // feet
	UnitCost    float64   `json:"unit_cost"`
	Pieces      []float64 `json:"pieces"`    // cut lengths, feet
	Remaining   float64   `json:"remaining"` // unusable leftover, feet
}

// StockUsage summarizes all bins of one stock length.
type StockUsage struct {
	Length float64 `json:"length"` // feet
	Count  int     `json:"count"`
	Waste  float64 `json:"waste"` // feet, summed leftover
	Cost   float64 `json:"cost"`
}

// StockPlan is the cut optimizer output: which stock units to buy and how
// to cut them. The packing is a best-fit-decreasing heuristic, not a
// guaranteed optimum.
type StockPlan struct {
	Bins       []StockBin   `json:"bins"`
	Usage      []StockUsage `json:"usage"` // aggregated per stock length, ascending
	PieceCount int          `json:"piece_count"`
	TotalWaste float64      `json:"total_waste"` // feet
	TotalCost  float64      `json:"total_cost"`
}

// Merge combines two stock plans by concatenating bins and re-aggregating
// the per-length usage rows.
func (sp StockPlan) Merge(other StockPlan) StockPlan {
	merged := StockPlan{
		Bins:       append(append([]StockBin{}, sp.Bins...), other.Bins...),
		PieceCount: sp.PieceCount + other.PieceCount,
		TotalWaste: sp.TotalWaste + other.TotalWaste,
		TotalCost:  sp.TotalCost + other.TotalCost,
	}
	merged.Usage = AggregateUsage(merged.Bins)
	return merged
}

// AggregateUsage rolls bins up into per-length usage rows, ordered by
// ascending stock length.
func AggregateUsage(bins []StockBin) []StockUsage {
	var usage []StockUsage
	for _, b := range bins {
		idx := -1
		for i := range usage {
			if usage[i].Length == b.StockLength {
				idx = i
				break
			}
		}
		if idx < 0 {
			usage = append(usage, StockUsage{Length: b.StockLength})
			idx = len(usage) - 1
		}
		usage[idx].Count++
		usage[idx].Waste += b.Remaining
		usage[idx].Cost += b.UnitCost
	}
	for i := 1; i < len(usage); i++ {
		for j := i; j > 0 && usage[j-1].Length > usage[j].Length; j-- {
			usage[j-1], usage[j] = usage[j], usage[j-1]
		}
	}
	return usage
}
