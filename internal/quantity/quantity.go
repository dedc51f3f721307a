// Package quantity derives material counts from classified fence runs:
// panels (or linear footage for roll stock), posts per structural role,
// gate hardware kits, panel hardware, concrete, and the rail piece
// lengths that feed the cut optimizer.
package quantity

import (
	"math"

	"github.com/fenceworks/fencecalc/internal/geometry"
	"github.com/fenceworks/fencecalc/internal/model"
	"github.com/fenceworks/fencecalc/internal/topology"
)

// Calculate produces one Quantities record per run and fence type / height
// combination present in that run. A combination absent from the
// configuration fails the whole calculation with UnknownFenceSpecError.
func Calculate(segments []model.Segment, layout geometry.Layout, runs []topology.RunTopology, cfg model.Config) ([]model.Quantities, error) {
	var out []model.Quantities
	for _, rt := range runs {
		qs, err := calculateRun(segments, layout, rt, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, qs...)
	}
	return out, nil
}

func calculateRun(segments []model.Segment, layout geometry.Layout, rt topology.RunTopology, cfg model.Config) ([]model.Quantities, error) {
	keyOf := func(si int) model.MaterialKey {
		return model.MaterialKey{FenceType: segments[si].FenceType, Height: segments[si].Height}
	}

	// Material keys in order of first appearance, specs resolved up front.
	var keys []model.MaterialKey
	specs := make(map[model.MaterialKey]model.FenceSpec)
	for _, si := range rt.Run.Segments {
		k := keyOf(si)
		if _, seen := specs[k]; seen {
			continue
		}
		fs, ok := cfg.Spec(k.FenceType, k.Height)
		if !ok {
			return nil, &model.UnknownFenceSpecError{FenceType: k.FenceType, Height: k.Height}
		}
		keys = append(keys, k)
		specs[k] = fs
	}

	acc := make(map[model.MaterialKey]*model.Quantities, len(keys))
	for _, k := range keys {
		acc[k] = &model.Quantities{Key: k, RunID: rt.Run.ID}
	}

	// Lengths and gate kits come straight from the segments.
	for _, si := range rt.Run.Segments {
		s := segments[si]
		q := acc[keyOf(si)]
		if s.IsGate {
			q.GateLength += s.OpeningWidth()
			if s.OpeningWidth() <= specs[q.Key].GateSingleMax {
				q.Gates.Single++
			} else {
				q.Gates.Double++
			}
		} else {
			q.FenceLength += s.Length()
		}
	}

	// Structural posts are counted per node. Each node is attributed to the
	// material of its lowest-indexed incident segment within the run.
	nodeSegs := make(map[int]int) // node -> lowest incident segment index
	for _, si := range rt.Run.Segments {
		for _, n := range layout.Ends[si] {
			if cur, ok := nodeSegs[n]; !ok || si < cur {
				nodeSegs[n] = si
			}
		}
	}
	for _, p := range rt.Run.Posts {
		q := acc[keyOf(nodeSegs[p.Node])]
		switch {
		case p.GatePost:
			q.Posts.Gate++
		case p.Kind == model.PostEnd:
			q.Posts.End++
		case p.Kind == model.PostCorner:
			mult := specs[q.Key].CornerPostMultiplier
			if mult < 1 {
				mult = 1
			}
			q.Posts.Corner += mult
		}
		// Line joints are spaced along stretches below.
	}

	// Line posts per straight stretch: at least one per interior joint, and
	// at least one every panel width. A straight stretch of length L ends up
	// with ceil(L/W)+1 posts including its two anchors; a full loop with no
	// anchor carries ceil(L/W).
	for _, st := range rt.Stretches {
		q := acc[keyOf(st.FirstSegment)]
		w := specs[q.Key].MaxPanelWidth
		if w <= 0 || st.Length <= 0 {
			continue
		}
		spaced := int(math.Ceil(st.Length / w))
		if st.Loop {
			q.Posts.Line += maxInt(st.JointCount, spaced)
		} else {
			q.Posts.Line += maxInt(st.InteriorJoints, spaced-1)
		}
	}

	for _, k := range keys {
		q := acc[k]
		fs := specs[k]
		finishQuantities(q, fs, cfg.CutKerf)
	}

	out := make([]model.Quantities, 0, len(keys))
	for _, k := range keys {
		out = append(out, *acc[k])
	}
	return out, nil
}

// finishQuantities fills in the derived counts once lengths and posts are
// accumulated: panels, hardware, concrete, waste factors, and the cut
// pieces handed to the optimizer.
func finishQuantities(q *model.Quantities, fs model.FenceSpec, kerf float64) {
	sections := 0
	if fs.MaxPanelWidth > 0 && q.FenceLength > 0 {
		sections = int(math.Ceil(q.FenceLength / fs.MaxPanelWidth))
	}

	if fs.RollStock {
		// Continuous roll: no panel discretization, footage feeds the
		// optimizer directly. Splices land on posts, so long pulls split at
		// the largest roll length.
		q.LinearFeet = q.FenceLength
		if maxRoll := fs.MaxStockLength(); maxRoll > 0 {
			remaining := q.FenceLength
			for remaining > maxRoll {
				q.CutPieces = append(q.CutPieces, maxRoll)
				remaining -= maxRoll
			}
			if remaining > 0 {
				q.CutPieces = append(q.CutPieces, remaining)
			}
		}
	} else {
		q.Panels = applyWaste(sections, fs.PanelWasteFactor)
		if len(fs.Stock) > 0 && fs.MaxPanelWidth > 0 {
			full := int(q.FenceLength / fs.MaxPanelWidth)
			remainder := q.FenceLength - float64(full)*fs.MaxPanelWidth
			rails := fs.RailsPerPanel
			if rails < 1 {
				rails = 1
			}
			for i := 0; i < full; i++ {
				for r := 0; r < rails; r++ {
					q.CutPieces = append(q.CutPieces, fs.MaxPanelWidth)
				}
			}
			if remainder > kerf && remainder > 1e-9 {
				for r := 0; r < rails; r++ {
					q.CutPieces = append(q.CutPieces, remainder)
				}
			}
		}
	}

	q.Hardware = applyWaste(sections*fs.HardwarePerPanel, fs.HardwareWasteFactor)
	q.Posts.Line = applyWaste(q.Posts.Line, fs.PostWasteFactor)
	if fs.ConcreteBagsPerPost > 0 {
		q.ConcreteBags = int(math.Ceil(float64(q.Posts.Total()) * fs.ConcreteBagsPerPost))
	}
}

// applyWaste rounds n up after applying a fractional waste factor.
func applyWaste(n int, factor float64) int {
	if n <= 0 || factor <= 0 {
		return n
	}
	return int(math.Ceil(float64(n) * (1 + factor)))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
