// Package engine implements the cut optimizer: required rail and roll
// lengths are bin-packed into standard stock lengths with a deterministic
// best-fit-decreasing heuristic. Bin packing is NP-hard, so the result is
// an approximation, not a guaranteed optimum; the StockPlan type is the
// seam where an exact solver could be swapped in.
package engine

import (
	"sort"

	"github.com/fenceworks/fencecalc/internal/model"
)

// Packer packs piece lengths into stock units.
type Packer struct {
	// Kerf is the length lost to each cut, in feet. Every piece after the
	// first in a bin costs one kerf.
	Kerf float64
}

// New returns a Packer with the given kerf loss per cut.
func New(kerf float64) *Packer {
	if kerf < 0 {
		kerf = 0
	}
	return &Packer{Kerf: kerf}
}

// bin is one opened stock unit during packing.
type bin struct {
	stock     model.StockLength
	pieces    []float64
	remaining float64
}

// need returns the capacity a piece would consume in this bin.
func (b *bin) need(piece, kerf float64) float64 {
	if len(b.pieces) == 0 {
		return piece
	}
	return piece + kerf
}

// Pack covers all required pieces with stock from the catalog.
//
// Pieces are sorted descending (stable) and each is placed into the open
// bin with the smallest sufficient remaining capacity (best fit). When no
// open bin fits, the smallest stock length that accommodates the piece is
// opened. A piece longer than the largest catalog length fails with
// PieceTooLongError naming the run.
func (p *Packer) Pack(runID string, pieces []float64, catalog []model.StockLength) (model.StockPlan, error) {
	if len(pieces) == 0 || len(catalog) == 0 {
		return model.StockPlan{}, nil
	}

	sorted := append([]float64{}, pieces...)
	sort.Stable(sort.Reverse(sort.Float64Slice(sorted)))

	stock := append([]model.StockLength{}, catalog...)
	sort.SliceStable(stock, func(i, j int) bool { return stock[i].Length < stock[j].Length })
	largest := stock[len(stock)-1].Length

	var bins []*bin
	for _, piece := range sorted {
		if piece > largest {
			return model.StockPlan{}, &model.PieceTooLongError{RunID: runID, Length: piece, MaxStock: largest}
		}

		best := -1
		for i, b := range bins {
			need := b.need(piece, p.Kerf)
			if need > b.remaining {
				continue
			}
			if best < 0 || b.remaining < bins[best].remaining {
				best = i
			}
		}

		if best >= 0 {
			b := bins[best]
			b.remaining -= b.need(piece, p.Kerf)
			b.pieces = append(b.pieces, piece)
			continue
		}

		// First fit on the ascending catalog: open the smallest stock that
		// can take the piece.
		for _, s := range stock {
			if piece <= s.Length {
				bins = append(bins, &bin{
					stock:     s,
					pieces:    []float64{piece},
					remaining: s.Length - piece,
				})
				break
			}
		}
	}

	plan := model.StockPlan{PieceCount: len(sorted)}
	for _, b := range bins {
		plan.Bins = append(plan.Bins, model.StockBin{
			StockLength: b.stock.Length,
			UnitCost:    b.stock.UnitCost,
			Pieces:      b.pieces,
			Remaining:   b.remaining,
		})
		plan.TotalWaste += b.remaining
		plan.TotalCost += b.stock.UnitCost
	}
	plan.Usage = model.AggregateUsage(plan.Bins)
	return plan, nil
}
