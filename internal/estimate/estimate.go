// Package estimate ties the calculation stages together: geometry
// normalization, connectivity analysis, quantity derivation, cut
// optimization, and pricing. One call, one estimate, or one error.
package estimate

import (
	"github.com/google/uuid"

	"github.com/fenceworks/fencecalc/internal/engine"
	"github.com/fenceworks/fencecalc/internal/geometry"
	"github.com/fenceworks/fencecalc/internal/model"
	"github.com/fenceworks/fencecalc/internal/pricing"
	"github.com/fenceworks/fencecalc/internal/quantity"
	"github.com/fenceworks/fencecalc/internal/topology"
)

// Engine computes estimates from drawn segment lists. Configuration and
// price data are copied in at construction and never mutated, so a single
// Engine is safe to share across goroutines.
type Engine struct {
	cfg    model.Config
	prices model.PriceTable
}

// New returns an Engine bound to the given configuration and price table.
func New(cfg model.Config, prices model.PriceTable) *Engine {
	return &Engine{cfg: cfg, prices: prices}
}

// Estimate runs the full calculation pass over the input segments. It is
// a pure function of (segments, config, price table): no partial results,
// no retained state. The stages are strictly sequential; each consumes
// the output of its predecessor.
func (e *Engine) Estimate(segments []model.Segment) (model.Estimate, error) {
	layout, err := geometry.Normalize(segments, e.cfg.SnapTolerance)
	if err != nil {
		return model.Estimate{}, err
	}

	runs := topology.Analyze(segments, layout, e.cfg.AngleTolerance)

	quantities, err := quantity.Calculate(segments, layout, runs, e.cfg)
	if err != nil {
		return model.Estimate{}, err
	}

	packer := engine.New(e.cfg.CutKerf)
	est := model.Estimate{
		ID:           uuid.New().String()[:8],
		SegmentCount: len(segments),
	}

	runPosts := make(map[string]model.PostCounts)
	for _, q := range quantities {
		spec, _ := e.cfg.Spec(q.Key.FenceType, q.Key.Height)

		plan, err := packer.Pack(q.RunID, q.CutPieces, spec.Stock)
		if err != nil {
			return model.Estimate{}, err
		}

		costs, err := pricing.ForQuantities(q, plan, e.prices, e.cfg.TaxExempt)
		if err != nil {
			return model.Estimate{}, err
		}

		est.PanelCount += q.Panels
		est.LinearFeet += q.LinearFeet
		est.Posts = est.Posts.Add(q.Posts)
		est.Gates.Single += q.Gates.Single
		est.Gates.Double += q.Gates.Double
		est.Hardware += q.Hardware
		est.ConcreteBags += q.ConcreteBags
		est.StockPlan = est.StockPlan.Merge(plan)
		est.Costs = est.Costs.Add(costs)
		runPosts[q.RunID] = runPosts[q.RunID].Add(q.Posts)
	}

	for _, rt := range runs {
		est.TotalLength += rt.Run.Length
		est.Runs = append(est.Runs, model.RunSummary{
			ID:           rt.Run.ID,
			SegmentCount: len(rt.Run.Segments),
			Length:       rt.Run.Length,
			Closed:       rt.Run.Closed,
			Posts:        runPosts[rt.Run.ID],
		})
	}
	if est.TotalLength > 0 {
		est.Costs.CostPerFoot = est.Costs.Total / est.TotalLength
	}
	return est, nil
}

// Runs exposes the classified topology without pricing, for callers that
// only need connectivity and post classification.
func (e *Engine) Runs(segments []model.Segment) ([]model.Run, error) {
	layout, err := geometry.Normalize(segments, e.cfg.SnapTolerance)
	if err != nil {
		return nil, err
	}
	rts := topology.Analyze(segments, layout, e.cfg.AngleTolerance)
	runs := make([]model.Run, len(rts))
	for i, rt := range rts {
		runs[i] = rt.Run
	}
	return runs, nil
}
